package coding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sagostin/smpp-engine/smpp/pdu"
)

func TestGSM7RoundTrip(t *testing.T) {
	text := "Hello, World! @£$"
	encoded, err := EncodeGSM7(text)
	require.NoError(t, err)

	got, err := DecodeGSM7(encoded)
	require.NoError(t, err)
	require.Equal(t, text, got)
}

func TestGSM7ExtensionTable(t *testing.T) {
	text := "price: 10€"
	require.True(t, CanEncodeGSM7(text))

	encoded, err := EncodeGSM7(text)
	require.NoError(t, err)
	// the euro sign escapes to two octets
	require.Len(t, encoded, CountGSM7Septets(text))
	got, err := DecodeGSM7(encoded)
	require.NoError(t, err)
	require.Equal(t, text, got)
}

func TestDecodeGSM7IgnoresHighBit(t *testing.T) {
	got, err := DecodeGSM7([]byte{0x48 | 0x80, 0x69})
	require.NoError(t, err)
	require.Equal(t, "Hi", got)
}

func TestDecodeGSM7UnknownExtensionDecodesToSpace(t *testing.T) {
	got, err := DecodeGSM7([]byte{0x1B, 0x01, 0x61})
	require.NoError(t, err)
	require.Equal(t, " a", got)

	got, err = DecodeGSM7([]byte{0x61, 0x1B})
	require.NoError(t, err)
	require.Equal(t, "a ", got)
}

func TestGSM7PackedRoundTrip(t *testing.T) {
	cases := []string{"hellohel", "@", "Hello, World!", "1234567"}
	for _, text := range cases {
		packed, err := EncodeGSM7Packed(text)
		require.NoError(t, err)
		got, err := DecodeGSM7Packed(packed)
		require.NoError(t, err)
		require.Equal(t, text, got)
	}
}

func TestPackSeptetsLength(t *testing.T) {
	septets, err := EncodeGSM7("12345678")
	require.NoError(t, err)
	require.Len(t, PackSeptets(septets), 7)
}

func TestCanEncodeGSM7RejectsOutOfAlphabet(t *testing.T) {
	require.False(t, CanEncodeGSM7("日本語"))
	require.True(t, CanEncodeGSM7("plain ascii"))
}

func TestCountGSM7SeptetsMatchesEncodedLength(t *testing.T) {
	cases := []string{"hello", "price: 10€", "", "{}[]~\\|^"}
	for _, text := range cases {
		encoded, err := EncodeGSM7(text)
		require.NoError(t, err)
		require.Equal(t, len(encoded), CountGSM7Septets(text))
	}
}

func TestCountGSM7SeptetsReturnsNegativeOneForUnencodable(t *testing.T) {
	require.Equal(t, -1, CountGSM7Septets("日本語"))
}

func TestCountGSM7SeptetsCountsExtensionCharsAsTwo(t *testing.T) {
	require.Equal(t, 2, CountGSM7Septets("€"))
	require.Equal(t, 1, CountGSM7Septets("a"))
}

func TestUCS2RoundTrip(t *testing.T) {
	text := "こんにちは"
	b, err := EncodeUCS2(text)
	require.NoError(t, err)

	got, err := DecodeUCS2(b)
	require.NoError(t, err)
	require.Equal(t, text, got)
}

func TestLatin1RoundTrip(t *testing.T) {
	text := "café"
	b, err := EncodeLatin1(text)
	require.NoError(t, err)

	got, err := DecodeLatin1(b)
	require.NoError(t, err)
	require.Equal(t, text, got)
}

func TestEncodeDispatchesByDataCoding(t *testing.T) {
	gsm7, err := Encode(pdu.DataCodingDefault, "hi")
	require.NoError(t, err)
	decoded, err := Decode(pdu.DataCodingDefault, gsm7)
	require.NoError(t, err)
	require.Equal(t, "hi", decoded)

	ucs2, err := Encode(pdu.DataCodingUCS2, "hi")
	require.NoError(t, err)
	decoded, err = Decode(pdu.DataCodingUCS2, ucs2)
	require.NoError(t, err)
	require.Equal(t, "hi", decoded)
}

func TestEncodeFallsBackToRawBytesForUnknownDataCoding(t *testing.T) {
	raw, err := Encode(pdu.DataCoding(0x7E), "raw")
	require.NoError(t, err)
	require.Equal(t, []byte("raw"), raw)
}

func TestStrictRejectsUnknownDataCoding(t *testing.T) {
	require.NoError(t, Strict(pdu.DataCodingDefault))
	require.ErrorIs(t, Strict(pdu.DataCoding(0x7E)), pdu.ErrUnknownDataCoding)
}

func TestSplitSMSFitsSingleSegment(t *testing.T) {
	segments, err := SplitSMS("short message", pdu.DataCodingDefault)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	require.Equal(t, "short message", segments[0])
}

func TestSplitSMSMultipartByDataCoding(t *testing.T) {
	long := strings.Repeat("a", 200)

	gsm7, err := SplitSMS(long, pdu.DataCodingDefault)
	require.NoError(t, err)
	require.Greater(t, len(gsm7), 1)

	ucs2, err := SplitSMS(long, pdu.DataCodingUCS2)
	require.NoError(t, err)
	require.Greater(t, len(ucs2), 1)
}

func TestSplitSMSRejectsTooManySegments(t *testing.T) {
	// a 134-byte multipart segment holds 153 GSM-7 septets; one character
	// past 254 full segments forces a 255th
	long := strings.Repeat("a", 153*254+1)
	_, err := SplitSMS(long, pdu.DataCodingDefault)
	require.ErrorIs(t, err, pdu.ErrMultipartTooMuch)
}
