package coding

import (
	"fmt"

	"github.com/sagostin/smpp-engine/smpp/pdu"
)

// Encode renders text as wire octets for the given data_coding value,
// choosing GSM-7, UCS-2, or Latin-1. Unrecognized
// coding values are treated as raw UTF-8 bytes, matching the engine's
// policy of carrying data_coding through without rejecting unknown values.
func Encode(dc pdu.DataCoding, text string) ([]byte, error) {
	switch dc {
	case pdu.DataCodingDefault:
		return EncodeGSM7(text)
	case pdu.DataCodingLatin1:
		return EncodeLatin1(text)
	case pdu.DataCodingUCS2:
		return EncodeUCS2(text)
	default:
		return []byte(text), nil
	}
}

// Decode converts wire octets back to text for the given data_coding value.
func Decode(dc pdu.DataCoding, b []byte) (string, error) {
	switch dc {
	case pdu.DataCodingDefault:
		return DecodeGSM7(b)
	case pdu.DataCodingLatin1:
		return DecodeLatin1(b)
	case pdu.DataCodingUCS2:
		return DecodeUCS2(b)
	default:
		return string(b), nil
	}
}

// Strict rejects any data_coding outside the three the engine implements,
// for callers that refuse to fall back to raw UTF-8.
func Strict(dc pdu.DataCoding) error {
	switch dc {
	case pdu.DataCodingDefault, pdu.DataCodingLatin1, pdu.DataCodingUCS2:
		return nil
	default:
		return fmt.Errorf("%w: 0x%02X", pdu.ErrUnknownDataCoding, uint8(dc))
	}
}
