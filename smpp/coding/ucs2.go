package coding

import (
	"golang.org/x/text/encoding/unicode"
)

// ucs2Encoding is UTF-16BE without a byte-order mark, matching SMPP's
// data_coding 0x08 (UCS2) wire representation.
var ucs2Encoding = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// EncodeUCS2 renders text as big-endian UTF-16 octets (data_coding 0x08).
func EncodeUCS2(text string) ([]byte, error) {
	return ucs2Encoding.NewEncoder().Bytes([]byte(text))
}

// DecodeUCS2 decodes big-endian UTF-16 octets back to text.
func DecodeUCS2(b []byte) (string, error) {
	out, err := ucs2Encoding.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
