package coding

import (
	"golang.org/x/text/encoding/charmap"
)

// EncodeLatin1 renders text as ISO-8859-1 octets (data_coding 0x03).
func EncodeLatin1(text string) ([]byte, error) {
	return charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
}

// DecodeLatin1 decodes ISO-8859-1 octets back to text.
func DecodeLatin1(b []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
