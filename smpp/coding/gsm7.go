package coding

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGSM7 wraps encode failures for runes outside the GSM 03.38
// default alphabet and its single-shift extension table.
var ErrInvalidGSM7 = errors.New("coding: invalid gsm7 input")

// gsm7Map maps GSM 03.38 default-alphabet codes (0x00-0x7F) to runes.
var gsm7Map = map[byte]rune{
	0x00: '@', 0x01: '£', 0x02: '$', 0x03: '¥', 0x04: 'è', 0x05: 'é',
	0x06: 'ù', 0x07: 'ì', 0x08: 'ò', 0x09: 'Ç', 0x0A: '\n', 0x0B: 'Ø',
	0x0C: 'ø', 0x0D: '\r', 0x0E: 'Å', 0x0F: 'å', 0x10: 'Δ', 0x11: '_',
	0x12: 'Φ', 0x13: 'Γ', 0x14: 'Λ', 0x15: 'Ω', 0x16: 'Π', 0x17: 'Ψ',
	0x18: 'Σ', 0x19: 'Θ', 0x1A: 'Ξ', 0x1C: 'Æ', 0x1D: 'æ', 0x1E: 'ß',
	0x1F: 'É', 0x20: ' ', 0x21: '!', 0x22: '"', 0x23: '#', 0x24: '¤',
	0x25: '%', 0x26: '&', 0x27: '\'', 0x28: '(', 0x29: ')', 0x2A: '*',
	0x2B: '+', 0x2C: ',', 0x2D: '-', 0x2E: '.', 0x2F: '/', 0x30: '0',
	0x31: '1', 0x32: '2', 0x33: '3', 0x34: '4', 0x35: '5', 0x36: '6',
	0x37: '7', 0x38: '8', 0x39: '9', 0x3A: ':', 0x3B: ';', 0x3C: '<',
	0x3D: '=', 0x3E: '>', 0x3F: '?', 0x40: '¡', 0x41: 'A', 0x42: 'B',
	0x43: 'C', 0x44: 'D', 0x45: 'E', 0x46: 'F', 0x47: 'G', 0x48: 'H',
	0x49: 'I', 0x4A: 'J', 0x4B: 'K', 0x4C: 'L', 0x4D: 'M', 0x4E: 'N',
	0x4F: 'O', 0x50: 'P', 0x51: 'Q', 0x52: 'R', 0x53: 'S', 0x54: 'T',
	0x55: 'U', 0x56: 'V', 0x57: 'W', 0x58: 'X', 0x59: 'Y', 0x5A: 'Z',
	0x5B: 'Ä', 0x5C: 'Ö', 0x5D: 'Ñ', 0x5E: 'Ü', 0x5F: '§', 0x60: '¿',
	0x61: 'a', 0x62: 'b', 0x63: 'c', 0x64: 'd', 0x65: 'e', 0x66: 'f',
	0x67: 'g', 0x68: 'h', 0x69: 'i', 0x6A: 'j', 0x6B: 'k', 0x6C: 'l',
	0x6D: 'm', 0x6E: 'n', 0x6F: 'o', 0x70: 'p', 0x71: 'q', 0x72: 'r',
	0x73: 's', 0x74: 't', 0x75: 'u', 0x76: 'v', 0x77: 'w', 0x78: 'x',
	0x79: 'y', 0x7A: 'z', 0x7B: 'ä', 0x7C: 'ö', 0x7D: 'ñ', 0x7E: 'ü',
	0x7F: 'à',
}

// gsm7ExtMap maps single-shift (escape 0x1B) extension codes to runes.
// Extension slots outside this table decode to space and refuse to encode.
var gsm7ExtMap = map[byte]rune{
	0x0A: '\f', 0x14: '^', 0x28: '{', 0x29: '}', 0x2F: '\\', 0x3C: '[',
	0x3D: '~', 0x3E: ']', 0x40: '|', 0x65: '€',
}

var (
	gsm7RuneToByte    map[rune]byte
	gsm7RuneToExtByte map[rune]byte
)

func init() {
	gsm7RuneToByte = make(map[rune]byte, len(gsm7Map))
	for b, r := range gsm7Map {
		gsm7RuneToByte[r] = b
	}
	gsm7RuneToExtByte = make(map[rune]byte, len(gsm7ExtMap))
	for b, r := range gsm7ExtMap {
		gsm7RuneToExtByte[r] = b
	}
}

const gsm7Escape = 0x1B

// InGSM7Alphabet reports whether r is representable in the GSM 03.38
// default alphabet or its extension table.
func InGSM7Alphabet(r rune) bool {
	if _, ok := gsm7RuneToByte[r]; ok {
		return true
	}
	_, ok := gsm7RuneToExtByte[r]
	return ok
}

// SanitizeGSM7 replaces runes outside the GSM 03.38 alphabet with '?',
// for senders that prefer degraded text over an encode error.
func SanitizeGSM7(text string) string {
	var b strings.Builder
	for _, r := range text {
		if InGSM7Alphabet(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('?')
	}
	return b.String()
}

// EncodeGSM7 renders text as one octet per septet, escaping extension-table
// characters with 0x1B so they occupy two output octets. The count
// relation CountGSM7Septets(text) == len(EncodeGSM7(text)) holds for every
// encodable text.
func EncodeGSM7(text string) ([]byte, error) {
	var out []byte
	for _, r := range text {
		if b, ok := gsm7RuneToByte[r]; ok {
			out = append(out, b)
			continue
		}
		if b, ok := gsm7RuneToExtByte[r]; ok {
			out = append(out, gsm7Escape, b)
			continue
		}
		return nil, fmt.Errorf("%w: rune %q not in gsm7 alphabet", ErrInvalidGSM7, r)
	}
	return out, nil
}

// DecodeGSM7 decodes a septet-per-octet GSM-7 byte slice. The high bit of
// every byte is ignored. An escape byte consumes the following byte as an
// extension-table index; extension slots outside the defined table (and a
// dangling trailing escape) decode to space rather than failing, so
// DecodeGSM7 never returns an error for any input.
func DecodeGSM7(input []byte) (string, error) {
	var result []rune
	for i := 0; i < len(input); i++ {
		b := input[i] & 0x7F
		if b == gsm7Escape {
			if i+1 >= len(input) {
				result = append(result, ' ')
				break
			}
			i++
			r, ok := gsm7ExtMap[input[i]&0x7F]
			if !ok {
				r = ' '
			}
			result = append(result, r)
			continue
		}
		result = append(result, gsm7Map[b])
	}
	return string(result), nil
}

// PackSeptets packs a septet-per-byte slice (high bit clear on each byte)
// into the 7-in-8 bit-packed format GSM 03.38 uses on the air interface.
func PackSeptets(septets []byte) []byte {
	if len(septets) == 0 {
		return nil
	}
	out := make([]byte, 0, (len(septets)*7+7)/8)
	var carry byte
	var carryBits uint
	for _, s := range septets {
		carry |= (s << carryBits) & 0xFF
		carryBits += 7
		if carryBits >= 8 {
			out = append(out, carry)
			carryBits -= 8
			carry = s >> (7 - carryBits)
		}
	}
	if carryBits > 0 {
		out = append(out, carry)
	}
	return out
}

// UnpackSeptets unpacks the 7-in-8 bit-packed format into one septet per
// output byte (high bit always clear). Fewer than seven leftover bits at
// the end of the stream are fill and are discarded; a full septet of
// zeroes at an eight-septet boundary is likewise treated as fill, the
// conventional resolution of the trailing-'@' ambiguity.
func UnpackSeptets(packed []byte) []byte {
	var septets []byte
	var carry uint8
	var carryBits uint
	for _, b := range packed {
		septet := (b << carryBits) | carry
		septets = append(septets, septet&0x7F)
		carry = b >> (7 - carryBits)
		carryBits++
		if carryBits == 7 {
			septets = append(septets, carry&0x7F)
			carry = 0
			carryBits = 0
		}
	}
	if n := len(septets); n > 0 && n%8 == 0 && septets[n-1] == 0 {
		septets = septets[:n-1]
	}
	return septets
}

// EncodeGSM7Packed composes EncodeGSM7 and PackSeptets for callers that
// need the air-interface bit-packed form rather than SMPP's
// septet-per-octet short_message convention.
func EncodeGSM7Packed(text string) ([]byte, error) {
	septets, err := EncodeGSM7(text)
	if err != nil {
		return nil, err
	}
	return PackSeptets(septets), nil
}

// DecodeGSM7Packed decodes the air-interface bit-packed form back to text.
func DecodeGSM7Packed(packed []byte) (string, error) {
	return DecodeGSM7(UnpackSeptets(packed))
}

// CanEncodeGSM7 reports whether every rune in text is representable in the
// GSM 03.38 default alphabet or its extension table.
func CanEncodeGSM7(text string) bool {
	for _, r := range text {
		if !InGSM7Alphabet(r) {
			return false
		}
	}
	return true
}

// CountGSM7Septets reports how many septets text occupies once GSM-7
// encoded, counting extension-table characters as two septets each. It
// returns -1 if text is not encodable.
func CountGSM7Septets(text string) int {
	n := 0
	for _, r := range text {
		if _, ok := gsm7RuneToByte[r]; ok {
			n++
			continue
		}
		if _, ok := gsm7RuneToExtByte[r]; ok {
			n += 2
			continue
		}
		return -1
	}
	return n
}
