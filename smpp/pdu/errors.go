package pdu

import (
	"errors"
)

//goland:noinspection ALL
var (
	ErrUnmarshalPDUFailed   = errors.New("pdu: unmarshal pdu failed")
	ErrUnknownDataCoding    = errors.New("pdu: unknown data coding")
	ErrItemTooMany          = errors.New("pdu: item too many")
	ErrDataTooLarge         = errors.New("pdu: data too large")
	ErrShortMessageTooLarge = errors.New("pdu: encoded short message data exceeds size of 254 bytes")
	ErrMultipartTooMuch     = errors.New("pdu: multipart sms too much (max 254 segments)")

	// ErrShortFrame is returned by Unmarshal when fewer than HeaderLen
	// bytes were supplied; the frame layer should never hand Unmarshal
	// anything this small, so seeing it indicates a frame/body split bug.
	ErrShortFrame = errors.New("pdu: frame shorter than header")
	// ErrFrameLengthMismatch means the header's command_length disagrees
	// with the number of bytes actually supplied.
	ErrFrameLengthMismatch = errors.New("pdu: command_length disagrees with frame size")
	// ErrUnknownCommandID is returned by Unmarshal for a command_id the
	// engine does not recognize; callers reply with generic_nack.
	ErrUnknownCommandID = errors.New("pdu: unknown command id")
)
