package pdu

import "fmt"

// MaxAddressLen is the maximum number of octets an address value may carry,
// excluding the C-octet string terminator.
const MaxAddressLen = 20

// Address is the TON/NPI/value triple SMPP uses for source and destination
// parties. It is immutable once constructed.
type Address struct {
	TON uint8
	NPI uint8
	No  string
}

// NewAddress validates and constructs an Address.
func NewAddress(ton, npi uint8, value string) (Address, error) {
	if len(value) > MaxAddressLen {
		return Address{}, fmt.Errorf("pdu: address value %q exceeds %d octets", value, MaxAddressLen)
	}
	return Address{TON: ton, NPI: npi, No: value}, nil
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return fmt.Sprintf("%d,%d,%s", a.TON, a.NPI, a.No)
}

func (a Address) marshal(w *bodyWriter) {
	w.WriteByte(a.TON)
	w.WriteByte(a.NPI)
	w.WriteCString(a.No, MaxAddressLen)
}

func (r *bodyReader) readAddress() (Address, error) {
	ton, err := r.ReadByte()
	if err != nil {
		return Address{}, err
	}
	npi, err := r.ReadByte()
	if err != nil {
		return Address{}, err
	}
	no, err := r.ReadCString(MaxAddressLen)
	if err != nil {
		return Address{}, err
	}
	return Address{TON: ton, NPI: npi, No: no}, nil
}

// Type Of Number values.
const (
	TONUnknown          uint8 = 0x00
	TONInternational    uint8 = 0x01
	TONNational         uint8 = 0x02
	TONNetworkSpecific  uint8 = 0x03
	TONSubscriberNumber uint8 = 0x04
	TONAlphanumeric     uint8 = 0x05
	TONAbbreviated      uint8 = 0x06
)

// Numbering Plan Indicator values.
const (
	NPIUnknown    uint8 = 0x00
	NPIISDN       uint8 = 0x01
	NPIData       uint8 = 0x03
	NPITelex      uint8 = 0x04
	NPILandMobile uint8 = 0x06
	NPINational   uint8 = 0x08
	NPIPrivate    uint8 = 0x09
	NPIERMES      uint8 = 0x0A
	NPIInternet   uint8 = 0x0E
	NPIWAPClient  uint8 = 0x12
)
