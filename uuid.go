package ble

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// A UUID is a BLE UUID, stored in little-endian byte order.
// Its length is its width class: 2 bytes for 16-bit UUIDs, 16 bytes for 128-bit UUIDs.
type UUID []byte

// UUIDType is the width class of a UUID.
type UUIDType int

// UUID width classes.
const (
	UUIDTypeInvalid UUIDType = 0
	UUIDType16      UUIDType = 2
	UUIDType128     UUIDType = 16
)

func (t UUIDType) String() string {
	switch t {
	case UUIDType16:
		return "uuid16"
	case UUIDType128:
		return "uuid128"
	}
	return "invalid"
}

// UUID16 converts a uint16 (such as 0x1800) to a UUID.
func UUID16(i uint16) UUID {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, i)
	return UUID(b)
}

// Parse parses a standard-format UUID string, such
// as "1800" or "34DA3AD1-7110-41A1-B1EF-4430F509CDE7".
func Parse(s string) (UUID, error) {
	s = strings.Replace(s, "-", "", -1)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	if err := lenErr(len(b)); err != nil {
		return nil, err
	}
	return UUID(Reverse(b)), nil
}

// MustParse parses a standard-format UUID string,
// like Parse, but panics in case of error.
func MustParse(s string) UUID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// lenErr returns an error if n is an invalid UUID length.
func lenErr(n int) error {
	switch n {
	case 2, 16:
		return nil
	}
	return fmt.Errorf("UUIDs must have length 2 or 16, got %d", n)
}

// Len returns the length of the UUID, in bytes.
func (u UUID) Len() int {
	return len(u)
}

// Type returns the width class of u, or UUIDTypeInvalid for nil or malformed UUIDs.
func (u UUID) Type() UUIDType {
	switch len(u) {
	case 2:
		return UUIDType16
	case 16:
		return UUIDType128
	}
	return UUIDTypeInvalid
}

// Valid reports whether u belongs to one of the supported width classes.
func (u UUID) Valid() bool {
	return u.Type() != UUIDTypeInvalid
}

// String hex-encodes a UUID.
func (u UUID) String() string {
	return fmt.Sprintf("%x", Reverse(u))
}

// Equal returns a boolean reporting whether v represent the same UUID as u.
// UUIDs of different width classes are never equal; a 16-bit UUID is not
// expanded to its 128-bit base form.
func (u UUID) Equal(v UUID) bool {
	return len(u) == len(v) && bytes.Equal(u, v)
}

// Contains returns a boolean reporting whether u is in the slice s.
// A nil s matches every UUID, so an unset filter lets everything through.
func Contains(s []UUID, u UUID) bool {
	if s == nil {
		return true
	}

	for _, a := range s {
		if a.Equal(u) {
			return true
		}
	}

	return false
}

// Reverse returns a reversed copy of u.
func Reverse(u []byte) []byte {
	l := len(u)
	b := make([]byte, l)
	for i := 0; i < l; i++ {
		b[i] = u[l-i-1]
	}
	return b
}

// Name returns name of know services, characteristics, or descriptors.
func Name(u UUID) string {
	return knownUUID[u.String()]
}

var knownUUID = map[string]string{
	"1800": "Generic Access",
	"1801": "Generic Attribute",
	"180a": "Device Information",
	"180f": "Battery Service",

	"2800": "Primary Service",
	"2801": "Secondary Service",
	"2802": "Include",
	"2803": "Characteristic",

	"2900": "Characteristic Extended Properties",
	"2901": "Characteristic User Description",
	"2902": "Client Characteristic Configuration",
	"2903": "Server Characteristic Configuration",
	"2904": "Characteristic Presentation Format",

	"2a00": "Device Name",
	"2a01": "Appearance",
	"2a04": "Peripheral Preferred Connection Parameters",
	"2a05": "Service Changed",
	"2a19": "Battery Level",
	"2a29": "Manufacturer Name String",
}
