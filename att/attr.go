package att

import (
	"encoding/binary"

	"github.com/nxp-appcodehub/ble"
)

// attr is a BLE attribute.
type attr struct {
	h    uint16
	endh uint16
	typ  ble.UUID
	perm ble.Permission

	v        []byte // len(v) is the maximum length
	n        int    // current length
	variable bool
}

func (a *attr) value() []byte { return a.v[:a.n] }

func (a *attr) isService() bool {
	return a.typ.Equal(ble.PrimaryServiceUUID) || a.typ.Equal(ble.SecondaryServiceUUID)
}

// isChar reports whether a is a well-formed characteristic declaration:
// properties, value handle and a 16 or 128-bit UUID.
func (a *attr) isChar() bool {
	return a.typ.Equal(ble.CharacteristicUUID) && a.n > 3 && ble.UUID(a.v[3:a.n]).Valid()
}

// serviceUUID returns the UUID carried by a service declaration.
func (a *attr) serviceUUID() ble.UUID { return ble.UUID(a.value()) }

// charValueHandle returns the value handle carried by a characteristic declaration.
func (a *attr) charValueHandle() uint16 { return binary.LittleEndian.Uint16(a.v[1:3]) }

// charUUID returns the characteristic UUID carried by a characteristic declaration.
func (a *attr) charUUID() ble.UUID { return ble.UUID(a.value()[3:]) }

// attrDef is the layout of an attribute, computed when the database is
// created. Init allocates an attr for each one.
type attrDef struct {
	h    uint16
	endh uint16
	typ  ble.UUID
	perm ble.Permission

	init     []byte
	max      int
	variable bool
}

func (d *attrDef) alloc() *attr {
	a := &attr{
		h:        d.h,
		endh:     d.endh,
		typ:      d.typ,
		perm:     d.perm,
		v:        make([]byte, d.max),
		variable: d.variable,
	}
	copy(a.v, d.init)
	a.n = d.max
	if d.variable {
		a.n = len(d.init)
	}
	return a
}

// Attribute is a snapshot of an attribute's layout, reported by Walk.
type Attribute struct {
	Handle     uint16
	EndHandle  uint16
	Type       ble.UUID
	Permission ble.Permission
	Len        int
	MaxLen     int
	Variable   bool
}
