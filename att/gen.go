package att

import (
	"github.com/pkg/errors"

	"github.com/nxp-appcodehub/ble"
)

// genAttr lays out the attributes of ss starting at handle base.
// Once the whole layout is valid, it records the assigned handles back into
// the services, characteristics and descriptors, and adds a CCCD to
// characteristics that notify or indicate but don't define one. A failed
// layout leaves ss untouched.
func genAttr(ss []*ble.Service, base uint16) ([]attrDef, error) {
	h := int(base)
	var defs []attrDef
	var commit []func()
	for i, s := range ss {
		if s == nil {
			return nil, errors.Wrapf(ErrInvalidParameter, "service %d is nil", i)
		}
		var svcDefs []attrDef
		var err error
		if h, svcDefs, err = genSvcAttr(s, h, &commit); err != nil {
			return nil, errors.Wrapf(err, "service %d (%s)", i, s.UUID)
		}
		defs = append(defs, svcDefs...)
	}
	for _, fn := range commit {
		fn()
	}
	return defs, nil
}

// reserve checks that n handles starting at h fit in the handle space.
func reserve(h, n int) error {
	if h+n-1 > MaxHandle {
		return errors.Wrapf(ErrOutOfMemory, "handle space exhausted at 0x%04X", h)
	}
	return nil
}

func genSvcAttr(s *ble.Service, h int, commit *[]func()) (int, []attrDef, error) {
	if !s.UUID.Valid() {
		return h, nil, errors.Wrapf(ErrInvalidParameter, "uuid of length %d", s.UUID.Len())
	}
	if s.Base != 0 {
		if int(s.Base) < h {
			return h, nil, errors.Wrapf(ErrInvalidParameter, "base handle 0x%04X overlaps 0x%04X", s.Base, h)
		}
		h = int(s.Base)
	}
	if err := reserve(h, 1); err != nil {
		return h, nil, err
	}

	typ := ble.PrimaryServiceUUID
	if s.Secondary {
		typ = ble.SecondaryServiceUUID
	}
	svcDefs := []attrDef{{
		h:    uint16(h),
		typ:  clone(typ),
		perm: ble.PermRead,
		init: clone(s.UUID),
		max:  s.UUID.Len(),
	}}
	h++

	for i, c := range s.Characteristics {
		var charDefs []attrDef
		var err error
		if h, charDefs, err = genCharAttr(c, h, commit); err != nil {
			return h, nil, errors.Wrapf(err, "characteristic %d", i)
		}
		svcDefs = append(svcDefs, charDefs...)
	}

	svcDefs[0].endh = uint16(h - 1)
	sh, eh := svcDefs[0].h, svcDefs[0].endh
	*commit = append(*commit, func() { s.Handle, s.EndHandle = sh, eh })
	return h, svcDefs, nil
}

func genCharAttr(c *ble.Characteristic, h int, commit *[]func()) (int, []attrDef, error) {
	if c == nil {
		return h, nil, errors.Wrap(ErrInvalidParameter, "nil characteristic")
	}
	if err := checkType(c.UUID); err != nil {
		return h, nil, err
	}
	max, err := valueLen(c.Value, c.MaxLen)
	if err != nil {
		return h, nil, err
	}
	descs := c.Descriptors
	if c.Property&(ble.CharNotify|ble.CharIndicate) != 0 && countCCCD(descs) == 0 {
		cccd := newCCCD()
		descs = append(descs[:len(descs):len(descs)], cccd)
		*commit = append(*commit, func() { c.AddDescriptor(cccd) })
	}
	if countCCCD(descs) > 1 {
		return h, nil, errors.Wrap(ErrInvalidParameter, "more than one cccd")
	}
	if err := reserve(h, 2+len(descs)); err != nil {
		return h, nil, err
	}

	vh := uint16(h + 1)
	ca := attrDef{
		h:    uint16(h),
		typ:  clone(ble.CharacteristicUUID),
		perm: ble.PermRead,
		init: append([]byte{byte(c.Property), byte(vh), byte(vh >> 8)}, c.UUID...),
	}
	ca.max = len(ca.init)
	va := attrDef{
		h:        vh,
		endh:     vh,
		typ:      clone(c.UUID),
		perm:     c.Permission,
		init:     clone(c.Value),
		max:      max,
		variable: c.Variable,
	}
	h += 2

	charDefs := []attrDef{ca, va}
	for i, d := range descs {
		dd, err := genDescAttr(d, h)
		if err != nil {
			return h, nil, errors.Wrapf(err, "descriptor %d", i)
		}
		d, dh := d, dd.h
		*commit = append(*commit, func() { d.Handle = dh })
		charDefs = append(charDefs, dd)
		h++
	}

	charDefs[0].endh = uint16(h - 1)
	eh := charDefs[0].endh
	*commit = append(*commit, func() { c.Handle, c.ValueHandle, c.EndHandle = ca.h, vh, eh })
	return h, charDefs, nil
}

func genDescAttr(d *ble.Descriptor, h int) (attrDef, error) {
	if d == nil {
		return attrDef{}, errors.Wrap(ErrInvalidParameter, "nil descriptor")
	}
	if err := checkType(d.UUID); err != nil {
		return attrDef{}, err
	}
	max, err := valueLen(d.Value, d.MaxLen)
	if err != nil {
		return attrDef{}, err
	}
	return attrDef{
		h:        uint16(h),
		endh:     uint16(h),
		typ:      clone(d.UUID),
		perm:     d.Permission,
		init:     clone(d.Value),
		max:      max,
		variable: d.Variable,
	}, nil
}

// valueLen returns the maximum length of a value attribute. A zero max
// means the initial value sets it.
func valueLen(v []byte, max int) (int, error) {
	if max == 0 {
		max = len(v)
	}
	if max > ble.MaxAttrLen {
		return 0, errors.Wrapf(ErrInvalidParameter, "maximum length %d exceeds %d", max, ble.MaxAttrLen)
	}
	if len(v) > max {
		return 0, errors.Wrapf(ErrInvalidParameter, "value length %d exceeds maximum %d", len(v), max)
	}
	return max, nil
}

// checkType rejects UUIDs that can't type a value or descriptor attribute.
// Grouping types would split the service or characteristic they belong to.
func checkType(u ble.UUID) error {
	if !u.Valid() {
		return errors.Wrapf(ErrInvalidParameter, "uuid of length %d", u.Len())
	}
	for _, g := range []ble.UUID{ble.PrimaryServiceUUID, ble.SecondaryServiceUUID, ble.IncludeUUID, ble.CharacteristicUUID} {
		if u.Equal(g) {
			return errors.Wrapf(ErrInvalidParameter, "%s can't type a value", ble.Name(u))
		}
	}
	return nil
}

func countCCCD(dd []*ble.Descriptor) int {
	n := 0
	for _, d := range dd {
		if d != nil && d.UUID.Equal(ble.ClientCharacteristicConfigUUID) {
			n++
		}
	}
	return n
}

func newCCCD() *ble.Descriptor {
	return ble.NewDescriptor(ble.ClientCharacteristicConfigUUID).
		SetValue([]byte{0x00, 0x00}).
		SetWritable()
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
