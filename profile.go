package ble

// NewService creates and initialize a new Service using u as it's UUID.
func NewService(u UUID) *Service {
	return &Service{UUID: u}
}

// NewDescriptor creates and returns a Descriptor.
func NewDescriptor(u UUID) *Descriptor {
	return &Descriptor{UUID: u}
}

// NewCharacteristic creates and returns a Characteristic.
func NewCharacteristic(u UUID) *Characteristic {
	return &Characteristic{UUID: u}
}

// Property ...
type Property int

// Characteristic property flags [Vol 3, Part G, 3.3.1.1].
const (
	CharBroadcast   Property = 0x01 // may be brocasted
	CharRead        Property = 0x02 // may be read
	CharWriteNR     Property = 0x04 // may be written to, with no reply
	CharWrite       Property = 0x08 // may be written to, with a reply
	CharNotify      Property = 0x10 // supports notifications
	CharIndicate    Property = 0x20 // supports Indications
	CharSignedWrite Property = 0x40 // supports signed write
	CharExtended    Property = 0x80 // supports extended properties
)

// A Service is a BLE service.
// When Base is non-zero the service declaration is placed at that handle,
// leaving a gap after the previous service. Handle and EndHandle are filled
// in when the attribute database is built.
type Service struct {
	UUID            UUID
	Secondary       bool
	Characteristics []*Characteristic
	Base            uint16

	Handle    uint16
	EndHandle uint16
}

// AddCharacteristic adds a characteristic to a service.
func (s *Service) AddCharacteristic(c *Characteristic) *Characteristic {
	s.Characteristics = append(s.Characteristics, c)
	return c
}

// NewCharacteristic adds a characteristic to a service.
func (s *Service) NewCharacteristic(u UUID) *Characteristic {
	return s.AddCharacteristic(&Characteristic{UUID: u})
}

// A Characteristic is a BLE characteristic.
//
// Value holds the initial contents of the value attribute. When Variable is
// set, MaxLen bounds later writes and Value may be shorter; otherwise the
// attribute length is fixed to len(Value).
type Characteristic struct {
	UUID        UUID
	Property    Property
	Permission  Permission
	Descriptors []*Descriptor
	CCCD        *Descriptor

	Value    []byte
	MaxLen   int
	Variable bool

	Handle      uint16
	ValueHandle uint16
	EndHandle   uint16
}

// AddDescriptor adds a descriptor to a characteristic.
func (c *Characteristic) AddDescriptor(d *Descriptor) *Descriptor {
	if d.UUID.Equal(ClientCharacteristicConfigUUID) {
		c.CCCD = d
	}
	c.Descriptors = append(c.Descriptors, d)
	return d
}

// NewDescriptor adds a descriptor to a characteristic.
func (c *Characteristic) NewDescriptor(u UUID) *Descriptor {
	return c.AddDescriptor(&Descriptor{UUID: u})
}

// SetValue makes the characteristic readable with a fixed-length value.
func (c *Characteristic) SetValue(b []byte) *Characteristic {
	c.Property |= CharRead
	c.Permission |= PermRead
	c.Value = make([]byte, len(b))
	copy(c.Value, b)
	c.MaxLen = len(b)
	c.Variable = false
	return c
}

// SetVariableValue makes the characteristic readable with a value whose
// length may change up to max bytes.
func (c *Characteristic) SetVariableValue(b []byte, max int) *Characteristic {
	c.SetValue(b)
	c.MaxLen = max
	c.Variable = true
	return c
}

// SetWritable makes the characteristic support write and write-no-response requests.
func (c *Characteristic) SetWritable() *Characteristic {
	c.Property |= CharWrite | CharWriteNR
	c.Permission |= PermWrite
	return c
}

// SetNotify makes the characteristic support notifications.
// A CCCD is generated for it when the database is built.
func (c *Characteristic) SetNotify() *Characteristic {
	c.Property |= CharNotify
	return c
}

// SetIndicate makes the characteristic support indications.
// A CCCD is generated for it when the database is built.
func (c *Characteristic) SetIndicate() *Characteristic {
	c.Property |= CharIndicate
	return c
}

// Descriptor is a BLE descriptor
type Descriptor struct {
	UUID       UUID
	Permission Permission

	Value    []byte
	MaxLen   int
	Variable bool

	Handle uint16
}

// SetValue makes the descriptor readable with a fixed-length value.
func (d *Descriptor) SetValue(b []byte) *Descriptor {
	d.Permission |= PermRead
	d.Value = make([]byte, len(b))
	copy(d.Value, b)
	d.MaxLen = len(b)
	d.Variable = false
	return d
}

// SetVariableValue makes the descriptor readable with a value whose
// length may change up to max bytes.
func (d *Descriptor) SetVariableValue(b []byte, max int) *Descriptor {
	d.SetValue(b)
	d.MaxLen = max
	d.Variable = true
	return d
}

// SetWritable makes the descriptor writable.
func (d *Descriptor) SetWritable() *Descriptor {
	d.Permission |= PermWrite
	return d
}
