package ble

// Attribute types and well-known UUIDs [Vol 3, Part G, 3].
var (
	GAPUUID  = UUID16(0x1800)
	GATTUUID = UUID16(0x1801)

	PrimaryServiceUUID   = UUID16(0x2800)
	SecondaryServiceUUID = UUID16(0x2801)
	IncludeUUID          = UUID16(0x2802)
	CharacteristicUUID   = UUID16(0x2803)

	UserDescriptionUUID            = UUID16(0x2901)
	ClientCharacteristicConfigUUID = UUID16(0x2902)
	ServerCharacteristicConfigUUID = UUID16(0x2903)
	PresentationFormatUUID         = UUID16(0x2904)

	DeviceNameUUID     = UUID16(0x2A00)
	AppearanceUUID     = UUID16(0x2A01)
	PeferredParamsUUID = UUID16(0x2A04)
	ServiceChangedUUID = UUID16(0x2A05)
)

// MaxAttrLen is the maximum length of an attribute value [Vol 3, Part F, 3.2.9].
const MaxAttrLen = 512

// CCCD values.
const (
	CCCNotify   = 0x0001
	CCCIndicate = 0x0002
)

// Permission is the server-side access requirement of an attribute.
// It is not transmitted over the air.
type Permission uint8

// Attribute permission flags.
const (
	PermRead         Permission = 0x01
	PermWrite        Permission = 0x02
	PermReadEncrypt  Permission = 0x04
	PermWriteEncrypt Permission = 0x08
	PermReadAuthn    Permission = 0x10
	PermWriteAuthn   Permission = 0x20
)

// Readable reports whether the attribute may be read by a peer.
func (p Permission) Readable() bool { return p&(PermRead|PermReadEncrypt|PermReadAuthn) != 0 }

// Writable reports whether the attribute may be written by a peer.
func (p Permission) Writable() bool { return p&(PermWrite|PermWriteEncrypt|PermWriteAuthn) != 0 }

func (p Permission) String() string {
	b := []byte("--")
	if p.Readable() {
		b[0] = 'r'
	}
	if p.Writable() {
		b[1] = 'w'
	}
	return string(b)
}
