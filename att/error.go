package att

import "github.com/pkg/errors"

// Database status codes. Lookups and writes that address a handle missing
// from the table on the read/write path report ble.ErrInvalidHandle instead,
// which is the ATT status the protocol layer forwards to peers.
var (
	ErrOutOfMemory            = errors.New("gatt db: out of memory")
	ErrAlreadyInitialized     = errors.New("gatt db: already initialized")
	ErrInvalidState           = errors.New("gatt db: not initialized")
	ErrInvalidParameter       = errors.New("gatt db: invalid parameter")
	ErrInvalidHandle          = errors.New("gatt db: invalid handle")
	ErrInvalidValueLength     = errors.New("gatt db: invalid value length")
	ErrFeatureNotSupported    = errors.New("gatt db: gatt server not supported")
	ErrServiceNotFound        = errors.New("gatt db: service not found")
	ErrCharacteristicNotFound = errors.New("gatt db: characteristic not found")
	ErrDescriptorNotFound     = errors.New("gatt db: descriptor not found")
	ErrCccdNotFound           = errors.New("gatt db: cccd not found")
)
