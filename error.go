package ble

// AttError is an ATT protocol status [Vol 3, Part F, 3.4.1.1].
// The database reports the ones that describe its own failures, such as
// ErrInvalidHandle, so the protocol layer can forward them unchanged.
type AttError byte

// ATT error codes.
const (
	ErrInvalidHandle     AttError = 0x01 // the attribute handle given was not valid on this server.
	ErrReadNotPerm       AttError = 0x02 // the attribute cannot be read.
	ErrWriteNotPerm      AttError = 0x03 // the attribute cannot be written.
	ErrInvalidPDU        AttError = 0x04 // the attribute PDU was invalid.
	ErrAuthentication    AttError = 0x05 // authentication is required before reading or writing.
	ErrReqNotSupp        AttError = 0x06 // the server does not support the request received.
	ErrInvalidOffset     AttError = 0x07 // the offset was past the end of the attribute.
	ErrAuthorization     AttError = 0x08 // authorization is required before reading or writing.
	ErrPrepQueueFull     AttError = 0x09 // too many prepare writes have been queued.
	ErrAttrNotFound      AttError = 0x0a // no attribute found within the given handle range.
	ErrAttrNotLong       AttError = 0x0b // the attribute cannot be read or written using Read Blob.
	ErrInsuffEncrKeySize AttError = 0x0c // the encryption key size is insufficient.
	ErrInvalAttrValueLen AttError = 0x0d // the attribute value length is invalid for the operation.
	ErrUnlikely          AttError = 0x0e // an unlikely error was encountered.
	ErrInsuffEnc         AttError = 0x0f // encryption is required before reading or writing.
	ErrUnsuppGrpType     AttError = 0x10 // the type is not a supported grouping attribute.
	ErrInsuffResources   AttError = 0x11 // insufficient resources to complete the request.
)

func (a AttError) Error() string {
	switch i := int(a); {
	case i > 0 && i <= 0x11:
		return "att: " + errName[a]
	case i >= 0xE0:
		return "att: profile or service error"
	default:
		return "att: reserved error code"
	}
}

var errName = map[AttError]string{
	ErrInvalidHandle:     "invalid handle",
	ErrReadNotPerm:       "read not permitted",
	ErrWriteNotPerm:      "write not permitted",
	ErrInvalidPDU:        "invalid PDU",
	ErrAuthentication:    "insufficient authentication",
	ErrReqNotSupp:        "request not supported",
	ErrInvalidOffset:     "invalid offset",
	ErrAuthorization:     "insufficient authorization",
	ErrPrepQueueFull:     "prepare queue full",
	ErrAttrNotFound:      "attribute not found",
	ErrAttrNotLong:       "attribute not long",
	ErrInsuffEncrKeySize: "insufficient encryption key size",
	ErrInvalAttrValueLen: "invalid attribute value length",
	ErrUnlikely:          "unlikely error",
	ErrInsuffEnc:         "insufficient encryption",
	ErrUnsuppGrpType:     "unsupported group type",
	ErrInsuffResources:   "insufficient resources",
}
