//go:build !nogattserver
// +build !nogattserver

package att

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nxp-appcodehub/ble"
)

func newTestDB(t *testing.T, opts ...Option) *DB {
	r, err := NewDB(testServices(), opts...)
	require.NoError(t, err)
	require.NoError(t, r.Init())
	return r
}

func read(t *testing.T, r *DB, h uint16) []byte {
	b := make([]byte, ble.MaxAttrLen)
	n, err := r.ReadAttribute(h, b)
	require.NoError(t, err)
	return b[:n]
}

func TestInitDeinit(t *testing.T) {
	r, err := NewDB(testServices())
	require.NoError(t, err)
	assert.False(t, r.Initialized())
	assert.Equal(t, 0, r.Len())

	assert.Equal(t, ErrInvalidState, r.Deinit())
	require.NoError(t, r.Init())
	assert.True(t, r.Initialized())
	assert.Equal(t, 19, r.Len())

	require.NoError(t, r.WriteAttribute(0x0003, []byte("Renamed")))
	assert.Equal(t, ErrAlreadyInitialized, r.Init())
	assert.Equal(t, 19, r.Len())
	assert.Equal(t, []byte("Renamed"), read(t, r, 0x0003), "second Init must leave the table intact")

	require.NoError(t, r.Deinit())
	assert.False(t, r.Initialized())
	assert.Equal(t, ErrInvalidState, r.Deinit())

	require.NoError(t, r.Init())
	assert.Equal(t, []byte("Gopher"), read(t, r, 0x0003), "Init after Deinit restores the defined values")
}

func TestUninitialized(t *testing.T) {
	r, err := NewDB(testServices())
	require.NoError(t, err)

	check := func() {
		b := make([]byte, 4)
		_, err := r.ReadAttribute(0x0003, b)
		assert.Equal(t, ErrInvalidState, err)
		assert.Equal(t, ErrInvalidState, r.WriteAttribute(0x0003, []byte("x")))
		_, err = r.FindServiceHandle(BaseHandle, batterySvcUUID)
		assert.Equal(t, ErrInvalidState, err)
		_, err = r.FindCharValueHandleInService(0x0010, batteryLevelUUID)
		assert.Equal(t, ErrInvalidState, err)
		_, err = r.FindCccdHandleForCharValueHandle(0x0012)
		assert.Equal(t, ErrInvalidState, err)
		_, err = r.FindDescriptorHandleForCharValueHandle(0x0012, ble.UserDescriptionUUID)
		assert.Equal(t, ErrInvalidState, err)
		assert.Equal(t, ErrInvalidState, r.Walk(func(Attribute) bool { return true }))
		assert.Equal(t, ErrInvalidState, r.Dump())
	}

	check()
	require.NoError(t, r.Init())
	require.NoError(t, r.Deinit())
	check()
}

func TestInitBudget(t *testing.T) {
	r, err := NewDB(testServices(), OptMaxAttributes(18))
	require.NoError(t, err)
	err = r.Init()
	assert.Equal(t, ErrOutOfMemory, errors.Cause(err))
	assert.False(t, r.Initialized())

	r, err = NewDB(testServices(), OptMaxAttributes(19), OptMaxValueBytes(16))
	require.NoError(t, err)
	assert.Equal(t, ErrOutOfMemory, errors.Cause(r.Init()))
	assert.False(t, r.Initialized())

	r, err = NewDB(testServices(), OptMaxAttributes(19), OptMaxValueBytes(1024), OptDump(true))
	require.NoError(t, err)
	assert.NoError(t, r.Init())

	_, err = NewDB(testServices(), OptMaxAttributes(-1))
	assert.Equal(t, ErrInvalidParameter, errors.Cause(err))
	_, err = NewDB(testServices(), OptMaxValueBytes(-1))
	assert.Equal(t, ErrInvalidParameter, errors.Cause(err))
}

func TestWalkOrder(t *testing.T) {
	r := newTestDB(t)

	var hh []uint16
	require.NoError(t, r.Walk(func(a Attribute) bool {
		hh = append(hh, a.Handle)
		return true
	}))
	assert.Equal(t, []uint16{
		0x0001, 0x0002, 0x0003, 0x0004, 0x0005,
		0x0010, 0x0011, 0x0012, 0x0013, 0x0014, 0x0015, 0x0016,
		0x0030, 0x0031, 0x0032, 0x0033,
		0x0034, 0x0035, 0x0036,
	}, hh)

	var first []Attribute
	require.NoError(t, r.Walk(func(a Attribute) bool {
		first = append(first, a)
		return len(first) < 3
	}))
	require.Len(t, first, 3)
	assert.True(t, first[0].Type.Equal(ble.PrimaryServiceUUID))
	assert.Equal(t, uint16(0x0005), first[0].EndHandle)
	assert.True(t, first[1].Type.Equal(ble.CharacteristicUUID))
	assert.True(t, first[2].Type.Equal(ble.DeviceNameUUID))
	assert.True(t, first[2].Variable)
	assert.Equal(t, 6, first[2].Len)
	assert.Equal(t, 20, first[2].MaxLen)
	assert.True(t, first[2].Permission.Writable())
}

func TestReadAttribute(t *testing.T) {
	r := newTestDB(t)

	assert.Equal(t, []byte("Gopher"), read(t, r, 0x0003))
	assert.Equal(t, []byte{0x00, 0x80}, read(t, r, 0x0005))
	assert.Equal(t, []byte{0x0F, 0x18}, read(t, r, 0x0010), "service declaration holds the service UUID")
	assert.Equal(t, []byte{byte(ble.CharRead | ble.CharNotify), 0x12, 0x00, 0x19, 0x2A}, read(t, r, 0x0011))
	assert.Equal(t, []byte{}, read(t, r, 0x0016), "empty variable-length value")

	// Partial read returns the leading bytes.
	b := make([]byte, 3)
	n, err := r.ReadAttribute(0x0003, b)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte("Gop"), b)

	// A longer buffer reports the actual length and isn't padded.
	b = []byte{0xAA, 0xAA, 0xAA, 0xAA}
	n, err = r.ReadAttribute(0x0005, b)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x00, 0x80, 0xAA, 0xAA}, b)

	_, err = r.ReadAttribute(0x0003, nil)
	assert.Equal(t, ErrInvalidParameter, err)
	_, err = r.ReadAttribute(0x0003, []byte{})
	assert.Equal(t, ErrInvalidParameter, err)

	for _, h := range []uint16{0x0000, 0x0006, 0x000F, 0x0017, 0x0037, 0xFFFF} {
		_, err = r.ReadAttribute(h, make([]byte, 8))
		assert.Equal(t, ble.ErrInvalidHandle, err, "handle 0x%04X", h)
	}
}

func TestWriteAttribute(t *testing.T) {
	r := newTestDB(t)

	// Round trip.
	require.NoError(t, r.WriteAttribute(0x0003, []byte("Gopher 2")))
	b := make([]byte, 8)
	n, err := r.ReadAttribute(0x0003, b)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, []byte("Gopher 2"), b)

	// Variable-length values may shrink, down to empty.
	require.NoError(t, r.WriteAttribute(0x0003, []byte("Go")))
	assert.Equal(t, []byte("Go"), read(t, r, 0x0003))
	require.NoError(t, r.WriteAttribute(0x0016, []byte{1, 2, 3, 4, 5, 6, 7, 8}))
	require.NoError(t, r.WriteAttribute(0x0016, nil))
	assert.Equal(t, []byte{}, read(t, r, 0x0016))

	// Too long for a variable-length value.
	assert.Equal(t, ErrInvalidValueLength, r.WriteAttribute(0x0003, make([]byte, 21)))
	assert.Equal(t, []byte("Go"), read(t, r, 0x0003), "failed write must leave the value unchanged")

	// Fixed-length values only accept their exact length.
	assert.Equal(t, ErrInvalidValueLength, r.WriteAttribute(0x0005, []byte{0x01}))
	assert.Equal(t, ErrInvalidValueLength, r.WriteAttribute(0x0005, []byte{0x01, 0x02, 0x03}))
	assert.Equal(t, ErrInvalidValueLength, r.WriteAttribute(0x0005, nil))
	assert.Equal(t, []byte{0x00, 0x80}, read(t, r, 0x0005))
	require.NoError(t, r.WriteAttribute(0x0005, []byte{0xC1, 0x03}))
	assert.Equal(t, []byte{0xC1, 0x03}, read(t, r, 0x0005))

	// Descriptors are written the same way.
	require.NoError(t, r.WriteAttribute(0x0013, []byte{ble.CCCNotify, 0x00}))
	assert.Equal(t, []byte{0x01, 0x00}, read(t, r, 0x0013))

	// Declarations hold the hierarchy and can't be written.
	assert.Equal(t, ble.ErrWriteNotPerm, r.WriteAttribute(0x0010, []byte{0x0A, 0x18}))
	assert.Equal(t, ble.ErrWriteNotPerm, r.WriteAttribute(0x0011, []byte{0x02, 0x13, 0x00, 0x19, 0x2A}))

	assert.Equal(t, ble.ErrInvalidHandle, r.WriteAttribute(0x0006, []byte{0x00}))
	assert.Equal(t, ble.ErrInvalidHandle, r.WriteAttribute(0x0000, []byte{0x00}))
}

func TestConcurrentAccess(t *testing.T) {
	defer goleak.VerifyNone(t)
	r := newTestDB(t)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				v := byte(i*500 + j)
				assert.NoError(t, r.WriteAttribute(0x0005, []byte{v, v}))
			}
		}(i)
		go func() {
			defer wg.Done()
			b := make([]byte, 2)
			for j := 0; j < 500; j++ {
				n, err := r.ReadAttribute(0x0005, b)
				assert.NoError(t, err)
				assert.Equal(t, 2, n)
				assert.Equal(t, b[0], b[1], "partial write observed")
			}
		}()
	}
	wg.Wait()
}

func TestWalkSnapshotIsolated(t *testing.T) {
	r := newTestDB(t)

	require.NoError(t, r.Walk(func(a Attribute) bool {
		a.Type[0] ^= 0xFF
		return true
	}))

	h, err := r.FindCccdHandleForCharValueHandle(0x0012)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0013), h)
	h, err = r.FindServiceHandle(BaseHandle, batterySvcUUID)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0010), h)
	vh, err := r.FindCharValueHandleInService(0x0010, batteryLevelUUID)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0012), vh)

	assert.Equal(t, "2800", ble.PrimaryServiceUUID.String())
	assert.Equal(t, "2803", ble.CharacteristicUUID.String())

	require.NoError(t, r.Walk(func(a Attribute) bool {
		if a.Handle == 0x0013 {
			assert.True(t, a.Type.Equal(ble.ClientCharacteristicConfigUUID))
		}
		return true
	}))
}
