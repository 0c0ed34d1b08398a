package att

import (
	"fmt"
	"sort"

	"github.com/nxp-appcodehub/ble"
)

// idx returns the index of the first attribute whose handle is not less
// than h, or len(r.attrs) if there is none. Handles may have gaps, so the
// table is searched rather than indexed.
func (r *DB) idx(h uint16) int {
	return sort.Search(len(r.attrs), func(i int) bool { return r.attrs[i].h >= h })
}

// at returns the attribute with handle h and its index.
func (r *DB) at(h uint16) (int, *attr, bool) {
	i := r.idx(h)
	if i == len(r.attrs) || r.attrs[i].h != h {
		return i, nil, false
	}
	return i, r.attrs[i], true
}

// subrange returns attributes in range [start, end]; it may return an empty slice.
func (r *DB) subrange(start, end uint16) []*attr {
	if start > end {
		return nil
	}
	i := r.idx(start)
	j := len(r.attrs)
	if end < MaxHandle {
		j = r.idx(end + 1) // [start, end] includes its upper bound!
	}
	return r.attrs[i:j]
}

// serviceEnd returns the index one past the last attribute of the service
// declared at index i.
func (r *DB) serviceEnd(i int) int {
	j := i + 1
	for j < len(r.attrs) && !r.attrs[j].isService() {
		j++
	}
	return j
}

// charValueIdx returns the index of h if it is a characteristic value,
// which is the attribute right after a declaration that names it.
func (r *DB) charValueIdx(h uint16) (int, bool) {
	i, _, ok := r.at(h)
	if !ok || i == 0 {
		return 0, false
	}
	d := r.attrs[i-1]
	if !d.isChar() || d.charValueHandle() != h {
		return 0, false
	}
	return i, true
}

// descriptors returns the descriptors of the characteristic whose value is
// at index i.
func (r *DB) descriptors(i int) []*attr {
	j := i + 1
	for j < len(r.attrs) && !r.attrs[j].isService() && !r.attrs[j].isChar() {
		j++
	}
	return r.attrs[i+1 : j]
}

// check reports the errors common to every lookup.
func (r *DB) check() error {
	if !serverEnabled {
		return ErrFeatureNotSupported
	}
	if !r.ready {
		return ErrInvalidState
	}
	return nil
}

// FindServiceHandle returns the handle of the first service declaration
// at or after start whose UUID is u. To find further services with the
// same UUID, call it again with start set to the previous result plus one.
func (r *DB) FindServiceHandle(start uint16, u ble.UUID) (uint16, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check(); err != nil {
		return 0, err
	}
	if !u.Valid() {
		return 0, ErrInvalidParameter
	}
	if start < BaseHandle {
		return 0, ErrInvalidHandle
	}
	for _, a := range r.subrange(start, MaxHandle) {
		if a.isService() && a.serviceUUID().Equal(u) {
			return a.h, nil
		}
	}
	return 0, ErrServiceNotFound
}

// FindCharValueHandleInService returns the value handle of the first
// characteristic with UUID u in the service declared at svc.
func (r *DB) FindCharValueHandleInService(svc uint16, u ble.UUID) (uint16, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check(); err != nil {
		return 0, err
	}
	if !u.Valid() {
		return 0, ErrInvalidParameter
	}
	i, a, ok := r.at(svc)
	if !ok || !a.isService() {
		return 0, ErrInvalidHandle
	}
	for _, c := range r.attrs[i+1 : r.serviceEnd(i)] {
		if c.isChar() && c.charUUID().Equal(u) {
			return c.charValueHandle(), nil
		}
	}
	return 0, ErrCharacteristicNotFound
}

// FindCccdHandleForCharValueHandle returns the handle of the CCCD of the
// characteristic whose value is at vh.
func (r *DB) FindCccdHandleForCharValueHandle(vh uint16) (uint16, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check(); err != nil {
		return 0, err
	}
	i, ok := r.charValueIdx(vh)
	if !ok {
		return 0, ErrInvalidHandle
	}
	for _, d := range r.descriptors(i) {
		if d.typ.Equal(ble.ClientCharacteristicConfigUUID) {
			return d.h, nil
		}
	}
	return 0, ErrCccdNotFound
}

// FindDescriptorHandleForCharValueHandle returns the handle of the first
// descriptor with UUID u of the characteristic whose value is at vh.
func (r *DB) FindDescriptorHandleForCharValueHandle(vh uint16, u ble.UUID) (uint16, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check(); err != nil {
		return 0, err
	}
	if !u.Valid() {
		return 0, ErrInvalidParameter
	}
	i, ok := r.charValueIdx(vh)
	if !ok {
		return 0, ErrInvalidHandle
	}
	for _, d := range r.descriptors(i) {
		if d.typ.Equal(u) {
			return d.h, nil
		}
	}
	return 0, ErrDescriptorNotFound
}

func hex16(h uint16) string { return fmt.Sprintf("0x%04X", h) }
