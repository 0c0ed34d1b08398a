package att

import (
	"sync"

	"github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"

	"github.com/nxp-appcodehub/ble"
)

var logger = log.New("att")

// A DB is an ordered table of attributes.
// It is created Uninitialized; Init allocates the table and Deinit releases it.
type DB struct {
	mu sync.Mutex

	defs  []attrDef
	attrs []*attr // sorted by handle; nil while uninitialized
	ready bool

	maxAttrs int
	maxBytes int
	dump     bool
}

// NewDB lays out the attributes of ss and returns an uninitialized DB.
// Handles are assigned from BaseHandle in definition order and written back
// into ss. It fails if the definition is malformed or doesn't fit in the
// handle space, in which case ss is left as it was.
func NewDB(ss []*ble.Service, opts ...Option) (*DB, error) {
	r := &DB{}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	defs, err := genAttr(ss, BaseHandle)
	if err != nil {
		return nil, errors.Wrap(err, "can't lay out attributes")
	}
	r.defs = defs
	return r, nil
}

// Init allocates and populates the attribute table.
func (r *DB) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ready {
		return ErrAlreadyInitialized
	}
	if r.maxAttrs > 0 && len(r.defs) > r.maxAttrs {
		return errors.Wrapf(ErrOutOfMemory, "%d attributes, limit %d", len(r.defs), r.maxAttrs)
	}
	size := 0
	for i := range r.defs {
		size += r.defs[i].max
	}
	if r.maxBytes > 0 && size > r.maxBytes {
		return errors.Wrapf(ErrOutOfMemory, "%d value bytes, limit %d", size, r.maxBytes)
	}

	attrs := make([]*attr, len(r.defs))
	for i := range r.defs {
		attrs[i] = r.defs[i].alloc()
	}
	r.attrs = attrs
	r.ready = true
	logger.Info("initialized", "attributes", len(attrs), "bytes", size)
	if r.dump {
		r.dumpAttributes()
	}
	return nil
}

// Deinit releases the attribute table.
func (r *DB) Deinit() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return ErrInvalidState
	}
	r.attrs = nil
	r.ready = false
	logger.Info("deinitialized")
	return nil
}

// Initialized reports whether the table is allocated.
func (r *DB) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

// Len returns the number of attributes in the table, or 0 if uninitialized.
func (r *DB) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.attrs)
}

// ReadAttribute copies the value of attribute h into b, and returns the
// number of bytes copied. A b shorter than the value receives its leading
// bytes; the remainder of a longer b is left untouched.
func (r *DB) ReadAttribute(h uint16, b []byte) (int, error) {
	if !serverEnabled {
		return 0, ErrFeatureNotSupported
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return 0, ErrInvalidState
	}
	if len(b) == 0 {
		return 0, ErrInvalidParameter
	}
	_, a, ok := r.at(h)
	if !ok {
		return 0, ble.ErrInvalidHandle
	}
	return copy(b, a.value()), nil
}

// WriteAttribute replaces the value of attribute h with v.
// Fixed-length attributes only accept values of their exact length, and
// variable-length ones values up to their maximum length. Service and
// characteristic declarations can't be written.
func (r *DB) WriteAttribute(h uint16, v []byte) error {
	if !serverEnabled {
		return ErrFeatureNotSupported
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return ErrInvalidState
	}
	_, a, ok := r.at(h)
	if !ok {
		return ble.ErrInvalidHandle
	}
	if a.isService() || a.typ.Equal(ble.CharacteristicUUID) {
		return ble.ErrWriteNotPerm
	}
	if (a.variable && len(v) > len(a.v)) || (!a.variable && len(v) != len(a.v)) {
		logger.Debug("write rejected", "handle", hex16(h), "len", len(v), "max", len(a.v), "variable", a.variable)
		return ErrInvalidValueLength
	}
	a.n = copy(a.v, v)
	return nil
}

// Walk calls fn for each attribute in handle order until fn returns false.
// fn must not call methods of r.
func (r *DB) Walk(fn func(a Attribute) bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return ErrInvalidState
	}
	for _, a := range r.attrs {
		ok := fn(Attribute{
			Handle:     a.h,
			EndHandle:  a.endh,
			Type:       clone(a.typ),
			Permission: a.perm,
			Len:        a.n,
			MaxLen:     len(a.v),
			Variable:   a.variable,
		})
		if !ok {
			break
		}
	}
	return nil
}

// Dump logs the attribute table at debug level.
func (r *DB) Dump() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.ready {
		return ErrInvalidState
	}
	r.dumpAttributes()
	return nil
}

func (r *DB) dumpAttributes() {
	logger.Debug("attribute table", "attributes", len(r.attrs))
	for _, a := range r.attrs {
		logger.Debug("attr",
			"handle", hex16(a.h),
			"end", hex16(a.endh),
			"type", a.typ.String(),
			"name", ble.Name(a.typ),
			"perm", a.perm.String(),
			"value", a.value())
	}
}
