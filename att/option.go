package att

import "github.com/pkg/errors"

// An Option is a configuration function, which configures the database.
type Option func(*DB) error

// OptMaxAttributes limits the number of attributes Init may allocate.
// Zero means no limit other than the handle space.
func OptMaxAttributes(n int) Option {
	return func(r *DB) error {
		if n < 0 {
			return errors.Wrapf(ErrInvalidParameter, "max attributes %d", n)
		}
		r.maxAttrs = n
		return nil
	}
}

// OptMaxValueBytes limits the total size of the value buffers Init may allocate.
// Zero means no limit.
func OptMaxValueBytes(n int) Option {
	return func(r *DB) error {
		if n < 0 {
			return errors.Wrapf(ErrInvalidParameter, "max value bytes %d", n)
		}
		r.maxBytes = n
		return nil
	}
}

// OptDump logs the attribute table each time the database is initialized.
func OptDump(dump bool) Option {
	return func(r *DB) error {
		r.dump = dump
		return nil
	}
}
