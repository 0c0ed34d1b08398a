package gatt

import (
	"sync"

	"github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"

	"github.com/nxp-appcodehub/ble"
	"github.com/nxp-appcodehub/ble/att"
)

var logger = log.New("gatt")

// NewServer returns a stopped Server. The options configure the attribute
// database built at Start.
func NewServer(opts ...att.Option) *Server {
	return &Server{opts: opts}
}

// Server owns the attribute database of the local device.
// Services are added while stopped; Start builds and initializes the
// database, Stop tears it down.
type Server struct {
	sync.Mutex

	opts []att.Option
	svcs []*ble.Service
	db   *att.DB
}

// AddService adds a service to the definition.
func (s *Server) AddService(svc *ble.Service) error {
	s.Lock()
	defer s.Unlock()
	if s.db != nil {
		return errors.Wrap(att.ErrInvalidState, "can't add service to a running server")
	}
	s.svcs = append(s.svcs, svc)
	return nil
}

// RemoveAllServices removes all services from the definition.
func (s *Server) RemoveAllServices() error {
	s.Lock()
	defer s.Unlock()
	if s.db != nil {
		return errors.Wrap(att.ErrInvalidState, "can't remove services from a running server")
	}
	s.svcs = nil
	return nil
}

// SetServices replaces the definition with svcs.
func (s *Server) SetServices(svcs []*ble.Service) error {
	s.Lock()
	defer s.Unlock()
	if s.db != nil {
		return errors.Wrap(att.ErrInvalidState, "can't set services of a running server")
	}
	s.svcs = append([]*ble.Service(nil), svcs...)
	return nil
}

// Services returns the services in the definition.
func (s *Server) Services() []*ble.Service {
	s.Lock()
	defer s.Unlock()
	return append([]*ble.Service(nil), s.svcs...)
}

// Start builds the attribute database and initializes it.
func (s *Server) Start() error {
	s.Lock()
	defer s.Unlock()
	if s.db != nil {
		return att.ErrAlreadyInitialized
	}
	db, err := att.NewDB(s.svcs, s.opts...)
	if err != nil {
		return err
	}
	if err := db.Init(); err != nil {
		return errors.Wrap(err, "can't initialize attribute database")
	}
	s.db = db
	logger.Info("started", "services", len(s.svcs), "attributes", db.Len())
	return nil
}

// Stop deinitializes the attribute database.
func (s *Server) Stop() error {
	s.Lock()
	defer s.Unlock()
	if s.db == nil {
		return att.ErrInvalidState
	}
	if err := s.db.Deinit(); err != nil {
		return err
	}
	s.db = nil
	logger.Info("stopped")
	return nil
}

// DB returns the attribute database, or nil if the server is stopped.
func (s *Server) DB() *att.DB {
	s.Lock()
	defer s.Unlock()
	return s.db
}

// SetValue writes the value of the attribute at h.
func (s *Server) SetValue(h uint16, b []byte) error {
	db := s.DB()
	if db == nil {
		return att.ErrInvalidState
	}
	return db.WriteAttribute(h, b)
}

// Value returns a copy of the value of the attribute at h.
func (s *Server) Value(h uint16) ([]byte, error) {
	db := s.DB()
	if db == nil {
		return nil, att.ErrInvalidState
	}
	b := make([]byte, ble.MaxAttrLen)
	n, err := db.ReadAttribute(h, b)
	if err != nil {
		return nil, err
	}
	return b[:n], nil
}
