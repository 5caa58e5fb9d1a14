// Package refprop implements thermo.Backend on top of the NIST REFPROP
// shared library, loaded at run time from the configured data root.
package refprop

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/fwojciec/thermo"
)

// Interface compliance checks.
var (
	_ thermo.Backend = (*Backend)(nil)
	_ thermo.Session = (*session)(nil)
)

// unitSystem is the unit set every call is made in.
const unitSystem = "MOLAR BASE SI"

// library is a loaded copy of the shared library.
type library interface {
	setPath(dir string) error
	enum(name string) (int, error)
	call(c thermo.Call, units int) (thermo.Reply, error)
	close() error
}

// Backend opens sessions on the native library. The library keeps its
// loaded fluids in process-global state, so only one session is open at a
// time; Open blocks until the previous session is closed.
type Backend struct {
	cfg     thermo.Config
	libName string
	load    func(path string) (library, error)
	mu      sync.Mutex
}

// Option configures a [Backend].
type Option func(*Backend)

// WithLibraryName overrides the file name of the shared library inside the
// data root.
func WithLibraryName(name string) Option {
	return func(b *Backend) { b.libName = name }
}

// New creates a [Backend] for cfg. Nothing is loaded until Open.
func New(cfg thermo.Config, opts ...Option) *Backend {
	b := &Backend{
		cfg:     cfg,
		libName: defaultLibraryName(),
		load:    loadLibrary,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

func defaultLibraryName() string {
	if runtime.GOOS == "darwin" {
		return "librefprop.dylib"
	}
	return "librefprop.so"
}

// Open loads the library, points it at the fluid files and resolves the
// unit system. Configuration problems wrap thermo.ErrConfiguration.
func (b *Backend) Open(ctx context.Context) (thermo.Session, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("refprop: %w", err)
	}
	b.mu.Lock()
	s, err := b.open()
	if err != nil {
		b.mu.Unlock()
		return nil, fmt.Errorf("refprop: %w", err)
	}
	return s, nil
}

func (b *Backend) open() (*session, error) {
	lib, err := b.load(filepath.Join(b.cfg.DataRoot, b.libName))
	if err != nil {
		return nil, err
	}
	if err := lib.setPath(b.cfg.Fluids()); err != nil {
		lib.close()
		return nil, fmt.Errorf("set path: %w", err)
	}
	units, err := lib.enum(unitSystem)
	if err != nil {
		lib.close()
		return nil, fmt.Errorf("resolve %q: %w", unitSystem, err)
	}
	return &session{lib: lib, units: units, release: b.mu.Unlock}, nil
}

type session struct {
	lib     library
	units   int
	release func()
	once    sync.Once
	closed  bool
}

func (s *session) Call(ctx context.Context, c thermo.Call) (thermo.Reply, error) {
	if s.closed {
		return thermo.Reply{}, thermo.ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		return thermo.Reply{}, err
	}
	return s.lib.call(c, s.units)
}

// Close unloads the library and lets the next session open. Calling it
// again is a no-op.
func (s *session) Close() error {
	var err error
	s.once.Do(func() {
		s.closed = true
		err = s.lib.close()
		s.release()
	})
	return err
}
