package refprop

import (
	"sync"

	"github.com/fwojciec/thermo"
)

// FakeLibrary records what a session does with the native library.
type FakeLibrary struct {
	mu       sync.Mutex
	Path     string
	DataPath string
	Units    int
	EnumErr  error
	Calls    []thermo.Call
	Reply    thermo.Reply
	Closed   int
}

func (f *FakeLibrary) setPath(dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DataPath = dir
	return nil
}

func (f *FakeLibrary) enum(name string) (int, error) {
	if f.EnumErr != nil {
		return 0, f.EnumErr
	}
	return f.Units, nil
}

func (f *FakeLibrary) call(c thermo.Call, units int) (thermo.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, c)
	return f.Reply, nil
}

func (f *FakeLibrary) close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed++
	return nil
}

// ClosedCount returns how often the library was unloaded.
func (f *FakeLibrary) ClosedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Closed
}

// WithLoaderForTest replaces the native loader. load receives the full
// library path.
func WithLoaderForTest(load func(path string) (*FakeLibrary, error)) Option {
	return func(b *Backend) {
		b.load = func(path string) (library, error) {
			lib, err := load(path)
			if err != nil {
				return nil, err
			}
			lib.Path = path
			return lib, nil
		}
	}
}
