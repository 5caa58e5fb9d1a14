// Package mock provides test doubles for thermo interfaces using function fields.
package mock

import (
	"context"

	"github.com/fwojciec/thermo"
)

// Interface compliance checks.
var (
	_ thermo.Backend = (*Backend)(nil)
	_ thermo.Session = (*Session)(nil)
)

// Backend is a test double for thermo.Backend.
// Set OpenFn before calling Open.
type Backend struct {
	OpenFn func(ctx context.Context) (thermo.Session, error)
}

// Open delegates to OpenFn.
func (b *Backend) Open(ctx context.Context) (thermo.Session, error) {
	return b.OpenFn(ctx)
}

// Session is a test double for thermo.Session.
// Set the function fields for the methods you need; a nil CloseFn is a no-op
// because every engine method closes its session.
type Session struct {
	CallFn  func(ctx context.Context, c thermo.Call) (thermo.Reply, error)
	CloseFn func() error
}

// Call delegates to CallFn.
func (s *Session) Call(ctx context.Context, c thermo.Call) (thermo.Reply, error) {
	return s.CallFn(ctx, c)
}

// Close delegates to CloseFn, if set.
func (s *Session) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}

// NewBackend returns a Backend whose Open hands out a fresh Session backed
// by callFn on every call.
func NewBackend(callFn func(ctx context.Context, c thermo.Call) (thermo.Reply, error)) *Backend {
	return &Backend{
		OpenFn: func(context.Context) (thermo.Session, error) {
			return &Session{CallFn: callFn}, nil
		},
	}
}
