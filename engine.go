package thermo

import (
	"context"
	"fmt"
	"log/slog"
)

// Engine runs point queries, saturation domes and reference-property
// lookups against a Backend. It holds no per-request state and is safe for
// concurrent use; every method opens and closes its own Session.
type Engine struct {
	backend Backend
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for diagnostics such as truncated dome
// branches. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an Engine bound to backend.
func NewEngine(backend Backend, opts ...Option) *Engine {
	e := &Engine{
		backend: backend,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// withSession opens a session, runs fn and closes the session. A close
// error is reported only when fn succeeded.
func (e *Engine) withSession(ctx context.Context, fn func(Session) error) (err error) {
	s, err := e.backend.Open(ctx)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close session: %w", cerr)
		}
	}()
	return fn(s)
}

// call performs c and turns fatal library codes into *BackendError.
func call(ctx context.Context, s Session, c Call) (Reply, error) {
	r, err := s.Call(ctx, c)
	if err != nil {
		return Reply{}, fmt.Errorf("%s call: %w", c.Input, err)
	}
	if err := checkReply(r); err != nil {
		return Reply{}, err
	}
	return r, nil
}
