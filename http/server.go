// Package http exposes a thermo.Engine over HTTP with JSON bodies.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/fwojciec/thermo"
	"github.com/fwojciec/thermo/catalog"
	thermojson "github.com/fwojciec/thermo/json"
)

// maxBodyBytes limits request bodies.
const maxBodyBytes = 1 << 20

// Server routes HTTP requests to an Engine and, for remote clients, to the
// raw backend.
type Server struct {
	backend thermo.Backend
	engine  *thermo.Engine
	catalog func() (catalog.Catalog, error)
	apiKey  string
	origins []string
	logger  *slog.Logger
	handler http.Handler
}

// Option configures a [Server].
type Option func(*Server)

// WithAPIKey requires every POST request to carry key in the X-API-Key
// header. A key starting with "$2" is treated as a bcrypt hash. An empty
// key disables the check.
func WithAPIKey(key string) Option {
	return func(s *Server) { s.apiKey = key }
}

// WithAllowedOrigins sets the origins allowed by CORS. "*" allows any
// origin. The default is "*".
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

// WithLogger sets the logger for request and failure logging.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog serves GET /fluids from the fluid files described by cfg.
func WithCatalog(cfg thermo.Config) Option {
	return func(s *Server) {
		s.catalog = func() (catalog.Catalog, error) { return catalog.Load(cfg) }
	}
}

// NewServer creates a Server computing with backend.
func NewServer(backend thermo.Backend, opts ...Option) *Server {
	s := &Server{
		backend: backend,
		origins: []string{"*"},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(s)
	}
	s.engine = thermo.NewEngine(backend, thermo.WithLogger(s.logger))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHealth)
	mux.HandleFunc("POST /calculate", s.handleCalculate)
	mux.HandleFunc("POST /dome", s.handleDome)
	mux.HandleFunc("POST /info", s.handleInfo)
	mux.HandleFunc("GET /fluids", s.handleFluids)
	mux.HandleFunc("POST /v1/backend/call", s.handleBackendCall)
	s.handler = s.logRequests(s.cors(s.authenticate(mux)))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

type calculateRequest struct {
	FluidString string   `json:"fluid_string"`
	InputType   string   `json:"input_type"`
	Value1      *float64 `json:"value1"`
	Value2      *float64 `json:"value2"`
}

type fluidRequest struct {
	FluidString string `json:"fluid_string"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	data, _ := json.Marshal(map[string]string{"status": "ok", "api": "thermo"})
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if req.Value1 == nil || req.Value2 == nil {
		s.fail(w, r, fmt.Errorf("value1 and value2 are required: %w", thermo.ErrInvalidInput))
		return
	}
	props, err := s.engine.Calculate(r.Context(), req.FluidString, req.InputType, *req.Value1, *req.Value2)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(s, w, r, thermojson.MarshalProperties, props)
}

func (s *Server) handleDome(w http.ResponseWriter, r *http.Request) {
	var req fluidRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	dome, err := s.engine.Dome(r.Context(), req.FluidString)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(s, w, r, thermojson.MarshalDome, dome)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	var req fluidRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	info, err := s.engine.Info(r.Context(), req.FluidString)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(s, w, r, thermojson.MarshalInfo, info)
}

func (s *Server) handleFluids(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		s.fail(w, r, fmt.Errorf("no fluid catalog: %w", thermo.ErrConfiguration))
		return
	}
	c, err := s.catalog()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(s, w, r, thermojson.MarshalCatalog, c)
}

// handleBackendCall performs one raw library call in a session of its own.
// Library status codes are returned in the reply, not as HTTP errors.
func (s *Server) handleBackendCall(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.fail(w, r, fmt.Errorf("read body: %v: %w", err, thermo.ErrInvalidInput))
		return
	}
	call, err := thermojson.UnmarshalCall(body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	reply, err := s.proxy(r.Context(), call)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respond(s, w, r, thermojson.MarshalReply, reply)
}

func (s *Server) proxy(ctx context.Context, call thermo.Call) (_ thermo.Reply, err error) {
	session, err := s.backend.Open(ctx)
	if err != nil {
		return thermo.Reply{}, fmt.Errorf("open session: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close session: %w", cerr)
		}
	}()
	return session.Call(ctx, call)
}

// respond marshals v and writes it with status 200.
func respond[T any](s *Server, w http.ResponseWriter, r *http.Request, marshal func(T) ([]byte, error), v T) {
	data, err := marshal(v)
	if err != nil {
		s.fail(w, r, fmt.Errorf("encode response: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// fail maps err to a status code and writes {"detail": "..."}.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(r.Context(), level, "request failed",
		"method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	writeDetail(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, thermo.ErrInvalidInput), errors.Is(err, thermo.ErrConfiguration):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request: %v: %w", err, thermo.ErrInvalidInput)
	}
	return nil
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	data, _ := json.Marshal(map[string]string{"detail": detail})
	writeJSON(w, status, data)
}

func writeJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
