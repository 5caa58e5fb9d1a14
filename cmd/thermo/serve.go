package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"strings"
	"time"

	thermohttp "github.com/fwojciec/thermo/http"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", a.addr, "listen address (env ADDR)")
	origins := fs.String("origins", a.origins, "comma-separated CORS origins (env ALLOWED_ORIGINS, default *)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !a.remote {
		if err := a.cfg.Validate(); err != nil {
			a.logger.Warn("native backend is not usable; requests will fail", "error", err)
		}
	}
	if a.apiKey == "" {
		a.logger.Warn("SECRET_API_KEY is not set; POST endpoints are unauthenticated")
	}

	handler := thermohttp.NewServer(a.backend,
		thermohttp.WithAPIKey(a.apiKey),
		thermohttp.WithAllowedOrigins(splitOrigins(*origins)...),
		thermohttp.WithLogger(a.logger),
		thermohttp.WithCatalog(a.cfg),
	)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	a.logger.Info("listening", "addr", *addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// splitOrigins parses a comma-separated origin list. An empty list allows
// every origin.
func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
