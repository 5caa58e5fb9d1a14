// Command thermo computes thermodynamic properties and saturation domes of
// refrigerants and serves them over HTTP.
//
// Usage:
//
//	thermo [flags] <command> [args]
//
// Commands:
//
//	calc [-json] <fluid> <pair> <v1> <v2>   point query, e.g. calc R32 PT 1000 300
//	dome [-json] [-out file] <fluid>        saturation dome
//	show <file>                             render a dome saved with dome -out
//	info [-json] <fluid>                    reference properties
//	fluids [-json]                          available fluid and mixture files
//	serve [-addr addr] [-origins list]      HTTP API
//	repl                                    interactive prompt
//
// Flags:
//
//	-rpprefix string     REFPROP data root (env RPPREFIX)
//	-fluids string       directory holding FLUIDS/ and MIXTURES/ (env FLUIDS_PATH)
//	-remote string       remote backend URL (env REMOTE_BACKEND_URL)
//	-remote-key string   API key for the remote backend (env REMOTE_API_KEY)
//	-api-key string      API key required by serve (env SECRET_API_KEY)
//	-v                   debug logging
//
// Environment variables may also be set in a .env file in the working
// directory; variables already set take precedence.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/fwojciec/thermo"
	"github.com/joho/godotenv"
)

const defaultAddr = ":8003"

func main() {
	// .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "thermo: load .env: %v\n", err)
		os.Exit(1)
	}
	env := readEnvironment(os.Getenv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], env, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "thermo: %v\n", err)
		os.Exit(1)
	}
}

// environment holds the environment variables thermo reads. It is filled
// in main only and passed down as a value.
type environment struct {
	rpprefix       string
	fluidsPath     string
	remoteURL      string
	remoteKey      string
	secretKey      string
	allowedOrigins string
	addr           string
}

func readEnvironment(getenv func(string) string) environment {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }
	env := environment{
		rpprefix:       get("RPPREFIX"),
		fluidsPath:     get("FLUIDS_PATH"),
		remoteURL:      get("REMOTE_BACKEND_URL"),
		remoteKey:      get("REMOTE_API_KEY"),
		secretKey:      get("SECRET_API_KEY"),
		allowedOrigins: get("ALLOWED_ORIGINS"),
		addr:           get("ADDR"),
	}
	if env.addr == "" {
		env.addr = defaultAddr
	}
	return env
}

func run(ctx context.Context, args []string, env environment, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("thermo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		dataRoot  = fs.String("rpprefix", env.rpprefix, "REFPROP data root")
		fluids    = fs.String("fluids", env.fluidsPath, "directory holding FLUIDS/ and MIXTURES/ (default: data root)")
		remoteURL = fs.String("remote", env.remoteURL, "remote backend URL; the native library is used when empty")
		remoteKey = fs.String("remote-key", env.remoteKey, "API key for the remote backend")
		apiKey    = fs.String("api-key", env.secretKey, "API key required by serve")
		verbose   = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no command given")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg := thermo.Config{DataRoot: *dataRoot, FluidsPath: *fluids}
	backend := resolveBackend(cfg, *remoteURL, *remoteKey)
	a := newApp(backend, cfg, stdout, logger)
	a.apiKey = *apiKey
	a.remote = *remoteURL != ""
	a.addr = env.addr
	a.origins = env.allowedOrigins

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "serve":
		return a.serve(ctx, rest)
	case "repl":
		return a.repl(ctx)
	default:
		return a.exec(ctx, cmd, rest)
	}
}
