package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fwojciec/thermo"
	"github.com/fwojciec/thermo/catalog"
	thermojson "github.com/fwojciec/thermo/json"
	tlg "github.com/fwojciec/thermo/lipgloss"
)

// errUsage marks a command invoked with the wrong arguments.
var errUsage = errors.New("usage")

// app carries what every command needs.
type app struct {
	engine  *thermo.Engine
	backend thermo.Backend
	cfg     thermo.Config
	stdout  io.Writer
	out     *tlg.Renderer
	logger  *slog.Logger

	// serve only
	apiKey  string
	remote  bool
	addr    string
	origins string
}

func newApp(backend thermo.Backend, cfg thermo.Config, stdout io.Writer, logger *slog.Logger) *app {
	return &app{
		engine:  thermo.NewEngine(backend, thermo.WithLogger(logger)),
		backend: backend,
		cfg:     cfg,
		stdout:  stdout,
		out:     tlg.New(stdout, thermo.DefaultTheme()),
		logger:  logger,
	}
}

// exec runs one of the commands available both from the shell and the repl.
func (a *app) exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "calc":
		return a.calc(ctx, args)
	case "dome":
		return a.dome(ctx, args)
	case "show":
		return a.show(args)
	case "info":
		return a.info(ctx, args)
	case "fluids":
		return a.fluids(args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) calc(ctx context.Context, args []string) error {
	fs, asJSON := a.flags("calc")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 4 {
		return fmt.Errorf("%w: calc [-json] <fluid> <pair> <v1> <v2>", errUsage)
	}
	fluid, pair := fs.Arg(0), fs.Arg(1)
	v1, err := parseValue(fs.Arg(2))
	if err != nil {
		return err
	}
	v2, err := parseValue(fs.Arg(3))
	if err != nil {
		return err
	}
	props, err := a.engine.Calculate(ctx, fluid, pair, v1, v2)
	if err != nil {
		return err
	}
	if *asJSON {
		return a.writeJSON(thermojson.MarshalProperties(props))
	}
	title := fmt.Sprintf("%s  %s = %s, %s", fluid, strings.ToUpper(pair), fs.Arg(2), fs.Arg(3))
	return a.out.Properties(title, props)
}

func (a *app) dome(ctx context.Context, args []string) error {
	fs, asJSON := a.flags("dome")
	out := fs.String("out", "", "save the dome to this JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: dome [-json] [-out file] <fluid>", errUsage)
	}
	fluid := fs.Arg(0)
	dome, err := a.engine.Dome(ctx, fluid)
	if err != nil {
		return err
	}
	if *out != "" {
		if err := thermojson.SaveDome(*out, fluid, dome); err != nil {
			return fmt.Errorf("save dome: %w", err)
		}
		a.logger.Info("dome saved", "fluid", fluid, "path", *out)
	}
	if *asJSON {
		return a.writeJSON(thermojson.MarshalDome(dome))
	}
	return a.out.Dome(fluid+" saturation dome", dome)
}

func (a *app) show(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: show <file>", errUsage)
	}
	fluid, dome, err := thermojson.LoadDome(args[0])
	if err != nil {
		return fmt.Errorf("load dome: %w", err)
	}
	return a.out.Dome(fluid+" saturation dome", dome)
}

func (a *app) info(ctx context.Context, args []string) error {
	fs, asJSON := a.flags("info")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: info [-json] <fluid>", errUsage)
	}
	info, err := a.engine.Info(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	if *asJSON {
		return a.writeJSON(thermojson.MarshalInfo(info))
	}
	return a.out.Info(fs.Arg(0), info)
}

func (a *app) fluids(args []string) error {
	fs, asJSON := a.flags("fluids")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := catalog.Load(a.cfg)
	if err != nil {
		return err
	}
	if *asJSON {
		return a.writeJSON(thermojson.MarshalCatalog(c))
	}
	return a.out.Catalog(c)
}

// flags returns a flag set for a subcommand with the shared -json flag.
func (a *app) flags(name string) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs, fs.Bool("json", false, "print JSON instead of a table")
}

func (a *app) writeJSON(data []byte, err error) error {
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.stdout, "%s\n", data)
	return err
}

func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not a number: %w", s, thermo.ErrInvalidInput)
	}
	return v, nil
}
