// Package catalog lists the fluid and mixture files available to the
// equation-of-state library.
package catalog

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/thermo"
)

// Patterns of fluid and mixture files, relative to the fluids directory.
const (
	FluidPattern   = "FLUIDS/*.{FLD,PPF}"
	MixturePattern = "MIXTURES/*.MIX"
)

// Catalog holds the upper-case names of the available pure fluids and
// predefined mixtures, sorted and without file extensions.
type Catalog struct {
	Fluids   []string
	Mixtures []string
}

// Load scans the fluids directory of cfg. A missing MIXTURES directory
// yields an empty mixture list; a missing fluids directory is an error
// wrapping thermo.ErrConfiguration.
func Load(cfg thermo.Config) (Catalog, error) {
	dir := cfg.Fluids()
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Catalog{}, fmt.Errorf("catalog: fluids directory %q not found: %w", dir, thermo.ErrConfiguration)
	}
	fsys := os.DirFS(dir)
	fluids, err := names(fsys, FluidPattern)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: %w", err)
	}
	mixtures, err := names(fsys, MixturePattern)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: %w", err)
	}
	return Catalog{Fluids: fluids, Mixtures: mixtures}, nil
}

func names(fsys iofs.FS, pattern string) ([]string, error) {
	out := []string{}
	err := doublestar.GlobWalk(fsys, pattern, func(p string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		name := path.Base(p)
		name = strings.TrimSuffix(name, path.Ext(name))
		out = append(out, strings.ToUpper(name))
		return nil
	}, doublestar.WithCaseInsensitive())
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", pattern, err)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// Complete returns the fluid and mixture names starting with prefix,
// compared case-insensitively.
func (c Catalog) Complete(prefix string) []string {
	prefix = strings.ToUpper(prefix)
	var out []string
	for _, list := range [][]string{c.Fluids, c.Mixtures} {
		for _, name := range list {
			if strings.HasPrefix(name, prefix) {
				out = append(out, name)
			}
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
