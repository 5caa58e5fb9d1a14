package thermo

import (
	"fmt"
	"os"
)

// Config locates the equation-of-state library and its fluid files.
type Config struct {
	DataRoot   string // directory holding the shared library
	FluidsPath string // directory holding FLUIDS/ and MIXTURES/; empty = DataRoot
}

// Fluids returns the directory the library should load fluid files from.
func (c Config) Fluids() string {
	if c.FluidsPath != "" {
		return c.FluidsPath
	}
	return c.DataRoot
}

// Validate checks that the configured directories exist.
func (c Config) Validate() error {
	if err := checkDir("data root", c.DataRoot); err != nil {
		return err
	}
	if c.FluidsPath != "" {
		return checkDir("fluids path", c.FluidsPath)
	}
	return nil
}

func checkDir(name, path string) error {
	if path == "" {
		return fmt.Errorf("%s not set: %w", name, ErrConfiguration)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s %q: %v: %w", name, path, err, ErrConfiguration)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s %q is not a directory: %w", name, path, ErrConfiguration)
	}
	return nil
}
