// Package json holds the JSON wire and file formats of thermo values: the
// HTTP API bodies, the remote backend protocol and saved domes.
package json

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeFile writes data to path through a temporary file and a rename, so
// readers never see a partial file. Parent directories are created as needed.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
