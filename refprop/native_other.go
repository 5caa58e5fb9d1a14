//go:build !cgo || !(linux || darwin)

package refprop

import (
	"fmt"

	"github.com/fwojciec/thermo"
)

func loadLibrary(path string) (library, error) {
	return nil, fmt.Errorf("load %s: native backend needs cgo on linux or darwin: %w", path, thermo.ErrConfiguration)
}
