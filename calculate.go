package thermo

import (
	"context"
	"fmt"
)

// Calculate computes the state of fluid given an input-pair code and two
// values in public units, e.g. Calculate(ctx, "R32", "PT", 1000, 300) for
// 1000 kPa and 300 K.
//
// Invalid codes and fluid specs return errors wrapping ErrInvalidInput; a
// fatal library status returns a *BackendError.
func (e *Engine) Calculate(ctx context.Context, fluid, code string, v1, v2 float64) (Properties, error) {
	pair, err := ParseInputPair(code)
	if err != nil {
		return Properties{}, err
	}
	comp, err := ParseFluid(fluid)
	if err != nil {
		return Properties{}, err
	}

	c := newCall(comp, string(pair), propertyOutputs...)
	c.A, c.B = pair.ToBackend(v1, v2)

	var props Properties
	err = e.withSession(ctx, func(s Session) error {
		r, err := call(ctx, s, c)
		if err != nil {
			return err
		}
		props = propertiesFromOutput(r.Output)
		return nil
	})
	if err != nil {
		return Properties{}, fmt.Errorf("calculate %s %s: %w", comp.ID, pair, err)
	}
	return props, nil
}
