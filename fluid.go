package thermo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxComponents is the largest number of components the backend accepts in
// one mixture.
const MaxComponents = 20

// Separators used in fluid specs.
const (
	ratioSep     = "|" // splits component names from fractions
	listSep      = "&" // joins names, and fractions, in an explicit composition
	componentSep = "*" // the backend's own mixture separator
)

// blendAliases maps trade names of blends the backend has no mixture file
// for to an explicit mole-fraction composition. Keys are upper case.
var blendAliases = map[string]string{
	"R515B": "R1234ZEE&R227EA|0.938&0.062",
}

// Composition is a parsed fluid spec: the fluid identifier understood by the
// backend and its mole-fraction vector.
//
// Fractions beyond len(Components) are zero and the first len(Components)
// fractions sum to 1.
type Composition struct {
	ID         string
	Components []string
	Fractions  [MaxComponents]float64
}

// Blend reports whether the composition names a multi-component mixture.
func (c Composition) Blend() bool {
	return strings.Contains(c.ID, componentSep)
}

// ParseFluid parses a fluid spec into a Composition. Three forms are
// accepted, tried in order:
//
//	R32&R125|0.7&0.3   explicit composition; ratios are normalized
//	R32*R125           backend mixture; equal mole shares
//	R32                pure fluid
//
// Known blend aliases (e.g. R515B) are expanded first. Errors wrap
// ErrInvalidInput.
func ParseFluid(spec string) (Composition, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Composition{}, fmt.Errorf("parse fluid: empty fluid spec: %w", ErrInvalidInput)
	}
	if alias, ok := blendAliases[strings.ToUpper(spec)]; ok {
		spec = alias
	}

	switch {
	case strings.Contains(spec, ratioSep):
		return parseExplicit(spec)
	case strings.Contains(spec, componentSep):
		return parseBare(spec)
	default:
		c := Composition{ID: spec, Components: []string{spec}}
		c.Fractions[0] = 1
		return c, nil
	}
}

func parseExplicit(spec string) (Composition, error) {
	namesPart, fracsPart, _ := strings.Cut(spec, ratioSep)
	names := splitTokens(namesPart, listSep)
	tokens := splitTokens(fracsPart, listSep)

	if len(tokens) == 0 {
		return Composition{}, fmt.Errorf("parse fluid %q: no fractions given: %w", spec, ErrInvalidInput)
	}
	if len(names) != len(tokens) {
		return Composition{}, fmt.Errorf("parse fluid %q: %d components but %d fractions: %w",
			spec, len(names), len(tokens), ErrInvalidInput)
	}
	if len(names) > MaxComponents {
		return Composition{}, fmt.Errorf("parse fluid %q: %d components exceeds maximum of %d: %w",
			spec, len(names), MaxComponents, ErrInvalidInput)
	}

	fracs := make([]float64, len(tokens))
	var sum float64
	for i, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return Composition{}, fmt.Errorf("parse fluid %q: fraction %q is not a number: %w", spec, tok, ErrInvalidInput)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Composition{}, fmt.Errorf("parse fluid %q: fraction %q is not finite: %w", spec, tok, ErrInvalidInput)
		}
		if f < 0 {
			return Composition{}, fmt.Errorf("parse fluid %q: fraction %q is negative: %w", spec, tok, ErrInvalidInput)
		}
		fracs[i] = f
		sum += f
	}
	if math.IsInf(sum, 0) {
		return Composition{}, fmt.Errorf("parse fluid %q: fractions sum is not finite: %w", spec, ErrInvalidInput)
	}
	if sum <= 0 {
		return Composition{}, fmt.Errorf("parse fluid %q: fractions must sum to more than 0: %w", spec, ErrInvalidInput)
	}

	c := Composition{
		ID:         strings.Join(names, componentSep),
		Components: names,
	}
	for i, f := range fracs {
		c.Fractions[i] = f / sum
	}
	return c, nil
}

func parseBare(spec string) (Composition, error) {
	names := splitTokens(spec, componentSep)
	n := len(names)
	if n == 0 {
		return Composition{}, fmt.Errorf("parse fluid %q: no components: %w", spec, ErrInvalidInput)
	}
	if n > MaxComponents {
		return Composition{}, fmt.Errorf("parse fluid %q: %d components exceeds maximum of %d: %w",
			spec, n, MaxComponents, ErrInvalidInput)
	}
	c := Composition{ID: spec, Components: names}
	for i := range n {
		c.Fractions[i] = 1 / float64(n)
	}
	return c, nil
}

// splitTokens splits s on sep, trims every token and drops empty ones.
func splitTokens(s, sep string) []string {
	var out []string
	for _, tok := range strings.Split(s, sep) {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
