package thermo

import (
	"fmt"
	"strings"
)

// State-variable tags accepted in an input-pair code.
const (
	TagTemperature byte = 'T'
	TagPressure    byte = 'P'
	TagDensity     byte = 'D'
	TagEnthalpy    byte = 'H'
	TagEntropy     byte = 'S'
	TagQuality     byte = 'Q'
	TagEnergy      byte = 'E'
)

// InputPair is a validated two-character code naming the two state
// variables given to a point query, e.g. "PT" or "PH".
type InputPair string

// ParseInputPair upper-cases and trims code and checks that it names two
// distinct recognized state variables.
func ParseInputPair(code string) (InputPair, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 2 {
		return "", fmt.Errorf("input pair must be two characters such as PT, PQ or PH, got %q: %w", code, ErrInvalidInput)
	}
	for i := range 2 {
		if !knownTag(c[i]) {
			return "", fmt.Errorf("input pair %q: unknown state variable %q: %w", code, c[i], ErrInvalidInput)
		}
	}
	if c[0] == c[1] {
		return "", fmt.Errorf("input pair %q names the same state variable twice: %w", code, ErrInvalidInput)
	}
	return InputPair(c), nil
}

// ToBackend converts the two public-unit input values to backend units.
// Only pressure and density values are scaled.
func (p InputPair) ToBackend(v1, v2 float64) (float64, float64) {
	return toBackend(p[0], v1), toBackend(p[1], v2)
}

func knownTag(b byte) bool {
	switch b {
	case TagTemperature, TagPressure, TagDensity, TagEnthalpy, TagEntropy, TagQuality, TagEnergy:
		return true
	}
	return false
}
