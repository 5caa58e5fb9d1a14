package thermo

import "math"

// Sentinel values the library writes into an output slot instead of a
// number when the property is undefined at the requested state.
const (
	sentinelUndefined  = -9999970.0 // and anything below it
	sentinelTwoPhaseCp = -9999980.0 // Cp and W inside the two-phase region
	sentinelTwoPhaseCv = -9999990.0 // Cv inside the two-phase region
)

// Defined reports whether v is a real value rather than an undefined
// sentinel.
func Defined(v float64) bool {
	return v > sentinelUndefined && v != sentinelTwoPhaseCp && v != sentinelTwoPhaseCv
}

// optional returns nil for sentinels and a pointer to v otherwise.
func optional(v float64) *float64 {
	if !Defined(v) {
		return nil
	}
	return &v
}

// Properties is the state computed by a point query, in public units.
// A nil field means the property is undefined at that state, which is
// typical for derivative properties in the two-phase region.
type Properties struct {
	Temperature *float64 // K
	Pressure    *float64 // kPa
	Density     *float64 // mol/dm³
	Enthalpy    *float64 // J/mol
	Entropy     *float64 // J/(mol·K)
	Quality     *float64 // molar vapor fraction, 0..1 in the two-phase region
	Cp          *float64 // J/(mol·K)
	Cv          *float64 // J/(mol·K)
	SoundSpeed  *float64 // m/s
}

// propertyOutputs is the fixed output set of a point query. The order
// matches the fields of Properties.
var propertyOutputs = []string{"T", "P", "D", "H", "S", "Qmole", "CP", "CV", "W"}

// propertiesFromOutput maps the library's output vector to Properties,
// converting pressure and density back to public units.
func propertiesFromOutput(out []float64) Properties {
	slot := func(i int) *float64 {
		if i >= len(out) {
			return nil
		}
		return optional(out[i])
	}
	p := Properties{
		Temperature: slot(0),
		Pressure:    slot(1),
		Density:     slot(2),
		Enthalpy:    slot(3),
		Entropy:     slot(4),
		Quality:     slot(5),
		Cp:          slot(6),
		Cv:          slot(7),
		SoundSpeed:  slot(8),
	}
	if p.Pressure != nil {
		*p.Pressure = PressureToPublic(*p.Pressure)
	}
	if p.Density != nil {
		*p.Density = DensityToPublic(*p.Density)
	}
	return p
}

// round rounds v to the given number of decimal digits.
func round(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}

// roundOpt rounds *v in place when v is non-nil and returns v.
func roundOpt(v *float64, digits int) *float64 {
	if v != nil {
		*v = round(*v, digits)
	}
	return v
}
