package thermo

// Theme maps the parts of rendered results to ANSI color indices (0-15).
// The terminal's own palette decides the actual colors. A negative index
// means no color.
type Theme struct {
	Heading  int // fluid name and section titles
	Label    int // property names
	Unit     int // units column
	Liquid   int // saturated-liquid branch
	Vapor    int // saturated-vapor branch
	Critical int // critical point
	Error    int
	Muted    int // undefined values, footers
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Heading:  5,
		Label:    4,
		Unit:     8,
		Liquid:   6,
		Vapor:    3,
		Critical: 1,
		Error:    1,
		Muted:    8,
	}
}
