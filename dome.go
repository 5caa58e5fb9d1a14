package thermo

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
)

// Dome sampling parameters.
const (
	MinTemperatureFallback = 223.15 // K, used when EOSMIN fails; also the scan floor
	CriticalOffset         = 0.5    // K below Tc where the scan stops
	DomePoints             = 65     // target temperature count
	lowSpanFraction        = 0.75   // share of the span sampled coarsely
	minHighPoints          = 15     // at least this many points near Tc
	widenStep              = 10.0   // K the window is widened by when empty
	widenFloor             = 200.0  // K lower limit of a widened window
)

// SaturationPoint is a point on one branch of the dome.
type SaturationPoint struct {
	Pressure float64 // kPa
	Enthalpy float64 // J/mol
}

// CriticalPoint is where the liquid and vapor branches meet.
type CriticalPoint struct {
	Temperature float64 // K
	Pressure    float64 // kPa
	Enthalpy    float64 // J/mol
}

// Dome is the saturation envelope of a fluid on a P–h diagram. Both
// branches are sorted by ascending enthalpy.
type Dome struct {
	Liquid   []SaturationPoint
	Vapor    []SaturationPoint
	Critical CriticalPoint
}

// Dome computes the saturated-liquid and saturated-vapor curves of fluid
// from its lowest stable temperature up to just below the critical point.
//
// Only a failing critical-point lookup fails the whole call. A branch that
// fails at some temperature is truncated there and the dome is returned with
// whatever points were collected.
func (e *Engine) Dome(ctx context.Context, fluid string) (Dome, error) {
	comp, err := ParseFluid(fluid)
	if err != nil {
		return Dome{}, err
	}

	var dome Dome
	err = e.withSession(ctx, func(s Session) error {
		crit, err := criticalPoint(ctx, s, comp)
		if err != nil {
			return err
		}
		if !crit.defined() {
			return fmt.Errorf("critical point: undefined state T=%g P=%g H=%g",
				crit.Temperature, crit.Pressure, crit.Enthalpy)
		}
		tmin := minTemperature(ctx, s, comp)
		tmax := crit.Temperature - CriticalOffset
		if tmin >= tmax {
			tmin = math.Max(tmin-widenStep, widenFloor)
		}

		liquid := &branch{name: "liquid", quality: 0}
		vapor := &branch{name: "vapor", quality: 1}
		for _, t := range AdaptiveTemperatures(tmin, tmax, DomePoints) {
			if liquid.stopped() && vapor.stopped() {
				break
			}
			liquid.advance(ctx, s, comp, t)
			vapor.advance(ctx, s, comp, t)
		}
		for _, b := range []*branch{liquid, vapor} {
			if b.stopped() {
				e.logger.Debug("dome branch truncated",
					"fluid", comp.ID, "branch", b.name, "temperature", b.failedAt,
					"points", len(b.points), "error", b.err)
			}
		}

		dome = Dome{
			Liquid: sortByEnthalpy(liquid.points),
			Vapor:  sortByEnthalpy(vapor.points),
			Critical: CriticalPoint{
				Temperature: round(crit.Temperature, 4),
				Pressure:    round(PressureToPublic(crit.Pressure), 6),
				Enthalpy:    round(crit.Enthalpy, 2),
			},
		}
		return nil
	})
	if err != nil {
		return Dome{}, fmt.Errorf("dome %s: %w", comp.ID, err)
	}
	return dome, nil
}

// branchState is the state of a dome branch walk.
type branchState int

const (
	branchCollecting branchState = iota
	branchStopped
)

// branch accumulates saturation points at one quality. The first failure
// moves it to branchStopped for the rest of the walk; there is no retry and
// no skipping ahead.
type branch struct {
	name     string
	quality  float64
	state    branchState
	points   []SaturationPoint
	failedAt float64
	err      error
}

func (b *branch) stopped() bool { return b.state == branchStopped }

func (b *branch) advance(ctx context.Context, s Session, comp Composition, t float64) {
	if b.state != branchCollecting {
		return
	}
	p, h, err := saturationAt(ctx, s, comp, t, b.quality)
	if err != nil {
		b.state = branchStopped
		b.failedAt = t
		b.err = err
		return
	}
	b.points = append(b.points, SaturationPoint{
		Pressure: round(PressureToPublic(p), 6),
		Enthalpy: round(h, 2),
	})
}

// saturationAt returns the saturation pressure [Pa] and enthalpy [J/mol]
// at temperature t and quality q.
func saturationAt(ctx context.Context, s Session, comp Composition, t, q float64) (float64, float64, error) {
	c := newCall(comp, "TQ", "P", "H")
	c.A, c.B = t, q
	r, err := call(ctx, s, c)
	if err != nil {
		return 0, 0, err
	}
	if len(r.Output) < 2 || !Defined(r.Output[0]) || !Defined(r.Output[1]) {
		return 0, 0, fmt.Errorf("TQ T=%g q=%g: undefined saturation state", t, q)
	}
	return r.Output[0], r.Output[1], nil
}

// rawCritical is the critical point in backend units.
type rawCritical struct {
	Temperature float64 // K
	Pressure    float64 // Pa
	Enthalpy    float64 // J/mol
	MolarMass   *float64
}

func (c rawCritical) defined() bool {
	return Defined(c.Temperature) && Defined(c.Pressure) && Defined(c.Enthalpy)
}

// criticalPoint queries the critical point of comp. Mixtures set the flag
// that makes the library precompute the phase envelope first; without it
// mixture critical points are inaccurate. extra outputs are appended after
// T;P;H.
func criticalPoint(ctx context.Context, s Session, comp Composition, extra ...string) (rawCritical, error) {
	c := newCall(comp, "CRIT", append([]string{"T", "P", "H"}, extra...)...)
	if comp.Blend() {
		c.Flag = 1
	}
	r, err := call(ctx, s, c)
	if err != nil {
		return rawCritical{}, fmt.Errorf("critical point: %w", err)
	}
	if len(r.Output) < 3 {
		return rawCritical{}, fmt.Errorf("critical point: got %d outputs, want 3", len(r.Output))
	}
	crit := rawCritical{
		Temperature: r.Output[0],
		Pressure:    r.Output[1],
		Enthalpy:    r.Output[2],
	}
	if len(extra) > 0 && len(r.Output) > 3 {
		crit.MolarMass = optional(r.Output[3])
	}
	return crit, nil
}

// minTemperature returns the lower limit of the equation of state, floored
// at MinTemperatureFallback. Any failure yields the fallback.
func minTemperature(ctx context.Context, s Session, comp Composition) float64 {
	r, err := call(ctx, s, newCall(comp, "EOSMIN", "T"))
	if err != nil || len(r.Output) == 0 || !Defined(r.Output[0]) {
		return MinTemperatureFallback
	}
	return math.Max(r.Output[0], MinTemperatureFallback)
}

// AdaptiveTemperatures returns an ascending temperature sequence from tmin
// to tmax of about n points. The first 75% of the span gets a proportional
// share of points; the last 25%, where the saturation curves bend most,
// gets at least 15. Both segments are evenly spaced, tmax is always
// included and duplicates are removed.
func AdaptiveTemperatures(tmin, tmax float64, n int) []float64 {
	if tmin >= tmax {
		return dedupe([]float64{tmin, tmax})
	}
	nHigh := max(minHighPoints, int(float64(n)*(1-lowSpanFraction)))
	nLow := n - nHigh
	tmid := tmin + lowSpanFraction*(tmax-tmin)

	temps := make([]float64, 0, n+1)
	temps = appendSegment(temps, tmin, tmid, nLow)
	temps = appendSegment(temps, tmid, tmax, nHigh)
	temps = append(temps, tmax)
	return dedupe(temps)
}

// appendSegment appends n evenly spaced values from lo to hi inclusive.
// The last value is exactly hi so that adjacent segments share an endpoint.
func appendSegment(dst []float64, lo, hi float64, n int) []float64 {
	div := float64(max(n-1, 1))
	for i := range n {
		v := lo + (hi-lo)*(float64(i)/div)
		if n > 1 && i == n-1 {
			v = hi
		}
		dst = append(dst, v)
	}
	return dst
}

func dedupe(v []float64) []float64 {
	slices.Sort(v)
	return slices.Compact(v)
}

func sortByEnthalpy(points []SaturationPoint) []SaturationPoint {
	slices.SortStableFunc(points, func(a, b SaturationPoint) int {
		return cmp.Compare(a.Enthalpy, b.Enthalpy)
	})
	return points
}
