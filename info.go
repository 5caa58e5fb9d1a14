package thermo

import (
	"context"
	"fmt"
	"strings"
)

// Reference states for FluidInfo.
const (
	referencePressure    = 101.325 // kPa
	referenceTemperature = 298.15  // K
)

// FluidInfo holds reference data of a fluid. Every field is nil when the
// library cannot provide it. SafetyClass, GWP, ODP and CAS come from the
// fluid files and are only looked up for pure fluids.
type FluidInfo struct {
	SafetyClass         *string  // ASHRAE 34 safety group, e.g. "A2L"
	GWP                 *float64 // global-warming potential
	ODP                 *float64 // ozone-depletion potential; 0 for ozone-safe fluids
	CriticalTemperature *float64 // K
	NormalBoilingPoint  *float64 // K, saturated vapor at 101.325 kPa
	CAS                 *string
	TriplePoint         *TriplePoint
	MolarMass           *float64 // g/mol
	AdiabaticIndex      *float64 // Cp/Cv at 298.15 K and 101.325 kPa
}

// TriplePoint is the triple point of a fluid; either field may be nil.
type TriplePoint struct {
	Temperature *float64 // K
	Pressure    *float64 // kPa
}

// Info looks up reference properties of fluid. Only a failing
// critical-point lookup fails the call; every other property is reported as
// nil when its query fails.
func (e *Engine) Info(ctx context.Context, fluid string) (FluidInfo, error) {
	comp, err := ParseFluid(fluid)
	if err != nil {
		return FluidInfo{}, err
	}

	var info FluidInfo
	err = e.withSession(ctx, func(s Session) error {
		crit, err := criticalPoint(ctx, s, comp, "M")
		if err != nil {
			return err
		}
		info.CriticalTemperature = roundOpt(optional(crit.Temperature), 4)
		info.NormalBoilingPoint = roundOpt(normalBoilingPoint(ctx, s, comp), 4)
		info.TriplePoint = triplePoint(ctx, s, comp)
		info.AdiabaticIndex = roundOpt(adiabaticIndex(ctx, s, comp), 6)

		mm := crit.MolarMass
		if !comp.Blend() {
			info.SafetyClass = infoText(ctx, s, comp, "SAFETY")
			info.CAS = infoText(ctx, s, comp, "CAS#")
			info.GWP = roundOpt(infoNumber(ctx, s, comp, "GWP", 0), 4)
			info.ODP = roundOpt(ozoneSafe(infoNumber(ctx, s, comp, "ODP", 0)), 6)
		}
		if mm == nil {
			flag := 0
			if comp.Blend() {
				flag = 1
			}
			mm = infoNumber(ctx, s, comp, "M", flag)
		}
		info.MolarMass = roundOpt(gramsPerMole(mm), 4)
		return nil
	})
	if err != nil {
		return FluidInfo{}, fmt.Errorf("info %s: %w", comp.ID, err)
	}
	return info, nil
}

// ozoneSafe maps the fluid files' negative ODP convention (-1 meaning
// "does not deplete ozone") to 0.
func ozoneSafe(odp *float64) *float64 {
	if odp != nil && *odp < 0 {
		*odp = 0
	}
	return odp
}

// gramsPerMole normalizes a molar mass to g/mol. MOLAR BASE SI reports
// kg/mol, so values under 10 are taken to be in kg/mol.
func gramsPerMole(m *float64) *float64 {
	if m != nil && *m < 10 {
		*m *= 1000
	}
	return m
}

// single performs c and returns the first output, or nil on any failure.
func single(ctx context.Context, s Session, c Call) *float64 {
	r, err := call(ctx, s, c)
	if err != nil || len(r.Output) == 0 {
		return nil
	}
	return optional(r.Output[0])
}

func normalBoilingPoint(ctx context.Context, s Session, comp Composition) *float64 {
	c := newCall(comp, "PQ", "T")
	c.A, c.B = PressureToBackend(referencePressure), 1
	return single(ctx, s, c)
}

func triplePoint(ctx context.Context, s Session, comp Composition) *TriplePoint {
	r, err := call(ctx, s, newCall(comp, "TRIP", "T", "P"))
	if err != nil || len(r.Output) == 0 {
		return nil
	}
	tp := TriplePoint{Temperature: roundOpt(optional(r.Output[0]), 4)}
	if len(r.Output) > 1 {
		if p := optional(r.Output[1]); p != nil {
			tp.Pressure = roundOpt(ptr(PressureToPublic(*p)), 8)
		}
	}
	if tp.Temperature == nil && tp.Pressure == nil {
		return nil
	}
	return &tp
}

func adiabaticIndex(ctx context.Context, s Session, comp Composition) *float64 {
	c := newCall(comp, "TP", "CP", "CV")
	c.A, c.B = referenceTemperature, PressureToBackend(referencePressure)
	r, err := call(ctx, s, c)
	if err != nil || len(r.Output) < 2 {
		return nil
	}
	cp, cv := optional(r.Output[0]), optional(r.Output[1])
	if cp == nil || cv == nil || *cv <= 0 {
		return nil
	}
	return ptr(*cp / *cv)
}

// infoNumber fetches a numeric fluid-file property by name.
func infoNumber(ctx context.Context, s Session, comp Composition, name string, flag int) *float64 {
	c := newCall(comp, "CRIT", name)
	c.Flag = flag
	return single(ctx, s, c)
}

// infoText fetches a string fluid-file property by name. The library
// returns string outputs in its units field.
func infoText(ctx context.Context, s Session, comp Composition, name string) *string {
	r, err := call(ctx, s, newCall(comp, "CRIT", name))
	if err != nil {
		return nil
	}
	text := strings.TrimSpace(r.Text)
	if text == "" {
		return nil
	}
	return &text
}

func ptr[T any](v T) *T { return &v }
