package thermo

import "context"

// Call is a single request to the equation-of-state library. Input names
// the input pair ("PT", "TQ") or a special mode ("CRIT", "EOSMIN", "TRIP");
// Outputs lists the requested properties in order.
//
// A and B are in backend (MOLAR BASE SI) units. Fractions is passed by value
// so a backend that modifies its composition argument in place cannot leak
// the change back to the caller.
type Call struct {
	Fluid     string
	Fractions [MaxComponents]float64
	Input     string
	Outputs   []string
	Flag      int // 1 asks the library to precompute the phase envelope of a mixture
	A, B      float64
}

// Reply is the raw answer of the library. Output holds one value per
// requested output in request order; undefined properties come back as
// sentinel values, not errors. Text carries string outputs (e.g. SAFETY).
//
// Code is the library status: 0 is success, values up to FatalCode are
// warnings, larger values are fatal and Message describes the failure.
type Reply struct {
	Output  []float64
	Text    string
	Code    int
	Message string
}

// Session is a handle to the library acquired for one logical request.
// Sessions are not safe for concurrent use.
type Session interface {
	// Call returns an error only when the call could not be made at all
	// (transport failure, closed session). Library failures are reported
	// through Reply.Code.
	Call(ctx context.Context, c Call) (Reply, error)
	Close() error
}

// Backend opens sessions. Every query or dome computation opens its own
// session and closes it when done; sessions are never shared or pooled.
type Backend interface {
	Open(ctx context.Context) (Session, error)
}

// newCall builds a Call for comp with the given mode and outputs.
func newCall(comp Composition, input string, outputs ...string) Call {
	return Call{
		Fluid:     comp.ID,
		Fractions: comp.Fractions,
		Input:     input,
		Outputs:   outputs,
	}
}
