package column

import (
	"errors"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/design"
	"github.com/alexiusacademia/gorcd/internal/loads"
	"github.com/alexiusacademia/gorcd/internal/section"
)

// ErrNoArrangement is returned for results without longitudinal bars.
var ErrNoArrangement = errors.New("result has no longitudinal bar arrangement")

// Curves are the nominal interaction diagrams of a selected arrangement.
type Curves struct {
	X, Y       []section.CurvePoint
	Phi        float64 // compression φ
	NominalMax float64 // Pn,max (kN)
}

// InteractionCurves samples the P-M curves about X and Y of the bars a
// design selected, with n neutral axis positions each.
func InteractionCurves(in Input, r *design.Result, n int) (Curves, error) {
	p, err := code.Resolve(r.Code)
	if err != nil {
		return Curves{}, err
	}
	for _, g := range r.Reinforcement {
		if g.Transverse || len(g.Layout) == 0 {
			continue
		}
		var discard []design.Warning
		m := newModel(in, p, loads.Demand{}, &discard)
		sx, sy := m.actual(g)
		return Curves{
			X:          sx.InteractionCurve(n),
			Y:          sy.InteractionCurve(n),
			Phi:        m.phi,
			NominalMax: m.alpha * sx.AxialCapacity(),
		}, nil
	}
	return Curves{}, ErrNoArrangement
}
