// Package loads turns service actions into factored design demands using the
// load combinations of a building code profile.
package loads

import (
	"math"

	"github.com/alexiusacademia/gorcd/internal/code"
)

// Action names one force or moment component of a member.
type Action string

const (
	Axial       Action = "axial"       // kN
	MomentX     Action = "momentX"     // kN·m
	MomentY     Action = "momentY"     // kN·m
	Moment      Action = "moment"      // kN·m (per metre for slabs and walls)
	Shear       Action = "shear"       // kN (per metre for slabs and walls)
	Pressure    Action = "pressure"    // kPa
	Overturning Action = "overturning" // kN·m/m
)

// Load holds the unfactored components of one action.
type Load struct {
	Action Action
	Dead   float64 // D
	Live   float64 // L
	Earth  float64 // H
}

// Split divides a service total into dead and live parts. liveRatio is the
// live share of the total, between 0 and 1.
func Split(action Action, total, liveRatio float64) Load {
	return Load{Action: action, Dead: total * (1 - liveRatio), Live: total * liveRatio}
}

// Demand is the factored result of the governing combination.
type Demand struct {
	Combination code.LoadCombination `json:"combination"`
	Values      map[Action]float64   `json:"values"`

	// Sustained is the factored dead share of the primary action (βdns).
	Sustained float64 `json:"sustained"`
}

// Get returns the factored value of an action; zero when absent.
func (d Demand) Get(a Action) float64 {
	return d.Values[a]
}

// Combine applies every combination of the profile and keeps the one that
// maximizes the magnitude of the primary action. All actions are factored
// by that same combination; signs are kept.
func Combine(loads []Load, p code.Profile, primary Action) Demand {
	combos := p.Combinations()

	var governing code.LoadCombination
	var maxPrimary float64
	found := false
	for _, lc := range combos {
		for _, l := range loads {
			if l.Action != primary {
				continue
			}
			v := math.Abs(lc.Apply(l.Dead, l.Live, l.Earth))
			if !found || v > maxPrimary {
				maxPrimary = v
				governing = lc
				found = true
			}
		}
	}
	if !found && len(combos) > 0 {
		governing = combos[len(combos)-1]
	}

	d := Demand{Combination: governing, Values: make(map[Action]float64, len(loads))}
	for _, l := range loads {
		d.Values[l.Action] = governing.Apply(l.Dead, l.Live, l.Earth)
		if l.Action == primary && d.Values[l.Action] != 0 {
			d.Sustained = math.Abs(governing.Dead*l.Dead) / math.Abs(d.Values[l.Action])
		}
	}
	return d
}
