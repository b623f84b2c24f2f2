// Package design wires the member calculators into one pipeline:
// validation, code profile resolution, load combination, section analysis,
// reinforcement selection and result assembly.
package design

import (
	"fmt"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/loads"
	"github.com/alexiusacademia/gorcd/internal/rebar"
)

// Input is the raw design input of one member type.
type Input interface {
	Member() Member
}

// Analysis is what a member's section and interaction analysis hands to
// reinforcement selection.
type Analysis struct {
	Demand       loads.Demand
	Geometry     Geometry
	Checks       []Check
	Utilization  map[string]float64
	Requirements []Requirement
	Warnings     []Warning
	Details      any
}

// Selection is the constructible layout chosen for an analysis.
type Selection struct {
	Groups   []rebar.Group
	Checks   []Check
	Warnings []Warning

	// Details replaces the analysis details when the selection refines them.
	Details any
}

// Calculator is the strategy each member type implements.
type Calculator[I Input] interface {
	Validate(in I) error
	CombineLoads(in I, p code.Profile) loads.Demand
	AnalyzeSection(in I, p code.Profile, d loads.Demand) Analysis
	SelectReinforcement(in I, p code.Profile, a Analysis) Selection
}

// Run executes the full pipeline for one input under one building code.
// An unknown code is a *code.ConfigurationError, invalid input is
// validate.Errors; an inadequate design is a Result with Pass == false.
func Run[I Input](c Calculator[I], id code.ID, in I) (*Result, error) {
	p, err := code.Resolve(id)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(in); err != nil {
		return nil, err
	}
	d := c.CombineLoads(in, p)
	a := c.AnalyzeSection(in, p, d)
	s := c.SelectReinforcement(in, p, a)
	return Assemble(p, in.Member(), a, s), nil
}

// Assemble packages analysis and selection into a Result.
func Assemble(p code.Profile, m Member, a Analysis, s Selection) *Result {
	r := &Result{
		Member:        m,
		Code:          p.ID,
		CodeName:      p.Name,
		Combination:   a.Demand.Combination.Description,
		Demand:        make(map[loads.Action]float64, len(a.Demand.Values)),
		Utilization:   make(map[string]float64, len(a.Utilization)),
		Checks:        append(append([]Check{}, a.Checks...), s.Checks...),
		Requirements:  append([]Requirement{}, a.Requirements...),
		Reinforcement: append([]rebar.Group{}, s.Groups...),
		ProvidedArea:  rebar.LongitudinalArea(s.Groups),
		Geometry:      a.Geometry,
		Warnings:      append(append([]Warning{}, a.Warnings...), s.Warnings...),
		Details:       a.Details,
	}
	if s.Details != nil {
		r.Details = s.Details
	}
	for k, v := range a.Demand.Values {
		r.Demand[k] = v
	}
	for k, v := range a.Utilization {
		r.Utilization[k] = v
	}

	r.Pass = true
	for _, c := range r.Checks {
		if c.Pass {
			continue
		}
		r.Pass = false
		if r.FailureReason != Overstress {
			r.FailureReason = c.Reason
		}
	}

	if p.ID == code.CSA {
		r.Warnings = append(r.Warnings, Warning{
			Code:    WarnCodeConservatism,
			Message: fmt.Sprintf("%s applies φ factors to already reduced material resistances (×%.2f); expect more reinforcement than under ACI 318 for the same member", p.Name, p.MaterialFactor),
		})
	}
	return r
}

// CoverWarning reports a cover raised to the code minimum.
func CoverWarning(given, minimum float64) Warning {
	return Warning{
		Code:    WarnCoverRaised,
		Message: fmt.Sprintf("clear cover raised from %.0f mm to the code minimum of %.0f mm", given, minimum),
	}
}

// EffectiveCover returns max(given, minimum) and appends a warning when the
// given cover was raised.
func EffectiveCover(given, minimum float64, warnings *[]Warning) float64 {
	if given >= minimum {
		return given
	}
	*warnings = append(*warnings, CoverWarning(given, minimum))
	return minimum
}

// RatioCheck verifies a provided steel area against the permitted band.
func RatioCheck(name string, provided, minimum, maximum float64) Check {
	c := Check{Name: name, Unit: "mm²", Demand: provided, Capacity: maximum, Utilization: Ratio(provided, maximum)}
	c.Pass = provided >= minimum-Tolerance && provided <= maximum*(1+Tolerance)
	if !c.Pass {
		c.Reason = ReinforcementRatio
	}
	return c
}

// SelectionCheck turns a selector status into a check.
func SelectionCheck(name string, g rebar.Group, st rebar.Status, minimum, maximum float64) (Check, *Warning) {
	c := RatioCheck(name, g.Area, minimum, maximum)
	switch st {
	case rebar.NoFit:
		c.Pass, c.Reason = false, ReinforcementRatio
		return c, &Warning{Code: WarnLayout, Message: name + ": no bar arrangement fits the section at the required area"}
	case rebar.ExceedsMax:
		c.Pass, c.Reason = false, ReinforcementRatio
		return c, &Warning{Code: WarnLayout, Message: fmt.Sprintf("%s: smallest arrangement %s exceeds the maximum steel area", name, g)}
	case rebar.Inadequate:
		c.Pass, c.Reason = false, ReinforcementRatio
		return c, &Warning{Code: WarnLayout, Message: fmt.Sprintf("%s: no arrangement within the maximum steel area carries the demand; largest is %s", name, g)}
	}
	return c, nil
}
