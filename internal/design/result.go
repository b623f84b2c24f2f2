package design

import (
	"encoding/json"
	"math"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/loads"
	"github.com/alexiusacademia/gorcd/internal/rebar"
)

// FailureReason distinguishes load problems from geometry problems.
type FailureReason string

const (
	Overstress         FailureReason = "OVERSTRESS"
	ReinforcementRatio FailureReason = "REINFORCEMENT_RATIO"
)

// Tolerance absorbs rounding when a utilization lands on 1.0.
const Tolerance = 1e-9

// MaxUtilization caps ratios whose capacity vanished, keeping results finite.
const MaxUtilization = 999.0

// Ratio returns |demand|/capacity, capped at MaxUtilization.
func Ratio(demand, capacity float64) float64 {
	demand = math.Abs(demand)
	if demand == 0 {
		return 0
	}
	if capacity <= 0 || math.IsNaN(capacity) {
		return MaxUtilization
	}
	return math.Min(demand/capacity, MaxUtilization)
}

// Check is one demand/capacity comparison.
type Check struct {
	Name        string        `json:"name"`
	Unit        string        `json:"unit,omitempty"`
	Demand      float64       `json:"demand"`
	Capacity    float64       `json:"capacity"`
	Utilization float64       `json:"utilization"`
	Pass        bool          `json:"pass"`
	Reason      FailureReason `json:"reason,omitempty"`
}

// NewCheck compares demand and capacity; reason is recorded only on failure.
func NewCheck(name, unit string, demand, capacity float64, reason FailureReason) Check {
	c := Check{
		Name:        name,
		Unit:        unit,
		Demand:      demand,
		Capacity:    capacity,
		Utilization: Ratio(demand, capacity),
	}
	return c.judge(reason)
}

// WithUtilization builds a check whose utilization is computed by the caller.
func WithUtilization(name, unit string, demand, capacity, utilization float64, reason FailureReason) Check {
	c := Check{Name: name, Unit: unit, Demand: demand, Capacity: capacity, Utilization: math.Min(math.Abs(utilization), MaxUtilization)}
	return c.judge(reason)
}

func (c Check) judge(reason FailureReason) Check {
	c.Pass = c.Utilization <= 1+Tolerance
	if !c.Pass {
		c.Reason = reason
	}
	return c
}

// Geometry is the cover-adjusted section description.
type Geometry struct {
	Width          float64 `json:"width"`                    // mm
	Depth          float64 `json:"depth"`                    // mm
	Length         float64 `json:"length,omitempty"`         // height, span or footing length (mm)
	Cover          float64 `json:"cover"`                    // effective clear cover (mm)
	EffectiveDepth float64 `json:"effectiveDepth,omitempty"` // mm
	GrossArea      float64 `json:"grossArea"`                // mm²
}

// Requirement is the continuous steel demand of one zone.
type Requirement struct {
	Zone     string  `json:"zone"`
	Required float64 `json:"required"` // mm², per metre for mats
	Minimum  float64 `json:"minimum"`
	Maximum  float64 `json:"maximum"`
}

// Result is the terminal artifact of a design. It is built once by Assemble
// and not modified afterwards.
type Result struct {
	Member        Member                   `json:"member"`
	Code          code.ID                  `json:"code"`
	CodeName      string                   `json:"codeName"`
	Combination   string                   `json:"combination"`
	Demand        map[loads.Action]float64 `json:"demand"`
	Utilization   map[string]float64       `json:"utilization"`
	Pass          bool                     `json:"pass"`
	FailureReason FailureReason            `json:"failureReason,omitempty"`
	Checks        []Check                  `json:"checks"`
	Requirements  []Requirement            `json:"requirements"`
	Reinforcement []rebar.Group            `json:"reinforcement"`
	ProvidedArea  float64                  `json:"providedArea"`
	Geometry      Geometry                 `json:"geometry"`
	Warnings      []Warning                `json:"warnings"`
	Details       any                      `json:"details,omitempty"`
}

// RequiredArea sums the continuous steel requirement of every zone.
func (r *Result) RequiredArea() float64 {
	var total float64
	for _, req := range r.Requirements {
		total += req.Required
	}
	return total
}

// Check returns the named check.
func (r *Result) Check(name string) (Check, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

// HasWarning reports whether a warning with the code is attached.
func (r *Result) HasWarning(code WarningCode) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// JSON encodes the result. Map keys are sorted by encoding/json, so equal
// results encode to identical bytes.
func (r *Result) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
