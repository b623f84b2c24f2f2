package section

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned for sections that cannot be analyzed.
var ErrInvalid = errors.New("invalid section")

// Section represents a rectangular concrete section bent about one axis.
// Depths are measured from the extreme compression face.
type Section struct {
	Width float64 `json:"width"` // b, perpendicular to the bending direction (mm)
	Depth float64 `json:"depth"` // h, in the bending direction (mm)

	// Material properties
	Fc float64 `json:"fc"` // Concrete compressive strength (MPa)
	Fy float64 `json:"fy"` // Steel yield strength (MPa)

	// Reinforcement layers
	Layers []Layer `json:"layers"`
}

// Layer represents a layer of reinforcement at a specific depth
type Layer struct {
	Depth float64 `json:"depth"` // mm from the compression face
	Area  float64 `json:"area"`  // mm²

	// Optional: description of bars (e.g., "3-25mm")
	Description string `json:"description,omitempty"`
}

// Validate checks if the section definition is valid
func (s Section) Validate() error {
	if s.Width <= 0 || s.Depth <= 0 {
		return fmt.Errorf("%w: dimensions must be positive", ErrInvalid)
	}
	if s.Fc <= 0 {
		return fmt.Errorf("%w: f'c must be positive", ErrInvalid)
	}
	if s.Fy <= 0 {
		return fmt.Errorf("%w: fy must be positive", ErrInvalid)
	}
	for i, layer := range s.Layers {
		if layer.Area < 0 {
			return fmt.Errorf("%w: reinforcement layer %d has negative area", ErrInvalid, i+1)
		}
		if layer.Depth <= 0 || layer.Depth >= s.Depth {
			return fmt.Errorf("%w: reinforcement layer %d lies outside the section", ErrInvalid, i+1)
		}
	}
	return nil
}

// SteelArea returns the total reinforcement area (mm²)
func (s Section) SteelArea() float64 {
	var total float64
	for _, l := range s.Layers {
		total += l.Area
	}
	return total
}

// GrossArea returns b·h (mm²)
func (s Section) GrossArea() float64 {
	return s.Width * s.Depth
}

// GrossInertia returns the moment of inertia of the concrete about mid-depth (mm⁴)
func (s Section) GrossInertia() float64 {
	return s.Width * s.Depth * s.Depth * s.Depth / 12
}

// SteelInertia returns the moment of inertia of the reinforcement about
// mid-depth (mm⁴)
func (s Section) SteelInertia() float64 {
	var total float64
	for _, l := range s.Layers {
		y := l.Depth - s.Depth/2
		total += l.Area * y * y
	}
	return total
}
