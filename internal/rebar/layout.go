package rebar

import (
	"fmt"

	"github.com/alexiusacademia/gorcd/internal/section"
)

// Group is a set of identical bars placed together.
type Group struct {
	Zone     string  `json:"zone"`
	BarSize  int     `json:"barSize"`           // mm
	BarCount int     `json:"barCount"`          // bars, or legs for stirrups
	Rows     int     `json:"rows,omitempty"`    // stacked layers of a row group
	Spacing  float64 `json:"spacing,omitempty"` // centre-to-centre (mm)
	Area     float64 `json:"area"`              // mm², per metre for mats

	// Transverse marks ties and stirrups, which are not counted in the
	// longitudinal steel area.
	Transverse bool `json:"transverse,omitempty"`

	// PerMetre marks mats whose count and area are per metre width.
	PerMetre bool `json:"perMetre,omitempty"`

	Layout []section.Point `json:"layout,omitempty"`
}

func (g Group) String() string {
	switch {
	case g.Transverse && g.BarCount > 1:
		return fmt.Sprintf("%d-leg %dmm @ %.0f mm", g.BarCount, g.BarSize, g.Spacing)
	case g.Transverse:
		return fmt.Sprintf("%dmm %s @ %.0f mm", g.BarSize, g.Zone, g.Spacing)
	case g.Rows > 1:
		return fmt.Sprintf("%d-%dmm in %d rows", g.BarCount, g.BarSize, g.Rows)
	case g.PerMetre:
		return fmt.Sprintf("%dmm @ %.0f mm", g.BarSize, g.Spacing)
	default:
		return fmt.Sprintf("%d-%dmm", g.BarCount, g.BarSize)
	}
}

// LongitudinalArea sums the area of all non-transverse groups.
func LongitudinalArea(groups []Group) float64 {
	var total float64
	for _, g := range groups {
		if !g.Transverse {
			total += g.Area
		}
	}
	return total
}
