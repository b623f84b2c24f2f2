package column

import (
	"math"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/section"
)

// Slenderness is the classification and moment magnification of one axis.
type Slenderness struct {
	Axis           string  `json:"axis"`
	Ratio          float64 `json:"ratio"` // kℓu/r
	Limit          float64 `json:"limit"`
	Slender        bool    `json:"slender"`
	CriticalLoad   float64 `json:"criticalLoad,omitempty"`   // Pc (kN)
	StabilityIndex float64 `json:"stabilityIndex,omitempty"` // Pu/(φK·Pc)
	Stable         bool    `json:"stable"`
	Magnifier      float64 `json:"magnifier"`    // δ
	Moment         float64 `json:"moment"`       // factored moment (kN·m)
	DesignMoment   float64 `json:"designMoment"` // moment entering the interaction check (kN·m)
}

// magnify classifies an axis and, for a slender column, amplifies the
// moment with the non-sway magnifier (Cm = 1):
//
//	EI = (0.2·Ec·Ig + Es·Ise) / (1 + βdns)
//	Pc = π²·EI / (k·ℓu)²
//	δ  = 1 / (1 - Pu/(φK·Pc))
//	M2 ≥ Pu·(15 + 0.03h)
func magnify(axis string, mu, pu, klu float64, sec section.Section, p code.Profile, sustained float64) Slenderness {
	s := Slenderness{
		Axis:         axis,
		Ratio:        klu / (radiusFactor * sec.Depth),
		Limit:        p.SlendernessLimit,
		Stable:       true,
		Magnifier:    1,
		Moment:       mu,
		DesignMoment: mu,
	}
	if s.Ratio <= s.Limit {
		return s
	}
	s.Slender = true

	ei := (0.2*p.Ec(sec.Fc)*sec.GrossInertia() + code.Es*sec.SteelInertia()) / (1 + sustained)
	s.CriticalLoad = math.Pi * math.Pi * ei / (klu * klu) / 1e3
	s.StabilityIndex = pu / (p.Phi.Stiffness * s.CriticalLoad)
	if s.StabilityIndex >= 1 {
		s.Stable = false
		s.Magnifier = 0
		return s
	}
	s.Magnifier = 1 / (1 - s.StabilityIndex)

	m2 := math.Max(math.Abs(mu), pu*(minEccentricity+minEccentricityFactor*sec.Depth)/1e3)
	s.DesignMoment = s.Magnifier * m2
	if mu < 0 {
		s.DesignMoment = -s.DesignMoment
	}
	return s
}

// bresler combines the uniaxial capacities with the reciprocal load method,
// 1/Pi = 1/Pnx + 1/Pny - 1/Po.
func bresler(pnx, pny, po float64) float64 {
	if pnx <= 0 || pny <= 0 || po <= 0 {
		return 0
	}
	inv := 1/pnx + 1/pny - 1/po
	if inv <= 0 {
		return po
	}
	return math.Min(1/inv, po)
}

// DesignMoment returns the moment the interaction check used about axis
// "x" or "y", magnified for a slender column.
func (d *Details) DesignMoment(axis string) (float64, bool) {
	for _, s := range d.Slenderness {
		if s.Axis == axis {
			return s.DesignMoment, true
		}
	}
	return 0, false
}
