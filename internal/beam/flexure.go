package beam

import (
	"math"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/section"
)

// Flexure represents a rectangular beam section designed for a factored moment
type Flexure struct {
	// Geometry (mm)
	Width          float64 // b - beam width
	Height         float64 // h - total depth
	EffectiveDepth float64 // d - effective depth (to centroid of tension steel)
	CoverComp      float64 // d' - depth to centroid of compression reinforcement

	// Materials (MPa)
	Fc float64 // f'c - concrete compressive strength
	Fy float64 // fy - steel yield strength

	// Code parameters
	Phi     float64 // flexural resistance factor
	RhoMin  float64 // minimum tension steel ratio
	MaxArea float64 // limit on tension plus compression steel (mm²)
}

// FlexureResult holds the results of flexural design
type FlexureResult struct {
	// Is doubly reinforced needed?
	RequiresCompSteel bool `json:"requiresCompSteel"`

	// Moment components (kN-m)
	Mu1Max float64 `json:"mu1Max"` // Largest moment of the tension-controlled singly section
	Mu2    float64 `json:"mu2"`    // Moment resisted by the steel couple

	// Reinforcement (mm²)
	AsRequired  float64 `json:"asRequired"`  // Tension steel from the moment alone
	AsMin       float64 `json:"asMin"`       // Minimum tension steel
	AsTension   float64 `json:"asTension"`   // Tension steel to provide
	AscRequired float64 `json:"ascRequired"` // Compression steel to provide

	// Compression steel stress
	FscStress   float64 `json:"fscStress,omitempty"` // MPa
	CompYielded bool    `json:"compYielded,omitempty"`

	// Capacity (kN-m)
	PhiMn    float64 `json:"phiMn"`    // with the required steel
	PhiMnMax float64 `json:"phiMnMax"` // with the largest permitted steel

	// Status
	MinimumGoverns bool `json:"minimumGoverns"`
	IsAdequate     bool `json:"isAdequate"`
}

// Design calculates the required reinforcement for a factored moment,
// switching to a doubly reinforced section once the tension-controlled
// ratio is exceeded.
func (f Flexure) Design(mu float64) FlexureResult {
	mu = math.Abs(mu)
	b, d := f.Width, f.EffectiveDepth
	result := FlexureResult{AsMin: f.RhoMin * b * d}

	// Maximum singly reinforced section at εt = 0.005
	as1Max := code.RhoTensionControlled(f.Fc, f.Fy) * b * d
	aMax := as1Max * f.Fy / (code.StressBlock * f.Fc * b)
	cMax := aMax / code.Beta1(f.Fc)
	result.Mu1Max = section.SinglyCapacity(as1Max, b, d, f.Fc, f.Fy, f.Phi)

	// Compression steel stress at the tension-controlled limit
	epsilonSc := code.EpsilonCU * (cMax - f.CoverComp) / cMax
	fsc := math.Min(epsilonSc*code.Es, f.Fy)
	leverArm := d - f.CoverComp

	// Largest capacity within MaxArea: As2·(1 + fy/fsc) = MaxArea - As1max
	result.PhiMnMax = result.Mu1Max
	if fsc > 0 && leverArm > 0 && f.MaxArea > as1Max {
		as2Max := (f.MaxArea - as1Max) / (1 + f.Fy/fsc)
		result.PhiMnMax += f.Phi * as2Max * f.Fy * leverArm / 1e6
	}

	if mu <= result.Mu1Max {
		as, _ := section.RequiredSteel(mu, b, d, f.Fc, f.Fy, f.Phi)
		result.AsRequired = as
		result.AsTension = math.Max(as, result.AsMin)
		result.MinimumGoverns = result.AsTension > as
		result.PhiMn = section.SinglyCapacity(result.AsTension, b, d, f.Fc, f.Fy, f.Phi)
		result.IsAdequate = true
		return result
	}

	// Doubly reinforced design required
	result.RequiresCompSteel = true
	result.Mu2 = mu - result.Mu1Max
	if fsc <= 0 || leverArm <= 0 {
		// compression steel sits at or below the neutral axis
		result.AsRequired = as1Max
		result.AsTension = as1Max
		result.PhiMn = result.Mu1Max
		return result
	}

	// Mu2 = φ·As2·fy·(d - d')
	as2 := result.Mu2 * 1e6 / (f.Phi * f.Fy * leverArm)
	result.AsRequired = as1Max + as2
	result.AsTension = math.Max(result.AsRequired, result.AsMin)
	result.AscRequired = as2 * f.Fy / fsc
	result.FscStress = fsc
	result.CompYielded = fsc >= f.Fy
	result.PhiMn = result.Mu1Max + f.Phi*as2*f.Fy*leverArm/1e6
	result.IsAdequate = result.AsTension+result.AscRequired <= f.MaxArea*(1+1e-9)
	return result
}
