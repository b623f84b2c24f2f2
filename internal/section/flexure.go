package section

import (
	"math"

	"github.com/alexiusacademia/gorcd/internal/code"
)

// RequiredSteel returns the tension steel a singly reinforced rectangular
// section of width b and effective depth d needs for a factored moment mu
// (kN-m). ok is false when the concrete cannot develop the moment.
//
//	Rn = Mu / (φ·b·d²)
//	ρ  = (0.85f'c/fy)·(1 - √(1 - 2Rn/(0.85f'c)))
func RequiredSteel(mu, b, d, fc, fy, phi float64) (as float64, ok bool) {
	mu = math.Abs(mu)
	if mu == 0 {
		return 0, true
	}
	rn := mu * 1e6 / (phi * b * d * d)
	term := 2 * rn / (code.StressBlock * fc)
	if term > 1 {
		return 0, false
	}
	rho := (code.StressBlock * fc / fy) * (1 - math.Sqrt(1-term))
	return rho * b * d, true
}

// SinglyCapacity returns φMn (kN-m) of tension steel as at depth d,
// Mn = As·fy·(d - a/2).
func SinglyCapacity(as, b, d, fc, fy, phi float64) float64 {
	a := as * fy / (code.StressBlock * fc * b)
	return phi * as * fy * (d - a/2) / 1e6
}
