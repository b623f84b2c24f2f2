// Package soil holds the earth pressure and base contact relations shared
// by footings and retaining walls.
package soil

import "math"

// RankineActive returns Ka = (1 - sin φ)/(1 + sin φ) for a level backfill
// with friction angle phi in degrees.
func RankineActive(phi float64) float64 {
	s := math.Sin(phi * math.Pi / 180)
	return (1 - s) / (1 + s)
}

// BasePressure returns the extreme soil pressures (kPa) under a vertical
// load p (kN) acting at eccentricity e (m) on a b × l (m) rigid base, with e
// measured along l, and the share of l in contact. Outside the kern (l/6)
// the base lifts off and the pressure triangle shortens to 3(l/2 - e). At
// e ≥ l/2 nothing bears and all three results are zero.
func BasePressure(p, e, b, l float64) (qmax, qmin, contact float64) {
	e = math.Abs(e)
	switch {
	case e <= l/6:
		return p / (b * l) * (1 + 6*e/l), p / (b * l) * (1 - 6*e/l), 1
	case e < l/2:
		reach := 3 * (l/2 - e)
		return 2 * p / (b * reach), 0, reach / l
	default:
		return 0, 0, 0
	}
}
