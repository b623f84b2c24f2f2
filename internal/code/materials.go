package code

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Material constants shared by both code families

const (
	// Beta1 factors for equivalent rectangular stress block
	// ACI 318-25 Table 22.2.2.4.3
	Beta1Max = 0.85 // for f'c <= 28 MPa
	Beta1Min = 0.65 // minimum value

	// Ultimate concrete strain (ACI 22.2.2.1)
	EpsilonCU = 0.003

	// Net tensile strain at the tension-controlled limit (ACI 21.2.2)
	EpsilonTC = 0.005

	// Modulus of elasticity for steel
	Es = 200000.0 // MPa

	// Unit weight of reinforced concrete
	ConcreteUnitWeight = 24.0 // kN/m³

	// Stress block intensity 0.85f'c
	StressBlock = 0.85
)

var concreteGrades = map[string]float64{
	"C25": 25,
	"C30": 30,
	"C35": 35,
	"C40": 40,
	"C45": 45,
}

var steelGrades = map[string]float64{
	"400": 400,
	"420": 420,
	"500": 500,
	"520": 520,
}

// ConcreteGrades lists the accepted concrete strength classes.
func ConcreteGrades() []string { return sortedKeys(concreteGrades) }

// SteelGrades lists the accepted reinforcing steel yield grades.
func SteelGrades() []string { return sortedKeys(steelGrades) }

// ConcreteStrength returns f'c in MPa for a strength class such as "C30".
func ConcreteStrength(grade string) (float64, bool) {
	fc, ok := concreteGrades[strings.ToUpper(strings.TrimSpace(grade))]
	return fc, ok
}

// SteelYield returns fy in MPa for a grade such as "420".
func SteelYield(grade string) (float64, bool) {
	g := strings.TrimSpace(grade)
	if _, err := strconv.Atoi(g); err != nil {
		return 0, false
	}
	fy, ok := steelGrades[g]
	return fy, ok
}

// Beta1 calculates the factor for equivalent rectangular stress block
func Beta1(fc float64) float64 {
	if fc <= 28 {
		return Beta1Max
	}
	// β1 = 0.85 - 0.05(f'c - 28)/7 for f'c > 28 MPa
	beta1 := Beta1Max - 0.05*(fc-28)/7
	return math.Max(beta1, Beta1Min)
}

// RhoTensionControlled is the largest tension steel ratio that keeps a singly
// reinforced section tension-controlled (εt = 0.005).
func RhoTensionControlled(fc, fy float64) float64 {
	beta1 := Beta1(fc)
	// c/d = εcu / (εcu + εt) = 0.375
	return StressBlock * beta1 * (fc / fy) * (EpsilonCU / (EpsilonCU + EpsilonTC))
}

// RhoBalanced calculates balanced reinforcement ratio
func RhoBalanced(fc, fy float64) float64 {
	beta1 := Beta1(fc)
	epsilonTY := fy / Es
	cb := EpsilonCU / (EpsilonCU + epsilonTY)
	return StressBlock * beta1 * (fc / fy) * cb
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return m[keys[i]] < m[keys[j]] })
	return keys
}
