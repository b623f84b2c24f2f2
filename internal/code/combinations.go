package code

// LoadCombination represents a strength design load combination
type LoadCombination struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Dead        float64 `json:"dead"`  // D - Dead load
	Live        float64 `json:"live"`  // L - Live load
	Earth       float64 `json:"earth"` // H - Lateral earth pressure
}

// Apply returns the factored value of one action.
func (lc LoadCombination) Apply(dead, live, earth float64) float64 {
	return lc.Dead*dead + lc.Live*live + lc.Earth*earth
}
