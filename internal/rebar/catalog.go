// Package rebar holds the bar catalog and turns continuous steel areas into
// constructible bar layouts.
package rebar

import (
	"fmt"
	"math"
)

// Bar is one standard bar size.
type Bar struct {
	Diameter int     `json:"diameter"` // mm
	Area     float64 `json:"area"`     // mm²
}

func (b Bar) String() string {
	return fmt.Sprintf("%dmm", b.Diameter)
}

var catalog = []Bar{
	{10, 78.54},
	{12, 113.10},
	{16, 201.06},
	{20, 314.16},
	{25, 490.87},
	{28, 615.75},
	{32, 804.25},
	{36, 1017.88},
}

// Catalog returns the standard bar sizes in ascending order.
func Catalog() []Bar {
	return append([]Bar(nil), catalog...)
}

// Lookup returns the bar of a given diameter.
func Lookup(diameter int) (Bar, bool) {
	for _, b := range catalog {
		if b.Diameter == diameter {
			return b, true
		}
	}
	return Bar{}, false
}

// Sizes returns the catalog bars with diameters in [from, to].
func Sizes(from, to int) []Bar {
	var bars []Bar
	for _, b := range catalog {
		if b.Diameter >= from && b.Diameter <= to {
			bars = append(bars, b)
		}
	}
	return bars
}

// ColumnClearSpacing is the minimum clear distance between longitudinal
// column bars, max(40 mm, 1.5db).
func ColumnClearSpacing(db float64) float64 {
	return math.Max(40, 1.5*db)
}

// FlexuralClearSpacing is the minimum clear distance between parallel bars
// in a layer, max(25 mm, db).
func FlexuralClearSpacing(db float64) float64 {
	return math.Max(25, db)
}

// MaxMatSpacing is the largest centre-to-centre spacing of principal bars in
// slabs, walls and footings, min(3h, 450 mm).
func MaxMatSpacing(thickness float64) float64 {
	return math.Min(3*thickness, 450)
}
