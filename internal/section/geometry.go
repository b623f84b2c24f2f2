package section

import (
	"math"
	"sort"
)

// DistributedLayers spreads area over the depth of a section the way a
// perimeter bar arrangement does: a quarter at each face layer and the
// remaining half split evenly over interior layers.
//
//	edge          - depth of the first layer from the compression face (mm)
//	interior      - number of layers between the two face layers
func DistributedLayers(depth, edge, area float64, interior int) []Layer {
	layers := []Layer{{Depth: edge, Area: area / 4}}
	if interior > 0 {
		step := (depth - 2*edge) / float64(interior+1)
		for i := 1; i <= interior; i++ {
			layers = append(layers, Layer{Depth: edge + float64(i)*step, Area: area / 2 / float64(interior)})
		}
	}
	return append(layers, Layer{Depth: depth - edge, Area: area / 4})
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x"` // mm
	Y float64 `json:"y"` // mm
}

// LayersFromBars groups bar positions into layers along the bending
// direction. Positions are measured from the section's lower-left corner;
// alongY selects bending that puts the compression face at Y = depth.
func LayersFromBars(positions []Point, barArea, depth float64, alongY bool) []Layer {
	byDepth := map[float64]float64{}
	for _, p := range positions {
		coord := p.X
		if alongY {
			coord = p.Y
		}
		key := math.Round((depth-coord)*1000) / 1000
		byDepth[key] += barArea
	}

	depths := make([]float64, 0, len(byDepth))
	for d := range byDepth {
		depths = append(depths, d)
	}
	sort.Float64s(depths)

	layers := make([]Layer, len(depths))
	for i, d := range depths {
		layers[i] = Layer{Depth: d, Area: byDepth[d]}
	}
	return layers
}
