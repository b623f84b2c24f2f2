package soil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankineActive(t *testing.T) {
	assert.InDelta(t, 1.0/3, RankineActive(30), 1e-12)
	assert.InDelta(t, 1.0, RankineActive(0), 1e-12)
	assert.Less(t, RankineActive(35), RankineActive(30))
}

func TestBasePressure(t *testing.T) {
	tests := []struct {
		name          string
		p, e, b, l    float64
		qmax, contact float64
	}{
		{"concentric", 400, 0, 2, 2, 100, 1},
		{"kern edge", 400, 2.0 / 6, 2, 2, 200, 1},
		{"partial", 648, 300.0 / 648, 2, 2, 402.2069, 0.8056},
		{"negative eccentricity", 400, -2.0 / 6, 2, 2, 200, 1},
		{"overturned", 400, 1, 2, 2, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qmax, qmin, contact := BasePressure(tt.p, tt.e, tt.b, tt.l)
			assert.InDelta(t, tt.qmax, qmax, 1e-4)
			assert.InDelta(t, tt.contact, contact, 1e-4)
			assert.GreaterOrEqual(t, qmin, -1e-9)
		})
	}
}
