package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gorcd/internal/code"
	"github.com/alexiusacademia/gorcd/internal/design"
)

func TestInteractionCurves(t *testing.T) {
	r, err := Design(code.ACI, scenario())
	require.NoError(t, err)

	c, err := InteractionCurves(scenario(), r, 40)
	require.NoError(t, err)
	require.Len(t, c.X, 42)
	require.Len(t, c.Y, 42)
	assert.InDelta(t, 0.65, c.Phi, 1e-12)

	tension, squash := c.X[0], c.X[len(c.X)-1]
	assert.Less(t, tension.P, 0.0)
	assert.Zero(t, squash.M)
	assert.InDelta(t, 0.80*squash.P, c.NominalMax, 1e-9)

	// Square section with a symmetric arrangement bends alike about both axes.
	assert.InDelta(t, c.X[len(c.X)-1].P, c.Y[len(c.Y)-1].P, 1e-9)
}

func TestInteractionCurvesWithoutBars(t *testing.T) {
	r := &design.Result{Code: code.CSA}
	_, err := InteractionCurves(scenario(), r, 10)
	assert.ErrorIs(t, err, ErrNoArrangement)
}
