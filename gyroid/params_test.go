package gyroid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsNonPositive(t *testing.T) {
	base := Defaults()

	bad := base
	bad.Size = 0
	require.Error(t, bad.Validate())

	bad = base
	bad.CellSize = -1
	require.Error(t, bad.Validate())

	bad = base
	bad.Resolution = 0
	require.Error(t, bad.Validate())

	require.NoError(t, base.Validate())
}

// Property 6: cell snapping. size=100, cellSize=30 snaps to 100/3, the
// effective cell size, independent of every other parameter.
func TestCellSnapping(t *testing.T) {
	_, snapped := snapCellSize(100, 30)
	assert.InDelta(t, 100.0/3.0, snapped, 1e-9)
}

func TestCellSnappingSingleCell(t *testing.T) {
	count, snapped := snapCellSize(60, 60)
	assert.Equal(t, 1, count)
	assert.InDelta(t, 60.0, snapped, 1e-9)
}
