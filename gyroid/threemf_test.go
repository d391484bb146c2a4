package gyroid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExportThreeMFProducesNonEmptyPackage(t *testing.T) {
	mesh := MeshData{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Indices:   []uint32{0, 1, 2},
	}
	data, err := ExportThreeMF(mesh)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}
