package gyroid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// appendFan adds a triangle fan (one centre vertex plus m ring vertices,
// m triangles total) to mesh, offset by an arbitrary translation so two
// fans don't spatially overlap.
func appendFan(mesh *IndexedMesh, m int, offsetX float64) {
	base := uint32(mesh.vertexCount())
	mesh.Positions = append(mesh.Positions, offsetX, 0, 0) // centre
	for i := 0; i < m; i++ {
		angle := float64(i) / float64(m)
		mesh.Positions = append(mesh.Positions, offsetX+angle, angle, 0)
	}
	centre := base
	for i := 0; i < m; i++ {
		a := base + 1 + uint32(i)
		b := base + 1 + uint32((i+1)%m)
		mesh.Indices = append(mesh.Indices, centre, a, b)
	}
}

func TestLargestComponentKeepsBiggerFan(t *testing.T) {
	mesh := &IndexedMesh{}
	appendFan(mesh, 90, 0)    // component A: 90 faces, 91 vertices
	appendFan(mesh, 20, 1000) // component B: 20 faces, 21 vertices

	require.Equal(t, 110, mesh.triangleCount())

	out := LargestComponent(mesh)
	require.Equal(t, 90, out.triangleCount())
	require.Equal(t, 91, out.vertexCount())
	for _, idx := range out.Indices {
		require.Less(t, int(idx), out.vertexCount())
	}
}

func TestLargestComponentSkippedBelowFaceFloor(t *testing.T) {
	mesh := &IndexedMesh{}
	appendFan(mesh, 5, 0)
	appendFan(mesh, 3, 1000)
	require.Less(t, mesh.triangleCount(), minFacesForExtraction)

	out := LargestComponent(mesh)
	require.Equal(t, mesh.triangleCount(), out.triangleCount())
}
