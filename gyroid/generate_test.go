package gyroid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countComponents groups triangles that share a vertex index into
// connected components, independent of LargestComponent's own traversal,
// to check the extractor's effect end-to-end.
func countComponents(indices []uint32, vertexCount int) int {
	triCount := len(indices) / 3
	parent := make([]int, triCount)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	facesOf := make([][]int, vertexCount)
	for t := 0; t < triCount; t++ {
		for k := 0; k < 3; k++ {
			v := indices[3*t+k]
			facesOf[v] = append(facesOf[v], t)
		}
	}
	for _, faces := range facesOf {
		for i := 1; i < len(faces); i++ {
			union(faces[0], faces[i])
		}
	}

	roots := make(map[int]bool)
	for t := 0; t < triCount; t++ {
		roots[find(t)] = true
	}
	return len(roots)
}

// Properties 1 & 3 & 10, plus scenario S1.
func TestGenerateShellBasic(t *testing.T) {
	p := Defaults()
	p.Size = 100
	p.CellSize = 25
	p.WallThreshold = 0.35
	p.Mode = Shell
	p.ShellThickness = 3
	p.Resolution = 40
	p.SmoothingIterations = 0
	p.MakeManifold = false

	mesh, _, err := Generate(p, nil)
	require.NoError(t, err)

	vertCount := len(mesh.Positions) / 3
	require.Equal(t, 0, len(mesh.Indices)%3, "indices length must be a multiple of 3")
	for _, idx := range mesh.Indices {
		require.Less(t, int(idx), vertCount, "index out of range")
	}

	half := float32(p.Size/2) + float32(p.Size/float64(p.Resolution))
	for i := 0; i < vertCount; i++ {
		x, y, z := mesh.Positions[3*i], mesh.Positions[3*i+1], mesh.Positions[3*i+2]
		assert.GreaterOrEqual(t, x, -half)
		assert.LessOrEqual(t, x, half)
		assert.GreaterOrEqual(t, y, -half)
		assert.LessOrEqual(t, y, half)
		assert.GreaterOrEqual(t, z, -half)
		assert.LessOrEqual(t, z, half)
	}

	require.Equal(t, vertCount, len(mesh.Normals)/3)
	for i := 0; i < vertCount; i++ {
		nx, ny, nz := mesh.Normals[3*i], mesh.Normals[3*i+1], mesh.Normals[3*i+2]
		norm := float64(nx)*float64(nx) + float64(ny)*float64(ny) + float64(nz)*float64(nz)
		if norm == 0 {
			continue
		}
		assert.InDelta(t, 1.0, norm, 1e-3, "normal must be unit length or zero")
	}

	require.Equal(t, 1, countComponents(mesh.Indices, vertCount),
		"shell mode must yield a single component after extraction")

	stl, err := ExportSTL(mesh)
	require.NoError(t, err)
	triCount := len(mesh.Indices) / 3
	require.Equal(t, 84+50*triCount, len(stl))
}

// Scenario S3: frame mode keeps at least two components (beam network +
// gyroid wall); the extractor is skipped.
func TestGenerateFrameKeepsMultipleComponents(t *testing.T) {
	p := Defaults()
	p.Size = 100
	p.CellSize = 25
	p.WallThreshold = 0.35
	p.Mode = Frame
	p.FrameBeamWidth = 10
	p.Resolution = 40
	p.SmoothingIterations = 0

	mesh, _, err := Generate(p, nil)
	require.NoError(t, err)

	vertCount := len(mesh.Positions) / 3
	require.GreaterOrEqual(t, countComponents(mesh.Indices, vertCount), 2)
}

// Scenario S5: smoothing doesn't change vertex/triangle counts, but does
// move positions.
func TestSmoothingPreservesTopology(t *testing.T) {
	p := Defaults()
	p.Size = 100
	p.CellSize = 25
	p.Resolution = 30
	p.SmoothingIterations = 0

	unsmoothed, _, err := Generate(p, nil)
	require.NoError(t, err)

	p.SmoothingIterations = 16
	smoothed, _, err := Generate(p, nil)
	require.NoError(t, err)

	require.Equal(t, len(unsmoothed.Positions), len(smoothed.Positions))
	require.Equal(t, len(unsmoothed.Indices), len(smoothed.Indices))

	differs := false
	for i := range unsmoothed.Positions {
		if unsmoothed.Positions[i] != smoothed.Positions[i] {
			differs = true
			break
		}
	}
	require.True(t, differs, "smoothing should move at least one vertex")
}

// Scenario S6: identical parameters produce byte-identical STL output.
func TestGenerateDeterministic(t *testing.T) {
	p := Defaults()
	p.Size = 100
	p.CellSize = 25
	p.Resolution = 40
	p.Mode = Shell
	p.SmoothingIterations = 8

	mesh1, _, err := Generate(p, nil)
	require.NoError(t, err)
	mesh2, _, err := Generate(p, nil)
	require.NoError(t, err)

	stl1, err := ExportSTL(mesh1)
	require.NoError(t, err)
	stl2, err := ExportSTL(mesh2)
	require.NoError(t, err)

	require.Equal(t, stl1, stl2)
}

func TestGenerateInvalidParameters(t *testing.T) {
	p := Defaults()
	p.Size = -1
	_, _, err := Generate(p, nil)
	require.Error(t, err)
}

// Scenario S4: a single gyroid cell (cellCount=1) at tau=0 still produces
// a mesh, with no structural enclosure beyond the shell wrapping it. At
// tau=0 the wall test |G| <= tau holds only where G is exactly zero, so
// the surface comes mainly from the shell rather than a gyroid wall.
func TestGenerateSingleCellSaddle(t *testing.T) {
	p := Defaults()
	p.Size = 60
	p.CellSize = 60
	p.WallThreshold = 0
	p.Mode = Shell
	p.Resolution = 30
	p.SmoothingIterations = 0

	mesh, snapped, err := Generate(p, nil)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, snapped, 1e-9)
	assert.Greater(t, len(mesh.Indices), 0)
}

// rayTriangleHits counts Moller-Trumbore intersections of the ray
// (origin, dir) with every triangle in mesh, t>0 only.
func rayTriangleHits(mesh MeshData, origin, dir [3]float64) int {
	const epsilon = 1e-9
	vertex := func(i uint32) [3]float64 {
		j := 3 * i
		return [3]float64{
			float64(mesh.Positions[j]),
			float64(mesh.Positions[j+1]),
			float64(mesh.Positions[j+2]),
		}
	}
	sub := func(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
	cross := func(a, b [3]float64) [3]float64 {
		return [3]float64{
			a[1]*b[2] - a[2]*b[1],
			a[2]*b[0] - a[0]*b[2],
			a[0]*b[1] - a[1]*b[0],
		}
	}
	dot := func(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

	hits := 0
	triCount := len(mesh.Indices) / 3
	for t := 0; t < triCount; t++ {
		v0 := vertex(mesh.Indices[3*t+0])
		v1 := vertex(mesh.Indices[3*t+1])
		v2 := vertex(mesh.Indices[3*t+2])

		edge1 := sub(v1, v0)
		edge2 := sub(v2, v0)
		h := cross(dir, edge2)
		a := dot(edge1, h)
		if a > -epsilon && a < epsilon {
			continue // ray parallel to this triangle
		}
		f := 1 / a
		s := sub(origin, v0)
		u := f * dot(s, h)
		if u < 0 || u > 1 {
			continue
		}
		q := cross(s, edge1)
		v := f * dot(dir, q)
		if v < 0 || u+v > 1 {
			continue
		}
		tHit := f * dot(edge2, q)
		if tHit > epsilon {
			hits++
		}
	}
	return hits
}

// Scenario S2: with makeManifold=true the outer shell is fully sealed, so
// a ray entering from outside along any of the three axes must cross the
// mesh at least once before it could reach the interior gyroid wall.
func TestGenerateManifoldShellIsWatertight(t *testing.T) {
	p := Defaults()
	p.Size = 100
	p.CellSize = 25
	p.WallThreshold = 0.35
	p.Mode = Shell
	p.ShellThickness = 3
	p.Resolution = 40
	p.SmoothingIterations = 4
	p.MakeManifold = true

	mesh, _, err := Generate(p, nil)
	require.NoError(t, err)
	require.Greater(t, len(mesh.Indices), 0)

	outside := p.Size // well outside the cube along every axis
	probes := []float64{-10, 0, 10}

	axisRays := []struct {
		name   string
		origin func(a, b float64) [3]float64
		dir    [3]float64
	}{
		{"+X", func(a, b float64) [3]float64 { return [3]float64{-outside, a, b} }, [3]float64{1, 0, 0}},
		{"+Y", func(a, b float64) [3]float64 { return [3]float64{a, -outside, b} }, [3]float64{0, 1, 0}},
		{"+Z", func(a, b float64) [3]float64 { return [3]float64{a, b, -outside} }, [3]float64{0, 0, 1}},
	}

	for _, ray := range axisRays {
		for _, a := range probes {
			for _, b := range probes {
				origin := ray.origin(a, b)
				hits := rayTriangleHits(mesh, origin, ray.dir)
				require.Greater(t, hits, 0,
					"ray %s from %v found no shell crossing", ray.name, origin)
			}
		}
	}
}
