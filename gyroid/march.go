package gyroid

import (
	"gonum.org/v1/gonum/spatial/r3"
)

//-----------------------------------------------------------------------------
// Corner layout (matches the standard Bourke marching-cubes convention):
//
//   c0(0,0,0) c1(1,0,0) c2(1,1,0) c3(0,1,0)
//   c4(0,0,1) c5(1,0,1) c6(1,1,1) c7(0,1,1)
//
// A corner's sample value is -1 when its voxel is solid (treated as
// "inside", matching the winding the imported tables assume) and +1 when
// void. The cube index bit c is set when corner c is solid.

var cornerOffset = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

// edgeBase[e] is the corner (0..7) anchoring edge e; edgeAxis[e] is the
// direction the edge runs in from that corner.
var edgeBase = [12]int{0, 1, 3, 0, 4, 5, 7, 4, 0, 1, 2, 3}
var edgeAxis = [12]axis{axisX, axisY, axisX, axisY, axisX, axisY, axisX, axisY, axisZ, axisZ, axisZ, axisZ}

//-----------------------------------------------------------------------------
// Edge-vertex cache: one flat array per axis, mapping a grid point's flat
// index to the (already emitted) vertex index straddling that grid edge,
// or -1 if not yet resolved. This is what guarantees adjacent cubes that
// share a grid edge share the same mesh vertex.

type edgeCache struct {
	n      int
	caches [3][]int32
}

func newEdgeCache(n int) *edgeCache {
	size := n * n * n
	ec := &edgeCache{n: n}
	for a := 0; a < 3; a++ {
		c := make([]int32, size)
		for i := range c {
			c[i] = -1
		}
		ec.caches[a] = c
	}
	return ec
}

func (ec *edgeCache) idx(x, y, z int) int {
	n := ec.n
	return x + y*n + z*n*n
}

//-----------------------------------------------------------------------------
// Indexed mesh built by marching cubes.

// IndexedMesh is the topologically indexed triangle mesh produced by
// marching cubes: vertex deduplication means each grid edge contributes
// at most one vertex, shared by every triangle crossing it.
type IndexedMesh struct {
	// Positions holds one xyz triple per unique vertex, world-space.
	Positions []float64
	// Indices holds vertex index triples, one per triangle, CCW viewed
	// from the void side.
	Indices []uint32
	// Normals holds one unit (or zero) xyz triple per vertex, laid out
	// like Positions (i.e. len(Normals) == len(Positions)).
	Normals []float64
}

func (m *IndexedMesh) vertexCount() int { return len(m.Positions) / 3 }

func (m *IndexedMesh) triangleCount() int { return len(m.Indices) / 3 }

func (m *IndexedMesh) vertex(i uint32) r3.Vec {
	j := 3 * int(i)
	return r3.Vec{X: m.Positions[j], Y: m.Positions[j+1], Z: m.Positions[j+2]}
}

func (m *IndexedMesh) appendVertex(v r3.Vec) uint32 {
	idx := uint32(m.vertexCount())
	m.Positions = append(m.Positions, v.X, v.Y, v.Z)
	return idx
}

//-----------------------------------------------------------------------------
// Marching Cubes

// marchingCubes converts the binary field into an indexed triangle mesh.
// Progress is reported into [30, 75].
func marchingCubes(f *BinaryField, progress ProgressFunc) (*IndexedMesh, error) {
	if progress == nil {
		progress = noopProgress
	}

	n := f.n()
	half := f.Size / 2
	step := f.Step

	var ec *edgeCache
	if err := allocGuard("edge caches", func() {
		ec = newEdgeCache(n)
	}); err != nil {
		return nil, err
	}
	mesh := &IndexedMesh{}

	value := func(x, y, z int) float64 {
		if f.At(x, y, z) == 1 {
			return -1
		}
		return 1
	}

	// resolveEdge returns the (possibly cached) vertex index straddling
	// the grid edge identified by corner (gx,gy,gz) and axis a.
	resolveEdge := func(gx, gy, gz int, a axis) uint32 {
		base := ec.idx(gx, gy, gz)
		if v := ec.caches[a][base]; v >= 0 {
			return uint32(v)
		}

		fA := value(gx, gy, gz)
		var ox, oy, oz int
		switch a {
		case axisX:
			ox = 1
		case axisY:
			oy = 1
		case axisZ:
			oz = 1
		}
		fB := value(gx+ox, gy+oy, gz+oz)

		var mu float64
		d := fB - fA
		if d < 1e-6 && d > -1e-6 {
			mu = 0.5
		} else {
			mu = -fA / d
			if mu < 0 {
				mu = 0
			} else if mu > 1 {
				mu = 1
			}
		}

		wx, wy, wz := -half+float64(gx)*step, -half+float64(gy)*step, -half+float64(gz)*step
		switch a {
		case axisX:
			wx = -half + (float64(gx)+mu)*step
		case axisY:
			wy = -half + (float64(gy)+mu)*step
		case axisZ:
			wz = -half + (float64(gz)+mu)*step
		}

		idx := mesh.appendVertex(r3.Vec{X: wx, Y: wy, Z: wz})
		ec.caches[a][base] = int32(idx)
		return idx
	}

	nCubes := f.R
	total := float64(nCubes) * float64(nCubes) * float64(nCubes)
	reportEvery := 100000
	processed := 0

	var cornerVal [8]float64
	var cornerIdx [8][3]int

	for zi := 0; zi < nCubes; zi++ {
		for yi := 0; yi < nCubes; yi++ {
			for xi := 0; xi < nCubes; xi++ {
				cubeIndex := 0
				for c := 0; c < 8; c++ {
					ox, oy, oz := cornerOffset[c][0], cornerOffset[c][1], cornerOffset[c][2]
					gx, gy, gz := xi+ox, yi+oy, zi+oz
					cornerIdx[c] = [3]int{gx, gy, gz}
					v := value(gx, gy, gz)
					cornerVal[c] = v
					if v < 0 {
						cubeIndex |= 1 << uint(c)
					}
				}

				bits := mcEdgeTable[cubeIndex]
				if bits != 0 {
					var edgeVert [12]uint32
					for e := 0; e < 12; e++ {
						if bits&(1<<uint(e)) != 0 {
							bc := cornerIdx[edgeBase[e]]
							edgeVert[e] = resolveEdge(bc[0], bc[1], bc[2], edgeAxis[e])
						}
					}

					tris := mcTriangleTable[cubeIndex]
					for i := 0; i+2 < len(tris); i += 3 {
						// Reversed order matches the outward-facing
						// winding the imported tables assume for this
						// sign convention.
						a := edgeVert[tris[i+0]]
						b := edgeVert[tris[i+1]]
						c := edgeVert[tris[i+2]]
						if a != b && b != c && a != c {
							mesh.Indices = append(mesh.Indices, c, b, a)
						}
					}
				}

				processed++
				if processed%reportEvery == 0 {
					pct := 30 + 45*float64(processed)/total
					progress(pct)
				}
			}
		}
	}

	progress(75)
	return mesh, nil
}
