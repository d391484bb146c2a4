package gyroid

import "gonum.org/v1/gonum/spatial/r3"

// degenerateNormLimit is the threshold below which an accumulated normal
// is left at the zero vector rather than normalized.
const degenerateNormLimit = 1e-8

// estimateNormals computes area-weighted per-vertex unit normals: each
// triangle's non-normalized cross product is added to each of its three
// vertices' accumulators, then every accumulator is normalized.
func estimateNormals(mesh *IndexedMesh) {
	n := mesh.vertexCount()
	acc := make([]r3.Vec, n)

	for t := 0; t < mesh.triangleCount(); t++ {
		i0 := mesh.Indices[3*t+0]
		i1 := mesh.Indices[3*t+1]
		i2 := mesh.Indices[3*t+2]
		a := mesh.vertex(i0)
		b := mesh.vertex(i1)
		c := mesh.vertex(i2)
		weighted := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		acc[i0] = r3.Add(acc[i0], weighted)
		acc[i1] = r3.Add(acc[i1], weighted)
		acc[i2] = r3.Add(acc[i2], weighted)
	}

	mesh.Normals = make([]float64, 3*n)
	for v := 0; v < n; v++ {
		nv := acc[v]
		var unit r3.Vec
		if r3.Norm(nv) >= degenerateNormLimit {
			unit = r3.Unit(nv)
		}
		j := 3 * v
		mesh.Normals[j], mesh.Normals[j+1], mesh.Normals[j+2] = unit.X, unit.Y, unit.Z
	}
}
