package gyroid

import "gonum.org/v1/gonum/spatial/r3"

// Taubin lambda/mu coefficients. lambda shrinks, mu re-expands, cancelling
// low-frequency shrinkage and leaving a volume-preserving low-pass filter.
// Not tunable; the conventional choice leaving the pass-band near
// kPB = 1/lambda + 1/mu ~= 0.1 cycles/edge.
const (
	taubinLambda = 0.5
	taubinMu     = -0.53
)

// oneRing builds the unique-neighbour list per vertex from the triangle
// index buffer.
func oneRing(mesh *IndexedMesh) [][]uint32 {
	n := mesh.vertexCount()
	seen := make([]map[uint32]bool, n)
	ring := make([][]uint32, n)

	add := func(a, b uint32) {
		if seen[a] == nil {
			seen[a] = make(map[uint32]bool)
		}
		if !seen[a][b] {
			seen[a][b] = true
			ring[a] = append(ring[a], b)
		}
	}

	for t := 0; t < mesh.triangleCount(); t++ {
		i0 := mesh.Indices[3*t+0]
		i1 := mesh.Indices[3*t+1]
		i2 := mesh.Indices[3*t+2]
		add(i0, i1)
		add(i1, i0)
		add(i1, i2)
		add(i2, i1)
		add(i2, i0)
		add(i0, i2)
	}
	return ring
}

// taubinSmooth performs `iterations` lambda/mu passes over the indexed
// positions. Indices, and hence connectivity, are left untouched.
func taubinSmooth(mesh *IndexedMesh, iterations int) {
	if iterations <= 0 || mesh.vertexCount() == 0 {
		return
	}

	ring := oneRing(mesh)
	n := mesh.vertexCount()

	step := func(k float64) {
		next := make([]float64, len(mesh.Positions))
		copy(next, mesh.Positions)
		for v := 0; v < n; v++ {
			neighbours := ring[v]
			if len(neighbours) == 0 {
				continue
			}
			var mean r3.Vec
			for _, nb := range neighbours {
				mean = r3.Add(mean, mesh.vertex(nb))
			}
			mean = r3.Scale(1/float64(len(neighbours)), mean)
			p := mesh.vertex(uint32(v))
			delta := r3.Scale(k, r3.Sub(mean, p))
			updated := r3.Add(p, delta)
			j := 3 * v
			next[j], next[j+1], next[j+2] = updated.X, updated.Y, updated.Z
		}
		mesh.Positions = next
	}

	for i := 0; i < iterations; i++ {
		step(taubinLambda)
		step(taubinMu)
	}
}
