package gyroid

// minFacesForExtraction is the face-count floor below which component
// extraction is skipped; small meshes aren't worth the adjacency pass.
const minFacesForExtraction = 100

// LargestComponent keeps only the triangle-connected component with the
// most faces, compacting the vertex buffer and remapping indices while
// preserving winding. Two faces are neighbours iff they share a vertex.
//
// Only meaningful in Shell mode: in Frame mode the beam network and the
// gyroid wall are legitimately separate components, and discarding the
// smaller one would delete the beams.
func LargestComponent(mesh *IndexedMesh) *IndexedMesh {
	triCount := mesh.triangleCount()
	if triCount < minFacesForExtraction {
		return mesh
	}

	vertCount := mesh.vertexCount()

	// vertex -> faces sharing it
	facesOf := make([][]int, vertCount)
	for t := 0; t < triCount; t++ {
		for k := 0; k < 3; k++ {
			v := mesh.Indices[3*t+k]
			facesOf[v] = append(facesOf[v], t)
		}
	}

	component := make([]int, triCount)
	for i := range component {
		component[i] = -1
	}

	bestLabel, bestSize := -1, 0
	var queue []int
	for start := 0; start < triCount; start++ {
		if component[start] >= 0 {
			continue
		}
		label := start
		queue = queue[:0]
		queue = append(queue, start)
		component[start] = label
		size := 0
		for len(queue) > 0 {
			t := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			size++
			for k := 0; k < 3; k++ {
				v := mesh.Indices[3*t+k]
				for _, nt := range facesOf[v] {
					if component[nt] == -1 {
						component[nt] = label
						queue = append(queue, nt)
					}
				}
			}
		}
		if size > bestSize {
			bestSize = size
			bestLabel = label
		}
	}

	if bestLabel == -1 {
		return mesh
	}

	remap := make([]int32, vertCount)
	for i := range remap {
		remap[i] = -1
	}

	out := &IndexedMesh{}
	for t := 0; t < triCount; t++ {
		if component[t] != bestLabel {
			continue
		}
		for k := 0; k < 3; k++ {
			v := mesh.Indices[3*t+k]
			if remap[v] == -1 {
				j := 3 * int(v)
				newIdx := out.vertexCount()
				out.Positions = append(out.Positions, mesh.Positions[j], mesh.Positions[j+1], mesh.Positions[j+2])
				remap[v] = int32(newIdx)
			}
			out.Indices = append(out.Indices, uint32(remap[v]))
		}
	}

	return out
}
