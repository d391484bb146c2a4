package gyroid

// MeshData is the external, serialization-ready mesh representation:
// flat float32 position/normal triples and uint32 triangle indices.
type MeshData struct {
	Positions []float32
	Normals   []float32
	Indices   []uint32
}

func toMeshData(m *IndexedMesh) MeshData {
	positions := make([]float32, len(m.Positions))
	for i, v := range m.Positions {
		positions[i] = float32(v)
	}
	normals := make([]float32, len(m.Normals))
	for i, v := range m.Normals {
		normals[i] = float32(v)
	}
	indices := make([]uint32, len(m.Indices))
	copy(indices, m.Indices)
	return MeshData{Positions: positions, Normals: normals, Indices: indices}
}
