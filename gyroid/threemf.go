package gyroid

import (
	"bytes"

	"github.com/hpinc/go3mf"
)

// ExportThreeMF encodes mesh data as a single-object 3MF package: one
// mesh resource built from the indexed vertices/triangles, referenced by
// one build item. This is an additive sibling to ExportSTL for consumers
// that want a packaged, unit-aware format instead of a raw triangle dump.
func ExportThreeMF(mesh MeshData) ([]byte, error) {
	vertices := make([]go3mf.Point3D, mesh.vertexCount())
	for i := range vertices {
		j := 3 * i
		vertices[i] = go3mf.Point3D{mesh.Positions[j], mesh.Positions[j+1], mesh.Positions[j+2]}
	}

	triangles := make([]go3mf.Triangle, mesh.triangleCount())
	for i := range triangles {
		j := 3 * i
		triangles[i] = go3mf.Triangle{
			V1: mesh.Indices[j+0],
			V2: mesh.Indices[j+1],
			V3: mesh.Indices[j+2],
		}
	}

	model := new(go3mf.Model)
	obj := &go3mf.Object{
		ID: 1,
		Mesh: &go3mf.Mesh{
			Vertices:  go3mf.Vertices{Vertex: vertices},
			Triangles: go3mf.Triangles{Triangle: triangles},
		},
	}
	model.Resources.Objects = append(model.Resources.Objects, obj)
	model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: 1})

	var buf bytes.Buffer
	enc := go3mf.NewEncoder(&buf)
	if err := enc.Encode(model); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (m MeshData) vertexCount() int   { return len(m.Positions) / 3 }
func (m MeshData) triangleCount() int { return len(m.Indices) / 3 }
