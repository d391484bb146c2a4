package gyroid

import (
	"bufio"
	"bytes"
	"encoding/binary"

	"gonum.org/v1/gonum/spatial/r3"
)

const stlHeaderSize = 80

// ExportSTL de-indexes mesh data into a binary STL triangle soup: an
// 80-byte zeroed header, a little-endian uint32 triangle count, then one
// 50-byte record per triangle (face normal, three vertices, a zeroed
// 2-byte attribute count). The face normal is recomputed from the
// triangle's own positions, not interpolated from the vertex normals; a
// degenerate (zero-area) triangle emits a zero normal.
func ExportSTL(mesh MeshData) ([]byte, error) {
	triangleCount := len(mesh.Indices) / 3

	buf := new(bytes.Buffer)
	w := bufio.NewWriter(buf)

	if _, err := w.Write(make([]byte, stlHeaderSize)); err != nil {
		return nil, err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(triangleCount)); err != nil {
		return nil, err
	}

	vertex := func(i uint32) r3.Vec {
		j := 3 * i
		return r3.Vec{
			X: float64(mesh.Positions[j]),
			Y: float64(mesh.Positions[j+1]),
			Z: float64(mesh.Positions[j+2]),
		}
	}

	writeVec := func(v r3.Vec) error {
		for _, c := range [3]float64{v.X, v.Y, v.Z} {
			if err := binary.Write(w, binary.LittleEndian, float32(c)); err != nil {
				return err
			}
		}
		return nil
	}

	for t := 0; t < triangleCount; t++ {
		a := vertex(mesh.Indices[3*t+0])
		b := vertex(mesh.Indices[3*t+1])
		c := vertex(mesh.Indices[3*t+2])

		cross := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		var normal r3.Vec
		if r3.Norm(cross) >= degenerateNormLimit {
			normal = r3.Unit(cross)
		}

		if err := writeVec(normal); err != nil {
			return nil, err
		}
		if err := writeVec(a); err != nil {
			return nil, err
		}
		if err := writeVec(b); err != nil {
			return nil, err
		}
		if err := writeVec(c); err != nil {
			return nil, err
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return nil, err
		}
	}

	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
