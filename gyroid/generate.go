package gyroid

import "log"

// snapLogThreshold is the cell-size drift, in mm, above which snapping is
// worth a diagnostic log line.
const snapLogThreshold = 0.1

// Generate sequences the Field Builder, Boundary Voider, Marching Cubes,
// (conditional) Component Extractor, Taubin Smoother, and Normal
// Estimator, reporting progress at the 5/28/30/75/80/90/100 checkpoints.
// It validates parameters up front and does not catch internal errors;
// they propagate.
//
// The second return value is the effective (snapped) cell size in mm,
// since the requested size rarely divides the bounding box evenly. A
// field with no surface is not an error: MeshData comes back with
// zero-length slices and callers must tolerate that. The structural
// enclosure is classified independently of WallThreshold, so an extreme
// WallThreshold alone does not empty the mesh.
func Generate(params Parameters, progress ProgressFunc) (MeshData, float64, error) {
	if progress == nil {
		progress = noopProgress
	}

	if err := params.Validate(); err != nil {
		return MeshData{}, 0, err
	}

	field, snappedCellSize, err := buildField(params, progress)
	if err != nil {
		return MeshData{}, 0, err
	}
	if d := snappedCellSize - params.CellSize; d > snapLogThreshold || d < -snapLogThreshold {
		log.Printf("gyroid: cellSize snapped from %.4fmm to %.4fmm", params.CellSize, snappedCellSize)
	}

	voidBoundary(field)
	progress(30)

	mesh, err := marchingCubes(field, progress)
	if err != nil {
		return MeshData{}, 0, err
	}
	progress(75)

	if params.Mode == Shell {
		mesh = LargestComponent(mesh)
	}
	progress(80)

	taubinSmooth(mesh, params.SmoothingIterations)
	progress(90)

	estimateNormals(mesh)
	progress(100)

	return toMeshData(mesh), snappedCellSize, nil
}
