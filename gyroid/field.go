package gyroid

import (
	"fmt"
	"math"
	"runtime"
	"sync"
)

// ProgressFunc receives a percentage checkpoint in [0, 100]. It has no
// return value, so it cannot cancel generation; an embedder may treat
// repeated calls as a cooperative yield point.
type ProgressFunc func(percent float64)

func noopProgress(float64) {}

// BinaryField is a (R+1)^3 solid/void classification over a cube
// centred at the origin, step = Size/R in every axis.
type BinaryField struct {
	R    int
	Size float64
	Step float64
	// Data holds 1 (solid) or 0 (void), indexed i = x + y*(R+1) + z*(R+1)^2.
	Data []uint8
}

func newBinaryField(r int, size float64) *BinaryField {
	n := r + 1
	return &BinaryField{
		R:    r,
		Size: size,
		Step: size / float64(r),
		Data: make([]uint8, n*n*n),
	}
}

// allocGuard runs alloc and converts a runtime allocation panic (grid too
// large for available memory) into an *OutOfMemoryError instead of
// crashing the process.
func allocGuard(reason string, alloc func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &OutOfMemoryError{Reason: fmt.Sprintf("%s: %v", reason, r)}
		}
	}()
	alloc()
	return nil
}

func (f *BinaryField) n() int { return f.R + 1 }

func (f *BinaryField) index(x, y, z int) int {
	n := f.n()
	return x + y*n + z*n*n
}

// At returns the solid(1)/void(0) classification at grid point (x,y,z).
func (f *BinaryField) At(x, y, z int) uint8 {
	return f.Data[f.index(x, y, z)]
}

func (f *BinaryField) set(x, y, z int, v uint8) {
	f.Data[f.index(x, y, z)] = v
}

//-----------------------------------------------------------------------------
// Field Builder

// buildField samples the (R+1)^3 grid and classifies each voxel as solid
// or void, fusing the gyroid wall with the structural enclosure and
// carving port openings. Progress is reported into [5, 28].
func buildField(p Parameters, progress ProgressFunc) (*BinaryField, float64, error) {
	if progress == nil {
		progress = noopProgress
	}
	progress(5)

	_, snapped := snapCellSize(p.Size, p.CellSize)

	n := p.Resolution + 1
	var field *BinaryField
	err := allocGuard("field grid", func() {
		field = newBinaryField(p.Resolution, p.Size)
	})
	if err != nil {
		return nil, 0, err
	}
	step := field.Step
	half := p.Size / 2

	// Coordinate precomputation: world mm, gyroid phase, and its sin/cos.
	mm := make([]float64, n)
	sinv := make([]float64, n)
	cosv := make([]float64, n)
	phase := 2 * math.Pi / snapped
	for i := 0; i < n; i++ {
		mm[i] = -half + float64(i)*step
		rad := mm[i] * phase
		sinv[i], cosv[i] = math.Sin(rad), math.Cos(rad)
	}

	faceDepth := p.ShellThickness + 2*step
	edgeMargin := p.ShellThickness + step
	bw := p.FrameBeamWidth

	classify := func(xi, yi, zi int) uint8 {
		g := sinv[xi]*cosv[yi] + sinv[yi]*cosv[zi] + sinv[zi]*cosv[xi]
		channelA := g > p.WallThreshold
		channelB := g < -p.WallThreshold
		wall := math.Abs(g) <= p.WallThreshold

		x, y, z := mm[xi], mm[yi], mm[zi]
		var structural bool

		switch p.Mode {
		case Frame:
			nearX := math.Abs(x) >= half-bw
			nearY := math.Abs(y) >= half-bw
			nearZ := math.Abs(z) >= half-bw
			structural = (nearX && nearY) || (nearX && nearZ) || (nearY && nearZ)
		default: // Shell
			inInner := math.Abs(x) <= half-p.ShellThickness &&
				math.Abs(y) <= half-p.ShellThickness &&
				math.Abs(z) <= half-p.ShellThickness
			structural = !inInner
			if !p.MakeManifold {
				zFace := z < -half+faceDepth || z > half-faceDepth
				xFace := x < -half+faceDepth || x > half-faceDepth
				nearYEdge := y < -half+edgeMargin || y > half-edgeMargin
				openA := zFace && !xFace && !nearYEdge && channelA
				openB := xFace && !zFace && !nearYEdge && channelB
				if openA || openB {
					structural = false
				}
			}
		}

		if structural || wall {
			return 1
		}
		return 0
	}

	// Partition the z-slabs across workers; each voxel's classification
	// is independent, so a barrier after the fan-out is sufficient.
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	var done int64
	var mu sync.Mutex
	total := float64(n) * float64(n) * float64(n)
	reportEvery := int64(300000)

	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		z0 := w * chunk
		z1 := z0 + chunk
		if z1 > n {
			z1 = n
		}
		if z0 >= z1 {
			continue
		}
		wg.Add(1)
		go func(z0, z1 int) {
			defer wg.Done()
			var local int64
			for zi := z0; zi < z1; zi++ {
				for yi := 0; yi < n; yi++ {
					for xi := 0; xi < n; xi++ {
						field.set(xi, yi, zi, classify(xi, yi, zi))
						local++
						if local >= reportEvery {
							mu.Lock()
							done += local
							pct := 5 + 23*float64(done)/total
							mu.Unlock()
							local = 0
							progress(pct)
						}
					}
				}
			}
			if local > 0 {
				mu.Lock()
				done += local
				mu.Unlock()
			}
		}(z0, z1)
	}
	wg.Wait()

	progress(28)
	return field, snapped, nil
}

//-----------------------------------------------------------------------------
// Boundary Voider

// voidBoundary forces the outermost grid shell to void so marching cubes
// can close every external face of the enclosure and the gyroid wall.
func voidBoundary(f *BinaryField) {
	n := f.n()
	last := f.R
	for z := 0; z < n; z++ {
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if x == 0 || x == last || y == 0 || y == last || z == 0 || z == last {
					f.set(x, y, z, 0)
				}
			}
		}
	}
}
