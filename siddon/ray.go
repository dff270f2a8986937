// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package siddon implements the Siddon (1985) / Jacobs et al. (1998)
// ray-voxel intersection algorithm: given a source point, a target point
// and a VoxelSpace, it enumerates the voxels the segment passes through
// together with the path length inside each one.
package siddon

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/gofem-imaging/drrgo/geom"
)

// lengthEpsilon is the smallest step length considered non-degenerate;
// zero-length crossings (plane ties) are swallowed silently rather than
// reported, per spec's invariant that every reported length is strictly
// positive.
const lengthEpsilon = 1e-12

// Ray is a short-lived computation: it borrows a VoxelSpace for the
// duration of one trace and is not safe to share across goroutines, but
// may be Reset and reused sequentially within a single one.
type Ray struct {
	P1, P2 geom.Coordinate
	VS     *geom.VoxelSpace

	Indices []int
	Lengths []float64
	D       float64 // accumulated density: sum(length[i] * VS[index[i]])
}

// New builds a Ray for the segment p1->p2 through vs. vs must not be nil.
func New(p1, p2 geom.Coordinate, vs *geom.VoxelSpace) (*Ray, error) {
	if vs == nil {
		return nil, chk.Err("siddon.New: VoxelSpace must not be nil")
	}
	o := &Ray{P1: p1, P2: p2, VS: vs}
	o.Reset(p1, p2)
	return o, nil
}

// Reset rebinds the ray to a new source/target pair and clears prior
// results, allowing the Ray to be reused within one goroutine.
func (o *Ray) Reset(p1, p2 geom.Coordinate) {
	o.P1, o.P2 = p1, p2
	o.Indices = o.Indices[:0]
	o.Lengths = o.Lengths[:0]
	o.D = 0
}

// Trace runs the Siddon traversal and materializes Indices, Lengths and D.
// A ray that misses the VoxelSpace, or with P1==P2, produces empty results
// and D==0; this is not an error.
func (o *Ray) Trace() error {
	o.Indices = o.Indices[:0]
	o.Lengths = o.Lengths[:0]
	o.D = 0

	it, err := newIterator(o.P1, o.P2, o.VS)
	if err != nil {
		return err
	}
	for {
		flat, length, ok, err := it.next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		v, err := o.VS.AtFlat(flat)
		if err != nil {
			return err
		}
		o.Indices = append(o.Indices, flat)
		o.Lengths = append(o.Lengths, length)
		o.D += length * v
	}
	return nil
}

// Step is one (voxel, path length) pair yielded by Stream.
type Step struct {
	Index  int
	Length float64
}

// Stream returns a finite, non-restartable, lazy sequence of (flat index,
// path length) pairs equivalent to what Trace would materialize into
// Indices/Lengths, without allocating the backing slices up front. The
// returned function returns ok=false once the traversal is exhausted.
func Stream(p1, p2 geom.Coordinate, vs *geom.VoxelSpace) (next func() (Step, bool, error), err error) {
	it, err := newIterator(p1, p2, vs)
	if err != nil {
		return nil, err
	}
	return func() (Step, bool, error) {
		flat, length, ok, err := it.next()
		if err != nil || !ok {
			return Step{}, false, err
		}
		return Step{Index: flat, Length: length}, true, nil
	}, nil
}

// round8 rounds to 8 decimal places, taming the floating-point residue in
// the main traversal loop's alpha comparisons (spec's numerical
// robustness rule).
func round8(v float64) float64 {
	if math.IsInf(v, 0) {
		return v
	}
	const scale = 1e8
	return math.Round(v*scale) / scale
}

// axisAlpha computes the parametric alpha at which the ray crosses a
// plane with the given world coordinate, on an axis where the ray moves
// by d over the whole segment. A zero-over-zero division (coincident
// plane and source) is replaced by +Inf so perpendicular rays degrade
// gracefully instead of propagating NaN; any other division by zero
// already yields +-Inf under IEEE 754 and is left alone.
func axisAlpha(planeCoord, p1c, d float64) float64 {
	a := (planeCoord - p1c) / d
	if math.IsNaN(a) {
		return math.Inf(1)
	}
	return a
}

// iterator holds the per-axis incremental state of one Siddon traversal.
type iterator struct {
	vs *geom.VoxelSpace

	i, j, k    int
	di, dj, dk int

	alphaX, alphaY, alphaZ               float64
	deltaAlphaX, deltaAlphaY, deltaAlphaZ float64

	alphaCurrent, alphaExit float64
	totalLen                float64

	done bool
}

// newIterator computes the entry point, initial voxel and per-axis
// stepping deltas for the segment p1->p2 through vs, per spec.md §4.4.
// A ray that misses the volume, or a zero-length segment, yields an
// iterator whose first next() call reports ok=false.
func newIterator(p1, p2 geom.Coordinate, vs *geom.VoxelSpace) (*iterator, error) {
	if vs == nil {
		return nil, chk.Err("siddon.newIterator: VoxelSpace must not be nil")
	}
	if p1.Equals(p2) {
		return &iterator{done: true}, nil
	}

	dx, dy, dz := p2.X-p1.X, p2.Y-p1.Y, p2.Z-p1.Z

	aX0, aXN := axisAlpha(vs.PlaneX(0), p1.X, dx), axisAlpha(vs.PlaneX(vs.Nx), p1.X, dx)
	aY0, aYN := axisAlpha(vs.PlaneY(0), p1.Y, dy), axisAlpha(vs.PlaneY(vs.Ny), p1.Y, dy)
	aZ0, aZN := axisAlpha(vs.PlaneZ(0), p1.Z, dz), axisAlpha(vs.PlaneZ(vs.Nz), p1.Z, dz)

	axMin, axMax := math.Min(aX0, aXN), math.Max(aX0, aXN)
	ayMin, ayMax := math.Min(aY0, aYN), math.Max(aY0, aYN)
	azMin, azMax := math.Min(aZ0, aZN), math.Max(aZ0, aZN)

	alphaMin := math.Max(axMin, math.Max(ayMin, azMin))
	alphaMax := math.Min(axMax, math.Min(ayMax, azMax))

	if alphaMax <= 0 || alphaMin >= 1 {
		return &iterator{done: true}, nil
	}

	alphaEntry := math.Max(alphaMin, 0)
	alphaExit := math.Min(alphaMax, 1)
	if alphaExit <= alphaEntry {
		return &iterator{done: true}, nil
	}

	totalLen := p1.Dist(p2) // corrected Euclidean length, spec.md §9

	entry := geom.Coordinate{
		X: p1.X + alphaEntry*dx,
		Y: p1.Y + alphaEntry*dy,
		Z: p1.Z + alphaEntry*dz,
	}
	i0 := floorIndex(entry.X, vs.PlaneX(0), vs.DeltaX, vs.Nx)
	j0 := floorIndex(entry.Y, vs.PlaneY(0), vs.DeltaY, vs.Ny)
	k0 := floorIndex(entry.Z, vs.PlaneZ(0), vs.DeltaZ, vs.Nz)

	if !vs.InBounds(i0, j0, k0) {
		return &iterator{done: true}, nil
	}

	it := &iterator{
		vs: vs,
		i:  i0, j: j0, k: k0,
		di: int(fun.Sign(dx)), dj: int(fun.Sign(dy)), dk: int(fun.Sign(dz)),
		alphaCurrent: alphaEntry,
		alphaExit:    alphaExit,
		totalLen:     totalLen,
	}

	it.alphaX = nextCrossingAlpha(dx, it.di, i0, vs.PlaneX, p1.X)
	it.alphaY = nextCrossingAlpha(dy, it.dj, j0, vs.PlaneY, p1.Y)
	it.alphaZ = nextCrossingAlpha(dz, it.dk, k0, vs.PlaneZ, p1.Z)

	if dx != 0 {
		it.deltaAlphaX = vs.DeltaX / math.Abs(dx)
	} else {
		it.deltaAlphaX = math.Inf(1)
	}
	if dy != 0 {
		it.deltaAlphaY = vs.DeltaY / math.Abs(dy)
	} else {
		it.deltaAlphaY = math.Inf(1)
	}
	if dz != 0 {
		it.deltaAlphaZ = vs.DeltaZ / math.Abs(dz)
	} else {
		it.deltaAlphaZ = math.Inf(1)
	}

	return it, nil
}

// floorIndex maps a world coordinate to a voxel index along one axis,
// clamped into [0,n-1]: the entry point is guaranteed (by construction)
// to lie within the slab, so any excursion outside [0,n-1] is floating
// point residue from landing exactly on a bounding plane.
func floorIndex(coord, plane0, delta float64, n int) int {
	idx := int(math.Floor((coord-plane0)/delta + 1e-9))
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}

// nextCrossingAlpha returns the alpha at which the ray next crosses a
// plane boundary of the current voxel along one axis. If the ray is
// perpendicular to this axis (d==0), it never crosses another plane on
// it, so +Inf is returned and this axis never wins the per-step min.
func nextCrossingAlpha(d float64, step, idx int, plane func(int) float64, p1c float64) float64 {
	if d == 0 {
		return math.Inf(1)
	}
	var planeIdx int
	if step > 0 {
		planeIdx = idx + 1
	} else {
		planeIdx = idx
	}
	return axisAlpha(plane(planeIdx), p1c, d)
}

// next returns the next (flat index, length) pair, or ok=false once the
// traversal has exhausted the segment inside the VoxelSpace.
func (o *iterator) next() (flat int, length float64, ok bool, err error) {
	for !o.done {
		if round8(o.alphaCurrent) >= round8(o.alphaExit) {
			o.done = true
			break
		}

		alphaNext := math.Min(o.alphaX, math.Min(o.alphaY, o.alphaZ))
		clipped := false
		if alphaNext > o.alphaExit {
			alphaNext = o.alphaExit
			clipped = true
		}

		stepLen := (alphaNext - o.alphaCurrent) * o.totalLen
		ci, cj, ck := o.i, o.j, o.k
		o.alphaCurrent = alphaNext

		if clipped {
			o.done = true
		} else {
			switch {
			case alphaNext == o.alphaX:
				o.i += o.di
				o.alphaX += o.deltaAlphaX
			case alphaNext == o.alphaY:
				o.j += o.dj
				o.alphaY += o.deltaAlphaY
			case alphaNext == o.alphaZ:
				o.k += o.dk
				o.alphaZ += o.deltaAlphaZ
			default:
				// every branch above is exhaustive: alphaNext is the min
				// of exactly these three values, so one must match.
				chk.Panic("siddon: internal invariant violation: step dispatch fell through at alpha=%g", alphaNext)
			}
			if !o.vs.InBounds(o.i, o.j, o.k) {
				o.done = true
			}
		}

		if stepLen > lengthEpsilon {
			if !o.vs.InBounds(ci, cj, ck) {
				chk.Panic("siddon: internal invariant violation: voxel (%d,%d,%d) out of bounds during traversal", ci, cj, ck)
			}
			return o.vs.FlatIndex(ci, cj, ck), stepLen, true, nil
		}
		// zero-length (plane-tie) step: loop again without reporting it
	}
	return 0, 0, false, nil
}
