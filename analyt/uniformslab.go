// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package analyt supplies closed-form reference values for the canonical
// DRR test geometries, the way the teacher's ana package supplies
// analytic solutions to validate the FEM solver's numerical output.
package analyt

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm"

	"github.com/gofem-imaging/drrgo/atten"
)

// UniformSlabFraction returns the exact Beer-Lambert attenuated fraction
// for a ray crossing thicknessMM of a uniform material of the given
// Hounsfield value, at the attenuator's energy: 1 - exp(-mu(hu)*0.1*thickness).
// This is the closed-form counterpart of atten.VectorAttenuation applied
// to a single, already-summed path length.
func UniformSlabFraction(a *atten.Attenuation, hu, thicknessMM float64) (float64, error) {
	if a == nil {
		return 0, chk.Err("analyt.UniformSlabFraction: attenuator must not be nil")
	}
	mu := a.AttenuationCoefficient(hu)
	return 1 - math.Exp(-mu*0.1*thicknessMM), nil
}

// AxisAlignedRodDensity returns the exact accumulated density d = sum(hu_i
// * delta) for a ray travelling the full extent of an nx-voxel row of
// spacing delta along one axis, given the per-voxel Hounsfield values.
func AxisAlignedRodDensity(hu []float64, delta float64) float64 {
	sum := 0.0
	for _, v := range hu {
		sum += v * delta
	}
	return sum
}

// DiagonalPathLength returns the exact geometric path length of a 2D
// diagonal ray crossing a square region of the given side length, the
// closed-form value for spec.md §8 scenario 3 (diagonal ray through a 2x2x1
// volume).
func DiagonalPathLength(sideMM float64) float64 {
	return sideMM * math.Sqrt2
}

// ReferencePoint is a previously computed (input, expected output) sample,
// used by NearestReference to look up analytic expectations recorded at
// irregular sample points (e.g. from a published validation table).
type ReferencePoint struct {
	X, Y, Z float64
	Value   float64
}

// NearestReference finds the reference value whose coordinate is closest
// to (x,y,z) among pts, using gm.Bins for spatial lookup the same way the
// teacher's out package bins integration-point coordinates for nearest
// lookup (out.IpsBins). With very few reference points (the common case
// for a handful of published validation samples) this is a convenience,
// not a performance necessity.
func NearestReference(pts []ReferencePoint, x, y, z float64) (ReferencePoint, bool) {
	if len(pts) == 0 {
		return ReferencePoint{}, false
	}

	lo := []float64{pts[0].X, pts[0].Y, pts[0].Z}
	hi := []float64{pts[0].X, pts[0].Y, pts[0].Z}
	for _, p := range pts {
		lo[0], hi[0] = math.Min(lo[0], p.X), math.Max(hi[0], p.X)
		lo[1], hi[1] = math.Min(lo[1], p.Y), math.Max(hi[1], p.Y)
		lo[2], hi[2] = math.Min(lo[2], p.Z), math.Max(hi[2], p.Z)
	}

	var bins gm.Bins
	bins.Init(lo, hi, len(pts))
	for id, p := range pts {
		bins.Append([]float64{p.X, p.Y, p.Z}, id)
	}

	id, _, err := bins.Find([]float64{x, y, z}, 1e-6)
	if err != nil || id < 0 {
		return nearestLinear(pts, x, y, z)
	}
	return pts[id], true
}

func nearestLinear(pts []ReferencePoint, x, y, z float64) (ReferencePoint, bool) {
	best := pts[0]
	bestD := math.Inf(1)
	for _, p := range pts {
		dx, dy, dz := p.X-x, p.Y-y, p.Z-z
		d := dx*dx + dy*dy + dz*dz
		if d < bestD {
			bestD, best = d, p
		}
	}
	return best, true
}
