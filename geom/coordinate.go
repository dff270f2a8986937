// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package geom implements the world-space geometry of a DRR: voxel grids,
// pixel grids and the coordinate arithmetic that links them
package geom

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// Coordinate is an immutable point in world space, in millimetres
type Coordinate struct {
	X, Y, Z float64
}

// NewCoordinate creates a new Coordinate
func NewCoordinate(x, y, z float64) Coordinate {
	return Coordinate{X: x, Y: y, Z: z}
}

// Vector returns the coordinate as a la.Vector [x,y,z], for callers that
// want gosl's linear-algebra helpers
func (o Coordinate) Vector() la.Vector {
	return la.Vector{o.X, o.Y, o.Z}
}

// Add returns o+p
func (o Coordinate) Add(p Coordinate) Coordinate {
	return Coordinate{o.X + p.X, o.Y + p.Y, o.Z + p.Z}
}

// Sub returns o-p
func (o Coordinate) Sub(p Coordinate) Coordinate {
	return Coordinate{o.X - p.X, o.Y - p.Y, o.Z - p.Z}
}

// Scale returns o scaled by s
func (o Coordinate) Scale(s float64) Coordinate {
	return Coordinate{o.X * s, o.Y * s, o.Z * s}
}

// Dist returns the Euclidean distance between o and p
func (o Coordinate) Dist(p Coordinate) float64 {
	dx, dy, dz := o.X-p.X, o.Y-p.Y, o.Z-p.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// IsFinite returns whether all three components are finite
func (o Coordinate) IsFinite() bool {
	return !math.IsNaN(o.X) && !math.IsInf(o.X, 0) &&
		!math.IsNaN(o.Y) && !math.IsInf(o.Y, 0) &&
		!math.IsNaN(o.Z) && !math.IsInf(o.Z, 0)
}

// Equals returns whether o and p are componentwise equal
func (o Coordinate) Equals(p Coordinate) bool {
	return o.X == p.X && o.Y == p.Y && o.Z == p.Z
}

// Round14 rounds v to 14 decimal places; PixelSpace.Setup applies it to each
// component of pos to suppress residue from its sin/cos terms
func Round14(v float64) float64 {
	const scale = 1e14
	return math.Round(v*scale) / scale
}
