// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// PixelSpace owns a dense 2D scalar grid (the detector image) plus the
// plane geometry that maps pixel indices to world coordinates. Pos is the
// centre of pixel (0,0); Cosines holds the two unit direction triples
// [cx1,cy1,cz1, cx2,cy2,cz2] for increasing column and increasing row.
type PixelSpace struct {
	Nx, Ny         int // columns, rows
	DeltaCol       float64
	DeltaRow       float64
	Pos            Coordinate
	Cosines        [6]float64
	data           [][]float64 // [Ny][Nx], float64 during DRR accumulation
}

// NewPixelSpace validates and builds an explicit-geometry PixelSpace
func NewPixelSpace(nx, ny int, deltaCol, deltaRow float64, pos Coordinate, cosines []float64) (*PixelSpace, error) {
	if nx <= 0 || ny <= 0 {
		return nil, chk.Err("PixelSpace: nx and ny must be positive. got (%d,%d)", nx, ny)
	}
	if deltaCol <= 0 || deltaRow <= 0 {
		return nil, chk.Err("PixelSpace: delta_col and delta_row must be positive. got (%g,%g)", deltaCol, deltaRow)
	}
	if len(cosines) != 6 {
		return nil, chk.Err("PixelSpace: cosines must have exactly 6 entries. got %d", len(cosines))
	}
	o := &PixelSpace{
		Nx: nx, Ny: ny,
		DeltaCol: deltaCol, DeltaRow: deltaRow,
		Pos:  pos,
		data: utl.Alloc(ny, nx),
	}
	copy(o.Cosines[:], cosines)
	return o, nil
}

// Setup builds a PixelSpace from beam geometry, as spec.md §4.2 defines:
// the column direction rotates with the gantry in the XY plane, the row
// direction is fixed at -Z, and the panel sits perpendicular to the beam
// axis, offset so that the detector is centred on the isocenter.
func Setup(nx, ny int, deltaCol, deltaRow, gantryAngleDeg, sdd float64, isocenter Coordinate) (*PixelSpace, error) {
	if sdd <= 0 {
		return nil, chk.Err("PixelSpace.Setup: sdd must be positive. got %g", sdd)
	}
	theta := gantryAngleDeg * math.Pi / 180.0
	cosT, sinT := math.Cos(theta), math.Sin(theta)
	cosines := []float64{cosT, sinT, 0, 0, 0, -1}

	rowOffset := deltaRow * float64(ny/2)
	if ny%2 == 0 {
		rowOffset = deltaRow * (float64(ny)/2 - 0.5)
	}
	colOffset := deltaCol * float64(nx/2)
	if nx%2 == 0 {
		colOffset = deltaCol * (float64(nx)/2 - 0.5)
	}

	imgOffsetX := -0.5 * sdd * sinT
	imgOffsetY := 0.5 * sdd * cosT

	pos := Coordinate{
		X: isocenter.X - cosT*colOffset + imgOffsetX,
		Y: isocenter.Y - sinT*colOffset + imgOffsetY,
		Z: isocenter.Z + rowOffset,
	}
	pos = Coordinate{Round14(pos.X), Round14(pos.Y), Round14(pos.Z)}

	return NewPixelSpace(nx, ny, deltaCol, deltaRow, pos, cosines)
}

// World maps pixel indices (i,j) -- i along columns, j along rows -- to
// the corresponding world-space Coordinate:
// world(i,j) = pos + i*delta_col*(cx1,cy1,cz1) + j*delta_row*(cx2,cy2,cz2)
func (o *PixelSpace) World(i, j int) Coordinate {
	c := o.Cosines
	return Coordinate{
		X: o.Pos.X + float64(i)*o.DeltaCol*c[0] + float64(j)*o.DeltaRow*c[3],
		Y: o.Pos.Y + float64(i)*o.DeltaCol*c[1] + float64(j)*o.DeltaRow*c[4],
		Z: o.Pos.Z + float64(i)*o.DeltaCol*c[2] + float64(j)*o.DeltaRow*c[5],
	}
}

// At returns the scalar stored at pixel (i,j)
func (o *PixelSpace) At(i, j int) (float64, error) {
	if !o.inBounds(i, j) {
		return 0, chk.Err("PixelSpace.At: index (%d,%d) out of range for shape (%d,%d)", i, j, o.Nx, o.Ny)
	}
	return o.data[j][i], nil
}

// Set stores v at pixel (i,j)
func (o *PixelSpace) Set(i, j int, v float64) error {
	if !o.inBounds(i, j) {
		return chk.Err("PixelSpace.Set: index (%d,%d) out of range for shape (%d,%d)", i, j, o.Nx, o.Ny)
	}
	o.data[j][i] = v
	return nil
}

func (o *PixelSpace) inBounds(i, j int) bool {
	return i >= 0 && i < o.Nx && j >= 0 && j < o.Ny
}

// Orthonormal reports whether the column and row direction cosines are
// unit vectors and mutually perpendicular, within tol. Setup always
// produces an orthonormal basis; this exists for callers constructing a
// PixelSpace directly via NewPixelSpace with hand-supplied cosines.
func (o *PixelSpace) Orthonormal(tol float64) bool {
	c := o.Cosines
	col := la.Vector{c[0], c[1], c[2]}
	row := la.Vector{c[3], c[4], c[5]}
	if math.Abs(la.VecNorm(col)-1) > tol {
		return false
	}
	if math.Abs(la.VecNorm(row)-1) > tol {
		return false
	}
	dot := col[0]*row[0] + col[1]*row[1] + col[2]*row[2]
	return math.Abs(dot) <= tol
}

// Flatten returns the pixel grid as a row-major flat slice (index =
// j*Nx+i), used to hand the buffer to gosl/mpi's AllReduceSum for
// distributed batch rendering.
func (o *PixelSpace) Flatten() []float64 {
	flat := make([]float64, o.Nx*o.Ny)
	for j := 0; j < o.Ny; j++ {
		copy(flat[j*o.Nx:(j+1)*o.Nx], o.data[j])
	}
	return flat
}

// LoadFlat overwrites the pixel grid from a row-major flat slice produced
// by Flatten (e.g. after an mpi.AllReduceSum across partitioned renders).
func (o *PixelSpace) LoadFlat(flat []float64) error {
	if len(flat) != o.Nx*o.Ny {
		return chk.Err("PixelSpace.LoadFlat: expected %d values, got %d", o.Nx*o.Ny, len(flat))
	}
	for j := 0; j < o.Ny; j++ {
		copy(o.data[j], flat[j*o.Nx:(j+1)*o.Nx])
	}
	return nil
}

// ToInt12 returns a new PixelSpace of the same shape where every value is
// round(v*4095), the 12-bit DRR scaling of spec.md §4.5
func (o *PixelSpace) ToInt12() *PixelSpace {
	out := &PixelSpace{
		Nx: o.Nx, Ny: o.Ny,
		DeltaCol: o.DeltaCol, DeltaRow: o.DeltaRow,
		Pos: o.Pos, Cosines: o.Cosines,
		data: utl.Alloc(o.Ny, o.Nx),
	}
	for j := 0; j < o.Ny; j++ {
		for i := 0; i < o.Nx; i++ {
			out.data[j][i] = math.Round(o.data[j][i] * 4095)
		}
	}
	return out
}
