// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// VoxelSpace owns a dense 3D scalar grid (Hounsfield units, or density in
// tests) plus the geometry that maps voxel indices to world coordinates.
// Pos is the centre of voxel (0,0,0); spacings are per-axis edge lengths
// in mm. The grid's axes are world-aligned: VoxelSpace never represents
// rotated or sheared volumes.
type VoxelSpace struct {
	Nx, Ny, Nz             int
	DeltaX, DeltaY, DeltaZ float64
	Pos                    Coordinate
	data                   la.Vector // flat, length Nx*Ny*Nz
}

// NewVoxelSpace allocates a VoxelSpace of shape (nx,ny,nz) with the given
// per-axis spacing (mm) and the world position of the centre of voxel
// (0,0,0). All values start at zero.
func NewVoxelSpace(nx, ny, nz int, dx, dy, dz float64, pos Coordinate) (*VoxelSpace, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, chk.Err("VoxelSpace: nx, ny and nz must be positive. got (%d,%d,%d)", nx, ny, nz)
	}
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return nil, chk.Err("VoxelSpace: delta_x, delta_y and delta_z must be positive. got (%g,%g,%g)", dx, dy, dz)
	}
	if !pos.IsFinite() {
		return nil, chk.Err("VoxelSpace: pos must be finite. got %+v", pos)
	}
	return &VoxelSpace{
		Nx: nx, Ny: ny, Nz: nz,
		DeltaX: dx, DeltaY: dy, DeltaZ: dz,
		Pos:  pos,
		data: make(la.Vector, nx*ny*nz),
	}, nil
}

// Len returns the total number of voxels nx*ny*nz
func (o *VoxelSpace) Len() int {
	return o.Nx * o.Ny * o.Nz
}

// FlatIndex converts a 3-index (i,j,k) into the flat index used by Ray:
// flat = nx*ny*k + nx*j + i
func (o *VoxelSpace) FlatIndex(i, j, k int) int {
	return o.Nx*o.Ny*k + o.Nx*j + i
}

// InBounds reports whether (i,j,k) lies within the voxel space's shape.
// This is where spec.md §9's `j < nz` bug in the original implementation
// is corrected to `j < ny`.
func (o *VoxelSpace) InBounds(i, j, k int) bool {
	return i >= 0 && i < o.Nx && j >= 0 && j < o.Ny && k >= 0 && k < o.Nz
}

// At returns the scalar stored at (i,j,k)
func (o *VoxelSpace) At(i, j, k int) (float64, error) {
	if !o.InBounds(i, j, k) {
		return 0, chk.Err("VoxelSpace.At: index (%d,%d,%d) out of range for shape (%d,%d,%d)", i, j, k, o.Nx, o.Ny, o.Nz)
	}
	return o.data[o.FlatIndex(i, j, k)], nil
}

// Set stores v at (i,j,k)
func (o *VoxelSpace) Set(i, j, k int, v float64) error {
	if !o.InBounds(i, j, k) {
		return chk.Err("VoxelSpace.Set: index (%d,%d,%d) out of range for shape (%d,%d,%d)", i, j, k, o.Nx, o.Ny, o.Nz)
	}
	o.data[o.FlatIndex(i, j, k)] = v
	return nil
}

// AtFlat returns the scalar stored at the given flat index, as reported
// by a Ray trace
func (o *VoxelSpace) AtFlat(flat int) (float64, error) {
	if flat < 0 || flat >= len(o.data) {
		return 0, chk.Err("VoxelSpace.AtFlat: flat index %d out of range [0,%d)", flat, len(o.data))
	}
	return o.data[flat], nil
}

// SetFlat stores v at the given flat index
func (o *VoxelSpace) SetFlat(flat int, v float64) error {
	if flat < 0 || flat >= len(o.data) {
		return chk.Err("VoxelSpace.SetFlat: flat index %d out of range [0,%d)", flat, len(o.data))
	}
	o.data[flat] = v
	return nil
}

// Fill sets every voxel to v; handy for uniform-phantom tests
func (o *VoxelSpace) Fill(v float64) {
	for i := range o.data {
		o.data[i] = v
	}
}

// GeometryKey returns an identity for o's shape, spacing and position alone,
// leaving the (potentially large) voxel contents untouched, so a VoxelSpace
// can be used as a map key or cache identity without hashing its data. Two
// VoxelSpaces with SameGeometry true always produce equal keys.
func (o *VoxelSpace) GeometryKey() [9]float64 {
	return [9]float64{
		float64(o.Nx), float64(o.Ny), float64(o.Nz),
		o.DeltaX, o.DeltaY, o.DeltaZ,
		o.Pos.X, o.Pos.Y, o.Pos.Z,
	}
}

// SameGeometry reports whether o and p share shape, spacing and position
func (o *VoxelSpace) SameGeometry(p *VoxelSpace) bool {
	return o.Nx == p.Nx && o.Ny == p.Ny && o.Nz == p.Nz &&
		o.DeltaX == p.DeltaX && o.DeltaY == p.DeltaY && o.DeltaZ == p.DeltaZ &&
		o.Pos.Equals(p.Pos)
}

// Equals reports whether o and p share geometry and contents
func (o *VoxelSpace) Equals(p *VoxelSpace) bool {
	if !o.SameGeometry(p) {
		return false
	}
	for i := range o.data {
		if o.data[i] != p.data[i] {
			return false
		}
	}
	return true
}

// PlaneX returns the world x-coordinate of voxel-grid plane i (spec.md
// §4.4): plane 0 bounds the low edge of voxel 0
func (o *VoxelSpace) PlaneX(i int) float64 {
	return o.Pos.X - 0.5*o.DeltaX + float64(i)*o.DeltaX
}

func (o *VoxelSpace) PlaneY(j int) float64 {
	return o.Pos.Y - 0.5*o.DeltaY + float64(j)*o.DeltaY
}

func (o *VoxelSpace) PlaneZ(k int) float64 {
	return o.Pos.Z - 0.5*o.DeltaZ + float64(k)*o.DeltaZ
}

// LowEdge returns the coordinate of the plane-0 corner of the voxel space
func (o *VoxelSpace) LowEdge() Coordinate {
	return Coordinate{o.PlaneX(0), o.PlaneY(0), o.PlaneZ(0)}
}

// HighEdge returns the coordinate of the plane-Nx/Ny/Nz corner
func (o *VoxelSpace) HighEdge() Coordinate {
	return Coordinate{o.PlaneX(o.Nx), o.PlaneY(o.Ny), o.PlaneZ(o.Nz)}
}
