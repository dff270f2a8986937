// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package beam ties geom, siddon and atten together into the DRR
// assembly loop: one ray per detector pixel, one attenuated intensity
// per ray.
package beam

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/gofem-imaging/drrgo/atten"
	"github.com/gofem-imaging/drrgo/geom"
	"github.com/gofem-imaging/drrgo/siddon"
)

// BeamGeometry combines a source position, an isocenter, a VoxelSpace and
// an Attenuation model to produce a DRR.
type BeamGeometry struct {
	Source     geom.Coordinate
	Isocenter  geom.Coordinate
	VS         *geom.VoxelSpace
	Attenuator *atten.Attenuation
}

// New builds a BeamGeometry directly from a source position. attenuator
// may be nil, in which case a 50 keV default (atten.DefaultEnergyMeV) is
// used, matching spec.md §6's constructor default.
func New(source, isocenter geom.Coordinate, vs *geom.VoxelSpace, attenuator *atten.Attenuation) (*BeamGeometry, error) {
	if vs == nil {
		return nil, chk.Err("beam.New: VoxelSpace must not be nil")
	}
	if attenuator == nil {
		var err error
		attenuator, err = atten.New(atten.DefaultEnergyMeV)
		if err != nil {
			return nil, err
		}
	}
	return &BeamGeometry{Source: source, Isocenter: isocenter, VS: vs, Attenuator: attenuator}, nil
}

// Setup builds a BeamGeometry from gantry angle and source-to-isocenter
// distance, per spec.md §4.5:
// source = isocenter + (sid*sin(theta), -sid*cos(theta), 0)
func Setup(gantryAngleDeg, sid float64, isocenter geom.Coordinate, vs *geom.VoxelSpace, attenuator *atten.Attenuation) (*BeamGeometry, error) {
	if sid <= 0 {
		return nil, chk.Err("beam.Setup: sid must be positive. got %g", sid)
	}
	theta := gantryAngleDeg * math.Pi / 180.0
	source := geom.Coordinate{
		X: isocenter.X + sid*math.Sin(theta),
		Y: isocenter.Y - sid*math.Cos(theta),
		Z: isocenter.Z,
	}
	return New(source, isocenter, vs, attenuator)
}

// CreateDRR traces one ray per detector pixel and returns a new, 12-bit
// integer-valued PixelSpace of the same shape as pixelSpace holding the
// attenuated intensities.
func (o *BeamGeometry) CreateDRR(pixelSpace *geom.PixelSpace) (*geom.PixelSpace, error) {
	buffer, err := o.renderRows(pixelSpace, func(int) bool { return true })
	if err != nil {
		return nil, err
	}
	return buffer.ToInt12(), nil
}

// CreateDRRPartition renders only the rows j where j%nproc==proc, leaving
// every other row at zero, and returns the float buffer before 12-bit
// scaling. Summing the Flatten()'d result of every rank's partition with
// mpi.AllReduceSum and then calling ToInt12 once on the combined buffer
// reconstructs the same image CreateDRR would produce on a single process,
// the row-partitioning scheme gofem's fem package uses to split a domain
// across MPI ranks.
func (o *BeamGeometry) CreateDRRPartition(pixelSpace *geom.PixelSpace, proc, nproc int) (*geom.PixelSpace, error) {
	if nproc <= 0 {
		return nil, chk.Err("beam.CreateDRRPartition: nproc must be positive. got %d", nproc)
	}
	return o.renderRows(pixelSpace, func(j int) bool { return j%nproc == proc })
}

// renderRows traces one ray per pixel in every row j for which owns(j) is
// true, writing attenuated fractions into a freshly allocated float
// PixelSpace (rows not owned stay at zero). One Ray is reused via Reset
// across every traced pixel, avoiding a per-pixel allocation.
func (o *BeamGeometry) renderRows(pixelSpace *geom.PixelSpace, owns func(j int) bool) (*geom.PixelSpace, error) {
	buffer, err := geom.NewPixelSpace(pixelSpace.Nx, pixelSpace.Ny, pixelSpace.DeltaCol, pixelSpace.DeltaRow, pixelSpace.Pos, pixelSpace.Cosines[:])
	if err != nil {
		return nil, err
	}

	ray, err := siddon.New(o.Source, o.Source, o.VS)
	if err != nil {
		return nil, err
	}

	for j := 0; j < pixelSpace.Ny; j++ {
		if !owns(j) {
			continue
		}
		for i := 0; i < pixelSpace.Nx; i++ {
			target := pixelSpace.World(i, j)
			ray.Reset(o.Source, target)
			if err := ray.Trace(); err != nil {
				return nil, err
			}
			if len(ray.Indices) == 0 {
				continue
			}
			hu := make([]float64, len(ray.Indices))
			for n, flat := range ray.Indices {
				v, err := o.VS.AtFlat(flat)
				if err != nil {
					return nil, err
				}
				hu[n] = v
			}
			fraction, err := o.Attenuator.VectorAttenuation(hu, ray.Lengths)
			if err != nil {
				return nil, err
			}
			if err := buffer.Set(i, j, fraction); err != nil {
				return nil, err
			}
		}
	}

	return buffer, nil
}
