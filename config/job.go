// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package config reads a DRR job description from a JSON file, in the
// same spirit as gofem's inp package reads a .sim simulation file:
// read-the-bytes, apply defaults, unmarshal, validate.
package config

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"

	"github.com/gofem-imaging/drrgo/atten"
)

// VolumeData describes where to find the voxel volume to render and its
// geometry. The volume itself is a flat little-endian float64 binary
// blob, Nx*Ny*Nz values in flat order, read by the caller (cmd/drrgen).
type VolumeData struct {
	Path   string  `json:"path"`
	Nx     int     `json:"nx"`
	Ny     int     `json:"ny"`
	Nz     int     `json:"nz"`
	DeltaX float64 `json:"deltaX"`
	DeltaY float64 `json:"deltaY"`
	DeltaZ float64 `json:"deltaZ"`
	PosX   float64 `json:"posX"`
	PosY   float64 `json:"posY"`
	PosZ   float64 `json:"posZ"`
}

// DetectorData describes the output panel shape and spacing.
type DetectorData struct {
	Nx       int     `json:"nx"`
	Ny       int     `json:"ny"`
	DeltaCol float64 `json:"deltaCol"`
	DeltaRow float64 `json:"deltaRow"`
}

// Job is one DRR rendering job: one volume, one detector, one or more
// gantry angles (each producing an independent DRR), and the beam's
// energy and source-to-isocenter distance.
type Job struct {
	EnergyMeV     float64      `json:"energyMeV"`
	GantryAngles  []float64    `json:"gantryAngles"`
	SID           float64      `json:"sid"`
	SDD           float64      `json:"sdd"`
	IsocenterX    float64      `json:"isocenterX"`
	IsocenterY    float64      `json:"isocenterY"`
	IsocenterZ    float64      `json:"isocenterZ"`
	Detector      DetectorData `json:"detector"`
	Volume        VolumeData   `json:"volume"`
	OutDir        string       `json:"outDir"`

	// SpectralWeight is an optional energy-weighting callback. It is only
	// stored: nothing in this module reads it, and the rendering path stays
	// monochromatic whether or not it is set. Not JSON-settable (a job file describes a single
	// energy, per spec.md §1's monochromatic-only non-goal); set
	// programmatically via SetSpectralWeight for callers building a
	// polychromatic extension on top of this package, the same way
	// ele/solid.ElastRod.SetEleConds wires a dbf.T callback in after
	// construction rather than through the .sim file.
	SpectralWeight dbf.T
}

// SetSpectralWeight installs an optional energy-dependent weighting
// callback, mirroring ele.Element.SetEleConds's post-construction
// dbf.T wiring.
func (o *Job) SetSpectralWeight(f dbf.T) {
	o.SpectralWeight = f
}

// SetDefault fills in the 50 keV default energy and a typical clinical
// SID/SDD when the job file leaves them at zero, mirroring
// inp.SolverData.SetDefault's "fill zero fields" convention.
func (o *Job) SetDefault() {
	if o.EnergyMeV == 0 {
		o.EnergyMeV = atten.DefaultEnergyMeV
	}
	if o.SID == 0 {
		o.SID = 1000
	}
	if o.SDD == 0 {
		o.SDD = 1500
	}
	if o.OutDir == "" {
		o.OutDir = "."
	}
	if len(o.GantryAngles) == 0 {
		o.GantryAngles = []float64{0}
	}
}

// ReadJob reads and validates a Job from a JSON file, panicking on read
// or decode failure -- the same chk.Panic-on-malformed-input convention
// inp.ReadSim uses for the simulation file it can't proceed without.
func ReadJob(path string) *Job {
	var o Job
	b, err := io.ReadFile(path)
	if err != nil {
		chk.Panic("config.ReadJob: cannot read job file %q:\n%v", path, err)
	}
	o.SetDefault()
	if err := json.Unmarshal(b, &o); err != nil {
		chk.Panic("config.ReadJob: cannot unmarshal job file %q:\n%v", path, err)
	}
	if err := o.Validate(); err != nil {
		chk.Panic("config.ReadJob: invalid job file %q:\n%v", path, err)
	}
	return &o
}

// Validate checks the fields that would otherwise fail deep inside geom
// or atten constructors, returning an error for the first invalid field.
func (o *Job) Validate() error {
	if o.EnergyMeV <= 0 {
		return chk.Err("job: energyMeV must be positive. got %g", o.EnergyMeV)
	}
	if o.SID <= 0 {
		return chk.Err("job: sid must be positive. got %g", o.SID)
	}
	if o.SDD <= 0 {
		return chk.Err("job: sdd must be positive. got %g", o.SDD)
	}
	if o.Detector.Nx <= 0 || o.Detector.Ny <= 0 {
		return chk.Err("job: detector.nx and detector.ny must be positive. got (%d,%d)", o.Detector.Nx, o.Detector.Ny)
	}
	if o.Detector.DeltaCol <= 0 || o.Detector.DeltaRow <= 0 {
		return chk.Err("job: detector.deltaCol and detector.deltaRow must be positive")
	}
	if o.Volume.Path == "" {
		return chk.Err("job: volume.path must not be empty")
	}
	if o.Volume.Nx <= 0 || o.Volume.Ny <= 0 || o.Volume.Nz <= 0 {
		return chk.Err("job: volume.nx, volume.ny, volume.nz must be positive")
	}
	if o.Volume.DeltaX <= 0 || o.Volume.DeltaY <= 0 || o.Volume.DeltaZ <= 0 {
		return chk.Err("job: volume deltas must be positive")
	}
	return nil
}
