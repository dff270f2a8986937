// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// drrgen renders one or more digitally reconstructed radiographs from a
// job description file. Usage:
//
//	drrgen jobfile.json
//
// Under mpirun, each rank renders a disjoint partition of detector rows
// and the partial images are summed on rank 0, mirroring the
// Proc/Nproc partitioning gofem's fem package uses for domain
// decomposition.
package main

import (
	"encoding/binary"
	"flag"
	stdio "io"
	"math"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/gofem-imaging/drrgo/atten"
	"github.com/gofem-imaging/drrgo/beam"
	"github.com/gofem-imaging/drrgo/config"
	"github.com/gofem-imaging/drrgo/geom"
	"github.com/gofem-imaging/drrgo/imgio"
)

func main() {

	defer func() {
		err := recover()
		if err != nil {
			if mpi.Rank() == 0 {
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
		if err != nil {
			os.Exit(1)
		}
	}()
	mpi.Start(false)

	if mpi.Rank() == 0 {
		io.PfWhite("\ndrrgen -- digitally reconstructed radiograph generator\n\n")
	}

	flag.Parse()
	if len(flag.Args()) < 1 {
		chk.Panic("Please provide a job file. Ex.: drrgen job.json")
	}
	jobPath := flag.Arg(0)

	job := config.ReadJob(jobPath)
	render(job)
}

func render(job *config.Job) {

	vs := readVolume(&job.Volume)

	attenuator, err := atten.New(job.EnergyMeV)
	if err != nil {
		chk.Panic("%v", err)
	}

	isocenter := geom.NewCoordinate(job.IsocenterX, job.IsocenterY, job.IsocenterZ)

	nproc := 1
	proc := 0
	if mpi.IsOn() {
		nproc = mpi.Size()
		proc = mpi.Rank()
	}

	for a, angleDeg := range job.GantryAngles {

		bg, err := beam.Setup(angleDeg, job.SID, isocenter, vs, attenuator)
		if err != nil {
			chk.Panic("%v", err)
		}

		detector, err := geom.Setup(job.Detector.Nx, job.Detector.Ny, job.Detector.DeltaCol, job.Detector.DeltaRow, angleDeg, job.SDD, isocenter)
		if err != nil {
			chk.Panic("%v", err)
		}

		drr := renderPartition(bg, detector, proc, nproc)

		if proc == 0 {
			outPath := io.Sf("%s/drr_%06.2f.pgm", job.OutDir, angleDeg)
			if err := imgio.WritePGM16(outPath, drr); err != nil {
				chk.Panic("%v", err)
			}
			io.Pforan("wrote %s (angle %d/%d)\n", outPath, a+1, len(job.GantryAngles))
		}
	}
}

// renderPartition renders the rows j where j%nproc==proc on every rank,
// then combines the partial images with mpi.AllReduceSum before scaling
// to 12 bits once on the summed result; under a single process (nproc==1)
// this degenerates to a plain CreateDRR, since a reduction over a single
// partition is that partition.
func renderPartition(bg *beam.BeamGeometry, detector *geom.PixelSpace, proc, nproc int) *geom.PixelSpace {
	if nproc <= 1 {
		drr, err := bg.CreateDRR(detector)
		if err != nil {
			chk.Panic("%v", err)
		}
		return drr
	}

	partial, err := bg.CreateDRRPartition(detector, proc, nproc)
	if err != nil {
		chk.Panic("%v", err)
	}

	sendbuf := partial.Flatten()
	recvbuf := make([]float64, len(sendbuf))
	mpi.AllReduceSum(recvbuf, sendbuf)

	if err := partial.LoadFlat(recvbuf); err != nil {
		chk.Panic("%v", err)
	}
	return partial.ToInt12()
}

// readVolume loads a flat little-endian float64 volume file (Nx*Ny*Nz
// values, in VoxelSpace flat order) and builds a geom.VoxelSpace from it.
func readVolume(vd *config.VolumeData) *geom.VoxelSpace {
	f, err := os.Open(vd.Path)
	if err != nil {
		chk.Panic("cannot open volume file %q: %v", vd.Path, err)
	}
	defer f.Close()

	pos := geom.NewCoordinate(vd.PosX, vd.PosY, vd.PosZ)
	vs, err := geom.NewVoxelSpace(vd.Nx, vd.Ny, vd.Nz, vd.DeltaX, vd.DeltaY, vd.DeltaZ, pos)
	if err != nil {
		chk.Panic("%v", err)
	}

	n := vs.Len()
	raw := make([]byte, n*8)
	if _, err := stdio.ReadFull(f, raw); err != nil {
		chk.Panic("cannot read volume file %q: %v", vd.Path, err)
	}
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint64(raw[i*8 : i*8+8])
		if err := vs.SetFlat(i, math.Float64frombits(bits)); err != nil {
			chk.Panic("%v", err)
		}
	}
	return vs
}
