// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/gofem-imaging/drrgo/atten"
)

func TestJobSetDefault(tst *testing.T) {
	chk.PrintTitle("JobSetDefault")

	var job Job
	job.SetDefault()

	chk.Scalar(tst, "energyMeV", 1e-15, job.EnergyMeV, atten.DefaultEnergyMeV)
	chk.Scalar(tst, "sid", 1e-15, job.SID, 1000)
	chk.Scalar(tst, "sdd", 1e-15, job.SDD, 1500)
	if job.OutDir != "." {
		tst.Errorf("expected default outDir \".\", got %q", job.OutDir)
	}
	chk.IntAssert(len(job.GantryAngles), 1)
	chk.Scalar(tst, "gantryAngles[0]", 1e-15, job.GantryAngles[0], 0)
}

func TestJobSetDefaultPreservesNonZero(tst *testing.T) {
	chk.PrintTitle("JobSetDefaultPreservesNonZero")

	job := Job{EnergyMeV: 0.08, SID: 500, SDD: 700, OutDir: "/tmp/out", GantryAngles: []float64{0, 90}}
	job.SetDefault()

	chk.Scalar(tst, "energyMeV", 1e-15, job.EnergyMeV, 0.08)
	chk.Scalar(tst, "sid", 1e-15, job.SID, 500)
	chk.Scalar(tst, "sdd", 1e-15, job.SDD, 700)
	if job.OutDir != "/tmp/out" {
		tst.Errorf("expected preserved outDir, got %q", job.OutDir)
	}
	chk.IntAssert(len(job.GantryAngles), 2)
}

func validJob() Job {
	var job Job
	job.EnergyMeV = 0.05
	job.SID = 1000
	job.SDD = 1500
	job.Detector = DetectorData{Nx: 512, Ny: 512, DeltaCol: 0.5, DeltaRow: 0.5}
	job.Volume = VolumeData{Path: "volume.bin", Nx: 256, Ny: 256, Nz: 256, DeltaX: 1, DeltaY: 1, DeltaZ: 1}
	return job
}

func TestJobValidateOK(tst *testing.T) {
	chk.PrintTitle("JobValidateOK")

	job := validJob()
	if err := job.Validate(); err != nil {
		tst.Errorf("unexpected error: %v", err)
	}
}

// TestJobSetSpectralWeight exercises the optional dbf.T hook; passing nil
// is the common case for the monochromatic-only default path.
func TestJobSetSpectralWeight(tst *testing.T) {
	chk.PrintTitle("JobSetSpectralWeight")

	var job Job
	job.SetSpectralWeight(nil)
}

func TestJobValidateRejectsBadFields(tst *testing.T) {
	chk.PrintTitle("JobValidateRejectsBadFields")

	cases := []func(*Job){
		func(j *Job) { j.EnergyMeV = 0 },
		func(j *Job) { j.SID = 0 },
		func(j *Job) { j.SDD = -1 },
		func(j *Job) { j.Detector.Nx = 0 },
		func(j *Job) { j.Detector.DeltaCol = 0 },
		func(j *Job) { j.Volume.Path = "" },
		func(j *Job) { j.Volume.Nx = 0 },
		func(j *Job) { j.Volume.DeltaX = 0 },
	}
	for n, mutate := range cases {
		job := validJob()
		mutate(&job)
		if err := job.Validate(); err == nil {
			tst.Errorf("case %d: expected validation error", n)
		}
	}
}
