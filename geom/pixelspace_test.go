// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestPixelSpaceNew(tst *testing.T) {
	chk.PrintTitle("PixelSpaceNew")

	px, err := NewPixelSpace(4, 3, 1, 1, NewCoordinate(0, 0, 0), []float64{1, 0, 0, 0, 0, -1})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.IntAssert(px.Nx, 4)
	chk.IntAssert(px.Ny, 3)

	if _, err := NewPixelSpace(4, 3, 1, 1, NewCoordinate(0, 0, 0), []float64{1, 0, 0}); err == nil {
		tst.Errorf("expected error for wrong cosines length")
	}
}

func TestPixelSpaceAtSet(tst *testing.T) {
	chk.PrintTitle("PixelSpaceAtSet")

	px, err := NewPixelSpace(2, 2, 1, 1, NewCoordinate(0, 0, 0), []float64{1, 0, 0, 0, 0, -1})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if err := px.Set(1, 1, 9); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	v, err := px.At(1, 1)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Scalar(tst, "v", 1e-15, v, 9)

	if _, err := px.At(5, 0); err == nil {
		tst.Errorf("expected out-of-range error")
	}
}

// TestPixelSpaceSetupGantryZero checks the zero-gantry special case of
// Setup: the column axis is pure +X, the row axis is pure -Z, and the
// panel sits half of sdd away from the isocenter along +Y.
func TestPixelSpaceSetupGantryZero(tst *testing.T) {
	chk.PrintTitle("PixelSpaceSetupGantryZero")

	iso := NewCoordinate(0, 0, 0)
	px, err := Setup(4, 4, 1, 1, 0, 100, iso)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Vector(tst, "cosines", 1e-12, px.Cosines[:], []float64{1, 0, 0, 0, 0, -1})
	chk.Scalar(tst, "pos.Y", 1e-9, px.Pos.Y, 50)
}

func TestPixelSpaceWorld(tst *testing.T) {
	chk.PrintTitle("PixelSpaceWorld")

	px, err := NewPixelSpace(3, 3, 2, 2, NewCoordinate(10, 20, 30), []float64{1, 0, 0, 0, 0, -1})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	w := px.World(2, 1)
	chk.Vector(tst, "world", 1e-12, []float64{w.X, w.Y, w.Z}, []float64{14, 20, 28})
}

func TestPixelSpaceFlattenLoadFlat(tst *testing.T) {
	chk.PrintTitle("PixelSpaceFlattenLoadFlat")

	px, err := NewPixelSpace(2, 2, 1, 1, NewCoordinate(0, 0, 0), []float64{1, 0, 0, 0, 0, -1})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	px.Set(0, 0, 1)
	px.Set(1, 0, 2)
	px.Set(0, 1, 3)
	px.Set(1, 1, 4)

	flat := px.Flatten()
	chk.Vector(tst, "flat", 1e-15, flat, []float64{1, 2, 3, 4})

	other, err := NewPixelSpace(2, 2, 1, 1, NewCoordinate(0, 0, 0), []float64{1, 0, 0, 0, 0, -1})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if err := other.LoadFlat(flat); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	v, _ := other.At(1, 1)
	chk.Scalar(tst, "v", 1e-15, v, 4)

	if err := other.LoadFlat([]float64{1, 2, 3}); err == nil {
		tst.Errorf("expected error for wrong-length flat slice")
	}
}

func TestPixelSpaceOrthonormal(tst *testing.T) {
	chk.PrintTitle("PixelSpaceOrthonormal")

	iso := NewCoordinate(0, 0, 0)
	px, err := Setup(4, 4, 1, 1, 37, 1500, iso)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if !px.Orthonormal(1e-9) {
		tst.Errorf("expected Setup's cosines to be orthonormal")
	}

	bad, err := NewPixelSpace(2, 2, 1, 1, iso, []float64{1, 0, 0, 1, 0, 0})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if bad.Orthonormal(1e-9) {
		tst.Errorf("expected parallel, non-orthogonal cosines to fail")
	}
}

func TestPixelSpaceToInt12(tst *testing.T) {
	chk.PrintTitle("PixelSpaceToInt12")

	px, err := NewPixelSpace(1, 1, 1, 1, NewCoordinate(0, 0, 0), []float64{1, 0, 0, 0, 0, -1})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	px.Set(0, 0, 0.5)
	out := px.ToInt12()
	v, _ := out.At(0, 0)
	chk.Scalar(tst, "v", 1e-15, v, 2048)
}
