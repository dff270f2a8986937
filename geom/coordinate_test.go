// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestCoordinateArith(tst *testing.T) {
	chk.PrintTitle("CoordinateArith")

	a := NewCoordinate(1, 2, 3)
	b := NewCoordinate(4, -1, 0.5)

	sum := a.Add(b)
	chk.Vector(tst, "a+b", 1e-15, []float64{sum.X, sum.Y, sum.Z}, []float64{5, 1, 3.5})

	diff := a.Sub(b)
	chk.Vector(tst, "a-b", 1e-15, []float64{diff.X, diff.Y, diff.Z}, []float64{-3, 3, 2.5})

	scaled := a.Scale(2)
	chk.Vector(tst, "2a", 1e-15, []float64{scaled.X, scaled.Y, scaled.Z}, []float64{2, 4, 6})
}

func TestCoordinateDist(tst *testing.T) {
	chk.PrintTitle("CoordinateDist")

	a := NewCoordinate(0, 0, 0)
	b := NewCoordinate(3, 4, 0)
	chk.Scalar(tst, "dist", 1e-15, a.Dist(b), 5)
}

func TestCoordinateVector(tst *testing.T) {
	chk.PrintTitle("CoordinateVector")

	c := NewCoordinate(1.5, -2.5, 9)
	v := c.Vector()
	chk.Vector(tst, "vector", 1e-15, v, []float64{1.5, -2.5, 9})
}

func TestCoordinateIsFinite(tst *testing.T) {
	chk.PrintTitle("CoordinateIsFinite")

	ok := NewCoordinate(1, 2, 3)
	if !ok.IsFinite() {
		tst.Errorf("expected finite coordinate to report IsFinite==true")
	}

	bad := NewCoordinate(math.Inf(1), 0, 0)
	if bad.IsFinite() {
		tst.Errorf("expected +Inf coordinate to report IsFinite==false")
	}

	nan := NewCoordinate(math.NaN(), 0, 0)
	if nan.IsFinite() {
		tst.Errorf("expected NaN coordinate to report IsFinite==false")
	}
}

func TestCoordinateEquals(tst *testing.T) {
	chk.PrintTitle("CoordinateEquals")

	a := NewCoordinate(1, 2, 3)
	b := NewCoordinate(1, 2, 3)
	c := NewCoordinate(1, 2, 3.0000001)

	if !a.Equals(b) {
		tst.Errorf("expected a==b")
	}
	if a.Equals(c) {
		tst.Errorf("expected a!=c")
	}
}

func TestRound14(tst *testing.T) {
	chk.PrintTitle("Round14")

	v := Round14(1.0000000000000012345)
	chk.Scalar(tst, "round14", 1e-14, v, 1.0)
}
