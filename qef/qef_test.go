// Copyright 2016 Dorival Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qef

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/dmc/geom"
)

func Test_qef01(tst *testing.T) {

	chk.PrintTitle("Test qef01: three orthogonal planes meet at a corner")

	planes := []Plane{
		{P: geom.Point{1, 0, 0}, N: geom.Vector{1, 0, 0}},
		{P: geom.Point{0, 1, 0}, N: geom.Vector{0, 1, 0}},
		{P: geom.Point{0, 0, 1}, N: geom.Vector{0, 0, 1}},
	}
	q := New(planes)
	err := q.Solve()
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	chk.Vector(tst, "solution", 1e-6, q.Solution[:], []float64{1, 1, 1})
}

func Test_qef02(tst *testing.T) {

	chk.PrintTitle("Test qef02: mean fallback is the centroid of the anchors")

	planes := []Plane{
		{P: geom.Point{0, 0, 0}, N: geom.Vector{1, 0, 0}},
		{P: geom.Point{2, 2, 2}, N: geom.Vector{1, 0, 0}},
	}
	mean := Mean(planes)
	chk.Vector(tst, "mean", 1e-15, mean[:], []float64{1, 1, 1})
}

func Test_qef03(tst *testing.T) {

	chk.PrintTitle("Test qef03: single plane pulls solution onto the plane")

	planes := []Plane{
		{P: geom.Point{0, 0, 0}, N: geom.Vector{0, 0, 1}},
	}
	q := New(planes)
	err := q.Solve()
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	// the minimum-norm-ish solution should lie very close to the plane z=0
	if q.Solution[2] > 1e-3 {
		tst.Errorf("expected solution near z=0, got %v", q.Solution)
	}
}
