// Copyright 2016 Dorival Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package object

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/dmc/geom"
)

func Test_object01(tst *testing.T) {

	chk.PrintTitle("Test object01: sphere SDF and normal")

	s := Sphere{Center: geom.Point{0, 0, 0}, Radius: 2}
	chk.Scalar(tst, "f(surface)", 1e-12, s.ApproxValue(geom.Point{2, 0, 0}, 0.1), 0)
	chk.Scalar(tst, "f(center)", 1e-12, s.ApproxValue(geom.Point{0, 0, 0}, 0.1), -2)
	n := s.Normal(geom.Point{2, 0, 0})
	chk.Vector(tst, "normal", 1e-12, n[:], []float64{1, 0, 0})
}

func Test_object02(tst *testing.T) {

	chk.PrintTitle("Test object02: box SDF corners and faces")

	b := Box{Center: geom.Point{0, 0, 0}, Half: geom.Vector{1, 1, 1}}
	chk.Scalar(tst, "f(face)", 1e-12, b.ApproxValue(geom.Point{1, 0, 0}, 0.1), 0)
	chk.Scalar(tst, "f(center)", 1e-12, b.ApproxValue(geom.Point{0, 0, 0}, 0.1), -1)
	if b.ApproxValue(geom.Point{2, 2, 2}, 0.1) <= 0 {
		tst.Errorf("point (2,2,2) should be outside the box")
	}
}

func Test_object03(tst *testing.T) {

	chk.PrintTitle("Test object03: torus SDF ring")

	t := Torus{Center: geom.Point{0, 0, 0}, Major: 1, Minor: 0.3}
	chk.Scalar(tst, "f(ring)", 1e-9, t.ApproxValue(geom.Point{1, 0, 0}, 0.1), -0.3)
	chk.Scalar(tst, "f(outer)", 1e-9, t.ApproxValue(geom.Point{1.3, 0, 0}, 0.1), 0)
}

func Test_object04(tst *testing.T) {

	chk.PrintTitle("Test object04: union/intersect/subtract combinators")

	a := Sphere{Center: geom.Point{0, 0, 0}, Radius: 1}
	b := Sphere{Center: geom.Point{1.5, 0, 0}, Radius: 1}

	u := Union(a, b)
	if v := u.ApproxValue(geom.Point{0.75, 0, 0}, 0.1); v >= 0 {
		tst.Errorf("midpoint of union should be inside, got %v", v)
	}

	i := Intersect(a, b)
	if v := i.ApproxValue(geom.Point{0, 0, 0}, 0.1); v <= 0 {
		tst.Errorf("sphere a center should be outside the intersection, got %v", v)
	}

	d := Subtract(a, b)
	if v := d.ApproxValue(geom.Point{-0.9, 0, 0}, 0.1); v >= 0 {
		tst.Errorf("point far from b should remain inside a minus b, got %v", v)
	}
	if v := d.ApproxValue(geom.Point{0.6, 0, 0}, 0.1); v <= 0 {
		tst.Errorf("point inside both a and b should be removed by subtract, got %v", v)
	}
}

func Test_object05(tst *testing.T) {

	chk.PrintTitle("Test object05: dilated AABB strictly contains the sphere")

	s := Sphere{Center: geom.Point{0, 0, 0}, Radius: 1}
	bb := s.BBox().Dilate(1 + 0.1*1.1)
	if bb.Min[0] >= -1 || bb.Min[0]+bb.Dim[0] <= 1 {
		tst.Errorf("dilated bbox should strictly contain the unit sphere, got %v", bb)
	}
}
