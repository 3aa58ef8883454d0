// Copyright 2016 Dorival Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dmc

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/dmc/geom"
	"github.com/cpmech/dmc/object"
)

func Test_dmc01(tst *testing.T) {

	chk.PrintTitle("Test dmc01: unit sphere produces a closed mesh near the surface")

	s := object.Sphere{Center: geom.Point{0, 0, 0}, Radius: 1}
	e := New(s, 0.2)
	m := e.Tessellate()

	if len(m.Faces) == 0 {
		tst.Fatalf("expected a non-empty mesh")
	}

	// every vertex should lie close to the unit sphere
	for _, v := range m.Vertices {
		r := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		if math.Abs(r-1) > 0.35 {
			tst.Errorf("vertex %v too far from unit sphere: r=%v", v, r)
		}
	}

	qefs, clamps := e.Stats()
	if qefs == 0 {
		tst.Errorf("expected at least one QEF-solved vertex on a smooth sphere")
	}
	_ = clamps
}

func Test_dmc02(tst *testing.T) {

	chk.PrintTitle("Test dmc02: axis-aligned cube clamps at its corners/edges")

	b := object.Box{Center: geom.Point{0, 0, 0}, Half: geom.Vector{1, 1, 1}}
	e := New(b, 0.25)
	m := e.Tessellate()

	if len(m.Faces) == 0 {
		tst.Fatalf("expected a non-empty mesh")
	}
	_, clamps := e.Stats()
	if clamps == 0 {
		tst.Errorf("expected the cube's sharp corners/edges to force clamped vertices")
	}

	// every vertex should lie on or within the dilated cube region.
	for _, v := range m.Vertices {
		for i := 0; i < 3; i++ {
			if math.Abs(v[i]) > 1+0.3 {
				tst.Errorf("vertex %v escaped the cube's neighborhood", v)
			}
		}
	}
}

func Test_dmc03(tst *testing.T) {

	chk.PrintTitle("Test dmc03: two disjoint spheres yield two separate components")

	a := object.Sphere{Center: geom.Point{-2, 0, 0}, Radius: 1}
	b := object.Sphere{Center: geom.Point{2, 0, 0}, Radius: 1}
	u := object.Union(a, b)
	e := New(u, 0.2)
	m := e.Tessellate()

	if len(m.Faces) == 0 {
		tst.Fatalf("expected a non-empty mesh")
	}
	for _, f := range m.Faces {
		for _, id := range f {
			x := m.Vertices[id][0]
			if x > -1 && x < 1 {
				tst.Errorf("triangle vertex at x=%v should not lie between the two spheres", x)
			}
		}
	}
}

func Test_dmc04(tst *testing.T) {

	chk.PrintTitle("Test dmc04: torus produces a genus-1 mesh (V-E+F == 0)")

	t := object.Torus{Center: geom.Point{0, 0, 0}, Major: 1, Minor: 0.3}
	e := New(t, 0.15)
	m := e.Tessellate()

	if len(m.Faces) == 0 {
		tst.Fatalf("expected a non-empty mesh")
	}

	edges := map[[2]int]bool{}
	addEdge := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		edges[[2]int{a, b}] = true
	}
	for _, f := range m.Faces {
		addEdge(f[0], f[1])
		addEdge(f[1], f[2])
		addEdge(f[2], f[0])
	}
	v := len(m.Vertices)
	ed := len(edges)
	faceCount := len(m.Faces)
	euler := v - ed + faceCount
	if euler != 0 {
		tst.Errorf("expected genus-1 Euler characteristic 0, got V=%d E=%d F=%d chi=%d", v, ed, faceCount, euler)
	}
}

func Test_dmc05(tst *testing.T) {

	chk.PrintTitle("Test dmc05: sample landing on the isosurface triggers a bounded retry")

	// a sphere whose surface passes exactly through the extractor's origin
	// forces a hitZero on the first pass: (-1,0,0) is at distance exactly 1
	// from the center, i.e. Eval(origin) == 0. Tessellate must catch this,
	// perturb the origin, and retry until it succeeds.
	s := object.Sphere{Center: geom.Point{0, 0, 0}, Radius: 1}
	e := New(s, 0.2)
	e.origin = geom.Point{-1, 0, 0}
	if v := s.Eval(e.origin); v != 0 {
		tst.Fatalf("test setup broken: origin %v is not exactly on the sphere, Eval=%v", e.origin, v)
	}

	m := e.Tessellate()
	if len(m.Faces) == 0 {
		tst.Fatalf("expected tessellation to eventually succeed")
	}
	// the origin itself must have moved off the surface by the retry.
	if e.origin[0] == -1 {
		tst.Errorf("expected Tessellate to have perturbed the origin away from the isosurface")
	}
}

type constantField struct {
	value float64
}

func (c constantField) BBox() geom.AABB {
	return geom.AABB{Min: geom.Point{-1, -1, -1}, Dim: geom.Vector{2, 2, 2}}
}
func (c constantField) ApproxValue(p geom.Point, res float64) float64 { return c.value }
func (c constantField) Normal(p geom.Point) geom.Vector               { return geom.Vector{0, 0, 1} }

func Test_dmc06(tst *testing.T) {

	chk.PrintTitle("Test dmc06: constant-sign field yields an empty mesh, no errors")

	e := New(constantField{value: 5}, 0.25)
	m := e.Tessellate()
	if len(m.Faces) != 0 || len(m.Vertices) != 0 {
		tst.Errorf("expected an empty mesh for a constant-sign field, got V=%d F=%d", len(m.Vertices), len(m.Faces))
	}
}
