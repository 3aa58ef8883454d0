// Copyright 2016 Dorival Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package object defines the implicit-object contract consumed by the dual
// marching cubes extractor, and a small set of concrete SDF primitives used
// to exercise and validate the extractor (the role the teacher's ana package
// plays for fem: independently-known-correct inputs with closed-form
// reference answers).
package object

import (
	"math"

	"github.com/cpmech/dmc/geom"
)

// Object is the implicit scalar field the extractor samples. Implementations
// must be ~1-Lipschitz (|f(a)-f(b)| <= |a-b|, the standard SDF assumption)
// for the sampler's pruning bound to be sound.
type Object interface {
	// BBox returns the object's bounding box.
	BBox() geom.AABB
	// ApproxValue returns f(p), or a conservative approximation valid at
	// resolution res: |ApproxValue(p,res) - f(p)| <= eps*res for small eps.
	ApproxValue(p geom.Point, res float64) float64
	// Normal returns the surface normal at p (well-defined on or very near
	// the zero set).
	Normal(p geom.Point) geom.Vector
}

// normalize returns v scaled to unit length, or v unchanged if it is (near)
// zero length.
func normalize(v geom.Vector) geom.Vector {
	n := v.Norm()
	if n < 1e-300 {
		return v
	}
	return v.Scale(1 / n)
}

// centralNormal estimates the gradient of f at p by central differences,
// used by primitives whose closed-form normal would otherwise need its own
// derivation. h should be small relative to the object's feature size.
func centralNormal(f func(geom.Point) float64, p geom.Point, h float64) geom.Vector {
	dx := f(geom.Point{p[0] + h, p[1], p[2]}) - f(geom.Point{p[0] - h, p[1], p[2]})
	dy := f(geom.Point{p[0], p[1] + h, p[2]}) - f(geom.Point{p[0], p[1] - h, p[2]})
	dz := f(geom.Point{p[0], p[1], p[2] + h}) - f(geom.Point{p[0], p[1], p[2] - h})
	return normalize(geom.Vector{dx, dy, dz})
}

//-----------------------------------------------------------------------------
// Sphere
//-----------------------------------------------------------------------------

// Sphere is a signed-distance sphere centered at Center with radius Radius.
type Sphere struct {
	Center geom.Point
	Radius float64
}

// Eval implements the raw SDF value (distance to the sphere surface).
func (s Sphere) Eval(p geom.Point) float64 {
	d := p.Sub(s.Center)
	return d.Norm() - s.Radius
}

// BBox implements Object.
func (s Sphere) BBox() geom.AABB {
	r := s.Radius
	return geom.AABB{
		Min: geom.Point{s.Center[0] - r, s.Center[1] - r, s.Center[2] - r},
		Dim: geom.Vector{2 * r, 2 * r, 2 * r},
	}
}

// ApproxValue implements Object. The sphere SDF is exact, so res is unused.
func (s Sphere) ApproxValue(p geom.Point, res float64) float64 {
	return s.Eval(p)
}

// Normal implements Object with the closed-form radial normal.
func (s Sphere) Normal(p geom.Point) geom.Vector {
	return normalize(p.Sub(s.Center))
}

//-----------------------------------------------------------------------------
// Box
//-----------------------------------------------------------------------------

// Box is a signed-distance axis-aligned box centered at Center with the
// given half-extents.
type Box struct {
	Center geom.Point
	Half   geom.Vector
}

// Eval implements the raw SDF value.
func (b Box) Eval(p geom.Point) float64 {
	qx := math.Abs(p[0]-b.Center[0]) - b.Half[0]
	qy := math.Abs(p[1]-b.Center[1]) - b.Half[1]
	qz := math.Abs(p[2]-b.Center[2]) - b.Half[2]
	outside := geom.Vector{math.Max(qx, 0), math.Max(qy, 0), math.Max(qz, 0)}
	inside := math.Min(math.Max(qx, math.Max(qy, qz)), 0)
	return outside.Norm() + inside
}

// BBox implements Object.
func (b Box) BBox() geom.AABB {
	return geom.AABB{
		Min: geom.Point{b.Center[0] - b.Half[0], b.Center[1] - b.Half[1], b.Center[2] - b.Half[2]},
		Dim: geom.Vector{2 * b.Half[0], 2 * b.Half[1], 2 * b.Half[2]},
	}
}

// ApproxValue implements Object.
func (b Box) ApproxValue(p geom.Point, res float64) float64 {
	return b.Eval(p)
}

// Normal implements Object via central differences (the box SDF has
// corner/edge discontinuities where a closed form would need casework the
// extractor's clamping logic already handles via the QEF fallback).
func (b Box) Normal(p geom.Point) geom.Vector {
	return centralNormal(b.Eval, p, 1e-5)
}

//-----------------------------------------------------------------------------
// Torus
//-----------------------------------------------------------------------------

// Torus is a signed-distance torus centered at Center, lying in the XY
// plane, with major radius Major and minor (tube) radius Minor.
type Torus struct {
	Center       geom.Point
	Major, Minor float64
}

// Eval implements the raw SDF value.
func (t Torus) Eval(p geom.Point) float64 {
	d := p.Sub(t.Center)
	qxy := math.Hypot(d[0], d[1]) - t.Major
	return math.Hypot(qxy, d[2]) - t.Minor
}

// BBox implements Object.
func (t Torus) BBox() geom.AABB {
	r := t.Major + t.Minor
	return geom.AABB{
		Min: geom.Point{t.Center[0] - r, t.Center[1] - r, t.Center[2] - t.Minor},
		Dim: geom.Vector{2 * r, 2 * r, 2 * t.Minor},
	}
}

// ApproxValue implements Object.
func (t Torus) ApproxValue(p geom.Point, res float64) float64 {
	return t.Eval(p)
}

// Normal implements Object via central differences.
func (t Torus) Normal(p geom.Point) geom.Vector {
	return centralNormal(t.Eval, p, 1e-5)
}

//-----------------------------------------------------------------------------
// Plane
//-----------------------------------------------------------------------------

// Plane is a signed-distance half-space: negative on the side N points away
// from, through point P, with unit normal N.
type Plane struct {
	P geom.Point
	N geom.Vector // must be unit length
}

// Eval implements the raw SDF value.
func (pl Plane) Eval(p geom.Point) float64 {
	d := p.Sub(pl.P)
	return d[0]*pl.N[0] + d[1]*pl.N[1] + d[2]*pl.N[2]
}

// BBox implements Object with a generously large bounding volume, since an
// infinite plane has no natural bounds; callers tessellating a Plane alone
// should Intersect it with a bounded primitive first.
func (pl Plane) BBox() geom.AABB {
	const big = 1e3
	return geom.AABB{Min: geom.Point{pl.P[0] - big, pl.P[1] - big, pl.P[2] - big}, Dim: geom.Vector{2 * big, 2 * big, 2 * big}}
}

// ApproxValue implements Object.
func (pl Plane) ApproxValue(p geom.Point, res float64) float64 {
	return pl.Eval(p)
}

// Normal implements Object; the plane's normal is constant.
func (pl Plane) Normal(p geom.Point) geom.Vector {
	return pl.N
}

//-----------------------------------------------------------------------------
// Boolean combinators
//-----------------------------------------------------------------------------

// combinator wraps two evaluable SDFs with a combining rule over their raw
// values, and derives BBox/Normal generically.
type combinator struct {
	a, b    evaluable
	combine func(va, vb float64) float64
}

type evaluable interface {
	Object
	Eval(p geom.Point) float64
}

func (c combinator) Eval(p geom.Point) float64 {
	return c.combine(c.a.Eval(p), c.b.Eval(p))
}

func (c combinator) ApproxValue(p geom.Point, res float64) float64 {
	return c.Eval(p)
}

func (c combinator) Normal(p geom.Point) geom.Vector {
	return centralNormal(c.Eval, p, 1e-5)
}

func (c combinator) BBox() geom.AABB {
	ba, bb := c.a.BBox(), c.b.BBox()
	minv := func(x, y float64) float64 { return math.Min(x, y) }
	maxv := func(x, y float64) float64 { return math.Max(x, y) }
	min := geom.Point{minv(ba.Min[0], bb.Min[0]), minv(ba.Min[1], bb.Min[1]), minv(ba.Min[2], bb.Min[2])}
	max := geom.Point{
		maxv(ba.Min[0]+ba.Dim[0], bb.Min[0]+bb.Dim[0]),
		maxv(ba.Min[1]+ba.Dim[1], bb.Min[1]+bb.Dim[1]),
		maxv(ba.Min[2]+ba.Dim[2], bb.Min[2]+bb.Dim[2]),
	}
	return geom.AABB{Min: min, Dim: geom.Vector{max[0] - min[0], max[1] - min[1], max[2] - min[2]}}
}

// asEvaluable adapts any of this package's primitives (which all expose
// Eval) to the evaluable interface. Combinators of combinators work too,
// since combinator itself implements Eval/BBox/Normal/ApproxValue.
func asEvaluable(o interface {
	Object
	Eval(p geom.Point) float64
}) evaluable {
	return o
}

// Union returns the SDF of the union of a and b.
func Union(a, b interface {
	Object
	Eval(p geom.Point) float64
}) Object {
	return combinator{a: asEvaluable(a), b: asEvaluable(b), combine: math.Min}
}

// Intersect returns the SDF of the intersection of a and b.
func Intersect(a, b interface {
	Object
	Eval(p geom.Point) float64
}) Object {
	return combinator{a: asEvaluable(a), b: asEvaluable(b), combine: math.Max}
}

// Subtract returns the SDF of a with b removed.
func Subtract(a, b interface {
	Object
	Eval(p geom.Point) float64
}) Object {
	return combinator{a: asEvaluable(a), b: asEvaluable(b), combine: func(va, vb float64) float64 { return math.Max(va, -vb) }}
}
