// Copyright 2016 Dorival Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom implements the grid addressing and cell geometry shared by
// the dual marching cubes extractor: integer cell indices, named corners and
// edges of a unit cell, and the fixed adjacency tables that let a single
// edge or quad be resolved against its neighboring cells.
package geom

import "math"

// Index addresses a grid vertex by its (i,j,k) integer coordinates.
type Index [3]int

// Add returns idx + off.
func (idx Index) Add(off Index) Index {
	return Index{idx[0] + off[0], idx[1] + off[1], idx[2] + off[2]}
}

// Sub returns idx - off.
func (idx Index) Sub(off Index) Index {
	return Index{idx[0] - off[0], idx[1] - off[1], idx[2] - off[2]}
}

// Positive returns true if every component of idx is >= 0.
func (idx Index) Positive() bool {
	return idx[0] >= 0 && idx[1] >= 0 && idx[2] >= 0
}

// Point is a position in world space.
type Point [3]float64

// Vector is a direction in world space (not necessarily normalized).
type Vector [3]float64

// World maps a grid index to its world position: origin + res*idx.
func World(origin Point, res float64, idx Index) Point {
	return Point{
		origin[0] + res*float64(idx[0]),
		origin[1] + res*float64(idx[1]),
		origin[2] + res*float64(idx[2]),
	}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Vector {
	return Vector{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

// Add returns p + v.
func (p Point) Add(v Vector) Point {
	return Point{p[0] + v[0], p[1] + v[1], p[2] + v[2]}
}

// Scale returns v*s.
func (v Vector) Scale(s float64) Vector {
	return Vector{v[0] * s, v[1] * s, v[2] * s}
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// MaxAbsComponent returns the largest |component| of v (Chebyshev radius).
func (v Vector) MaxAbsComponent() float64 {
	return math.Max(math.Abs(v[0]), math.Max(math.Abs(v[1]), math.Abs(v[2])))
}

// Corner names one of the 8 vertices of a unit cell. The bit value of a
// corner is x + 2y + 4z, matching the sign-mask convention used throughout
// the package (bit (z<<2)|(y<<1)|x).
type Corner int

// Named corners, 0-indexed per the convention above.
const (
	CornerA Corner = iota // (0,0,0)
	CornerB               // (1,0,0)
	CornerC               // (0,1,0)
	CornerD               // (1,1,0)
	CornerE               // (0,0,1)
	CornerF               // (1,0,1)
	CornerG               // (0,1,1)
	CornerH               // (1,1,1)
)

// CornerOffset gives the unit-cube offset of each corner.
var CornerOffset = [8]Index{
	{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
}

// Edge names one of the 12 edges of a unit cell. Edges A, B, C are the three
// base edges leaving corner A along +x, +y, +z respectively; every other
// edge is a translate of one of those three, recorded in EdgeOffset.
type Edge int

// Named edges.
const (
	EdgeA Edge = iota
	EdgeB
	EdgeC
	EdgeD
	EdgeE
	EdgeF
	EdgeG
	EdgeH
	EdgeI
	EdgeJ
	EdgeK
	EdgeL
)

// NumEdges is the number of edges of a unit cell.
const NumEdges = 12

// EdgeEndpoints gives the two corners each edge connects, low index to high.
var EdgeEndpoints = [NumEdges][2]Corner{
	{CornerA, CornerB}, // 0
	{CornerA, CornerC}, // 1
	{CornerA, CornerE}, // 2
	{CornerC, CornerD}, // 3
	{CornerB, CornerD}, // 4
	{CornerB, CornerF}, // 5
	{CornerE, CornerF}, // 6
	{CornerE, CornerG}, // 7
	{CornerC, CornerG}, // 8
	{CornerG, CornerH}, // 9
	{CornerF, CornerH}, // 10
	{CornerD, CornerH}, // 11
}

// EdgeOffset gives, for each edge, the cell offset that owns the canonical
// copy of that edge (i.e. the cell in which the edge is one of the 3 base
// edges A, B or C leaving its own corner A).
var EdgeOffset = [NumEdges]Index{
	{0, 0, 0}, {0, 0, 0}, {0, 0, 0},
	{0, 1, 0}, {1, 0, 0}, {1, 0, 0},
	{0, 0, 1}, {0, 0, 1}, {0, 1, 0},
	{0, 1, 1}, {1, 0, 1}, {1, 1, 0},
}

// Base returns the base edge (A, B or C) that e is a translate of.
func (e Edge) Base() Edge {
	return Edge(int(e) % 3)
}

// Quads gives, for each of the 3 base edges, the 4 edges (in the 4 cells
// surrounding it) that form the quad to be emitted around that edge.
var Quads = [3][4]Edge{
	{EdgeA, EdgeG, EdgeJ, EdgeD},
	{EdgeB, EdgeE, EdgeK, EdgeH},
	{EdgeC, EdgeI, EdgeL, EdgeF},
}

// AABB is an axis-aligned bounding box given by its minimum corner and size.
type AABB struct {
	Min Point
	Dim Vector
}

// Dilate returns a new AABB grown by factor around its own extent: each side
// moves outward by (factor-1)/2 times the box's size, so the size is
// multiplied by factor and the box stays centered.
func (b AABB) Dilate(factor float64) AABB {
	grow := Vector{
		b.Dim[0] * (factor - 1) / 2,
		b.Dim[1] * (factor - 1) / 2,
		b.Dim[2] * (factor - 1) / 2,
	}
	return AABB{
		Min: Point{b.Min[0] - grow[0], b.Min[1] - grow[1], b.Min[2] - grow[2]},
		Dim: Vector{b.Dim[0] + 2*grow[0], b.Dim[1] + 2*grow[1], b.Dim[2] + 2*grow[2]},
	}
}

// Pow2Roundup returns the smallest power of two >= x (x must be > 0).
func Pow2Roundup(x int) int {
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	x |= x >> 32
	return x + 1
}
