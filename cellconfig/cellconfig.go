// Copyright 2016 Dorival Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cellconfig provides the static cell-configuration table used by
// the dual marching cubes extractor: for every 8-bit corner sign mask, the
// disjoint edge-sets (one per manifold surface patch) that the cell's active
// edges partition into.
//
// The table is consumed read-only by the extractor; this package is only
// responsible for building it once and exposing it.
package cellconfig

import (
	"sync"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/dmc/geom"
)

// BitSet is a small bitmap over up to 16 bits, used here for two purposes:
// an 8-bit corner sign mask, and a 12-bit edge-set naming one manifold patch.
type BitSet uint16

// Set marks bit i.
func (b *BitSet) Set(i int) {
	*b |= 1 << uint(i)
}

// Has reports whether bit i is set.
func (b BitSet) Has(i int) bool {
	return b&(1<<uint(i)) != 0
}

// Edges returns the edges named by this bit set, assuming it is an edge-set
// (as opposed to a corner sign mask).
func (b BitSet) Edges() []geom.Edge {
	var out []geom.Edge
	for e := 0; e < geom.NumEdges; e++ {
		if b.Has(e) {
			out = append(out, geom.Edge(e))
		}
	}
	return out
}

// face describes one of the cube's 6 faces: the 4 corners and the 4 edges
// that bound it, both listed in cyclic order so that edges[i] connects
// corners[i] and corners[(i+1)%4].
type face struct {
	corners [4]geom.Corner
	edges   [4]geom.Edge
}

// faces enumerates the cube's 6 faces. Derived directly from geom's corner
// and edge numbering (corner bit == x+2y+4z).
var faces = [6]face{
	{[4]geom.Corner{geom.CornerA, geom.CornerC, geom.CornerG, geom.CornerE}, [4]geom.Edge{geom.EdgeB, geom.EdgeI, geom.EdgeH, geom.EdgeC}}, // x=0
	{[4]geom.Corner{geom.CornerB, geom.CornerD, geom.CornerH, geom.CornerF}, [4]geom.Edge{geom.EdgeE, geom.EdgeL, geom.EdgeK, geom.EdgeF}}, // x=1
	{[4]geom.Corner{geom.CornerA, geom.CornerB, geom.CornerF, geom.CornerE}, [4]geom.Edge{geom.EdgeA, geom.EdgeF, geom.EdgeG, geom.EdgeC}}, // y=0
	{[4]geom.Corner{geom.CornerC, geom.CornerD, geom.CornerH, geom.CornerG}, [4]geom.Edge{geom.EdgeD, geom.EdgeL, geom.EdgeJ, geom.EdgeI}}, // y=1
	{[4]geom.Corner{geom.CornerA, geom.CornerB, geom.CornerD, geom.CornerC}, [4]geom.Edge{geom.EdgeA, geom.EdgeE, geom.EdgeD, geom.EdgeB}}, // z=0
	{[4]geom.Corner{geom.CornerE, geom.CornerF, geom.CornerH, geom.CornerG}, [4]geom.Edge{geom.EdgeG, geom.EdgeK, geom.EdgeJ, geom.EdgeH}}, // z=1
}

// bit returns 1 if corner c is negative under sign mask s, 0 otherwise.
func bit(s BitSet, c geom.Corner) int {
	if s.Has(int(c)) {
		return 1
	}
	return 0
}

// union-find over the 12 edges.
type unionFind struct {
	parent [geom.NumEdges]int
}

func newUnionFind() *unionFind {
	uf := &unionFind{}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra != rb {
		uf.parent[ra] = rb
	}
}

// buildMask partitions the active edges of sign mask s into manifold
// patches, by connecting active edges that share a cube face.
//
// A face with exactly 0 active edges contributes nothing. A face with
// exactly 2 active edges always connects that pair (the isosurface crosses
// the face exactly once). A face with all 4 edges active is the ambiguous
// "checkerboard" case (opposite corners agree in sign, adjacent corners
// disagree); since this table is built from the sign mask alone (no real
// corner values are available at this point, see DESIGN.md), the tie is
// broken deterministically using the sign of the face's first corner: edges
// are paired around the two negative corners, which are that corner and its
// diagonal opposite when it is negative, and the other two corners otherwise.
func buildMask(s BitSet) []BitSet {
	uf := newUnionFind()
	active := make(map[geom.Edge]bool, geom.NumEdges)
	for e := 0; e < geom.NumEdges; e++ {
		ends := geom.EdgeEndpoints[e]
		if bit(s, ends[0]) != bit(s, ends[1]) {
			active[geom.Edge(e)] = true
		}
	}
	for _, f := range faces {
		var activeEdges []geom.Edge
		for i, e := range f.edges {
			c0, c1 := f.corners[i], f.corners[(i+1)%4]
			if bit(s, c0) != bit(s, c1) {
				activeEdges = append(activeEdges, e)
			}
		}
		switch len(activeEdges) {
		case 0:
			// surface does not cross this face
		case 2:
			uf.union(int(activeEdges[0]), int(activeEdges[1]))
		case 4:
			// checkerboard: decide pairing from the sign of corner 0
			if bit(s, f.corners[0]) == 1 {
				uf.union(int(f.edges[0]), int(f.edges[3]))
				uf.union(int(f.edges[1]), int(f.edges[2]))
			} else {
				uf.union(int(f.edges[0]), int(f.edges[1]))
				uf.union(int(f.edges[2]), int(f.edges[3]))
			}
		}
	}

	groups := map[int]BitSet{}
	for e := range active {
		root := uf.find(int(e))
		g := groups[root]
		g.Set(int(e))
		groups[root] = g
	}
	out := make([]BitSet, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	return out
}

var (
	once  sync.Once
	table [256][]BitSet
)

// Table returns the static sign_mask -> []BitSet cell configuration table,
// computing it once on first use.
//
// Invariants (see spec): for every s, the returned edge-sets partition
// exactly the active edges of s; each part is one connected manifold patch;
// for s == 0 or s == 255 the list is empty.
func Table() *[256][]BitSet {
	once.Do(func() {
		for s := 0; s < 256; s++ {
			table[s] = buildMask(BitSet(s))
		}
	})
	return &table
}

// ConnectedEdges returns the unique edge-set in Table()[mask] that contains
// edge. It panics if no such set exists: that is a programming error (either
// the table is malformed or mask/edge are inconsistent with value_grid),
// never an expected runtime condition.
func ConnectedEdges(edge geom.Edge, mask BitSet) BitSet {
	for _, set := range Table()[mask] {
		if set.Has(int(edge)) {
			return set
		}
	}
	chk.Panic("cellconfig: did not find edge-set for edge %v and mask %#x", edge, uint16(mask))
	return 0
}
