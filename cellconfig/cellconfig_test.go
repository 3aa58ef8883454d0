// Copyright 2016 Dorival Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cellconfig

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/dmc/geom"
)

func activeEdges(s BitSet) BitSet {
	var active BitSet
	for e := 0; e < geom.NumEdges; e++ {
		ends := geom.EdgeEndpoints[e]
		if s.Has(int(ends[0])) != s.Has(int(ends[1])) {
			active.Set(e)
		}
	}
	return active
}

func Test_cellconfig01(tst *testing.T) {

	chk.PrintTitle("Test cellconfig01: table partitions exactly the active edges")

	tbl := Table()
	for s := 0; s < 256; s++ {
		want := activeEdges(BitSet(s))
		var got BitSet
		for _, set := range tbl[s] {
			if set&got != 0 {
				tst.Fatalf("mask %d: edge-sets are not disjoint: %v overlaps %v", s, set, got)
			}
			got |= set
		}
		if got != want {
			tst.Errorf("mask %d: union of edge-sets %v != active edges %v", s, got, want)
		}
	}
}

func Test_cellconfig02(tst *testing.T) {

	chk.PrintTitle("Test cellconfig02: empty table for uniform-sign masks")

	tbl := Table()
	if len(tbl[0]) != 0 {
		tst.Errorf("mask 0 should have no edge-sets, got %v", tbl[0])
	}
	if len(tbl[255]) != 0 {
		tst.Errorf("mask 255 should have no edge-sets, got %v", tbl[255])
	}
}

func Test_cellconfig03(tst *testing.T) {

	chk.PrintTitle("Test cellconfig03: ConnectedEdges finds the containing patch")

	// a single corner flipped (mask 1, only corner A negative) activates
	// exactly the 3 edges leaving corner A: A, B, C -- and they must all
	// land in the same patch, since they all meet at corner A.
	mask := BitSet(1)
	set := ConnectedEdges(geom.EdgeA, mask)
	for _, e := range []geom.Edge{geom.EdgeA, geom.EdgeB, geom.EdgeC} {
		if !set.Has(int(e)) {
			tst.Errorf("expected edge %v in patch %v for mask 1", e, set)
		}
	}
}
