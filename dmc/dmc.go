// Copyright 2016 Dorival Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dmc implements the dual marching cubes pipeline: adaptive sparse
// sampling of an implicit object, zero-crossing localization with surface
// normals, cell-configuration lookup, QEF vertex placement with clamping,
// and oriented quad emission.
package dmc

import (
	"math"
	"math/rand"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/dmc/cellconfig"
	"github.com/cpmech/dmc/geom"
	"github.com/cpmech/dmc/mesh"
	"github.com/cpmech/dmc/object"
	"github.com/cpmech/dmc/qef"
)

// precision controls how accurately edge zero crossings are localized,
// relative to the grid resolution (see findZero).
const precision = 0.05

// hitZero signals that a sample landed exactly on the isosurface. It is the
// only recoverable error condition in the pipeline (see §7 of the design):
// the extractor retries from a perturbed origin rather than handling it in
// place, since sign classification assumes nonzero values throughout.
type hitZero struct {
	p geom.Point
}

func (e *hitZero) Error() string {
	return io.Sf("dmc: sample landed exactly on the isosurface at %v", e.p)
}

// edgeKey indexes edge_grid: a base edge plus the cell that owns it.
type edgeKey struct {
	edge geom.Edge
	idx  geom.Index
}

// vertexKey indexes vertex_map: a manifold patch (edge-set) plus its cell.
type vertexKey struct {
	patch cellconfig.BitSet
	idx   geom.Index
}

// Extractor tessellates a single Object at a fixed resolution. It is
// single-threaded and non-suspending (see design §5): all of its maps are
// mutated only from within Tessellate, in the well-defined sample / localize
// / emit phases.
type Extractor struct {
	object object.Object
	res    float64
	origin geom.Point
	dim    geom.Index

	valueGrid map[geom.Index]float64
	edgeGrid  map[edgeKey]qef.Plane
	vertexMap map[vertexKey]int
	mesh      mesh.Mesh

	qefs   int
	clamps int

	// Verbose enables progress logging via gosl/io, mirroring fem.Domain's
	// solver progress reporting. Off by default so library use and tests
	// stay quiet.
	Verbose bool

	rng *rand.Rand
}

// New creates an Extractor for obj at resolution res (res must be > 0).
func New(obj object.Object, res float64) *Extractor {
	if res <= 0 {
		chk.Panic("dmc.New: res must be positive, got %v", res)
	}
	bb := obj.BBox().Dilate(1 + res*1.1)
	e := &Extractor{
		object: obj,
		res:    res,
		origin: bb.Min,
		dim: geom.Index{
			int(math.Ceil(bb.Dim[0] / res)),
			int(math.Ceil(bb.Dim[1] / res)),
			int(math.Ceil(bb.Dim[2] / res)),
		},
		rng: rand.New(rand.NewSource(1)),
	}
	e.reset()
	return e
}

func (e *Extractor) reset() {
	e.valueGrid = make(map[geom.Index]float64)
	e.edgeGrid = make(map[edgeKey]qef.Plane)
	e.vertexMap = make(map[vertexKey]int)
	e.mesh = mesh.New()
	e.qefs = 0
	e.clamps = 0
}

// Stats returns the number of cell vertices placed by a direct QEF solve
// versus the clamped-mean fallback, from the most recent Tessellate call.
func (e *Extractor) Stats() (qefs, clamps int) {
	return e.qefs, e.clamps
}

// Tessellate runs the full sample/localize/emit pipeline, retrying with a
// perturbed origin whenever sampling lands exactly on the isosurface (§4.5).
// It returns the resulting mesh by value.
func (e *Extractor) Tessellate() mesh.Mesh {
	for {
		m, err := e.tryTessellate()
		if err == nil {
			return m
		}
		hz, ok := err.(*hitZero)
		if !ok {
			chk.Panic("dmc.Tessellate: unexpected error: %v", err)
		}
		padding := e.res / (10 + e.rng.Float64())
		if e.Verbose {
			io.Pf("dmc: %v; perturbing origin by %v and retrying\n", hz, padding)
		}
		e.origin[0] -= padding
		e.reset()
	}
}

func (e *Extractor) tryTessellate() (mesh.Mesh, error) {
	maxDim := utl.Max(utl.Max(float64(e.dim[0]), float64(e.dim[1])), float64(e.dim[2]))
	size := geom.Pow2Roundup(int(utl.Max(maxDim, 1)))

	originValue := e.object.ApproxValue(e.origin, e.res)
	if err := e.sampleValueGrid(geom.Index{0, 0, 0}, e.origin, size, originValue); err != nil {
		return mesh.Mesh{}, err
	}
	if e.Verbose {
		io.Pf("dmc: value_grid has %d entries for %d nominal cells\n",
			len(e.valueGrid), e.dim[0]*e.dim[1]*e.dim[2])
	}

	e.buildEdgeGrid()

	for key := range e.edgeGrid {
		e.computeQuad(key.edge, key.idx)
	}

	if e.Verbose {
		io.Pf("dmc: qefs=%d clamps=%d faces=%d\n", e.qefs, e.clamps, len(e.mesh.Faces))
	}

	return e.mesh.Clone(), nil
}

// sampleValueGrid recursively subdivides the octant rooted at idx/pos/size,
// descending only where the corner-value/sub-cube-diagonal test (§4.1)
// cannot rule out a zero crossing.
func (e *Extractor) sampleValueGrid(idx geom.Index, pos geom.Point, size int, val float64) error {
	half := size / 2
	// Each octant below is a cube of side half*res whose value is known at
	// one of its corners; subCubeRadius = half*res*sqrt(3) is the diagonal of
	// that octant, i.e. the half-diagonal (size/2)*res*sqrt(3) of the parent
	// cube. Under the 1-Lipschitz assumption, a corner value larger than this
	// rules out a zero crossing anywhere in the octant (see DESIGN.md).
	subCubeRadius := float64(half) * e.res * math.Sqrt(3)

	for z := 0; z < 2; z++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				off := geom.Index{x * half, y * half, z * half}
				cidx := idx.Add(off)
				cpos := geom.Point{
					pos[0] + float64(x*half)*e.res,
					pos[1] + float64(y*half)*e.res,
					pos[2] + float64(z*half)*e.res,
				}

				var value float64
				if cidx == idx {
					value = val
				} else {
					value = e.object.ApproxValue(cpos, e.res)
				}

				if value == 0 {
					return &hitZero{p: cpos}
				}

				if half > 1 && math.Abs(value) <= subCubeRadius {
					if err := e.sampleValueGrid(cidx, cpos, half, value); err != nil {
						return err
					}
				} else {
					e.valueGrid[cidx] = value
				}
			}
		}
	}
	return nil
}

// buildEdgeGrid localizes the zero crossing (with normal) of every active
// edge among sampled grid points, storing the result in edge_grid keyed by
// (base_edge, low-index endpoint).
func (e *Extractor) buildEdgeGrid() {
	for idx, val := range e.valueGrid {
		for _, edge := range [...]geom.Edge{geom.EdgeA, geom.EdgeB, geom.EdgeC} {
			adj := idx
			adj[edge] += 1
			adjVal, ok := e.valueGrid[adj]
			if !ok {
				continue
			}
			p := geom.World(e.origin, e.res, idx)
			q := p
			q[edge] += e.res
			plane, ok := e.findZero(p, val, q, adjVal)
			if !ok {
				continue
			}
			e.edgeGrid[edgeKey{edge: edge, idx: idx}] = plane
		}
	}
}

// findZero locates the zero crossing of the object's field along segment
// [a,b], given its values av, bv at the endpoints (which must have opposite
// signs), by clamped linear bisection (§4.2). It reports ok == false when
// av and bv do not bracket a sign change; buildEdgeGrid relies on this to
// skip grid edges that are not active.
func (e *Extractor) findZero(a geom.Point, av float64, b geom.Point, bv float64) (qef.Plane, bool) {
	if fun.Sign(av) == fun.Sign(bv) {
		return qef.Plane{}, false
	}
	for {
		d := a.Sub(b).MaxAbsComponent()
		d = utl.Min(d, utl.Min(math.Abs(av), math.Abs(bv)))
		if d < precision*e.res {
			p := a
			if math.Abs(bv) < math.Abs(av) {
				p = b
			}
			return qef.Plane{P: p, N: e.object.Normal(p)}, true
		}
		n := a.Add(b.Sub(a).Scale(math.Abs(av) / math.Abs(bv-av)))
		nv := e.object.ApproxValue(n, e.res)
		if fun.Sign(av) != fun.Sign(nv) {
			b, bv = n, nv
		} else {
			a, av = n, nv
		}
	}
}

// getEdgeTangentPlane fetches the tangent plane stored for edge in the
// context of cell idx, by looking it up at its canonical owning cell. It
// panics if the plane is missing: by construction (§9), every edge reached
// from lookupCellPoint belongs to a manifold patch whose member edges all
// have stored planes, so a miss means the table or phase ordering is broken.
func (e *Extractor) getEdgeTangentPlane(edge geom.Edge, cellIdx geom.Index) qef.Plane {
	dataIdx := cellIdx.Add(geom.EdgeOffset[edge])
	plane, ok := e.edgeGrid[edgeKey{edge: edge.Base(), idx: dataIdx}]
	if !ok {
		chk.Panic("dmc: could not find edge tangent plane for edge %v cell %v -> %v", edge, cellIdx, dataIdx)
	}
	return plane
}

// bitsetForCell computes the 8-bit corner sign mask of cell idx: bit
// (z<<2)|(y<<1)|x is set iff the corresponding corner's value is strictly
// negative. Missing values (outside the sampled region) are treated as
// non-negative, matching §4.3.
func (e *Extractor) bitsetForCell(idx geom.Index) cellconfig.BitSet {
	var s cellconfig.BitSet
	for c, off := range geom.CornerOffset {
		if v, ok := e.valueGrid[idx.Add(off)]; ok && fun.Sign(v) < 0 {
			s.Set(c)
		}
	}
	return s
}

// lookupCellPoint returns the vertex id (into e.mesh.Vertices) for the
// manifold patch of cell idx containing edge, memoizing per (patch, idx) as
// required by vertex_map's injectivity invariant.
func (e *Extractor) lookupCellPoint(edge geom.Edge, idx geom.Index) int {
	patch := cellconfig.ConnectedEdges(edge, e.bitsetForCell(idx))
	key := vertexKey{patch: patch, idx: idx}
	if id, ok := e.vertexMap[key]; ok {
		return id
	}
	p := e.computeCellPoint(patch, idx)
	id := e.mesh.AddVertex(p)
	e.vertexMap[key] = id
	return id
}

// computeCellPoint fits a vertex to the tangent planes of patch's edges by
// QEF, clamping to the tangent-plane centroid if the solution falls outside
// the owning cell idx (§4.3 steps 4-6).
func (e *Extractor) computeCellPoint(patch cellconfig.BitSet, idx geom.Index) geom.Point {
	edges := patch.Edges()
	planes := make([]qef.Plane, len(edges))
	for i, edge := range edges {
		planes[i] = e.getEdgeTangentPlane(edge, idx)
	}

	solver := qef.New(planes)
	if err := solver.Solve(); err == nil && e.isInCell(idx, solver.Solution) {
		e.qefs++
		return solver.Solution
	}
	e.clamps++
	return qef.Mean(planes)
}

// isInCell reports whether p lies strictly inside cell idx: every component
// of p - P(idx) is in the open interval (0, res).
func (e *Extractor) isInCell(idx geom.Index, p geom.Point) bool {
	origin := geom.World(e.origin, e.res, idx)
	d := p.Sub(origin)
	for i := 0; i < 3; i++ {
		if !(d[i] > 0 && d[i] < e.res) {
			return false
		}
	}
	return true
}

// computeQuad emits the two triangles of the quad surrounding the given
// active base edge at idx, oriented by the sign of the field at idx. Quads
// with a surrounding cell that has a negative index component (i.e. lies
// below the low side of the sampled domain) are silently skipped rather
// than looked up. Only the low side is checked: cells at the high side of
// the domain are looked up even if some of their corners were never sampled.
func (e *Extractor) computeQuad(edge geom.Edge, idx geom.Index) {
	quad := geom.Quads[edge]
	var cellIdx [4]geom.Index
	for i, qe := range quad {
		cellIdx[i] = idx.Sub(geom.EdgeOffset[qe])
		if !cellIdx[i].Positive() {
			return
		}
	}

	var p [4]int
	for i, qe := range quad {
		p[i] = e.lookupCellPoint(qe, cellIdx[i])
	}

	if v, ok := e.valueGrid[idx]; ok && fun.Sign(v) < 0 {
		p[0], p[1], p[2], p[3] = p[3], p[2], p[1], p[0]
	}

	e.mesh.AddTriangle(p[0], p[1], p[2])
	e.mesh.AddTriangle(p[2], p[3], p[0])
}
