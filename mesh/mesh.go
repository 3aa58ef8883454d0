// Copyright 2016 Dorival Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mesh holds the triangle mesh produced by the dual marching cubes
// extractor, and exports it to common interchange formats. This plays the
// role the teacher's tools/Msh2vtu.go plays for FE volume meshes, adapted to
// a plain triangle surface: there is no FE topology to preserve here, only
// vertices and faces.
package mesh

import (
	"fmt"
	"io"
	"math"

	"github.com/cpmech/gosl/gm"

	"github.com/cpmech/dmc/geom"
)

// Mesh is an indexed triangle mesh: an ordered list of vertex positions and
// an ordered list of triangles (vertex-id triples), in emission order.
type Mesh struct {
	Vertices []geom.Point
	Faces    [][3]int
}

// New returns an empty mesh.
func New() Mesh {
	return Mesh{}
}

// AddVertex appends p and returns its new vertex id.
func (m *Mesh) AddVertex(p geom.Point) int {
	id := len(m.Vertices)
	m.Vertices = append(m.Vertices, p)
	return id
}

// AddTriangle appends a triangle referencing three existing vertex ids.
func (m *Mesh) AddTriangle(i0, i1, i2 int) {
	m.Faces = append(m.Faces, [3]int{i0, i1, i2})
}

// Clone returns an independent deep copy of m.
func (m Mesh) Clone() Mesh {
	out := Mesh{
		Vertices: make([]geom.Point, len(m.Vertices)),
		Faces:    make([][3]int, len(m.Faces)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Faces, m.Faces)
	return out
}

// Clear empties m in place.
func (m *Mesh) Clear() {
	m.Vertices = m.Vertices[:0]
	m.Faces = m.Faces[:0]
}

// WriteOBJ writes m as a Wavefront OBJ file.
func WriteOBJ(w io.Writer, m Mesh) error {
	for _, v := range m.Vertices {
		if _, err := fmt.Fprintf(w, "v %.9g %.9g %.9g\n", v[0], v[1], v[2]); err != nil {
			return err
		}
	}
	for _, f := range m.Faces {
		// OBJ face indices are 1-based.
		if _, err := fmt.Fprintf(w, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1); err != nil {
			return err
		}
	}
	return nil
}

// WriteSTL writes m as an ASCII STL file. Facet normals are computed from
// vertex winding since the extractor does not retain per-triangle normals.
func WriteSTL(w io.Writer, m Mesh) error {
	if _, err := fmt.Fprintf(w, "solid dmc\n"); err != nil {
		return err
	}
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		n := faceNormal(a, b, c)
		if _, err := fmt.Fprintf(w, "facet normal %.9g %.9g %.9g\n", n[0], n[1], n[2]); err != nil {
			return err
		}
		fmt.Fprintf(w, "  outer loop\n")
		fmt.Fprintf(w, "    vertex %.9g %.9g %.9g\n", a[0], a[1], a[2])
		fmt.Fprintf(w, "    vertex %.9g %.9g %.9g\n", b[0], b[1], b[2])
		fmt.Fprintf(w, "    vertex %.9g %.9g %.9g\n", c[0], c[1], c[2])
		fmt.Fprintf(w, "  endloop\n")
		if _, err := fmt.Fprintf(w, "endfacet\n"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "endsolid dmc\n")
	return err
}

func faceNormal(a, b, c geom.Point) geom.Vector {
	u := b.Sub(a)
	v := c.Sub(a)
	n := geom.Vector{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
	norm := n.Norm()
	if norm < 1e-300 {
		return n
	}
	return n.Scale(1 / norm)
}

// Dedup merges vertices that are within tol of each other, using gm.Bins for
// fast neighbor lookup, and remaps faces accordingly. This is an optional
// post-processing helper for callers stitching together meshes produced by
// several extractor runs over adjoining regions; the extractor's own
// vertex_map memoization (see package dmc) is what guarantees at-most-one
// vertex per manifold patch within a single run, independent of this.
func Dedup(m Mesh, tol float64) Mesh {
	if len(m.Vertices) == 0 {
		return m.Clone()
	}
	lo, hi := m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices {
		for i := 0; i < 3; i++ {
			if v[i] < lo[i] {
				lo[i] = v[i]
			}
			if v[i] > hi[i] {
				hi[i] = v[i]
			}
		}
	}
	// size the bins from tol itself: gm.Bins merges points that land in the
	// same bin, so the bin edge length must be about tol for tol to mean
	// anything -- a fixed ndiv would merge at a fixed fraction of the mesh's
	// extent regardless of what tol the caller asked for.
	maxExtent := 0.0
	for i := 0; i < 3; i++ {
		maxExtent = math.Max(maxExtent, hi[i]-lo[i])
	}
	ndiv := 1
	if tol > 0 && maxExtent > 0 {
		ndiv = int(math.Ceil(maxExtent / tol))
		if ndiv < 1 {
			ndiv = 1
		}
	}
	var bins gm.Bins
	if err := bins.Init([]float64{lo[0], lo[1], lo[2]}, []float64{hi[0], hi[1], hi[2]}, ndiv); err != nil {
		return m.Clone()
	}

	remap := make([]int, len(m.Vertices))
	out := New()
	for i, v := range m.Vertices {
		x := []float64{v[0], v[1], v[2]}
		if merged := bins.Find(x); merged >= 0 {
			remap[i] = remap[merged]
			continue
		}
		newID := out.AddVertex(v)
		remap[i] = newID
		bins.Append(x, i)
	}
	for _, f := range m.Faces {
		out.AddTriangle(remap[f[0]], remap[f[1]], remap[f[2]])
	}
	return out
}
