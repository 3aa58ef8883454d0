// Copyright 2016 Dorival Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package qef fits a point to a set of tangent planes by minimizing the
// summed squared point-to-plane distance (the Quadratic Error Function used
// to place dual-contouring vertices). The planes themselves -- a zero
// crossing point and the surface normal there -- are produced by the edge
// zero finder; this package treats them as an opaque list of constraints.
package qef

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/dmc/geom"
)

// Plane is a tangent plane: it passes through P with normal N.
type Plane struct {
	P geom.Point
	N geom.Vector
}

// Qef accumulates a set of tangent-plane constraints and solves for the
// point minimizing the summed squared distance to all of their planes.
type Qef struct {
	planes   []Plane
	Solution geom.Point // set by Solve
}

// New creates a Qef over the given planes. planes must be non-empty.
func New(planes []Plane) *Qef {
	if len(planes) == 0 {
		chk.Panic("qef.New: planes must not be empty")
	}
	return &Qef{planes: planes}
}

// Solve finds the least-squares point. The minimizer of
// sum_i (n_i . (x - p_i))^2 satisfies the 3x3 normal equations
// (sum_i n_i n_i^T) x = sum_i n_i (n_i . p_i); this builds and solves that
// system. Solve returns an error (never panics) if la.MatInvG fails to
// invert the system; callers fall back to the clamped centroid in that case.
// The small regularization term added below keeps configurations such as
// all-parallel planes solvable, so those do not produce an error.
func (q *Qef) Solve() error {
	ata := la.MatAlloc(3, 3)
	atb := make([]float64, 3)
	for _, pl := range q.planes {
		n := pl.N
		d := n[0]*pl.P[0] + n[1]*pl.P[1] + n[2]*pl.P[2]
		for i := 0; i < 3; i++ {
			atb[i] += n[i] * d
			for j := 0; j < 3; j++ {
				ata[i][j] += n[i] * n[j]
			}
		}
	}
	// Tikhonov-style regularization: a vanishingly small identity term keeps
	// MatInvG well-posed for under-determined configurations (e.g. all
	// planes parallel) without perturbing well-posed solves noticeably.
	const eps = 1e-8
	for i := 0; i < 3; i++ {
		ata[i][i] += eps
	}
	atai := la.MatAlloc(3, 3)
	err := la.MatInvG(atai, ata, 1e-10)
	if err != nil {
		return err
	}
	var x [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			x[i] += atai[i][j] * atb[j]
		}
	}
	q.Solution = geom.Point{x[0], x[1], x[2]}
	return nil
}

// Mean returns the centroid of the planes' anchor points -- the clamp
// fallback used when Solve's solution falls outside its owning cell.
func Mean(planes []Plane) geom.Point {
	var sum geom.Vector
	for _, pl := range planes {
		sum[0] += pl.P[0]
		sum[1] += pl.P[1]
		sum[2] += pl.P[2]
	}
	n := float64(len(planes))
	return geom.Point{sum[0] / n, sum[1] / n, sum[2] / n}
}
