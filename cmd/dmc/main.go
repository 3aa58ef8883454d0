// Copyright 2016 Dorival Pedroso. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strings"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/dmc/dmc"
	"github.com/cpmech/dmc/geom"
	"github.com/cpmech/dmc/mesh"
	"github.com/cpmech/dmc/object"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	// read input parameters
	kind := io.ArgToString(0, "sphere")
	res := io.ArgToFloat(1, 0.1)
	output := io.ArgToString(2, "out.obj")
	verbose := io.ArgToBool(3, true)

	// message
	if verbose {
		io.PfWhite("\nDmc -- Dual Marching Cubes surface extraction\n\n")
		io.Pf("Copyright 2016 Dorival Pedroso. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n\n")

		io.Pf("\n%v\n", io.ArgsTable(
			"object kind (sphere|box|torus)", "kind", kind,
			"sampling resolution", "res", res,
			"output file path (.obj or .stl)", "output", output,
			"show messages", "verbose", verbose,
		))
	}

	obj, err := newObject(kind)
	if err != nil {
		chk.Panic("%v", err)
	}

	// run extraction
	start := time.Now()
	extractor := dmc.New(obj, res)
	extractor.Verbose = verbose
	m := extractor.Tessellate()
	elapsed := time.Since(start)

	if err := writeMesh(m, output); err != nil {
		chk.Panic("failed to write output file %q:\n%v", output, err)
	}

	if verbose {
		qefs, clamps := extractor.Stats()
		io.Pf("\nvertices = %d  triangles = %d  qef-solved = %d  clamped = %d\n",
			len(m.Vertices), len(m.Faces), qefs, clamps)
		io.Pf("elapsed time = %v\n", elapsed)
	}
}

// newObject builds the stock test object named by kind. It exists so the CLI
// has something concrete to tessellate without its own input file format;
// arbitrary objects are a library concern, not a CLI one.
func newObject(kind string) (object.Object, error) {
	switch kind {
	case "sphere":
		return object.Sphere{Center: geom.Point{0, 0, 0}, Radius: 1}, nil
	case "box":
		return object.Box{Center: geom.Point{0, 0, 0}, Half: geom.Vector{1, 1, 1}}, nil
	case "torus":
		return object.Torus{Center: geom.Point{0, 0, 0}, Major: 1, Minor: 0.35}, nil
	}
	return nil, chk.Err("unknown object kind %q (use sphere, box or torus)", kind)
}

// writeMesh dispatches on the output path's extension; .stl gets the STL
// writer, anything else (including a bare ".obj") gets OBJ.
func writeMesh(m mesh.Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if strings.HasSuffix(strings.ToLower(path), ".stl") {
		return mesh.WriteSTL(f, m)
	}
	return mesh.WriteOBJ(f, m)
}
