// Copyright 2023 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS-IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/foam"
	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/internal/cli"
)

var (
	// Display usage if true.
	showHelp = flag.Bool("help", false, "")

	// Run in verbose mode if true.
	runVerbose = flag.Bool("verbose", false, "")

	configFile = flag.String("config", "", "")

	pointsName = flag.String("points", "points.txt", "")
	facesName  = flag.String("faces", "faces.txt", "")
)

const helpMessage = `
foam2txt flattens the points and faces of an OpenFOAM polyMesh into the plain
tables read by mesh2shp: point.txt, face_3.txt (triangles) and face_4.txt
(quadrilaterals). Existing tables in dest are overwritten.

Usage: foam2txt [options] src dest

  where src  = directory holding the points and faces files
        dest = output directory

	-config     =string   TOML configuration file
	-points     =string   Name of the points file in src (default "points.txt")
	-faces      =string   Name of the faces file in src (default "faces.txt")

	-verbose    (flag)    Run in verbose mode.
	-h, -help   (flag)    Show help message
`

func main() {
	flag.BoolVar(showHelp, "h", false, "Show help message")
	flag.Usage = func() {
		fmt.Printf(helpMessage)
	}
	flag.Parse()

	if *showHelp || flag.NArg() != 2 {
		flag.Usage()
		os.Exit(0)
	}

	_, logger, err := cli.Setup(*configFile, *runVerbose)
	if err != nil {
		cli.Exit(nil, err)
	}
	defer logger.Sync()

	src, dest := flag.Arg(0), flag.Arg(1)
	if err := convert(src, dest, logger); err != nil {
		cli.Exit(logger, err)
	}
}

func convert(src, dest string, logger *zap.Logger) error {
	pf, err := os.Open(filepath.Join(src, *pointsName))
	if err != nil {
		return errors.Wrap(err, "opening points")
	}
	defer pf.Close()
	points, err := foam.ReadPoints(pf)
	if err != nil {
		return err
	}

	ff, err := os.Open(filepath.Join(src, *facesName))
	if err != nil {
		return errors.Wrap(err, "opening faces")
	}
	defer ff.Close()
	faces, err := foam.ReadFaces(ff)
	if err != nil {
		return err
	}
	tris, quads := foam.SplitFaces(faces)
	logger.Info("read polyMesh",
		zap.Int("points", len(points)),
		zap.Int("triangles", len(tris)),
		zap.Int("quadrilaterals", len(quads)),
		zap.Int("skipped", len(faces)-len(tris)-len(quads)))

	if err := os.MkdirAll(dest, 0755); err != nil {
		return errors.Wrapf(err, "creating %q", dest)
	}
	outputs := []struct {
		name  string
		write func(w io.Writer) error
	}{
		{"point.txt", func(w io.Writer) error { return foam.WritePoints(w, points) }},
		{"face_3.txt", func(w io.Writer) error { return foam.WriteRings(w, tris) }},
		{"face_4.txt", func(w io.Writer) error { return foam.WriteRings(w, quads) }},
	}
	for _, o := range outputs {
		path := filepath.Join(dest, o.name)
		n, err := cli.WriteFile(path, o.write)
		if err != nil {
			return err
		}
		cli.Wrote(logger, path, n)
	}
	return nil
}
