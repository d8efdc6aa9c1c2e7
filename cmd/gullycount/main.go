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

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/foam"
	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/gis"
	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/internal/cli"
)

var (
	// Display usage if true.
	showHelp = flag.Bool("help", false, "")

	// Run in verbose mode if true.
	runVerbose = flag.Bool("verbose", false, "")

	configFile = flag.String("config", "", "")

	prefix = flag.String("prefix", "Y", "")
)

const helpMessage = `
gullycount counts the gullies inside every cell of a mesh and lists their
names, one line per cell after a "Num	Points" header.

Usage: gullycount [options] mesh.shp cell_face.txt junctions.shp output.txt

  where mesh.shp      = face polygons written by mesh2shp
        cell_face.txt = one "(f1 f2 ...)" list of face ids per cell
        junctions.shp = point shapefile with a NAME attribute

	-config     =string   TOML configuration file
	-prefix     =string   Keep only junctions whose NAME starts with this (default "Y")

	-verbose    (flag)    Run in verbose mode.
	-h, -help   (flag)    Show help message
`

func main() {
	flag.BoolVar(showHelp, "h", false, "Show help message")
	flag.Usage = func() {
		fmt.Printf(helpMessage)
	}
	flag.Parse()

	if *showHelp || flag.NArg() != 4 {
		flag.Usage()
		os.Exit(0)
	}

	_, logger, err := cli.Setup(*configFile, *runVerbose)
	if err != nil {
		cli.Exit(nil, err)
	}
	defer logger.Sync()

	meshPath, cellPath, junctionPath, output := flag.Arg(0), flag.Arg(1), flag.Arg(2), flag.Arg(3)

	faces, err := gis.ReadShapefile(meshPath)
	if err != nil {
		cli.Exit(logger, err)
	}
	cellFaces, err := readCellFaces(cellPath)
	if err != nil {
		cli.Exit(logger, err)
	}
	gullies, err := gis.ReadGullies(junctionPath, *prefix)
	if err != nil {
		cli.Exit(logger, err)
	}
	logger.Info("read inputs",
		zap.Int("faces", len(faces)),
		zap.Int("cells", len(cellFaces)),
		zap.Int("gullies", len(gullies)))

	counts, err := gis.CountGullies(faces, cellFaces, gullies)
	if err != nil {
		cli.Exit(logger, err)
	}
	var total int
	for _, c := range counts {
		total += c.Count
	}
	logger.Debug("counted gullies", zap.Int("matches", total))

	n, err := cli.WriteFile(output, func(w io.Writer) error {
		return gis.WriteGullyCounts(w, counts)
	})
	if err != nil {
		cli.Exit(logger, err)
	}
	cli.Wrote(logger, output, n)
}

func readCellFaces(path string) ([][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q", path)
	}
	defer f.Close()
	return foam.ReadCellFaces(f)
}
