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

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
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

	geojsonOut = flag.String("geojson", "", "")
)

const helpMessage = `
mesh2shp writes the faces listed in point.txt, face_4.txt and face_3.txt as a
polygon shapefile. Quadrilaterals come first, so a polygon's id is its face id.

Usage: mesh2shp [options] casedir output.shp

  where casedir = directory holding the tables written by foam2txt

	-config     =string   TOML configuration file
	-geojson    =string   Also write the polygons to this GeoJSON file

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

	dir, output := flag.Arg(0), flag.Arg(1)
	polys, err := readPolygons(dir)
	if err != nil {
		cli.Exit(logger, err)
	}
	logger.Info("built face polygons", zap.Int("faces", len(polys)))

	if err := gis.WriteShapefile(output, polys); err != nil {
		cli.Exit(logger, err)
	}
	logger.Info("wrote shapefile", zap.String("path", output))

	if *geojsonOut != "" {
		n, err := cli.WriteFile(*geojsonOut, func(w io.Writer) error {
			return gis.WriteGeoJSON(w, polys)
		})
		if err != nil {
			cli.Exit(logger, err)
		}
		cli.Wrote(logger, *geojsonOut, n)
	}
}

func readPolygons(dir string) ([]orb.Polygon, error) {
	var points []r3.Vector
	if err := readTable(filepath.Join(dir, "point.txt"), func(r io.Reader) (err error) {
		points, err = foam.ReadPointTable(r)
		return err
	}); err != nil {
		return nil, err
	}
	var quads, tris [][]int
	if err := readTable(filepath.Join(dir, "face_4.txt"), func(r io.Reader) (err error) {
		quads, err = foam.ReadRings(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := readTable(filepath.Join(dir, "face_3.txt"), func(r io.Reader) (err error) {
		tris, err = foam.ReadRings(r)
		return err
	}); err != nil {
		return nil, err
	}
	return gis.FacePolygons(points, quads, tris)
}

func readTable(path string, fn func(r io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %q", path)
	}
	defer f.Close()
	return errors.Wrapf(fn(f), "reading %q", path)
}
