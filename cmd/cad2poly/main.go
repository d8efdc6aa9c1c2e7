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
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/cad"
	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/internal/cli"
	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/internal/config"
	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/mesh"
)

var (
	// Display usage if true.
	showHelp = flag.Bool("help", false, "")

	// Run in verbose mode if true.
	runVerbose = flag.Bool("verbose", false, "")

	configFile = flag.String("config", "", "")

	markers = flag.Int("markers", -1, "")
	samples = flag.Int("samples", -1, "")
	seed    = flag.Int64("seed", 0, "")
	layers  = flag.String("layers", "", "")
)

const helpMessage = `
cad2poly converts a CAD line export into a Triangle .poly file, marking the
outer boundary, the hole boundaries and a point inside every hole.

Usage: cad2poly [options] input output.poly

  where input = a CSV table of line segments (.csv) or a DXF drawing (.dxf)

	-config     =string   TOML configuration file
	-markers    =number   Boundary marker count written to the headers (default from config, 1)
	-samples    =number   Random samples per hole before the scan line fallback (default from config, 10000)
	-seed       =number   Seed for hole sampling; 0 seeds from the clock
	-layers     =string   Comma separated DXF layers to read; empty reads all

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

	cfg, logger, err := cli.Setup(*configFile, *runVerbose)
	if err != nil {
		cli.Exit(nil, err)
	}
	defer logger.Sync()

	if *markers >= 0 {
		cfg.Poly.BoundaryMarkers = *markers
	}
	if *samples >= 0 {
		cfg.Poly.MaxHoleSamples = *samples
	}
	if *seed != 0 {
		cfg.Poly.Seed = *seed
	}
	if *layers != "" {
		cfg.CAD.Layers = strings.Split(*layers, ",")
	}

	input, output := flag.Arg(0), flag.Arg(1)
	pairs, err := readSegments(input, cfg.CAD)
	if err != nil {
		cli.Exit(logger, err)
	}
	logger.Info("read segments", zap.String("input", input), zap.Int("segments", len(pairs)))

	classify := cli.ClassifierOptions(logger)
	opts := cli.PolyOptions(cfg.Poly, logger)
	p, err := mesh.CadToPoly(pairs, &classify, &opts)
	if err != nil {
		cli.Exit(logger, err)
	}
	logger.Info("built poly",
		zap.Int("vertices", len(p.Vertices)),
		zap.Int("segments", len(p.Segments)),
		zap.Int("holes", len(p.Holes)))

	n, err := cli.WriteFile(output, func(w io.Writer) error {
		return mesh.WritePoly(w, p)
	})
	if err != nil {
		cli.Exit(logger, err)
	}
	cli.Wrote(logger, output, n)
}

// readSegments parses input according to its extension.
func readSegments(input string, c config.CADConfig) ([]mesh.SegmentCoords, error) {
	f, err := os.Open(input)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q", input)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(input)); ext {
	case ".csv":
		return cad.ReadCSV(f, cli.CSVOptions(c))
	case ".dxf":
		return cad.ReadDXF(f, cli.DXFOptions(c))
	default:
		return nil, errors.Errorf("%q: unsupported input type %q, want .csv or .dxf", input, ext)
	}
}
