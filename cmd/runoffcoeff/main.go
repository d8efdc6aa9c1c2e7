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
	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/internal/cli"
	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/landcover"
)

var (
	// Display usage if true.
	showHelp = flag.Bool("help", false, "")

	// Run in verbose mode if true.
	runVerbose = flag.Bool("verbose", false, "")

	configFile = flag.String("config", "", "")
)

const helpMessage = `
runoffcoeff samples a landcover raster at every cell centre of a mesh and
writes the matching runoff coefficient, one per line in cell order. The
class to coefficient table comes from the [runoff] section of the config.

Usage: runoffcoeff [options] landcover.tif centres output.txt

  where landcover.tif = single band classified raster with a .tfw world file
        centres       = cell centre field written by "postProcess -func writeCellCentres"

	-config     =string   TOML configuration file

	-verbose    (flag)    Run in verbose mode.
	-h, -help   (flag)    Show help message
`

func main() {
	flag.BoolVar(showHelp, "h", false, "Show help message")
	flag.Usage = func() {
		fmt.Printf(helpMessage)
	}
	flag.Parse()

	if *showHelp || flag.NArg() != 3 {
		flag.Usage()
		os.Exit(0)
	}

	cfg, logger, err := cli.Setup(*configFile, *runVerbose)
	if err != nil {
		cli.Exit(nil, err)
	}
	defer logger.Sync()

	table, err := cli.RunoffTable(cfg.Runoff)
	if err != nil {
		cli.Exit(logger, err)
	}

	rasterPath, centrePath, output := flag.Arg(0), flag.Arg(1), flag.Arg(2)
	raster, err := landcover.Open(rasterPath)
	if err != nil {
		cli.Exit(logger, err)
	}
	b, gt := raster.Bounds(), raster.GeoTransform()
	logger.Info("opened raster",
		zap.String("path", rasterPath),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()),
		zap.Float64s("geotransform", gt[:]))

	f, err := os.Open(centrePath)
	if err != nil {
		cli.Exit(logger, errors.Wrapf(err, "opening %q", centrePath))
	}
	centres, err := foam.ReadCellCentres(f)
	f.Close()
	if err != nil {
		cli.Exit(logger, err)
	}

	coeffs, err := landcover.Coefficients(raster, centres, table)
	if err != nil {
		cli.Exit(logger, err)
	}
	n, err := cli.WriteFile(output, func(w io.Writer) error {
		return landcover.WriteCoefficients(w, coeffs)
	})
	if err != nil {
		cli.Exit(logger, err)
	}
	cli.Wrote(logger, output, n)
}
