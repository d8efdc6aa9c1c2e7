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

	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/internal/cli"
	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/mesh"
)

var (
	// Display usage if true.
	showHelp = flag.Bool("help", false, "")

	// Run in verbose mode if true.
	runVerbose = flag.Bool("verbose", false, "")

	configFile = flag.String("config", "", "")

	title = flag.String("title", "", "")
)

const helpMessage = `
poly2msh converts a Triangle mesh (basename.node, basename.edge, basename.ele
as written by "triangle -e") into a two-dimensional Fluent .msh file.

Usage: poly2msh [options] basename output.msh

	-config     =string   TOML configuration file
	-title      =string   Title written to the mesh header (default from config, "poly2msh")

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

	if *title != "" {
		cfg.Msh.Title = *title
	}
	opts, err := cli.MshOptions(cfg.Msh)
	if err != nil {
		cli.Exit(logger, err)
	}

	base, output := flag.Arg(0), flag.Arg(1)
	nodes, edges, cells, err := readTriangle(base)
	if err != nil {
		cli.Exit(logger, err)
	}
	logger.Info("read triangulation",
		zap.String("basename", base),
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)),
		zap.Int("cells", len(cells)))

	n, err := cli.WriteFile(output, func(w io.Writer) error {
		_, err := mesh.PolyToMsh(w, nodes, edges, cells, &opts, logger)
		return err
	})
	if err != nil {
		cli.Exit(logger, err)
	}
	cli.Wrote(logger, output, n)
}

func readTriangle(base string) ([]mesh.Node, []mesh.Edge, []mesh.Cell, error) {
	var files [3]*os.File
	for i, ext := range []string{".node", ".edge", ".ele"} {
		f, err := os.Open(base + ext)
		if err != nil {
			return nil, nil, nil, errors.Wrapf(err, "opening %q", base+ext)
		}
		defer f.Close()
		files[i] = f
	}
	return mesh.ReadTriangle(mesh.TriangleFiles{Node: files[0], Edge: files[1], Ele: files[2]})
}
