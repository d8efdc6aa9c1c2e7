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

// Package cli holds the setup shared by the command line tools: config and
// logger construction, option conversion and output file handling.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/cad"
	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/internal/config"
	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/internal/logging"
	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/landcover"
	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/mesh"
)

// Setup loads the TOML file at configPath, or the defaults if it is empty,
// and builds the logger it describes.
func Setup(configPath string, verbose bool) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log, verbose)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// Exit reports err and terminates the process with status 1.
func Exit(logger *zap.Logger, err error) {
	if logger != nil {
		logger.Error("failed", zap.Error(err))
		logger.Sync()
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteFile creates path, truncating any existing file, and fills it with
// fn. It returns the number of bytes written.
func WriteFile(path string, fn func(w io.Writer) error) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrapf(err, "creating %q", path)
	}
	cw := &countingWriter{w: f}
	bw := bufio.NewWriter(cw)
	if err := fn(bw); err != nil {
		f.Close()
		return cw.n, errors.Wrapf(err, "writing %q", path)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return cw.n, errors.Wrapf(err, "writing %q", path)
	}
	if err := f.Close(); err != nil {
		return cw.n, errors.Wrapf(err, "closing %q", path)
	}
	return cw.n, nil
}

// Wrote logs a finished output file with its size.
func Wrote(logger *zap.Logger, path string, size int64) {
	logger.Info("wrote file",
		zap.String("path", path),
		zap.String("size", humanize.Bytes(uint64(size))))
}

// ClassifierOptions returns the boundary classification options.
func ClassifierOptions(logger *zap.Logger) mesh.ClassifierOptions {
	opts := mesh.NewClassifierOptions()
	opts.Logger = logger
	return opts
}

// PolyOptions converts the [poly] section. A zero seed leaves hole sampling
// seeded from the clock.
func PolyOptions(c config.PolyConfig, logger *zap.Logger) mesh.PolyOptions {
	opts := mesh.NewPolyOptions()
	opts.BoundaryMarkers = c.BoundaryMarkers
	opts.MaxHoleSamples = c.MaxHoleSamples
	if c.Seed != 0 {
		opts.Rand = rand.New(rand.NewSource(c.Seed))
	}
	opts.Logger = logger
	return opts
}

func zone(c config.ZoneConfig) mesh.MshZone {
	return mesh.MshZone{ID: c.ID, Type: c.Type, Name: c.Name}
}

// MshOptions converts the [msh] section.
func MshOptions(c config.MshConfig) (mesh.MshOptions, error) {
	if len(c.NodeZones) != 3 {
		return mesh.MshOptions{}, errors.Errorf("msh.node_zones: want 3 zone ids, got %d", len(c.NodeZones))
	}
	opts := mesh.MshOptions{
		Title:     c.Title,
		FaceZones: [3]mesh.MshZone{zone(c.Outer), zone(c.Inner), zone(c.Interior)},
		CellZone:  zone(c.Cells),
	}
	copy(opts.NodeZones[:], c.NodeZones)
	return opts, nil
}

// CSVOptions converts the CSV part of the [cad] section.
func CSVOptions(c config.CADConfig) cad.CSVOptions {
	return cad.CSVOptions{
		Encoding: c.Encoding,
		StartX:   c.StartX,
		StartY:   c.StartY,
		EndX:     c.EndX,
		EndY:     c.EndY,
	}
}

// DXFOptions converts the DXF part of the [cad] section.
func DXFOptions(c config.CADConfig) cad.DXFOptions {
	return cad.DXFOptions{Layers: c.Layers}
}

// RunoffTable converts the [runoff] section.
func RunoffTable(c config.RunoffConfig) (landcover.RunoffTable, error) {
	classes, err := c.Table()
	if err != nil {
		return landcover.RunoffTable{}, err
	}
	return landcover.RunoffTable{Classes: classes, Default: c.Default}, nil
}
