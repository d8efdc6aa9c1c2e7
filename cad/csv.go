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

// Package cad extracts line segments from CAD exports: the CSV tables
// written by AutoCAD's DATAEXTRACTION command and DXF drawings.
package cad

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/mesh"
)

// CSVOptions names the coordinate columns of a segment table.
type CSVOptions struct {
	// Encoding is "utf-8" (the default) or "gbk".
	Encoding string

	StartX, StartY string
	EndX, EndY     string
}

// NewCSVOptions returns the column names of a Chinese AutoCAD export. The
// segment runs from the "端点" (end point) columns to the "起点" (start
// point) columns, matching the order the boundary files were drawn in.
func NewCSVOptions() CSVOptions {
	return CSVOptions{
		Encoding: "utf-8",
		StartX:   "端点 X",
		StartY:   "端点 Y",
		EndX:     "起点 X",
		EndY:     "起点 Y",
	}
}

func decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case "gbk":
		return transform.NewReader(r, simplifiedchinese.GBK.NewDecoder()), nil
	}
	return nil, errors.Errorf("unsupported encoding %q", encoding)
}

// ReadCSV reads one segment per data row. An empty coordinate cell becomes
// NaN, which graph construction reports as a missing vertex.
func ReadCSV(r io.Reader, opts CSVOptions) ([]mesh.SegmentCoords, error) {
	dr, err := decoder(r, opts.Encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(dr)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("csv: missing header row")
	}
	if err != nil {
		return nil, errors.Wrap(err, "csv header")
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	var idx [4]int
	for i, name := range []string{opts.StartX, opts.StartY, opts.EndX, opts.EndY} {
		c, ok := cols[name]
		if !ok {
			return nil, errors.Errorf("csv: no column %q", name)
		}
		idx[i] = c
	}

	var out []mesh.SegmentCoords
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "csv row %d", row)
		}
		var v [4]float64
		for i, c := range idx {
			if v[i], err = cell(rec, c); err != nil {
				return nil, errors.Wrapf(err, "csv row %d, column %q", row, header[c])
			}
		}
		out = append(out, mesh.SegmentCoords{
			Start: r2.Point{X: v[0], Y: v[1]},
			End:   r2.Point{X: v[2], Y: v[3]},
		})
	}
	return out, nil
}

func cell(rec []string, i int) (float64, error) {
	if i >= len(rec) {
		return math.NaN(), nil
	}
	s := strings.TrimSpace(rec[i])
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
