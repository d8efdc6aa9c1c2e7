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

package foam

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// SplitFaces separates triangular and quadrilateral faces. Faces of any
// other size are dropped.
func SplitFaces(faces [][]int) (tris, quads [][]int) {
	for _, f := range faces {
		switch len(f) {
		case 3:
			tris = append(tris, f)
		case 4:
			quads = append(quads, f)
		}
	}
	return tris, quads
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WritePoints writes one "x y z" line per point.
func WritePoints(w io.Writer, pts []r3.Vector) error {
	bw := bufio.NewWriter(w)
	for _, p := range pts {
		bw.WriteString(formatFloat(p.X) + " " + formatFloat(p.Y) + " " + formatFloat(p.Z) + "\n")
	}
	return errors.Wrap(bw.Flush(), "writing points")
}

// WriteRings writes one face per line as a closed ring: its point labels
// followed by the first label again.
func WriteRings(w io.Writer, faces [][]int) error {
	bw := bufio.NewWriter(w)
	for _, f := range faces {
		if len(f) == 0 {
			continue
		}
		for _, id := range f {
			bw.WriteString(strconv.Itoa(id))
			bw.WriteByte(' ')
		}
		bw.WriteString(strconv.Itoa(f[0]) + "\n")
	}
	return errors.Wrap(bw.Flush(), "writing rings")
}

func readTable(r io.Reader, kind string, row func(line int, f []string) error) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		f := strings.Fields(sc.Text())
		if len(f) == 0 {
			continue
		}
		if err := row(line, f); err != nil {
			return err
		}
	}
	return errors.Wrapf(sc.Err(), "%s line %d", kind, line)
}

// ReadPointTable reads the output of WritePoints. A missing z column is
// read as zero.
func ReadPointTable(r io.Reader) ([]r3.Vector, error) {
	var out []r3.Vector
	err := readTable(r, "point table", func(line int, f []string) error {
		if len(f) < 2 {
			return errors.Errorf("point table line %d: want at least 2 columns, got %d", line, len(f))
		}
		var v [3]float64
		for i := 0; i < len(f) && i < 3; i++ {
			x, err := strconv.ParseFloat(f[i], 64)
			if err != nil {
				return errors.Errorf("point table line %d: invalid number %q", line, f[i])
			}
			v[i] = x
		}
		out = append(out, r3.Vector{X: v[0], Y: v[1], Z: v[2]})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadRings reads the output of WriteRings. Labels are returned as written,
// closing label included.
func ReadRings(r io.Reader) ([][]int, error) {
	var out [][]int
	err := readTable(r, "ring table", func(line int, f []string) error {
		ring := make([]int, len(f))
		for i, t := range f {
			// Tables written by numpy carry labels as floats.
			v, err := strconv.ParseFloat(t, 64)
			if err != nil || v != float64(int(v)) {
				return errors.Errorf("ring table line %d: invalid label %q", line, t)
			}
			ring[i] = int(v)
		}
		out = append(out, ring)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
