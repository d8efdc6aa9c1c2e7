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

// Package foam reads the ASCII list files of an OpenFOAM case (points,
// faces, cell centres) and writes the plain text tables used by the GIS
// tools.
package foam

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// scanner walks the lines of a file, tracking line numbers and skipping
// comments.
type scanner struct {
	sc      *bufio.Scanner
	kind    string
	line    int
	comment bool
}

func newScanner(r io.Reader, kind string) *scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &scanner{sc: sc, kind: kind}
}

// next returns the next line with comments removed and surrounding space
// trimmed. Empty lines are returned too.
func (s *scanner) next() (string, bool) {
	if !s.sc.Scan() {
		return "", false
	}
	s.line++
	text := s.sc.Text()
	if s.comment {
		i := strings.Index(text, "*/")
		if i < 0 {
			return "", true
		}
		s.comment = false
		text = text[i+2:]
	}
	if i := strings.Index(text, "/*"); i >= 0 {
		if j := strings.Index(text[i:], "*/"); j >= 0 {
			text = text[:i] + text[i+j+2:]
		} else {
			s.comment = true
			text = text[:i]
		}
	}
	if i := strings.Index(text, "//"); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text), true
}

func (s *scanner) err() error {
	if err := s.sc.Err(); err != nil {
		return errors.Wrapf(err, "%s line %d", s.kind, s.line)
	}
	return errors.Errorf("%s: unexpected end of file after line %d", s.kind, s.line)
}

func (s *scanner) errorf(format string, args ...interface{}) error {
	return errors.Errorf("%s line %d: "+format, append([]interface{}{s.kind, s.line}, args...)...)
}

// readList finds the first list in an OpenFOAM file, a bare element count
// followed by "(" on its own line, and passes each of its entries to parse.
// The FoamFile header and any keywords before the list are skipped.
func readList(r io.Reader, kind string, parse func(s *scanner, entry string) error) (int, error) {
	s := newScanner(r, kind)
	n := -1
	for n < 0 {
		text, ok := s.next()
		if !ok {
			return 0, s.err()
		}
		if v, err := strconv.Atoi(text); err == nil && v >= 0 {
			n = v
		}
	}
	for {
		text, ok := s.next()
		if !ok {
			return 0, s.err()
		}
		if text == "" {
			continue
		}
		if text != "(" {
			return 0, s.errorf("expected ( after list size %d, got %q", n, text)
		}
		break
	}
	for i := 0; i < n; {
		text, ok := s.next()
		if !ok {
			return 0, s.err()
		}
		if text == "" {
			continue
		}
		if text == ")" {
			return 0, s.errorf("list ended after %d of %d entries", i, n)
		}
		if err := parse(s, text); err != nil {
			return 0, err
		}
		i++
	}
	return n, nil
}

// inner returns the text between the first "(" and the last ")" of entry,
// and the text before the "(".
func inner(entry string) (prefix, body string, ok bool) {
	i := strings.IndexByte(entry, '(')
	j := strings.LastIndexByte(entry, ')')
	if i < 0 || j < i {
		return "", "", false
	}
	return strings.TrimSpace(entry[:i]), entry[i+1 : j], true
}

func parseVector(s *scanner, entry string) (r3.Vector, error) {
	_, body, ok := inner(entry)
	if !ok {
		return r3.Vector{}, s.errorf("malformed vector %q", entry)
	}
	f := strings.Fields(body)
	if len(f) != 3 {
		return r3.Vector{}, s.errorf("vector %q has %d components", entry, len(f))
	}
	var v [3]float64
	for i := range v {
		x, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			return r3.Vector{}, s.errorf("invalid number %q", f[i])
		}
		v[i] = x
	}
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}, nil
}

func parseLabels(s *scanner, entry string) ([]int, error) {
	prefix, body, ok := inner(entry)
	if !ok {
		return nil, s.errorf("malformed label list %q", entry)
	}
	f := strings.Fields(body)
	if prefix != "" {
		n, err := strconv.Atoi(prefix)
		if err != nil || n != len(f) {
			return nil, s.errorf("label list %q does not hold %s labels", entry, prefix)
		}
	}
	out := make([]int, len(f))
	for i, t := range f {
		v, err := strconv.Atoi(t)
		if err != nil {
			return nil, s.errorf("invalid label %q", t)
		}
		out[i] = v
	}
	return out, nil
}

func readVectors(r io.Reader, kind string) ([]r3.Vector, error) {
	var out []r3.Vector
	_, err := readList(r, kind, func(s *scanner, entry string) error {
		v, err := parseVector(s, entry)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadPoints parses a polyMesh points file.
func ReadPoints(r io.Reader) ([]r3.Vector, error) {
	return readVectors(r, "points")
}

// ReadCellCentres parses a cell centre field written by
// "postProcess -func writeCellCentres": the internalField list of the C file.
func ReadCellCentres(r io.Reader) ([]r3.Vector, error) {
	return readVectors(r, "cell centres")
}

// ReadFaces parses a polyMesh faces file. Each face lists its point labels,
// 0-based.
func ReadFaces(r io.Reader) ([][]int, error) {
	var out [][]int
	_, err := readList(r, "faces", func(s *scanner, entry string) error {
		f, err := parseLabels(s, entry)
		if err != nil {
			return err
		}
		out = append(out, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadCellFaces parses a cell to face table: one "(f1 f2 ...)" list of face
// labels per line, the n-th line describing cell n.
func ReadCellFaces(r io.Reader) ([][]int, error) {
	s := newScanner(r, "cell faces")
	var out [][]int
	for {
		text, ok := s.next()
		if !ok {
			break
		}
		if text == "" {
			continue
		}
		f, err := parseLabels(s, text)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := s.sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "cell faces line %d", s.line)
	}
	return out, nil
}
