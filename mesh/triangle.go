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

package mesh

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Node is a vertex of Triangle's .node output.
type Node struct {
	ID     int
	Point  r2.Point
	Marker int
}

// Zone returns the zone encoded by the node marker.
func (n Node) Zone() Zone { return ZoneFromMarker(n.Marker) }

// Edge is a line of Triangle's .edge output.
type Edge struct {
	ID         int
	Start, End int
	Marker     int
}

// Zone returns the zone encoded by the edge marker.
func (e Edge) Zone() Zone { return ZoneFromMarker(e.Marker) }

// Cell is a triangle of Triangle's .ele output.
type Cell struct {
	ID    int
	Nodes [3]int
}

// recordReader yields the whitespace separated fields of each non-blank,
// non-comment line of a Triangle file.
type recordReader struct {
	sc   *bufio.Scanner
	kind string
	line int
}

func newRecordReader(r io.Reader, kind string) *recordReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	return &recordReader{sc: sc, kind: kind}
}

// next returns the fields of the next record, or io.EOF when the input is
// exhausted.
func (lr *recordReader) next(minFields int) ([]string, error) {
	for lr.sc.Scan() {
		lr.line++
		text := lr.sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		f := strings.Fields(text)
		if len(f) == 0 {
			continue
		}
		if len(f) < minFields {
			return nil, errors.Errorf("%s line %d: want at least %d fields, got %d", lr.kind, lr.line, minFields, len(f))
		}
		return f, nil
	}
	if err := lr.sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "%s line %d", lr.kind, lr.line)
	}
	return nil, io.EOF
}

// record is like next but treats the end of input as an error.
func (lr *recordReader) record(minFields int) ([]string, error) {
	f, err := lr.next(minFields)
	if err == io.EOF {
		return nil, errors.Wrapf(io.ErrUnexpectedEOF, "%s after line %d", lr.kind, lr.line)
	}
	return f, err
}

func (lr *recordReader) atoi(f []string, i int) (int, error) {
	v, err := strconv.Atoi(f[i])
	if err != nil {
		return 0, errors.Errorf("%s line %d: field %d: invalid integer %q", lr.kind, lr.line, i+1, f[i])
	}
	return v, nil
}

func (lr *recordReader) float(f []string, i int) (float64, error) {
	v, err := strconv.ParseFloat(f[i], 64)
	if err != nil {
		return 0, errors.Errorf("%s line %d: field %d: invalid number %q", lr.kind, lr.line, i+1, f[i])
	}
	return v, nil
}

func (lr *recordReader) point(f []string, i int) (r2.Point, error) {
	x, err := lr.float(f, i)
	if err != nil {
		return r2.Point{}, err
	}
	y, err := lr.float(f, i+1)
	if err != nil {
		return r2.Point{}, err
	}
	return r2.Point{X: x, Y: y}, nil
}

// header reads a count line and returns its fields as integers; missing
// optional fields are zero.
func (lr *recordReader) header(fields int) ([]int, error) {
	f, err := lr.record(1)
	if err != nil {
		return nil, err
	}
	out := make([]int, fields)
	for i := 0; i < fields && i < len(f); i++ {
		if out[i], err = lr.atoi(f, i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadNodes parses a .node file:
//
//	<#nodes> <dimension> <#attributes> <#boundary markers>
//	<id> <x> <y> [attributes] [marker]
func ReadNodes(r io.Reader) ([]Node, error) {
	lr := newRecordReader(r, "node")
	hdr, err := lr.header(4)
	if err != nil {
		return nil, err
	}
	n, attrs, markers := hdr[0], hdr[2], hdr[3]
	nodes := make([]Node, 0, n)
	for i := 0; i < n; i++ {
		f, err := lr.record(3 + attrs + markers)
		if err != nil {
			return nil, err
		}
		nd := Node{}
		if nd.ID, err = lr.atoi(f, 0); err != nil {
			return nil, err
		}
		if nd.Point, err = lr.point(f, 1); err != nil {
			return nil, err
		}
		if markers > 0 {
			if nd.Marker, err = lr.atoi(f, 3+attrs); err != nil {
				return nil, err
			}
		}
		nodes = append(nodes, nd)
	}
	return nodes, nil
}

// ReadEdges parses an .edge file:
//
//	<#edges> <#boundary markers>
//	<id> <start> <end> [marker]
func ReadEdges(r io.Reader) ([]Edge, error) {
	lr := newRecordReader(r, "edge")
	hdr, err := lr.header(2)
	if err != nil {
		return nil, err
	}
	n, markers := hdr[0], hdr[1]
	edges := make([]Edge, 0, n)
	for i := 0; i < n; i++ {
		f, err := lr.record(3 + markers)
		if err != nil {
			return nil, err
		}
		e := Edge{}
		if e.ID, err = lr.atoi(f, 0); err != nil {
			return nil, err
		}
		if e.Start, err = lr.atoi(f, 1); err != nil {
			return nil, err
		}
		if e.End, err = lr.atoi(f, 2); err != nil {
			return nil, err
		}
		if markers > 0 {
			if e.Marker, err = lr.atoi(f, 3); err != nil {
				return nil, err
			}
		}
		edges = append(edges, e)
	}
	return edges, nil
}

// ReadCells parses an .ele file:
//
//	<#triangles> <nodes per triangle> <#attributes>
//	<id> <n1> <n2> <n3> [extra nodes] [attributes]
//
// Only the three corners are kept; second-order nodes are ignored.
func ReadCells(r io.Reader) ([]Cell, error) {
	lr := newRecordReader(r, "ele")
	hdr, err := lr.header(3)
	if err != nil {
		return nil, err
	}
	n, perTri := hdr[0], hdr[1]
	if perTri == 0 {
		perTri = 3
	}
	if perTri < 3 {
		return nil, errors.Errorf("ele line %d: %d nodes per triangle", lr.line, perTri)
	}
	cells := make([]Cell, 0, n)
	for i := 0; i < n; i++ {
		f, err := lr.record(1 + perTri)
		if err != nil {
			return nil, err
		}
		c := Cell{}
		if c.ID, err = lr.atoi(f, 0); err != nil {
			return nil, err
		}
		for k := 0; k < 3; k++ {
			if c.Nodes[k], err = lr.atoi(f, 1+k); err != nil {
				return nil, err
			}
		}
		cells = append(cells, c)
	}
	return cells, nil
}
