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
	"go.uber.org/zap"
)

// Face is an oriented edge with the cells on either side of it. Left is the
// cell to the left of Start->End; Right is 0 on boundary faces.
type Face struct {
	ID         int
	Start, End int
	Zone       Zone
	Left       int
	Right      int
}

// cellIndex maps a node id to the ids of the cells touching it, ascending.
type cellIndex [][]int

func newCellIndex(numNodes int, cells []Cell) cellIndex {
	idx := make(cellIndex, numNodes+1)
	for _, c := range cells {
		for _, n := range c.Nodes {
			// A degenerate cell listing a node twice is indexed once.
			if l := idx[n]; len(l) > 0 && l[len(l)-1] == c.ID {
				continue
			}
			idx[n] = append(idx[n], c.ID)
		}
	}
	return idx
}

// incident returns the cells that contain both a and b.
func (idx cellIndex) incident(a, b int) []int {
	la, lb := idx[a], idx[b]
	var out []int
	for i, j := 0, 0; i < len(la) && j < len(lb); {
		switch {
		case la[i] < lb[j]:
			i++
		case la[i] > lb[j]:
			j++
		default:
			out = append(out, la[i])
			i++
			j++
		}
	}
	return out
}

// thirdNode returns the corner of c that is neither a nor b.
func thirdNode(c Cell, a, b int) int {
	for _, n := range c.Nodes {
		if n != a && n != b {
			return n
		}
	}
	return c.Nodes[0]
}

// ResolveFaces finds the incident cells of every edge of m and orients it.
//
// A boundary edge must touch exactly one cell. If that cell lies to the
// right of Start->End the endpoints are swapped, so every boundary cell ends
// up on the left. An interior edge must touch exactly two cells; it keeps its
// direction and the cell on its left (or on the line) becomes Left.
func ResolveFaces(m *ReindexedMesh, logger *zap.Logger) ([]Face, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	idx := newCellIndex(len(m.Nodes), m.Cells)

	faces := make([]Face, len(m.Edges))
	n := len(m.Edges)
	ax, ay := make([]float64, n), make([]float64, n)
	bx, by := make([]float64, n), make([]float64, n)
	others := make([]int, n)

	for i, e := range m.Edges {
		zone := e.Zone()
		want := 2
		if zone != ZoneInterior {
			want = 1
		}
		cs := idx.incident(e.Start, e.End)
		if len(cs) != want {
			return nil, &AdjacencyMismatchError{EdgeID: e.ID, Zone: zone, Want: want, Got: len(cs)}
		}
		faces[i] = Face{ID: e.ID, Start: e.Start, End: e.End, Zone: zone, Left: cs[0]}
		if want == 2 {
			others[i] = cs[1]
		}

		s := m.Nodes[e.Start-1].Point
		d := m.Nodes[e.End-1].Point.Sub(s)
		t := m.Nodes[thirdNode(m.Cells[cs[0]-1], e.Start, e.End)-1].Point.Sub(s)
		ax[i], ay[i], bx[i], by[i] = d.X, d.Y, t.X, t.Y
	}

	cross := make([]float64, n)
	BaseBatchCross2D(ax, ay, bx, by, cross)

	swapped := 0
	for i := range faces {
		f := &faces[i]
		if f.Zone != ZoneInterior {
			if cross[i] < 0 {
				f.Start, f.End = f.End, f.Start
				swapped++
			}
			continue
		}
		if cross[i] < 0 {
			f.Left, f.Right = others[i], f.Left
		} else {
			f.Right = others[i]
		}
	}

	logger.Info("resolved faces",
		zap.Int("faces", len(faces)),
		zap.Int("flippedBoundaryFaces", swapped))
	return faces, nil
}
