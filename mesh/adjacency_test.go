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
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

// squareWithCentre is the unit square split into four triangles around its
// centre. Edges 2 and 4 are listed against the counter-clockwise direction.
func squareWithCentre() ([]Node, []Edge, []Cell) {
	nodes := []Node{
		{ID: 1, Point: r2.Point{X: 0, Y: 0}, Marker: 1},
		{ID: 2, Point: r2.Point{X: 1, Y: 0}, Marker: 1},
		{ID: 3, Point: r2.Point{X: 1, Y: 1}, Marker: 1},
		{ID: 4, Point: r2.Point{X: 0, Y: 1}, Marker: 1},
		{ID: 5, Point: r2.Point{X: 0.5, Y: 0.5}, Marker: 0},
	}
	edges := []Edge{
		{ID: 1, Start: 1, End: 2, Marker: 1},
		{ID: 2, Start: 3, End: 2, Marker: 1},
		{ID: 3, Start: 3, End: 4, Marker: 1},
		{ID: 4, Start: 1, End: 4, Marker: 1},
		{ID: 5, Start: 1, End: 5, Marker: 0},
		{ID: 6, Start: 2, End: 5, Marker: 0},
		{ID: 7, Start: 3, End: 5, Marker: 0},
		{ID: 8, Start: 4, End: 5, Marker: 0},
	}
	cells := []Cell{
		{ID: 1, Nodes: [3]int{1, 2, 5}},
		{ID: 2, Nodes: [3]int{2, 3, 5}},
		{ID: 3, Nodes: [3]int{3, 4, 5}},
		{ID: 4, Nodes: [3]int{4, 1, 5}},
	}
	return nodes, edges, cells
}

// strip is a 1 x k band of unit squares, each split along its rising
// diagonal. Bottom node i has id i+1 and top node i has id k+2+i.
func strip(k int) ([]Node, []Edge, []Cell) {
	b := func(i int) int { return i + 1 }
	tp := func(i int) int { return k + 2 + i }

	var nodes []Node
	for i := 0; i <= k; i++ {
		nodes = append(nodes, Node{ID: b(i), Point: r2.Point{X: float64(i), Y: 0}, Marker: 1})
	}
	for i := 0; i <= k; i++ {
		nodes = append(nodes, Node{ID: tp(i), Point: r2.Point{X: float64(i), Y: 1}, Marker: 1})
	}

	var edges []Edge
	add := func(s, e, marker int) {
		edges = append(edges, Edge{ID: len(edges) + 1, Start: s, End: e, Marker: marker})
	}
	for i := 0; i < k; i++ {
		add(b(i), b(i+1), 1)
		add(tp(i+1), tp(i), 1)
	}
	add(b(0), tp(0), 1)
	add(tp(k), b(k), 1)
	for i := 1; i < k; i++ {
		add(tp(i), b(i), 0)
	}
	for i := 0; i < k; i++ {
		add(b(i), tp(i+1), 0)
	}

	var cells []Cell
	for i := 0; i < k; i++ {
		cells = append(cells,
			Cell{ID: len(cells) + 1, Nodes: [3]int{b(i), b(i + 1), tp(i + 1)}},
			Cell{ID: len(cells) + 2, Nodes: [3]int{b(i), tp(i + 1), tp(i)}})
	}
	return nodes, edges, cells
}

func TestResolveFacesSquare(t *testing.T) {
	nodes, edges, cells := squareWithCentre()
	m, err := Reindex(nodes, edges, cells, nil)
	if err != nil {
		t.Fatalf("Reindex failed: %v", err)
	}
	faces, err := ResolveFaces(m, nil)
	if err != nil {
		t.Fatalf("ResolveFaces failed: %v", err)
	}
	want := []Face{
		{ID: 1, Start: 1, End: 2, Zone: ZoneOuter, Left: 1},
		{ID: 2, Start: 2, End: 3, Zone: ZoneOuter, Left: 2},
		{ID: 3, Start: 3, End: 4, Zone: ZoneOuter, Left: 3},
		{ID: 4, Start: 4, End: 1, Zone: ZoneOuter, Left: 4},
		{ID: 5, Start: 1, End: 5, Zone: ZoneInterior, Left: 4, Right: 1},
		{ID: 6, Start: 2, End: 5, Zone: ZoneInterior, Left: 1, Right: 2},
		{ID: 7, Start: 3, End: 5, Zone: ZoneInterior, Left: 2, Right: 3},
		{ID: 8, Start: 4, End: 5, Zone: ZoneInterior, Left: 3, Right: 4},
	}
	if diff := cmp.Diff(want, faces); diff != "" {
		t.Errorf("faces mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveFacesCellsOnTheLeft(t *testing.T) {
	nodes, edges, cells := strip(8)
	m, err := Reindex(nodes, edges, cells, nil)
	if err != nil {
		t.Fatalf("Reindex failed: %v", err)
	}
	faces, err := ResolveFaces(m, nil)
	if err != nil {
		t.Fatalf("ResolveFaces failed: %v", err)
	}

	side := func(f Face, cell int) float64 {
		c := m.Cells[cell-1]
		s := m.Nodes[f.Start-1].Point
		d := m.Nodes[f.End-1].Point.Sub(s)
		o := m.Nodes[thirdNode(c, f.Start, f.End)-1].Point.Sub(s)
		return d.Cross(o)
	}
	for _, f := range faces {
		if side(f, f.Left) <= 0 {
			t.Errorf("face %d: left cell %d is not on the left", f.ID, f.Left)
		}
		if f.Zone == ZoneInterior {
			if f.Right == 0 || side(f, f.Right) >= 0 {
				t.Errorf("face %d: right cell %d is not on the right", f.ID, f.Right)
			}
		} else if f.Right != 0 {
			t.Errorf("boundary face %d has right cell %d", f.ID, f.Right)
		}
	}
}

func TestResolveFacesMismatch(t *testing.T) {
	nodes, edges, cells := squareWithCentre()

	// Without cell 4 the boundary edge 1-4 touches no cell.
	m, err := Reindex(nodes, edges, cells[:3], nil)
	if err != nil {
		t.Fatalf("Reindex failed: %v", err)
	}
	_, err = ResolveFaces(m, nil)
	var ame *AdjacencyMismatchError
	if !errors.As(err, &ame) {
		t.Fatalf("Expected AdjacencyMismatchError, got %v", err)
	}
	if ame.Zone != ZoneOuter || ame.Want != 1 || ame.Got != 0 {
		t.Errorf("unexpected error %+v", ame)
	}

	// An edge marked as boundary but shared by two cells.
	bad := append([]Edge(nil), edges...)
	bad[6].Marker = 1
	m, err = Reindex(nodes, bad, cells, nil)
	if err != nil {
		t.Fatalf("Reindex failed: %v", err)
	}
	_, err = ResolveFaces(m, nil)
	if !errors.As(err, &ame) {
		t.Fatalf("Expected AdjacencyMismatchError, got %v", err)
	}
	if ame.Want != 1 || ame.Got != 2 {
		t.Errorf("unexpected error %+v", ame)
	}
}

func TestBaseBatchCross2D(t *testing.T) {
	// Nine elements leave a partial tail for the masked path.
	const n = 9
	ax, ay := make([]float64, n), make([]float64, n)
	bx, by := make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		ax[i], ay[i] = float64(i), 1
		bx[i], by[i] = 2, float64(i)-4
	}
	dst := make([]float64, n)
	BaseBatchCross2D(ax, ay, bx, by, dst)
	for i := 0; i < n; i++ {
		want := r2.Point{X: ax[i], Y: ay[i]}.Cross(r2.Point{X: bx[i], Y: by[i]})
		if dst[i] != want {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want)
		}
	}
}
