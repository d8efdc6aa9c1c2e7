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
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestBuildGraphDeduplicatesVertices(t *testing.T) {
	g, err := BuildGraph(squareSegments(0, 0, 1), nil)
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}

	wantVertices := []r2.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	if diff := cmp.Diff(wantVertices, g.Vertices); diff != "" {
		t.Errorf("vertices mismatch (-want +got):\n%s", diff)
	}
	wantSegments := []Segment{{1, 2}, {2, 3}, {3, 4}, {4, 1}}
	if diff := cmp.Diff(wantSegments, g.Segments); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildGraphIDsAreValid(t *testing.T) {
	pairs := append(squareSegments(0, 0, 10), triangleSegments(2, 2, 1)...)
	// The same segment twice, once reversed.
	pairs = append(pairs, SegmentCoords{Start: r2.Point{X: 0, Y: 0}, End: r2.Point{X: 0, Y: 10}})
	pairs = append(pairs, SegmentCoords{Start: r2.Point{X: 0, Y: 10}, End: r2.Point{X: 0, Y: 0}})

	g, err := BuildGraph(pairs, nil)
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}
	if g.NumVertices() != 7 {
		t.Errorf("Expected 7 vertices, got %d", g.NumVertices())
	}

	seen := make(map[r2.Point]bool)
	for _, v := range g.Vertices {
		if seen[v] {
			t.Errorf("duplicate vertex %v", v)
		}
		seen[v] = true
	}
	for i, s := range g.Segments {
		if s.Start < 1 || s.Start > g.NumVertices() || s.End < 1 || s.End > g.NumVertices() {
			t.Errorf("segment %d has out of range ids %v", i+1, s)
		}
	}

	// Repeated segments do not create parallel edges.
	if got := len(g.Neighbors(1)); got != 2 {
		t.Errorf("Expected 2 neighbours of vertex 1, got %d", got)
	}
}

func TestBuildGraphMissingVertex(t *testing.T) {
	pairs := []SegmentCoords{
		{Start: r2.Point{X: 0, Y: 0}, End: r2.Point{X: 1, Y: 0}},
		{Start: r2.Point{X: 1, Y: 0}, End: r2.Point{X: math.NaN(), Y: 0}},
	}
	_, err := BuildGraph(pairs, nil)

	var mve *MissingVertexError
	if !errors.As(err, &mve) {
		t.Fatalf("Expected MissingVertexError, got %v", err)
	}
	if mve.Segment != 2 {
		t.Errorf("Expected segment 2 in error, got %d", mve.Segment)
	}
}

// squareSegments returns the four sides of an axis-aligned square with its
// lower left corner at (x, y), walked (x,y) -> (x,y+s) -> (x+s,y+s) -> (x+s,y).
func squareSegments(x, y, s float64) []SegmentCoords {
	pts := []r2.Point{{X: x, Y: y}, {X: x, Y: y + s}, {X: x + s, Y: y + s}, {X: x + s, Y: y}}
	return loopSegments(pts)
}

// triangleSegments returns a small triangle anchored at (x, y).
func triangleSegments(x, y, s float64) []SegmentCoords {
	pts := []r2.Point{{X: x, Y: y}, {X: x + 2*s, Y: y}, {X: x + s, Y: y + 2*s}}
	return loopSegments(pts)
}

func loopSegments(pts []r2.Point) []SegmentCoords {
	out := make([]SegmentCoords, len(pts))
	for i := range pts {
		out[i] = SegmentCoords{Start: pts[i], End: pts[(i+1)%len(pts)]}
	}
	return out
}
