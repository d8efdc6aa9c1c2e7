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
	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

// SegmentCoords is one raw boundary segment as exported from CAD.
type SegmentCoords struct {
	Start, End r2.Point
}

// Segment is a boundary segment between two 1-based vertex ids.
type Segment struct {
	Start, End int
}

// Graph is the undirected boundary graph assembled from raw segments.
// Vertex ids are 1-based and follow the order in which coordinates first
// appear in the input.
type Graph struct {
	Vertices []r2.Point
	Segments []Segment

	// neighbors[id-1] lists the distinct neighbours of id in insertion order.
	// Degenerate segments and repeated segments add nothing here.
	neighbors [][]int
}

// BuildGraph deduplicates the endpoints of pairs by exact coordinate equality
// and returns the resulting vertex table and segment list.
func BuildGraph(pairs []SegmentCoords, logger *zap.Logger) (*Graph, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Graph{Segments: make([]Segment, 0, len(pairs))}
	ids := make(map[r2.Point]int, 2*len(pairs))

	lookup := func(seg int, p r2.Point) (int, error) {
		if _, ok := ids[p]; !ok {
			g.Vertices = append(g.Vertices, p)
			ids[p] = len(g.Vertices)
		}
		// NaN coordinates never compare equal and fall through here.
		id, ok := ids[p]
		if !ok {
			return 0, &MissingVertexError{Segment: seg, Coord: p}
		}
		return id, nil
	}

	for i, pr := range pairs {
		s, err := lookup(i+1, pr.Start)
		if err != nil {
			return nil, err
		}
		e, err := lookup(i+1, pr.End)
		if err != nil {
			return nil, err
		}
		g.Segments = append(g.Segments, Segment{Start: s, End: e})
	}
	g.computeAdjacency()

	logger.Info("built boundary graph",
		zap.Int("segments", len(g.Segments)),
		zap.Int("vertices", len(g.Vertices)))
	return g, nil
}

func (g *Graph) computeAdjacency() {
	g.neighbors = make([][]int, len(g.Vertices))
	seen := make(map[Segment]bool, len(g.Segments))
	for _, s := range g.Segments {
		if s.Start == s.End {
			continue
		}
		key := s
		if key.Start > key.End {
			key.Start, key.End = key.End, key.Start
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		g.neighbors[s.Start-1] = append(g.neighbors[s.Start-1], s.End)
		g.neighbors[s.End-1] = append(g.neighbors[s.End-1], s.Start)
	}
}

// NumVertices returns the number of distinct vertices.
func (g *Graph) NumVertices() int { return len(g.Vertices) }

// Vertex returns the coordinate of the vertex with the given 1-based id.
func (g *Graph) Vertex(id int) r2.Point { return g.Vertices[id-1] }

// Neighbors returns the distinct neighbours of id.
func (g *Graph) Neighbors(id int) []int {
	if id < 1 || id > len(g.neighbors) {
		return nil
	}
	return g.neighbors[id-1]
}
