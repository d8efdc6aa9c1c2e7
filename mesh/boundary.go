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

// OuterStrategy picks which basis cycle is the physical domain boundary.
// cycles is never empty; the returned value is an index into it.
type OuterStrategy func(g *Graph, cycles [][]int) int

// LargestCycleStrategy is the default strategy: the cycle with the most
// vertices is the outer boundary, the first one found on ties. It assumes
// the domain boundary is the longest loop and gives a wrong answer without
// notice if a larger spurious loop exists.
func LargestCycleStrategy(g *Graph, cycles [][]int) int {
	best := 0
	for i, c := range cycles {
		if len(c) > len(cycles[best]) {
			best = i
		}
	}
	return best
}

// ClassifierOptions controls boundary classification.
type ClassifierOptions struct {
	Strategy OuterStrategy
	Logger   *zap.Logger
}

// NewClassifierOptions returns default options.
func NewClassifierOptions() ClassifierOptions {
	return ClassifierOptions{
		Strategy: LargestCycleStrategy,
		Logger:   zap.NewNop(),
	}
}

// Zoning is the result of classifying a boundary graph.
type Zoning struct {
	Outer []int   // vertex ids of the outer cycle in loop order
	Holes [][]int // vertex ids of each hole cycle in loop order

	// VertexZones[id-1] is the zone of vertex id.
	VertexZones []Zone

	// SegmentMarkers[i] is 1 when both ends of segment i are outer, else 2.
	SegmentMarkers []int
}

// VertexZone returns the zone of the vertex with the given 1-based id.
func (z *Zoning) VertexZone(id int) Zone { return z.VertexZones[id-1] }

// Classify splits the cycle basis of g into the outer boundary and holes and
// derives per-vertex zones and per-segment markers.
func Classify(g *Graph, opts *ClassifierOptions) (*Zoning, error) {
	if opts == nil {
		def := NewClassifierOptions()
		opts = &def
	}
	strategy := opts.Strategy
	if strategy == nil {
		strategy = LargestCycleStrategy
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cycles := CycleBasis(g)
	if len(cycles) == 0 {
		return nil, &NoCycleError{Vertices: g.NumVertices(), Segments: len(g.Segments)}
	}

	outerIdx := strategy(g, cycles)
	z := &Zoning{
		Outer:          cycles[outerIdx],
		VertexZones:    make([]Zone, g.NumVertices()),
		SegmentMarkers: make([]int, len(g.Segments)),
	}
	for i, c := range cycles {
		if i != outerIdx {
			z.Holes = append(z.Holes, c)
		}
	}

	outer := make(map[int]bool, len(z.Outer))
	for _, id := range z.Outer {
		outer[id] = true
	}
	inner := make(map[int]bool)
	for _, h := range z.Holes {
		for _, id := range h {
			inner[id] = true
		}
	}
	for id := 1; id <= g.NumVertices(); id++ {
		switch {
		case outer[id]:
			z.VertexZones[id-1] = ZoneOuter
		case inner[id]:
			z.VertexZones[id-1] = ZoneInner
		default:
			z.VertexZones[id-1] = ZoneInterior
		}
	}
	for i, s := range g.Segments {
		if outer[s.Start] && outer[s.End] {
			z.SegmentMarkers[i] = 1
		} else {
			z.SegmentMarkers[i] = 2
		}
	}

	logger.Info("classified boundary",
		zap.Int("cycles", len(cycles)),
		zap.Int("outerVertices", len(z.Outer)),
		zap.Int("holes", len(z.Holes)))
	return z, nil
}
