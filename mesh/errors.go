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
	"fmt"

	"github.com/golang/geo/r2"
)

// MissingVertexError reports an endpoint that has no vertex id after the
// builder allocated one for it.
type MissingVertexError struct {
	Segment int // 1-based input segment
	Coord   r2.Point
}

func (e *MissingVertexError) Error() string {
	return fmt.Sprintf("mesh: segment %d: no vertex for endpoint (%v, %v)", e.Segment, e.Coord.X, e.Coord.Y)
}

// NoCycleError reports a segment graph without any closed loop, so no outer
// boundary can be chosen.
type NoCycleError struct {
	Vertices int
	Segments int
}

func (e *NoCycleError) Error() string {
	return fmt.Sprintf("mesh: no cycle in boundary graph (%d vertices, %d segments)", e.Vertices, e.Segments)
}

// DanglingReferenceError reports an edge or cell that refers to a node id
// missing from the node table, or a node id that appears twice.
type DanglingReferenceError struct {
	Kind     string // "edge", "cell" or "node"
	EntityID int
	NodeID   int
}

func (e *DanglingReferenceError) Error() string {
	if e.Kind == "node" {
		return fmt.Sprintf("mesh: node %d is defined more than once", e.NodeID)
	}
	return fmt.Sprintf("mesh: %s %d references unknown node %d", e.Kind, e.EntityID, e.NodeID)
}

// AdjacencyMismatchError reports an edge whose number of incident cells does
// not match its zone: one for boundary edges, two for interior edges.
type AdjacencyMismatchError struct {
	EdgeID int
	Zone   Zone
	Want   int
	Got    int
}

func (e *AdjacencyMismatchError) Error() string {
	return fmt.Sprintf("mesh: %s edge %d has %d incident cells, want %d", e.Zone, e.EdgeID, e.Got, e.Want)
}
