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
	"sort"

	"go.uber.org/zap"
)

// IDMap is a bijection between original ids and new ids 1..Len().
type IDMap struct {
	forward map[int]int
	inverse []int // inverse[new-1] = old
}

func newIDMap(n int) *IDMap {
	return &IDMap{forward: make(map[int]int, n), inverse: make([]int, 0, n)}
}

// add assigns the next new id to old. It returns false if old is already
// mapped.
func (m *IDMap) add(old int) bool {
	if _, ok := m.forward[old]; ok {
		return false
	}
	m.inverse = append(m.inverse, old)
	m.forward[old] = len(m.inverse)
	return true
}

// New returns the new id of old.
func (m *IDMap) New(old int) (int, bool) {
	id, ok := m.forward[old]
	return id, ok
}

// Old returns the original id of id.
func (m *IDMap) Old(id int) (int, bool) {
	if id < 1 || id > len(m.inverse) {
		return 0, false
	}
	return m.inverse[id-1], true
}

// Len returns the number of mapped ids.
func (m *IDMap) Len() int { return len(m.inverse) }

// ReindexedMesh is a triangulation renumbered so that nodes and edges of the
// same zone form contiguous id blocks ordered outer, inner, interior.
type ReindexedMesh struct {
	// Nodes[i] has ID i+1.
	Nodes []Node
	// Edges[i] has ID i+1; endpoints refer to new node ids.
	Edges []Edge
	// Cells[i] has ID i+1; corners refer to new node ids.
	Cells []Cell

	NodeMap, EdgeMap, CellMap *IDMap

	// NodeRanges and EdgeRanges hold the outer, inner and interior blocks in
	// that order.
	NodeRanges [3]ZoneRange
	EdgeRanges [3]ZoneRange
}

// NodeRange returns the id block of zone z.
func (m *ReindexedMesh) NodeRange(z Zone) ZoneRange { return m.NodeRanges[z.slot()] }

// EdgeRange returns the id block of zone z.
func (m *ReindexedMesh) EdgeRange(z Zone) ZoneRange { return m.EdgeRanges[z.slot()] }

// zoneBlocks orders items by zone, stable by position inside a zone, and
// returns the permutation and the resulting id ranges.
func zoneBlocks(n int, zoneOf func(i int) Zone) ([]int, [3]ZoneRange) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return zoneOf(perm[a]).slot() < zoneOf(perm[b]).slot()
	})

	var ranges [3]ZoneRange
	next := 1
	for s, z := range zoneOrder {
		ranges[s] = ZoneRange{Zone: z, First: next, Last: next - 1}
		for next-1 < n && zoneOf(perm[next-1]) == z {
			next++
		}
		ranges[s].Last = next - 1
	}
	return perm, ranges
}

// Reindex renumbers a Triangle mesh. Nodes are grouped by zone and keep
// their relative order inside a zone; every edge endpoint and cell corner is
// rewritten through the resulting map. Edges are grouped the same way.
// Cells are renumbered 1..n in input order.
func Reindex(nodes []Node, edges []Edge, cells []Cell, logger *zap.Logger) (*ReindexedMesh, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &ReindexedMesh{
		Nodes:   make([]Node, len(nodes)),
		Edges:   make([]Edge, len(edges)),
		Cells:   make([]Cell, len(cells)),
		NodeMap: newIDMap(len(nodes)),
		EdgeMap: newIDMap(len(edges)),
		CellMap: newIDMap(len(cells)),
	}

	nodePerm, nodeRanges := zoneBlocks(len(nodes), func(i int) Zone { return nodes[i].Zone() })
	m.NodeRanges = nodeRanges
	for i, src := range nodePerm {
		nd := nodes[src]
		if !m.NodeMap.add(nd.ID) {
			return nil, &DanglingReferenceError{Kind: "node", EntityID: nd.ID, NodeID: nd.ID}
		}
		nd.ID = i + 1
		m.Nodes[i] = nd
	}

	edgePerm, edgeRanges := zoneBlocks(len(edges), func(i int) Zone { return edges[i].Zone() })
	m.EdgeRanges = edgeRanges
	for i, src := range edgePerm {
		e := edges[src]
		s, ok := m.NodeMap.New(e.Start)
		if !ok {
			return nil, &DanglingReferenceError{Kind: "edge", EntityID: e.ID, NodeID: e.Start}
		}
		t, ok := m.NodeMap.New(e.End)
		if !ok {
			return nil, &DanglingReferenceError{Kind: "edge", EntityID: e.ID, NodeID: e.End}
		}
		m.EdgeMap.add(e.ID)
		m.Edges[i] = Edge{ID: i + 1, Start: s, End: t, Marker: e.Marker}
	}

	for i, c := range cells {
		out := Cell{ID: i + 1}
		for k, old := range c.Nodes {
			id, ok := m.NodeMap.New(old)
			if !ok {
				return nil, &DanglingReferenceError{Kind: "cell", EntityID: c.ID, NodeID: old}
			}
			out.Nodes[k] = id
		}
		m.CellMap.add(c.ID)
		m.Cells[i] = out
	}

	logger.Info("reindexed mesh",
		zap.Int("outerNodes", m.NodeRanges[0].Len()),
		zap.Int("innerNodes", m.NodeRanges[1].Len()),
		zap.Int("interiorNodes", m.NodeRanges[2].Len()),
		zap.Int("edges", len(m.Edges)),
		zap.Int("cells", len(m.Cells)))
	return m, nil
}
