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
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CadToPoly runs the boundary half of the pipeline: it builds the segment
// graph, classifies its cycles and assembles the .poly tables.
func CadToPoly(pairs []SegmentCoords, classify *ClassifierOptions, poly *PolyOptions) (*Poly, error) {
	var logger *zap.Logger
	if poly != nil {
		logger = poly.Logger
	}
	g, err := BuildGraph(pairs, logger)
	if err != nil {
		return nil, err
	}
	z, err := Classify(g, classify)
	if err != nil {
		return nil, err
	}
	return NewPoly(g, z, poly)
}

// TriangleFiles holds readers for the three files Triangle writes with -e.
type TriangleFiles struct {
	Node, Edge, Ele io.Reader
}

// ReadTriangle parses the .node, .edge and .ele streams of a triangulation.
func ReadTriangle(f TriangleFiles) ([]Node, []Edge, []Cell, error) {
	nodes, err := ReadNodes(f.Node)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "reading nodes")
	}
	edges, err := ReadEdges(f.Edge)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "reading edges")
	}
	cells, err := ReadCells(f.Ele)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "reading cells")
	}
	return nodes, edges, cells, nil
}

// PolyToMsh runs the mesh half of the pipeline on a parsed triangulation and
// writes the result to w.
func PolyToMsh(w io.Writer, nodes []Node, edges []Edge, cells []Cell, opts *MshOptions, logger *zap.Logger) (*ReindexedMesh, error) {
	m, err := Reindex(nodes, edges, cells, logger)
	if err != nil {
		return nil, err
	}
	faces, err := ResolveFaces(m, logger)
	if err != nil {
		return nil, err
	}
	if err := WriteMsh(w, m, faces, opts); err != nil {
		return nil, err
	}
	return m, nil
}
