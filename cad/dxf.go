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

package cad

import (
	"io"
	"sort"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/rpaloschi/dxf-go/document"
	"github.com/rpaloschi/dxf-go/entities"

	"github.com/LllC-mmd/OpenFOAM-tools-by-GDAL/mesh"
)

// DXFOptions selects the entities read from a drawing.
type DXFOptions struct {
	// Layers restricts input to the named layers, compared without case.
	// Empty means every layer.
	Layers []string
}

func (o DXFOptions) accept(layer string) bool {
	if len(o.Layers) == 0 {
		return true
	}
	for _, l := range o.Layers {
		if strings.EqualFold(l, layer) {
			return true
		}
	}
	return false
}

// polylineSegments splits a vertex chain into segments. A closed chain gets
// a final segment back to its first vertex unless it already ends there.
func polylineSegments(pts []r2.Point, closed bool) []mesh.SegmentCoords {
	if len(pts) < 2 {
		return nil
	}
	out := make([]mesh.SegmentCoords, 0, len(pts))
	for i := 0; i+1 < len(pts); i++ {
		out = append(out, mesh.SegmentCoords{Start: pts[i], End: pts[i+1]})
	}
	if closed && pts[0] != pts[len(pts)-1] {
		out = append(out, mesh.SegmentCoords{Start: pts[len(pts)-1], End: pts[0]})
	}
	return out
}

// entitySegments returns the segments of a POLYLINE or LWPOLYLINE entity and
// whether the entity was one of those.
func entitySegments(e entities.Entity, opts DXFOptions) ([]mesh.SegmentCoords, bool) {
	switch pl := e.(type) {
	case *entities.Polyline:
		if !opts.accept(pl.LayerName) {
			return nil, true
		}
		pts := make([]r2.Point, 0, len(pl.Vertices))
		for _, v := range pl.Vertices {
			pts = append(pts, r2.Point{X: v.Location.X, Y: v.Location.Y})
		}
		return polylineSegments(pts, false), true
	case *entities.LWPolyline:
		if !opts.accept(pl.LayerName) {
			return nil, true
		}
		pts := make([]r2.Point, 0, len(pl.Points))
		for _, v := range pl.Points {
			pts = append(pts, r2.Point{X: v.Point.X, Y: v.Point.Y})
		}
		return polylineSegments(pts, pl.Closed), true
	}
	return nil, false
}

// ReadDXF reads the polylines of a drawing as segments: model space entities
// first, then the entities of every block definition.
func ReadDXF(r io.Reader, opts DXFOptions) ([]mesh.SegmentCoords, error) {
	doc, err := document.DxfDocumentFromStream(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading dxf")
	}

	var out []mesh.SegmentCoords
	for _, e := range doc.Entities.Entities {
		if segs, ok := entitySegments(e, opts); ok {
			out = append(out, segs...)
		}
	}

	// Block iteration order is not stable, so blocks are ordered by their
	// first segment to keep vertex numbering reproducible.
	var blocks [][]mesh.SegmentCoords
	for _, block := range doc.Blocks {
		var segs []mesh.SegmentCoords
		for _, e := range block.Entities {
			if s, ok := entitySegments(e, opts); ok {
				segs = append(segs, s...)
			}
		}
		if len(segs) > 0 {
			blocks = append(blocks, segs)
		}
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		a, b := blocks[i][0].Start, blocks[j][0].Start
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	for _, segs := range blocks {
		out = append(out, segs...)
	}

	if len(out) == 0 {
		return nil, errors.New("dxf: no polyline segments found")
	}
	return out, nil
}
