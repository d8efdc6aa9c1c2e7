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

// Package gis exports mesh faces as polygon layers and joins point layers
// against them.
package gis

import (
	"io"
	"strconv"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	shp "gitee.com/LJ_COOL/go-shp"
)

// FacePolygons builds one polygon per face from point labels. Quadrilaterals
// come first, then triangles; a polygon's index is its face id. Rings may be
// given open or already closed.
func FacePolygons(points []r3.Vector, quads, tris [][]int) ([]orb.Polygon, error) {
	out := make([]orb.Polygon, 0, len(quads)+len(tris))
	for _, faces := range [][][]int{quads, tris} {
		for _, f := range faces {
			if len(f) < 3 {
				return nil, errors.Errorf("face %d: %d labels", len(out), len(f))
			}
			ring := make(orb.Ring, 0, len(f)+1)
			for _, id := range f {
				if id < 0 || id >= len(points) {
					return nil, errors.Errorf("face %d: point label %d out of range [0, %d)", len(out), id, len(points))
				}
				ring = append(ring, orb.Point{points[id].X, points[id].Y})
			}
			if !ring.Closed() {
				ring = append(ring, ring[0])
			}
			out = append(out, orb.Polygon{ring})
		}
	}
	return out, nil
}

// oriented returns a copy of ring wound in direction o.
func oriented(ring orb.Ring, o orb.Orientation) orb.Ring {
	out := ring.Clone()
	if out.Orientation() != o {
		out.Reverse()
	}
	return out
}

// WriteShapefile writes polys to a polygon shapefile at path with an "id"
// attribute holding each polygon's index. Rings are written clockwise.
func WriteShapefile(path string, polys []orb.Polygon) error {
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return errors.Wrapf(err, "creating shapefile %q", path)
	}
	defer w.Close()

	w.SetFields([]shp.Field{shp.StringField([]byte("id"), 10)})
	for row, poly := range polys {
		parts := make([][]shp.Point, 0, len(poly))
		for _, ring := range poly {
			pts := make([]shp.Point, 0, len(ring))
			for _, p := range oriented(ring, orb.CW) {
				pts = append(pts, shp.Point{X: p[0], Y: p[1]})
			}
			parts = append(parts, pts)
		}
		shape := shp.Polygon(*shp.NewPolyLine(parts))
		w.Write(&shape)
		if err := w.WriteAttribute(row, 0, []byte(strconv.Itoa(row))); err != nil {
			return errors.Wrapf(err, "writing id of polygon %d", row)
		}
	}
	return nil
}

// ReadShapefile reads the polygons of a shapefile in row order, each shape's
// parts becoming the rings of one polygon. Non-polygon shapes are an error.
func ReadShapefile(path string) ([]orb.Polygon, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening shapefile %q", path)
	}
	defer r.Close()

	var out []orb.Polygon
	for r.Next() {
		n, s := r.Shape()
		var pts []shp.Point
		var parts []int32
		switch pg := s.(type) {
		case *shp.Polygon:
			pts, parts = pg.Points, pg.Parts
		case *shp.PolygonZ:
			pts, parts = pg.Points, pg.Parts
		case *shp.PolygonM:
			pts, parts = pg.Points, pg.Parts
		default:
			return nil, errors.Errorf("shapefile %q: row %d is a %T, not a polygon", path, n, s)
		}
		poly := make(orb.Polygon, 0, len(parts))
		for i, start := range parts {
			end := int32(len(pts))
			if i+1 < len(parts) {
				end = parts[i+1]
			}
			ring := make(orb.Ring, 0, end-start)
			for _, p := range pts[start:end] {
				ring = append(ring, orb.Point{p.X, p.Y})
			}
			poly = append(poly, ring)
		}
		out = append(out, poly)
	}
	return out, nil
}

// WriteGeoJSON writes polys as a FeatureCollection with an "id" property.
// Exterior rings are counter-clockwise.
func WriteGeoJSON(w io.Writer, polys []orb.Polygon) error {
	fc := geojson.NewFeatureCollection()
	for i, poly := range polys {
		p := make(orb.Polygon, len(poly))
		for j, ring := range poly {
			o := orb.CCW
			if j > 0 {
				o = orb.CW
			}
			p[j] = oriented(ring, o)
		}
		f := geojson.NewFeature(p)
		f.Properties["id"] = i
		fc.Append(f)
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "encoding geojson")
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing geojson")
}
