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

package gis

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/peterstace/simplefeatures/rtree"
	"github.com/pkg/errors"
	shp "gitee.com/LJ_COOL/go-shp"
)

// Gully is a named drainage inlet.
type Gully struct {
	Name  string
	Point orb.Point
}

// ReadGullies reads the point features of a shapefile whose NAME attribute
// starts with prefix. An empty prefix keeps every point.
func ReadGullies(path, prefix string) ([]Gully, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening shapefile %q", path)
	}
	defer r.Close()

	nameField := -1
	for k, f := range r.Fields() {
		if strings.EqualFold(strings.TrimSpace(f.String()), "NAME") {
			nameField = k
			break
		}
	}
	if nameField < 0 {
		return nil, errors.Errorf("shapefile %q has no NAME field", path)
	}

	var out []Gully
	for r.Next() {
		n, s := r.Shape()
		var p orb.Point
		switch pt := s.(type) {
		case *shp.Point:
			p = orb.Point{pt.X, pt.Y}
		case *shp.PointZ:
			p = orb.Point{pt.X, pt.Y}
		case *shp.PointM:
			p = orb.Point{pt.X, pt.Y}
		default:
			continue
		}
		name := strings.TrimSpace(strings.Trim(r.ReadAttribute(n, nameField), "\x00"))
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		out = append(out, Gully{Name: name, Point: p})
	}
	return out, nil
}

// within reports whether p lies inside ring and not on its boundary.
func within(ring orb.Ring, p orb.Point) bool {
	if !planar.RingContains(ring, p) {
		return false
	}
	for i := 0; i+1 < len(ring); i++ {
		a, b := ring[i], ring[i+1]
		cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
		if cross == 0 &&
			p[0] >= min(a[0], b[0]) && p[0] <= max(a[0], b[0]) &&
			p[1] >= min(a[1], b[1]) && p[1] <= max(a[1], b[1]) {
			return false
		}
	}
	return true
}

// CellGullies lists the gullies that fall in one cell.
type CellGullies struct {
	Count int
	Names []string
}

// CountGullies finds, for every cell, the gullies strictly inside any of its
// faces. cellFaces[i] holds the face ids of cell i, indexing faces. A gully
// inside two faces of the same cell is counted twice.
func CountGullies(faces []orb.Polygon, cellFaces [][]int, gullies []Gully) ([]CellGullies, error) {
	items := make([]rtree.BulkItem, len(gullies))
	for i, g := range gullies {
		items[i] = rtree.BulkItem{
			Box:      rtree.Box{MinX: g.Point[0], MinY: g.Point[1], MaxX: g.Point[0], MaxY: g.Point[1]},
			RecordID: i,
		}
	}
	tree := rtree.BulkLoad(items)

	out := make([]CellGullies, len(cellFaces))
	for c, fs := range cellFaces {
		for _, f := range fs {
			if f < 0 || f >= len(faces) {
				return nil, errors.Errorf("cell %d: face %d out of range [0, %d)", c, f, len(faces))
			}
			poly := faces[f]
			if len(poly) == 0 {
				continue
			}
			b := poly.Bound()
			box := rtree.Box{MinX: b.Min[0], MinY: b.Min[1], MaxX: b.Max[0], MaxY: b.Max[1]}
			var hits []int
			tree.RangeSearch(box, func(id int) error {
				if within(poly[0], gullies[id].Point) {
					hits = append(hits, id)
				}
				return nil
			})
			// Report in input order, independent of the tree layout.
			sort.Ints(hits)
			for _, id := range hits {
				out[c].Names = append(out[c].Names, gullies[id].Name)
			}
			out[c].Count += len(hits)
		}
	}
	return out, nil
}

// WriteGullyCounts writes a tab separated table with a "Num\tPoints" header
// and one line per cell: the count followed by the gully names.
func WriteGullyCounts(w io.Writer, cells []CellGullies) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("Num\tPoints\n")
	for _, c := range cells {
		bw.WriteString(strconv.Itoa(c.Count) + "\t" + strings.Join(c.Names, "\t") + "\n")
	}
	return errors.Wrap(bw.Flush(), "writing gully counts")
}
