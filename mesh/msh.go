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
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Fluent boundary condition codes for face zones.
const (
	BCInterior = 2
	BCWall     = 3
)

// MshZone names one zone of the output mesh.
type MshZone struct {
	ID   int
	Type string
	Name string
}

// MshOptions controls the zone layout of a .msh file. The arrays are indexed
// outer, inner, interior.
type MshOptions struct {
	Title     string
	NodeZones [3]int
	FaceZones [3]MshZone
	CellZone  MshZone
}

// NewMshOptions returns the default zone layout.
func NewMshOptions() MshOptions {
	return MshOptions{
		Title:     "poly2msh",
		NodeZones: [3]int{1, 6, 7},
		FaceZones: [3]MshZone{
			{ID: 3, Type: "wall", Name: "outer"},
			{ID: 4, Type: "wall", Name: "inner"},
			{ID: 5, Type: "interior", Name: "int_fluid"},
		},
		CellZone: MshZone{ID: 2, Type: "fluid", Name: "fluid"},
	}
}

// WriteMsh writes m and its oriented faces as a two-dimensional Fluent mesh.
// Section headers carry hexadecimal id ranges; empty zones are left out.
func WriteMsh(w io.Writer, m *ReindexedMesh, faces []Face, opts *MshOptions) error {
	if opts == nil {
		def := NewMshOptions()
		opts = &def
	}
	if len(faces) != len(m.Edges) {
		return errors.Errorf("msh: %d faces for %d edges", len(faces), len(m.Edges))
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "(0 %q)\n", opts.Title)
	bw.WriteString("(2 2)\n")

	fmt.Fprintf(bw, "(10 (0 1 %x 0 2))\n", len(m.Nodes))
	for s, r := range m.NodeRanges {
		if r.Len() == 0 {
			continue
		}
		fmt.Fprintf(bw, "(10 (%x %x %x 1 2)\n(\n", opts.NodeZones[s], r.First, r.Last)
		for _, nd := range m.Nodes[r.First-1 : r.Last] {
			bw.WriteString(formatFloat(nd.Point.X) + " " + formatFloat(nd.Point.Y) + "\n")
		}
		bw.WriteString("))\n")
	}

	if len(m.Cells) > 0 {
		fmt.Fprintf(bw, "(12 (0 1 %x 0))\n", len(m.Cells))
		fmt.Fprintf(bw, "(12 (%x 1 %x 1 1))\n", opts.CellZone.ID, len(m.Cells))
	}

	fmt.Fprintf(bw, "(13 (0 1 %x 0))\n", len(faces))
	for s, r := range m.EdgeRanges {
		if r.Len() == 0 {
			continue
		}
		bc := BCWall
		if r.Zone == ZoneInterior {
			bc = BCInterior
		}
		fmt.Fprintf(bw, "(13 (%x %x %x %x 2)\n(\n", opts.FaceZones[s].ID, r.First, r.Last, bc)
		for _, f := range faces[r.First-1 : r.Last] {
			fmt.Fprintf(bw, "%x %x %x %x\n", f.Start, f.End, f.Left, f.Right)
		}
		bw.WriteString("))\n")
	}

	for s, r := range m.EdgeRanges {
		if r.Len() == 0 {
			continue
		}
		z := opts.FaceZones[s]
		fmt.Fprintf(bw, "(45 (%d %s %s)())\n", z.ID, z.Type, z.Name)
	}
	if len(m.Cells) > 0 {
		fmt.Fprintf(bw, "(45 (%d %s %s)())\n", opts.CellZone.ID, opts.CellZone.Type, opts.CellZone.Name)
	}
	return errors.Wrap(bw.Flush(), "writing msh")
}
