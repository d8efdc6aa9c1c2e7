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
	"io"
	"math/rand"
	"strconv"
	"time"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// PolyVertex is a vertex line of a .poly file.
type PolyVertex struct {
	ID     int
	Point  r2.Point
	Marker int
}

// PolySegment is a segment line of a .poly file.
type PolySegment struct {
	ID, Start, End, Marker int
}

// PolyHole is a hole line of a .poly file: a point strictly inside the hole.
type PolyHole struct {
	ID    int
	Point r2.Point
}

// Poly is the content of a Triangle .poly file.
type Poly struct {
	Vertices []PolyVertex
	Segments []PolySegment
	Holes    []PolyHole

	// BoundaryMarkers is written verbatim into the vertex and segment
	// headers.
	BoundaryMarkers int
}

// PolyOptions controls the construction of a Poly from a classified graph.
type PolyOptions struct {
	BoundaryMarkers int

	// MaxHoleSamples bounds the random interior point search per hole.
	// Once exhausted a deterministic scan-line point is used instead.
	MaxHoleSamples int

	// Rand drives hole sampling. A nil Rand is seeded from the clock.
	Rand *rand.Rand

	Logger *zap.Logger
}

// NewPolyOptions returns default options.
func NewPolyOptions() PolyOptions {
	return PolyOptions{
		BoundaryMarkers: 1,
		MaxHoleSamples:  DefaultMaxHoleSamples,
		Logger:          zap.NewNop(),
	}
}

// NewPoly assembles the .poly tables for g using the zones in z and finds an
// interior point for every hole.
func NewPoly(g *Graph, z *Zoning, opts *PolyOptions) (*Poly, error) {
	if opts == nil {
		def := NewPolyOptions()
		opts = &def
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	p := &Poly{
		Vertices:        make([]PolyVertex, g.NumVertices()),
		Segments:        make([]PolySegment, len(g.Segments)),
		Holes:           make([]PolyHole, 0, len(z.Holes)),
		BoundaryMarkers: opts.BoundaryMarkers,
	}
	for i, v := range g.Vertices {
		p.Vertices[i] = PolyVertex{ID: i + 1, Point: v, Marker: z.VertexZones[i].PolyMarker()}
	}
	for i, s := range g.Segments {
		p.Segments[i] = PolySegment{ID: i + 1, Start: s.Start, End: s.End, Marker: z.SegmentMarkers[i]}
	}

	for i, h := range z.Holes {
		pts := make([]r2.Point, len(h))
		for j, id := range h {
			pts[j] = g.Vertex(id)
		}
		pt, ok := sampleInteriorPoint(pts, rnd, opts.MaxHoleSamples)
		if !ok {
			logger.Warn("hole sampling exhausted, using scan line",
				zap.Int("hole", i+1),
				zap.Int("samples", opts.MaxHoleSamples))
			if pt, ok = scanlineInteriorPoint(pts); !ok {
				return nil, &DegenerateHoleError{Hole: i + 1}
			}
		}
		p.Holes = append(p.Holes, PolyHole{ID: i + 1, Point: pt})
	}

	logger.Info("assembled poly",
		zap.Int("vertices", len(p.Vertices)),
		zap.Int("segments", len(p.Segments)),
		zap.Int("holes", len(p.Holes)))
	return p, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WritePoly writes p in Triangle's .poly grammar:
//
//	# Part of vertices
//	<#vertices> 2 0 <#boundary markers>
//	<id> <x> <y> <marker>
//	# Part of segments
//	<#segments> <#boundary markers>
//	<id> <start> <end> <marker>
//	# Part of holes
//	<#holes>
//	<id> <x> <y>
func WritePoly(w io.Writer, p *Poly) error {
	bw := bufio.NewWriter(w)
	bm := strconv.Itoa(p.BoundaryMarkers)

	bw.WriteString("# Part of vertices\n")
	bw.WriteString(strconv.Itoa(len(p.Vertices)) + " 2 0 " + bm + "\n")
	for _, v := range p.Vertices {
		bw.WriteString(strconv.Itoa(v.ID) + " " + formatFloat(v.Point.X) + " " +
			formatFloat(v.Point.Y) + " " + strconv.Itoa(v.Marker) + "\n")
	}

	bw.WriteString("# Part of segments\n")
	bw.WriteString(strconv.Itoa(len(p.Segments)) + " " + bm + "\n")
	for _, s := range p.Segments {
		bw.WriteString(strconv.Itoa(s.ID) + " " + strconv.Itoa(s.Start) + " " +
			strconv.Itoa(s.End) + " " + strconv.Itoa(s.Marker) + "\n")
	}

	bw.WriteString("# Part of holes\n")
	bw.WriteString(strconv.Itoa(len(p.Holes)) + "\n")
	for _, h := range p.Holes {
		bw.WriteString(strconv.Itoa(h.ID) + " " + formatFloat(h.Point.X) + " " +
			formatFloat(h.Point.Y) + "\n")
	}
	return errors.Wrap(bw.Flush(), "writing poly")
}

// ReadPoly parses a .poly file written by WritePoly or by hand. Vertex
// attributes are skipped; a trailing vertex or segment field is the marker.
func ReadPoly(r io.Reader) (*Poly, error) {
	lr := newRecordReader(r, "poly")

	hdr, err := lr.record(1)
	if err != nil {
		return nil, err
	}
	nv, err := lr.atoi(hdr, 0)
	if err != nil {
		return nil, err
	}
	attrs, bm := 0, 0
	if len(hdr) > 2 {
		if attrs, err = lr.atoi(hdr, 2); err != nil {
			return nil, err
		}
	}
	if len(hdr) > 3 {
		if bm, err = lr.atoi(hdr, 3); err != nil {
			return nil, err
		}
	}
	p := &Poly{BoundaryMarkers: bm, Vertices: make([]PolyVertex, 0, nv)}

	for i := 0; i < nv; i++ {
		f, err := lr.record(3)
		if err != nil {
			return nil, err
		}
		v := PolyVertex{}
		if v.ID, err = lr.atoi(f, 0); err != nil {
			return nil, err
		}
		if v.Point, err = lr.point(f, 1); err != nil {
			return nil, err
		}
		if len(f) > 3+attrs {
			if v.Marker, err = lr.atoi(f, len(f)-1); err != nil {
				return nil, err
			}
		}
		p.Vertices = append(p.Vertices, v)
	}

	hdr, err = lr.record(1)
	if err != nil {
		return nil, err
	}
	ns, err := lr.atoi(hdr, 0)
	if err != nil {
		return nil, err
	}
	p.Segments = make([]PolySegment, 0, ns)
	for i := 0; i < ns; i++ {
		f, err := lr.record(3)
		if err != nil {
			return nil, err
		}
		s := PolySegment{}
		if s.ID, err = lr.atoi(f, 0); err != nil {
			return nil, err
		}
		if s.Start, err = lr.atoi(f, 1); err != nil {
			return nil, err
		}
		if s.End, err = lr.atoi(f, 2); err != nil {
			return nil, err
		}
		if len(f) > 3 {
			if s.Marker, err = lr.atoi(f, 3); err != nil {
				return nil, err
			}
		}
		p.Segments = append(p.Segments, s)
	}

	// The hole section may be absent altogether.
	hdr, err = lr.next(1)
	if err == io.EOF {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	nh, err := lr.atoi(hdr, 0)
	if err != nil {
		return nil, err
	}
	p.Holes = make([]PolyHole, 0, nh)
	for i := 0; i < nh; i++ {
		f, err := lr.record(3)
		if err != nil {
			return nil, err
		}
		h := PolyHole{}
		if h.ID, err = lr.atoi(f, 0); err != nil {
			return nil, err
		}
		if h.Point, err = lr.point(f, 1); err != nil {
			return nil, err
		}
		p.Holes = append(p.Holes, h)
	}
	return p, nil
}
