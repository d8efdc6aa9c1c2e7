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
	"math"
	"math/rand"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// DefaultMaxHoleSamples bounds the random search for a hole interior point.
const DefaultMaxHoleSamples = 10000

// DegenerateHoleError reports a hole ring without any strictly interior
// point, e.g. one with zero area.
type DegenerateHoleError struct {
	Hole int // 1-based hole number
}

func (e *DegenerateHoleError) Error() string {
	return fmt.Sprintf("mesh: hole %d has no interior point", e.Hole)
}

// toRing converts a loop of points into a closed orb ring.
func toRing(pts []r2.Point) orb.Ring {
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

// strictlyInside reports whether p is inside ring and not on its boundary.
func strictlyInside(ring orb.Ring, p r2.Point) bool {
	pt := orb.Point{p.X, p.Y}
	if !planar.RingContains(ring, pt) {
		return false
	}
	for i := 0; i+1 < len(ring); i++ {
		if onSegment(ring[i], ring[i+1], pt) {
			return false
		}
	}
	return true
}

func onSegment(a, b, p orb.Point) bool {
	cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
	if cross != 0 {
		return false
	}
	return p[0] >= math.Min(a[0], b[0]) && p[0] <= math.Max(a[0], b[0]) &&
		p[1] >= math.Min(a[1], b[1]) && p[1] <= math.Max(a[1], b[1])
}

// sampleInteriorPoint averages three distinct random vertices of the loop
// until the centroid falls strictly inside it, trying at most maxSamples
// times. ok is false if no sample succeeded.
func sampleInteriorPoint(pts []r2.Point, rnd *rand.Rand, maxSamples int) (p r2.Point, ok bool) {
	if len(pts) < 3 {
		return r2.Point{}, false
	}
	ring := toRing(pts)
	for i := 0; i < maxSamples; i++ {
		perm := rnd.Perm(len(pts))
		c := pts[perm[0]].Add(pts[perm[1]]).Add(pts[perm[2]]).Mul(1.0 / 3)
		if strictlyInside(ring, c) {
			return c, true
		}
	}
	return r2.Point{}, false
}

// scanlineInteriorPoint returns the midpoint of the widest interior span of
// a horizontal line placed halfway between the two most separated distinct
// vertex ordinates. Such a line passes through no vertex, so for any simple
// ring with positive area the midpoint is strictly interior.
func scanlineInteriorPoint(pts []r2.Point) (r2.Point, bool) {
	if len(pts) < 3 {
		return r2.Point{}, false
	}
	ys := make([]float64, 0, len(pts))
	for _, p := range pts {
		ys = append(ys, p.Y)
	}
	sort.Float64s(ys)

	bestGap, y := 0.0, 0.0
	for i := 1; i < len(ys); i++ {
		if gap := ys[i] - ys[i-1]; gap > bestGap {
			bestGap, y = gap, (ys[i]+ys[i-1])/2
		}
	}
	if bestGap == 0 {
		return r2.Point{}, false
	}

	var xs []float64
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		if (a.Y > y) == (b.Y > y) {
			continue
		}
		xs = append(xs, a.X+(y-a.Y)*(b.X-a.X)/(b.Y-a.Y))
	}
	sort.Float64s(xs)

	bestWidth, x := 0.0, 0.0
	for i := 0; i+1 < len(xs); i += 2 {
		if w := xs[i+1] - xs[i]; w > bestWidth {
			bestWidth, x = w, (xs[i]+xs[i+1])/2
		}
	}
	if bestWidth == 0 {
		return r2.Point{}, false
	}
	p := r2.Point{X: x, Y: y}
	return p, strictlyInside(toRing(pts), p)
}
