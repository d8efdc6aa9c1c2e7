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

// Zone is the physical partition a mesh entity belongs to.
type Zone int

// The numeric values match Triangle's boundary markers for nodes and edges.
const (
	ZoneInterior Zone = 0
	ZoneOuter    Zone = 1
	ZoneInner    Zone = 2
)

// zoneOrder is the order in which zones receive id blocks.
var zoneOrder = [3]Zone{ZoneOuter, ZoneInner, ZoneInterior}

func (z Zone) String() string {
	switch z {
	case ZoneOuter:
		return "outer"
	case ZoneInner:
		return "inner"
	case ZoneInterior:
		return "interior"
	}
	return "unknown"
}

// PolyMarker returns the vertex marker written to a .poly file. Interior
// vertices are tagged 3 there, unlike Triangle's own output which uses 0.
func (z Zone) PolyMarker() int {
	if z == ZoneInterior {
		return 3
	}
	return int(z)
}

// ZoneFromMarker maps a Triangle node or edge marker to its zone. Markers
// other than 1 and 2, including the 3 copied through from a .poly file, are
// interior.
func ZoneFromMarker(marker int) Zone {
	switch marker {
	case 1:
		return ZoneOuter
	case 2:
		return ZoneInner
	}
	return ZoneInterior
}

// slot returns the position of z in zoneOrder.
func (z Zone) slot() int {
	switch z {
	case ZoneOuter:
		return 0
	case ZoneInner:
		return 1
	}
	return 2
}

// ZoneRange is an inclusive block of contiguous ids. The range is empty when
// First > Last.
type ZoneRange struct {
	Zone        Zone
	First, Last int
}

// Len returns the number of ids in the range.
func (r ZoneRange) Len() int {
	if r.First > r.Last {
		return 0
	}
	return r.Last - r.First + 1
}

// Contains reports whether id lies in the range.
func (r ZoneRange) Contains(id int) bool { return id >= r.First && id <= r.Last }
