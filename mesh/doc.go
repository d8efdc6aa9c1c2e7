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

/*
Package mesh converts CAD line work into Triangle input and Triangle output
into a two-dimensional Fluent mesh.

The first half builds a graph from line segments, finds a cycle basis and
splits its vertices into the outer boundary, inner (hole) boundaries and the
interior. NewPoly turns that zoning into a .poly file with one interior point
per hole.

The second half reads the .node, .edge and .ele files Triangle writes for that
.poly and renumbers nodes so that every zone owns a contiguous id block.
ResolveFaces then pairs each edge with its cells, keeping boundary cells on
the left, before WriteMsh emits the .msh file.
*/
package mesh
