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

package foam

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
)

const header = `/*--------------------------------*- C++ -*----------------------------------*\
  =========                 |
  \\      /  F ield         | OpenFOAM: The Open Source CFD Toolbox
\*---------------------------------------------------------------------------*/
FoamFile
{
    version     2.0;
    format      ascii;
    class       %s;
    location    "constant/polyMesh";
    object      %s;
}
// * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * * //

`

func foamFile(class, object, body string) string {
	return strings.Replace(strings.Replace(header, "%s", class, 1), "%s", object, 1) + body
}

func TestReadPoints(t *testing.T) {
	input := foamFile("vectorField", "points", `
4
(
(0 0 0)
(10 0 0)
(10 10 0.5)
(0 10 -1e-3)
)


// ************************************************************************* //
`)
	got, err := ReadPoints(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadPoints failed: %v", err)
	}
	want := []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}, {X: 10, Y: 10, Z: 0.5}, {X: 0, Y: 10, Z: -1e-3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCellCentres(t *testing.T) {
	input := foamFile("volVectorField", "C", `
dimensions      [0 1 0 0 0 0 0];

internalField   nonuniform List<vector>
2
(
(2.5 2.5 0.05)
(7.5 2.5 0.05)
)
;

boundaryField
{
}
`)
	got, err := ReadCellCentres(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCellCentres failed: %v", err)
	}
	want := []r3.Vector{{X: 2.5, Y: 2.5, Z: 0.05}, {X: 7.5, Y: 2.5, Z: 0.05}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("centres mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFacesAndSplit(t *testing.T) {
	input := foamFile("faceList", "faces", `
4
(
4(0 1 5 4)
3(1 2 5)
5(0 1 2 3 4)
3(2 3 5)
)
`)
	faces, err := ReadFaces(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadFaces failed: %v", err)
	}
	if len(faces) != 4 {
		t.Fatalf("Expected 4 faces, got %d", len(faces))
	}

	tris, quads := SplitFaces(faces)
	if diff := cmp.Diff([][]int{{1, 2, 5}, {2, 3, 5}}, tris); diff != "" {
		t.Errorf("triangles mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]int{{0, 1, 5, 4}}, quads); diff != "" {
		t.Errorf("quads mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := WriteRings(&buf, tris); err != nil {
		t.Fatalf("WriteRings failed: %v", err)
	}
	if want := "1 2 5 1\n2 3 5 2\n"; buf.String() != want {
		t.Errorf("Expected rings %q, got %q", want, buf.String())
	}
	rings, err := ReadRings(&buf)
	if err != nil {
		t.Fatalf("ReadRings failed: %v", err)
	}
	if diff := cmp.Diff([][]int{{1, 2, 5, 1}, {2, 3, 5, 2}}, rings); diff != "" {
		t.Errorf("rings mismatch (-want +got):\n%s", diff)
	}
}

func TestReadListErrors(t *testing.T) {
	tests := []struct {
		name, input, want string
	}{
		{"short list", "3\n(\n(0 0 0)\n)\n", "list ended after 1 of 3 entries"},
		{"no paren", "2\n[\n", `expected ( after list size 2`},
		{"bad number", "1\n(\n(0 x 0)\n)\n", `points line 3: invalid number "x"`},
		{"two components", "1\n(\n(0 0)\n)\n", "has 2 components"},
		{"truncated", "2\n(\n(0 0 0)\n", "unexpected end of file"},
	}
	for _, test := range tests {
		_, err := ReadPoints(strings.NewReader(test.input))
		if err == nil {
			t.Errorf("%s: expected error", test.name)
			continue
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: expected error containing %q, got %v", test.name, test.want, err)
		}
	}

	if _, err := ReadFaces(strings.NewReader("1\n(\n4(0 1 2)\n)\n")); err == nil {
		t.Error("Expected error for a face with the wrong label count")
	}
}

func TestReadCellFaces(t *testing.T) {
	got, err := ReadCellFaces(strings.NewReader("(0 1 2 3)\n\n(4 5 6)\n3(7 8 9)\n"))
	if err != nil {
		t.Fatalf("ReadCellFaces failed: %v", err)
	}
	want := [][]int{{0, 1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cell faces mismatch (-want +got):\n%s", diff)
	}
}

func TestPointTableRoundTrip(t *testing.T) {
	pts := []r3.Vector{{X: 500123.25, Y: 3400456.5, Z: 0}, {X: -1, Y: 2, Z: 0.125}}
	var buf bytes.Buffer
	if err := WritePoints(&buf, pts); err != nil {
		t.Fatalf("WritePoints failed: %v", err)
	}
	if want := "500123.25 3400456.5 0\n-1 2 0.125\n"; buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
	got, err := ReadPointTable(&buf)
	if err != nil {
		t.Fatalf("ReadPointTable failed: %v", err)
	}
	if diff := cmp.Diff(pts, got); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}
