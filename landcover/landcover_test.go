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

package landcover

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"golang.org/x/image/tiff"
)

// A 3 x 2 raster of 10 m pixels whose upper left corner is (1000, 2000).
const worldFile = "10\n0\n0\n-10\n1005\n1995\n"

func testImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	copy(img.Pix, []uint8{
		10, 20, 60,
		90, 40, 10,
	})
	return img
}

func encode(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, nil); err != nil {
		t.Fatalf("unable to encode tiff: %v", err)
	}
	return buf.Bytes()
}

func TestReadWorldFile(t *testing.T) {
	gt, err := ReadWorldFile(strings.NewReader(worldFile))
	if err != nil {
		t.Fatalf("ReadWorldFile failed: %v", err)
	}
	want := GeoTransform{1000, 10, 0, 2000, 0, -10}
	if gt != want {
		t.Errorf("Expected %v, got %v", want, gt)
	}

	for _, bad := range []string{"10\n0\n0\n-10\n", "10\n0.1\n0\n-10\n1005\n1995\n", "10\nx\n"} {
		if _, err := ReadWorldFile(strings.NewReader(bad)); err == nil {
			t.Errorf("Expected error for world file %q", bad)
		}
	}
}

func TestRasterClass(t *testing.T) {
	r, err := Decode(bytes.NewReader(encode(t, testImage())), GeoTransform{1000, 10, 0, 2000, 0, -10})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	tests := []struct {
		x, y float64
		want int
	}{
		{1001, 1999, 10},
		{1015, 1995, 20},
		{1029.9, 1990.1, 60},
		{1005, 1985, 90},
		{1020, 1981, 10},
	}
	for _, test := range tests {
		got, err := r.Class(test.x, test.y)
		if err != nil {
			t.Errorf("Class(%g, %g) failed: %v", test.x, test.y, err)
			continue
		}
		if got != test.want {
			t.Errorf("Class(%g, %g) = %d, want %d", test.x, test.y, got, test.want)
		}
	}

	for _, p := range [][2]float64{{999, 1995}, {1030, 1995}, {1005, 2001}, {1005, 1980}} {
		if _, err := r.Class(p[0], p[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Class(%v): expected ErrOutOfBounds, got %v", p, err)
		}
	}
}

func TestCoefficients(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lc_case.tif")
	if err := os.WriteFile(path, encode(t, testImage()), 0644); err != nil {
		t.Fatalf("unable to write tiff: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "lc_case.tfw"), []byte(worldFile), 0644); err != nil {
		t.Fatalf("unable to write world file: %v", err)
	}
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if b := r.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("Expected a 3 x 2 raster, got %v", b)
	}

	centres := []r3.Vector{
		{X: 1005, Y: 1995, Z: 0.05},
		{X: 1015, Y: 1995, Z: 0.05},
		{X: 1025, Y: 1995, Z: 0.05},
		{X: 1005, Y: 1985, Z: 0.05},
		{X: 1015, Y: 1985, Z: 0.05},
	}
	got, err := Coefficients(r, centres, DefaultRunoffTable())
	if err != nil {
		t.Fatalf("Coefficients failed: %v", err)
	}
	// Class 40 is not in the table and falls back to the default.
	want := []float64{0.4, 0.2, 1, 0.6, 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("coefficients mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := WriteCoefficients(&buf, got); err != nil {
		t.Fatalf("WriteCoefficients failed: %v", err)
	}
	if want := "0.4\n0.2\n1\n0.6\n1\n"; buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}

	_, err = Coefficients(r, []r3.Vector{{X: 0, Y: 0}}, DefaultRunoffTable())
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
}

func TestOpenWithoutWorldFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lc.tif")
	if err := os.WriteFile(path, encode(t, testImage()), 0644); err != nil {
		t.Fatalf("unable to write tiff: %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Error("Expected error without a world file")
	}
}

func TestDecodeRejectsColour(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if _, err := Decode(bytes.NewReader(encode(t, img)), GeoTransform{0, 1, 0, 0, 0, -1}); err == nil {
		t.Error("Expected error for an RGBA raster")
	}
}
