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

// Package landcover samples a classified landcover raster at mesh cell
// centres and turns the classes into runoff coefficients.
package landcover

import (
	"bufio"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/tiff"
)

// ErrOutOfBounds is returned for map coordinates outside the raster.
var ErrOutOfBounds = errors.New("landcover: point outside raster")

// GeoTransform maps pixel to map coordinates in GDAL's order: origin x,
// pixel width, row rotation, origin y, column rotation, pixel height. The
// origin is the outer corner of the upper left pixel.
type GeoTransform [6]float64

// Raster is a single band classified image with a north-up geotransform.
type Raster struct {
	img   image.Image
	class func(x, y int) int
	gt    GeoTransform
}

// Bounds returns the pixel bounds of the raster.
func (r *Raster) Bounds() image.Rectangle { return r.img.Bounds() }

// GeoTransform returns the pixel to map transform.
func (r *Raster) GeoTransform() GeoTransform { return r.gt }

// Class returns the class of the pixel containing map point (x, y).
func (r *Raster) Class(x, y float64) (int, error) {
	px := int(math.Floor((x - r.gt[0]) / r.gt[1]))
	py := int(math.Floor((y - r.gt[3]) / r.gt[5]))
	b := r.img.Bounds()
	p := image.Point{X: b.Min.X + px, Y: b.Min.Y + py}
	if !p.In(b) {
		return 0, ErrOutOfBounds
	}
	return r.class(p.X, p.Y), nil
}

// ReadWorldFile parses an ESRI world file (.tfw). Its six lines are the
// pixel width, two rotation terms, the pixel height and the centre of the
// upper left pixel.
func ReadWorldFile(rd io.Reader) (GeoTransform, error) {
	var v [6]float64
	sc := bufio.NewScanner(rd)
	n := 0
	for sc.Scan() && n < 6 {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return GeoTransform{}, errors.Errorf("world file line %d: invalid number %q", n+1, text)
		}
		v[n] = f
		n++
	}
	if err := sc.Err(); err != nil {
		return GeoTransform{}, errors.Wrap(err, "reading world file")
	}
	if n < 6 {
		return GeoTransform{}, errors.Errorf("world file: want 6 values, got %d", n)
	}
	a, d, b, e, c, f := v[0], v[1], v[2], v[3], v[4], v[5]
	if d != 0 || b != 0 {
		return GeoTransform{}, errors.New("world file: rotated rasters are not supported")
	}
	if a == 0 || e == 0 {
		return GeoTransform{}, errors.New("world file: zero pixel size")
	}
	return GeoTransform{c - a/2, a, 0, f - e/2, 0, e}, nil
}

// Decode reads a single band TIFF and attaches gt to it.
func Decode(rd io.Reader, gt GeoTransform) (*Raster, error) {
	img, err := tiff.Decode(rd)
	if err != nil {
		return nil, errors.Wrap(err, "decoding tiff")
	}
	r := &Raster{img: img, gt: gt}
	switch m := img.(type) {
	case *image.Gray:
		r.class = func(x, y int) int { return int(m.GrayAt(x, y).Y) }
	case *image.Gray16:
		r.class = func(x, y int) int { return int(m.Gray16At(x, y).Y) }
	case *image.Paletted:
		r.class = func(x, y int) int { return int(m.ColorIndexAt(x, y)) }
	default:
		return nil, errors.Errorf("landcover: %T is not a single band image", img)
	}
	return r, nil
}

// Open reads the TIFF at path and the world file next to it, path with its
// extension replaced by ".tfw".
func Open(path string) (*Raster, error) {
	worldPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".tfw"
	wf, err := os.Open(worldPath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening world file for %q", path)
	}
	defer wf.Close()
	gt, err := ReadWorldFile(wf)
	if err != nil {
		return nil, errors.Wrapf(err, "%q", worldPath)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening raster %q", path)
	}
	defer f.Close()
	return Decode(f, gt)
}
