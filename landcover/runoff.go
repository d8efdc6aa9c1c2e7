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
	"bufio"
	"io"
	"strconv"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// RunoffTable maps landcover classes to runoff coefficients.
type RunoffTable struct {
	Classes map[int]float64
	Default float64
}

// DefaultRunoffTable returns the stock coefficients. Classes not listed run
// off completely.
func DefaultRunoffTable() RunoffTable {
	return RunoffTable{
		Classes: map[int]float64{10: 0.4, 20: 0.2, 30: 0.2, 50: 0.2, 60: 1, 90: 0.6},
		Default: 1,
	}
}

// Lookup returns the coefficient of class.
func (t RunoffTable) Lookup(class int) float64 {
	if v, ok := t.Classes[class]; ok {
		return v
	}
	return t.Default
}

// Coefficients samples r at every cell centre and returns the matching
// runoff coefficients in cell order.
func Coefficients(r *Raster, centres []r3.Vector, t RunoffTable) ([]float64, error) {
	out := make([]float64, len(centres))
	for i, c := range centres {
		class, err := r.Class(c.X, c.Y)
		if err != nil {
			return nil, errors.Wrapf(err, "cell %d at (%g, %g)", i, c.X, c.Y)
		}
		out[i] = t.Lookup(class)
	}
	return out, nil
}

// WriteCoefficients writes one coefficient per line.
func WriteCoefficients(w io.Writer, coeffs []float64) error {
	bw := bufio.NewWriter(w)
	for _, v := range coeffs {
		bw.WriteString(strconv.FormatFloat(v, 'f', -1, 64) + "\n")
	}
	return errors.Wrap(bw.Flush(), "writing coefficients")
}
