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

//go:generate hwygen -input $GOFILE -output . -targets avx2,fallback

import (
	"github.com/ajroetker/go-highway/hwy"
)

// BaseBatchCross2D computes the z component of the cross product of each
// pair of planar vectors (SoA layout).
// dst[i] = ax[i]*by[i] - ay[i]*bx[i]
func BaseBatchCross2D[T hwy.Floats](ax, ay, bx, by, dst []T) {
	size := min(len(ax), len(ay), len(bx), len(by), len(dst))

	hwy.ProcessWithTail[T](size,
		func(offset int) {
			vAx := hwy.Load(ax[offset:])
			vAy := hwy.Load(ay[offset:])
			vBx := hwy.Load(bx[offset:])
			vBy := hwy.Load(by[offset:])

			vC := hwy.Sub(hwy.Mul(vAx, vBy), hwy.Mul(vAy, vBx))
			hwy.Store(vC, dst[offset:])
		},
		func(offset, count int) {
			mask := hwy.TailMask[T](count)
			vAx := hwy.MaskLoad(mask, ax[offset:])
			vAy := hwy.MaskLoad(mask, ay[offset:])
			vBx := hwy.MaskLoad(mask, bx[offset:])
			vBy := hwy.MaskLoad(mask, by[offset:])

			vC := hwy.Sub(hwy.Mul(vAx, vBy), hwy.Mul(vAy, vBx))
			hwy.MaskStore(mask, vC, dst[offset:])
		},
	)
}
