/*
Copyright (C) 2013-2014 Regents of the University of Minnesota.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package matrix builds the dense per-cell economic, yield, emissions, and
// water tensors that feed the program builder, from a luto.DataProvider and
// an luto.IndexModel. Every builder in this package is pure: given the same
// inputs it returns the same *sparse.DenseArray, and it never mutates its
// arguments. Builders are safe to run concurrently with each other, which is
// how the Run Loop invokes them: it fans them out with a sync.WaitGroup and
// joins before assembling the program.
package matrix

import (
	"fmt"

	"github.com/ctessum/sparse"
	"github.com/land-use-trade-offs/luto-v2.0.0"
	"gonum.org/v1/gonum/floats"
)

// MRJ allocates a zeroed (M,R,J) DenseArray.
func MRJ(r, j int) *sparse.DenseArray {
	return sparse.ZerosDense(luto.NumLandManagements, r, j)
}

// RK allocates a zeroed (R,K) DenseArray.
func RK(r, k int) *sparse.DenseArray {
	return sparse.ZerosDense(r, k)
}

// MRJPrime allocates a zeroed (M,R,J_am) DenseArray sized to an AM's own
// land-use subset, matching the compressed per-AM storage spec.md §4.3
// specifies ("only over its own J_am subset, not the full J").
func MRJPrime(r int, am *luto.AgManagement) *sparse.DenseArray {
	return sparse.ZerosDense(luto.NumLandManagements, r, len(am.LandUses))
}

// checkNoNaN scans a DenseArray for NaN, Inf, or any value whose magnitude
// exceeds maxFinite and returns a *luto.DataError attributed to source if
// any is found. The tensor builders call this before returning; WaterNet
// and Exclude do not.
func checkNoNaN(source string, arr *sparse.DenseArray) error {
	for i, v := range arr.Elements {
		if v != v || v > maxFinite || v < -maxFinite {
			return luto.NewDataError(source, "non-finite value %v at flat index %d", v, i)
		}
	}
	return nil
}

const maxFinite = 1e18

// fillColumn sets arr[m, :, j] = values for a (M,R,J)-shaped arr, where
// values has length R. It is the vectorised-assignment idiom the Python
// source expresses as `cost_mrj[m, :, j] = ...`.
func fillColumn(arr *sparse.DenseArray, m, j int, values []float64) {
	shape := arr.Shape
	r := shape[1]
	if len(values) != r {
		panic(fmt.Sprintf("matrix: fillColumn length mismatch: got %d want %d", len(values), r))
	}
	for i, v := range values {
		arr.Set(v, m, i, j)
	}
}

// addColumn adds values into arr[m, :, j] in place.
func addColumn(arr *sparse.DenseArray, m, j int, values []float64) {
	shape := arr.Shape
	r := shape[1]
	if len(values) != r {
		panic(fmt.Sprintf("matrix: addColumn length mismatch: got %d want %d", len(values), r))
	}
	for i, v := range values {
		arr.Set(arr.Get(m, i, j)+v, m, i, j)
	}
}

// scaleColumn multiplies arr[m, :, j] by a per-cell factor in place.
func scaleColumn(arr *sparse.DenseArray, m, j int, factor []float64) {
	shape := arr.Shape
	r := shape[1]
	if len(factor) != r {
		panic(fmt.Sprintf("matrix: scaleColumn length mismatch: got %d want %d", len(factor), r))
	}
	for i, f := range factor {
		arr.Set(arr.Get(m, i, j)*f, m, i, j)
	}
}

// mulByArea multiplies a per-hectare slice by area (ha) elementwise,
// returning a new slice. This is the `* data.REAL_AREA` step that converts
// every per-hectare economic/emissions quantity into a per-cell one.
func mulByArea(perHa []float64, areaHa []float64) []float64 {
	out := append([]float64(nil), perHa...)
	floats.Mul(out, areaHa)
	return out
}

// SumAll totals every element of a DenseArray, used for the debug-level
// year-end mass-balance log line (e.g. total GHG emitted).
func SumAll(arr *sparse.DenseArray) float64 {
	return floats.Sum(arr.Elements)
}
