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

package program

import "github.com/land-use-trade-offs/luto-v2.0.0"

// AmActivityThreshold is the minimum fraction of a cell's area an AM
// variable must claim to be recorded as "active" on that cell, per
// spec.md §4.7. Below this the AM's share is treated as solver noise.
const AmActivityThreshold = 1e-6

// Decoded is the per-cell outcome of decoding a solver Solution back into
// maps, per spec.md §4.7.
type Decoded struct {
	// Lumap holds, per cell, the winning agricultural land-use index, or
	// luto.NonAgBaseCode+k for non-agricultural land use k if a
	// non-agricultural variable won instead. Use DecodedIsNonAg to test.
	Lumap []int
	Lmmap []luto.LandManagement
	// Ammap holds, per AM name, a per-cell bool of whether that AM is
	// active there.
	Ammap map[string][]bool
}

// DecodedIsNonAg reports whether lumap[r] encodes a non-agricultural
// assignment, and if so which NonAgLandUse.Code it is.
func DecodedIsNonAg(code int) (nonAgCode int, isNonAg bool) {
	if code >= luto.NonAgBaseCode {
		return code, true
	}
	return 0, false
}

// Decode picks, for every cell, the (m,j) or (k) with the largest assigned
// area among X[·,r,·] and N[r,·], breaking ties by lowest land-use index
// (spec.md §4.7's deterministic tie-break), then records which AMs are
// active there above AmActivityThreshold.
func Decode(spec *Spec, values []float64, idx *luto.IndexModel, numCells int) *Decoded {
	out := &Decoded{
		Lumap: make([]int, numCells),
		Lmmap: make([]luto.LandManagement, numCells),
		Ammap: make(map[string][]bool, len(idx.AM)),
	}
	for _, am := range idx.AM {
		out.Ammap[am.Name] = make([]bool, numCells)
	}

	type best struct {
		area float64
		code int // agricultural land-use index, or luto.NonAgBaseCode+k for non-ag
		lm   luto.LandManagement
		set  bool
	}
	bests := make([]best, numCells)

	amAreas := make(map[[3]int]float64) // [a][r][j] -> area, for post-pick threshold test

	for i, v := range spec.Vars {
		area := values[i]
		switch v.Kind {
		case VarX:
			b := bests[v.R]
			code := v.J
			if !b.set || area > b.area || (area == b.area && code < b.code) {
				bests[v.R] = best{area: area, code: code, lm: luto.LandManagement(v.M), set: true}
			}
		case VarN:
			b := bests[v.R]
			code := luto.NonAgBaseCode + v.K
			if !b.set || area > b.area || (area == b.area && code < b.code) {
				bests[v.R] = best{area: area, code: code, lm: luto.Dry, set: true}
			}
		case VarA:
			a := v.A - 1
			amAreas[[3]int{a, v.R, v.J}] += area
		}
	}

	for r := 0; r < numCells; r++ {
		out.Lumap[r] = bests[r].code
		out.Lmmap[r] = bests[r].lm
	}

	for a, am := range idx.AM {
		mask := out.Ammap[am.Name]
		for key, area := range amAreas {
			if key[0] != a {
				continue
			}
			r, j := key[1], key[2]
			if out.Lumap[r] != j {
				continue
			}
			cellArea := bests[r].area
			if cellArea <= 0 {
				continue
			}
			if area/cellArea >= AmActivityThreshold {
				mask[r] = true
			}
		}
	}

	return out
}
