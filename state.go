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

package luto

// YearState is the full land-use/management/AM state of every cell at the
// close of one year, per spec.md §4.8. A run threads YearState forward:
// year y+1's transition costs (and, in Timeseries mode, its matrix inputs)
// are computed against year y's YearState.
type YearState struct {
	Year  int
	Lumap []int
	Lmmap []LandManagement
	Ammap map[string][]bool
}

// ApplyInvariants checks the decoded maps of next for structural
// consistency: lumap and lmmap have one entry per cell, every land-use code
// is valid, and no AM is active on a non-agricultural cell. It does not
// check decision-variable values, so no area sum is compared against cell
// area and no numeric tolerance applies. It returns an *InvariantViolation
// on the first violation found.
func ApplyInvariants(next *YearState, numCells int, validLandUse func(j int) bool) error {
	if len(next.Lumap) != numCells || len(next.Lmmap) != numCells {
		return NewInvariantViolation("area_conservation",
			"lumap/lmmap length mismatch: have %d/%d, want %d", len(next.Lumap), len(next.Lmmap), numCells)
	}
	for r, code := range next.Lumap {
		if _, isNonAg := DecodedIsNonAgCode(code); isNonAg {
			continue
		}
		if !validLandUse(code) {
			return NewInvariantViolation("area_conservation",
				"cell %d assigned unknown land-use code %d", r, code)
		}
	}
	for amName, mask := range next.Ammap {
		for r, active := range mask {
			if !active {
				continue
			}
			if _, isNonAg := DecodedIsNonAgCode(next.Lumap[r]); isNonAg {
				return NewInvariantViolation("am_subordination",
					"AM %q active on cell %d which carries a non-agricultural assignment", amName, r)
			}
		}
	}
	return nil
}

// DecodedIsNonAgCode reports whether a lumap code encodes a non-agricultural
// assignment (code >= NonAgBaseCode), and if so its NonAgLandUse-relative
// offset.
func DecodedIsNonAgCode(code int) (offset int, isNonAg bool) {
	if code >= NonAgBaseCode {
		return code - NonAgBaseCode, true
	}
	return 0, false
}
