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

package matrix

import "github.com/land-use-trade-offs/luto-v2.0.0"

// ExcludeMask is a (M,R,J) feasibility mask: Mask[m][r][j] is true when
// (m,r,j) is a candidate the program builder may assign area to. It is kept
// as nested bool slices rather than a DenseArray because the program
// builder consumes it as a predicate, never arithmetically.
type ExcludeMask struct {
	R, J int
	Mask [][]bool // indexed [m*R+r][j]
}

// At reports whether (m,r,j) is feasible.
func (e *ExcludeMask) At(m luto.LandManagement, r, j int) bool {
	return e.Mask[int(m)*e.R+r][j]
}

// Exclude builds the feasibility mask from each land use's per-cell
// agro-climatic/irrigation suitability, per spec.md §4.2. A cell with zero
// area is never feasible for any land use.
func Exclude(dp luto.DataProvider, idx *luto.IndexModel, cells luto.CellData) (*ExcludeMask, error) {
	mask := &ExcludeMask{R: cells.R, J: idx.NumLandUses()}
	mask.Mask = make([][]bool, luto.NumLandManagements*cells.R)
	for i := range mask.Mask {
		mask.Mask[i] = make([]bool, idx.NumLandUses())
	}

	for j, lu := range idx.J {
		for m := luto.LandManagement(0); int(m) < luto.NumLandManagements; m++ {
			suitable, err := dp.AgSuitable(lu.Name, m)
			if err != nil {
				return nil, err
			}
			if len(suitable) != cells.R {
				return nil, luto.NewDataError("matrix.Exclude",
					"suitability length mismatch for %s/%s: got %d want %d", lu.Name, m, len(suitable), cells.R)
			}
			row := mask.Mask[int(m)*cells.R : int(m)*cells.R+cells.R]
			for r, ok := range suitable {
				row[r][j] = ok && cells.AreaHa[r] > 0
			}
		}
	}
	return mask, nil
}
