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

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// AgManagement is an agricultural management overlay resolved against the
// Index Model's land-use ordering.
type AgManagement struct {
	Name    string
	Enabled bool
	// LandUses is J_a: the sorted land-use indices this AM applies to.
	LandUses []int
	// Mask is the (J,) boolean mask equivalent of LandUses.
	Mask []bool
}

// IndexModel holds the canonical orderings and mapping matrices described
// in spec.md §4.1: lu2pr, pr2lu, pr2cm, lu2cm, and per-AM land-use subsets.
// All orderings are lexicographic over canonical display names.
type IndexModel struct {
	J     []LandUse
	K     []NonAgLandUse
	P     []Product
	C     []Commodity
	AM    []AgManagement
	jByName map[string]int

	// LU2PR is the (P,J) 0/1 incidence matrix.
	LU2PR *mat.Dense
	// PR2LU maps each product to its single originating land use.
	PR2LU []int
	// PR2CM is the (C,P) 0/1 incidence matrix.
	PR2CM *mat.Dense
	// LU2CM is PR2CM . LU2PR, the (C,J) 0/1 incidence matrix.
	LU2CM *mat.Dense

	// LUCrops, LULvstk, LUNatural, LUUnnatural, LUUnallocated are the
	// disjoint/overlapping land-use index subsets named in spec.md §3.
	LUCrops       []int
	LULvstk       []int
	LUNatural     []int
	LUUnnatural   []int
	LUUnallocated []int

	// LUShallowRooted and LUDeepRooted classify land uses by typical
	// rooting depth, resolving Open Question (c) of spec.md §9: broadacre
	// crops and horticulture are shallow-rooted; perennial pasture
	// (livestock) and unallocated land carrying native/woody vegetation
	// are deep-rooted.
	LUShallowRooted []int
	LUDeepRooted    []int
}

// LandUseIndex returns the index of the named land use in J, and whether it
// was found.
func (idx *IndexModel) LandUseIndex(name string) (int, bool) {
	i, ok := idx.jByName[name]
	return i, ok
}

// NumLandUses returns |J|.
func (idx *IndexModel) NumLandUses() int { return len(idx.J) }

// NumNonAgLandUses returns |K|.
func (idx *IndexModel) NumNonAgLandUses() int { return len(idx.K) }

// NumProducts returns |P|.
func (idx *IndexModel) NumProducts() int { return len(idx.P) }

// NumCommodities returns |C|.
func (idx *IndexModel) NumCommodities() int { return len(idx.C) }

func stripQualifier(name string) (base string, natural bool, hasQualifier bool) {
	return SplitQualifier(name)
}

// SplitQualifier splits a livestock or unallocated land-use display name
// into its base name and the "- natural land"/"- modified land" qualifier,
// e.g. "Beef - natural land" -> ("Beef", true, true). Names with no
// qualifier (crops, horticulture) return (name, false, false) unchanged.
func SplitQualifier(name string) (base string, natural bool, hasQualifier bool) {
	switch {
	case strings.HasSuffix(name, " - natural land"):
		return strings.TrimSuffix(name, " - natural land"), true, true
	case strings.HasSuffix(name, " - modified land"):
		return strings.TrimSuffix(name, " - modified land"), false, true
	default:
		return name, false, false
	}
}

type productSpec struct {
	name      string
	commodity string
}

func productsForLandUse(lu LandUse) []productSpec {
	switch lu.Category {
	case Crop, IntensiveCrop, Horticulture:
		return []productSpec{{name: lu.Name, commodity: strings.ToLower(lu.Name)}}
	case Livestock:
		base, _, _ := stripQualifier(lu.Name)
		if base == "Dairy" {
			return []productSpec{{
				name:      lu.Name + " milk",
				commodity: strings.ToLower(base) + " milk",
			}}
		}
		kinds := []string{"live export", "meat"}
		if base == "Sheep" {
			kinds = append(kinds, "wool")
		}
		specs := make([]productSpec, 0, len(kinds))
		for _, k := range kinds {
			specs = append(specs, productSpec{
				name:      lu.Name + " " + k,
				commodity: strings.ToLower(base) + " " + k,
			})
		}
		return specs
	case Unallocated:
		// Unallocated land uses carry no production.
		return nil
	default:
		return nil
	}
}

// NewIndexModel builds an Index Model from an ordered agricultural land-use
// list, a non-agricultural land-use list, and a set of agricultural
// management definitions. landUses and nonAgLandUses must already be in
// lexicographic display-name order; NewIndexModel does not re-sort them, so
// that callers control the canonical ordering explicitly. It returns a
// ConfigError if any AgManagementDef references a land use absent from J.
func NewIndexModel(landUses []LandUse, nonAgLandUses []NonAgLandUse, ams []AgManagementDef) (*IndexModel, error) {
	idx := &IndexModel{
		J:       append([]LandUse(nil), landUses...),
		K:       append([]NonAgLandUse(nil), nonAgLandUses...),
		jByName: make(map[string]int, len(landUses)),
	}
	for i, lu := range idx.J {
		idx.jByName[lu.Name] = i
	}

	// Build P from J, preserving a lexicographic product ordering.
	type pEntry struct {
		spec productSpec
		j    int
	}
	var entries []pEntry
	for j, lu := range idx.J {
		for _, s := range productsForLandUse(lu) {
			entries = append(entries, pEntry{spec: s, j: j})
		}
	}
	sort.Slice(entries, func(a, b int) bool { return entries[a].spec.name < entries[b].spec.name })

	idx.P = make([]Product, len(entries))
	idx.PR2LU = make([]int, len(entries))
	for p, e := range entries {
		idx.P[p] = Product{Name: e.spec.name, CommodityName: e.spec.commodity}
		idx.PR2LU[p] = e.j
	}

	idx.LU2PR = mat.NewDense(len(idx.P), len(idx.J), nil)
	for p, e := range entries {
		idx.LU2PR.Set(p, e.j, 1)
	}

	// Build C from the unique commodity names referenced by P.
	commoditySet := make(map[string]bool)
	for _, p := range idx.P {
		commoditySet[p.CommodityName] = true
	}
	cNames := make([]string, 0, len(commoditySet))
	for name := range commoditySet {
		cNames = append(cNames, name)
	}
	sort.Strings(cNames)
	idx.C = make([]Commodity, len(cNames))
	cIndex := make(map[string]int, len(cNames))
	for c, name := range cNames {
		idx.C[c] = Commodity{Name: name}
		cIndex[name] = c
	}

	idx.PR2CM = mat.NewDense(len(idx.C), len(idx.P), nil)
	for p, prod := range idx.P {
		idx.PR2CM.Set(cIndex[prod.CommodityName], p, 1)
	}

	idx.LU2CM = mat.NewDense(len(idx.C), len(idx.J), nil)
	idx.LU2CM.Mul(idx.PR2CM, idx.LU2PR)

	// Resolve land-use subsets.
	for j, lu := range idx.J {
		switch lu.Category {
		case Crop, IntensiveCrop:
			idx.LUCrops = append(idx.LUCrops, j)
		case Horticulture:
			idx.LUCrops = append(idx.LUCrops, j)
		case Livestock:
			idx.LULvstk = append(idx.LULvstk, j)
		case Unallocated:
			idx.LUUnallocated = append(idx.LUUnallocated, j)
		}
		if lu.Natural {
			idx.LUNatural = append(idx.LUNatural, j)
		} else {
			idx.LUUnnatural = append(idx.LUUnnatural, j)
		}
		switch lu.Category {
		case Crop, IntensiveCrop, Horticulture:
			idx.LUShallowRooted = append(idx.LUShallowRooted, j)
		case Livestock, Unallocated:
			idx.LUDeepRooted = append(idx.LUDeepRooted, j)
		}
	}

	// Resolve agricultural management land-use subsets.
	idx.AM = make([]AgManagement, len(ams))
	for a, def := range ams {
		mask := make([]bool, len(idx.J))
		jset := make([]int, 0, len(def.LandUses))
		for _, name := range def.LandUses {
			j, ok := idx.jByName[name]
			if !ok {
				return nil, NewConfigError("AG_MANAGEMENTS",
					"agricultural management %q references unknown land use %q", def.Name, name)
			}
			mask[j] = true
			jset = append(jset, j)
		}
		sort.Ints(jset)
		idx.AM[a] = AgManagement{
			Name:     def.Name,
			Enabled:  def.Enabled,
			LandUses: jset,
			Mask:     mask,
		}
	}

	return idx, nil
}

// AgManagementByName returns the resolved AgManagement with the given name.
func (idx *IndexModel) AgManagementByName(name string) (*AgManagement, bool) {
	for i := range idx.AM {
		if idx.AM[i].Name == name {
			return &idx.AM[i], true
		}
	}
	return nil, false
}
