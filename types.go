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

// Package luto implements the per-year constraint-building and optimisation
// pipeline at the core of the LUTO spatial land-use model: assembly of
// dense per-cell tensors, the decision-variable model, mathematical-program
// construction, the year-to-year state transition, spatial coarse-graining,
// and cell-level culling.
package luto

import "fmt"

// LandManagement is a cell's water-management regime.
type LandManagement int

const (
	// Dry is rainfed land management.
	Dry LandManagement = iota
	// Irr is irrigated land management.
	Irr
)

// NumLandManagements is |M|, the size of the land-management set.
const NumLandManagements = 2

func (m LandManagement) String() string {
	switch m {
	case Dry:
		return "dry"
	case Irr:
		return "irr"
	default:
		return fmt.Sprintf("LandManagement(%d)", int(m))
	}
}

// LandUseCategory tags an agricultural land use with the family of
// computation that applies to it, so matrix builders can dispatch on a
// type switch instead of sniffing land-use names.
type LandUseCategory int

const (
	// Crop is a broadacre cropping land use (one yield, one product).
	Crop LandUseCategory = iota
	// IntensiveCrop is an intensive/irrigated row-crop land use.
	IntensiveCrop
	// Horticulture is a perennial horticultural land use.
	Horticulture
	// Livestock is an animal-based land use, stocked on natural or
	// modified land, yielding live-exports/meat/wool or (dairy) milk.
	Livestock
	// Unallocated is non-productive agricultural land (natural or
	// modified) carried in the land-use map but producing nothing.
	Unallocated
)

func (c LandUseCategory) String() string {
	switch c {
	case Crop:
		return "crop"
	case IntensiveCrop:
		return "intensive_crop"
	case Horticulture:
		return "horticulture"
	case Livestock:
		return "livestock"
	case Unallocated:
		return "unallocated"
	default:
		return fmt.Sprintf("LandUseCategory(%d)", int(c))
	}
}

// LandUse is one member of the agricultural land-use set J.
type LandUse struct {
	// Name is the canonical display name, e.g. "Winter cereals" or
	// "Beef - natural land".
	Name string
	// Category selects the per-variant computation function used by
	// the matrix builders.
	Category LandUseCategory
	// Natural is true for the "- natural land" qualifier of livestock
	// and unallocated land uses. It is meaningless (false) for crops,
	// intensive crops, and horticulture, which carry no such qualifier.
	Natural bool
}

// NonAgLandUse is one member of the non-agricultural land-use set K.
type NonAgLandUse struct {
	// Name is the canonical display name, e.g. "Environmental plantings".
	Name string
	// Code is the serialised map offset (>=100) used to distinguish
	// non-agricultural assignments from the agricultural land-use codes
	// in persisted lumaps.
	Code int
}

// NonAgBaseCode is the base offset for non-agricultural land-use codes in
// serialised maps, per spec.md §3.
const NonAgBaseCode = 100

// Product is one member of the derived product set P.
type Product struct {
	// Name is the canonical display name, e.g. "Beef - natural land meat".
	Name string
	// CommodityName is the lower-cased, qualifier-stripped commodity this
	// product aggregates into.
	CommodityName string
}

// Commodity is one member of the commodity set C.
type Commodity struct {
	// Name is the lower-cased commodity name, e.g. "beef meat".
	Name string
}

// AgManagementDef is the declarative input describing one agricultural
// management overlay: whether it is enabled and which land uses it applies
// to. The Index Model resolves LandUses against J once, at construction
// time, rather than having every call site re-match land-use names.
type AgManagementDef struct {
	// Name is the canonical display name, e.g. "Asparagopsis taxiformis".
	Name string
	// Enabled selects whether this AM contributes nonzero effect tensors.
	// A disabled AM always contributes a zero tensor (spec.md §4.3).
	Enabled bool
	// LandUses lists the names of the land uses this AM applies to; each
	// must be present in J or NewIndexModel returns a ConfigError.
	LandUses []string
}
