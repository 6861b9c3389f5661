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

import "fmt"

// ConfigError indicates an invalid configuration: unknown enum combinations,
// an agricultural-management land use absent from J, or a target year that
// doesn't postdate the base year. Fatal at run start.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("luto: config error: %s", e.Msg)
	}
	return fmt.Sprintf("luto: config error: %s: %s", e.Field, e.Msg)
}

// NewConfigError builds a ConfigError for the named configuration field.
func NewConfigError(field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// DataError indicates a NaN surviving into a builder output, a tensor shape
// mismatch, or a region with zero cells. Fatal for the affected year only.
type DataError struct {
	Source string
	Msg    string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("luto: data error in %s: %s", e.Source, e.Msg)
}

// NewDataError builds a DataError attributed to the named builder/source.
func NewDataError(source, format string, args ...interface{}) *DataError {
	return &DataError{Source: source, Msg: fmt.Sprintf(format, args...)}
}

// SolveError indicates a non-OPTIMAL (or, if not configured to accept
// SUBOPTIMAL, non-SUBOPTIMAL) solver status. The affected year's maps are
// not updated.
type SolveError struct {
	Year   int
	Status string
	Msg    string
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("luto: solve error in year %d: status=%s: %s", e.Year, e.Status, e.Msg)
}

// NewSolveError builds a SolveError for the given year and solver status.
func NewSolveError(year int, status, format string, args ...interface{}) *SolveError {
	return &SolveError{Year: year, Status: status, Msg: fmt.Sprintf(format, args...)}
}

// InvariantViolation indicates that a post-solve state failed one of the
// structural checks in ApplyInvariants. Always fatal.
type InvariantViolation struct {
	Invariant string
	Msg       string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("luto: invariant violated (%s): %s", e.Invariant, e.Msg)
}

// NewInvariantViolation builds an InvariantViolation for the named invariant.
func NewInvariantViolation(invariant, format string, args ...interface{}) *InvariantViolation {
	return &InvariantViolation{Invariant: invariant, Msg: fmt.Sprintf(format, args...)}
}
