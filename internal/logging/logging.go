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

// Package logging provides the structured logger shared by every LUTO
// package. It wraps a single logrus.Logger instance so every package logs
// through one shared, consistently configured sink instead of constructing
// its own.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var std = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Logger returns the package-wide logger.
func Logger() *logrus.Logger { return std }

// SetLevel sets the minimum level of the shared logger, e.g. "debug" from a
// --verbose CLI flag.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	std.SetLevel(lvl)
	return nil
}

// WithField is a shorthand for Logger().WithField.
func WithField(key string, value interface{}) *logrus.Entry {
	return std.WithField(key, value)
}
