/*
Copyright © 2018 the InMAP authors.
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

// Package hlog configures the package-level logrus.Logger the resolver and
// regridder log through, the way cmd/inmapweb's init function configures
// logrus at process startup.
package hlog

import (
	"time"

	"github.com/sirupsen/logrus"
)

var logger = logrus.StandardLogger()

func init() {
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})
	logger.SetLevel(logrus.InfoLevel)
}

// SetDebug switches the package logger between Debug and Info level. At
// Debug level the resolver's candidate-rejected and conversion-applied
// messages are shown; the regridder's variable-drop warnings are shown at
// either level.
func SetDebug(debug bool) {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
		return
	}
	logger.SetLevel(logrus.InfoLevel)
}

// Entry returns a *logrus.Entry bound to field, for callers (the resolver,
// the regridder) that want a consistently-tagged logger rather than the
// bare package logger.
func Entry(field string) *logrus.Entry {
	return logger.WithField("component", field)
}

// Logger returns the underlying *logrus.Logger, for callers (cmd/harp) that
// need to reconfigure output or level directly.
func Logger() *logrus.Logger {
	return logger
}
