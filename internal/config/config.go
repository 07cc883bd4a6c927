/*
Copyright © 2013 the InMAP authors.
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

// Package config loads harp's run-time defaults with github.com/spf13/viper,
// the way inmaputil/config.go unmarshals a VarGridConfig from a *viper.Viper.
// No other package of this module imports it: neither the library packages
// nor cmd/harp, whose --config flag is bound but not read.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// RegridDefaults holds a default axis name/unit pair, smoothing species
// list and bounds tolerance read from a config file.
type RegridDefaults struct {
	AxisName       string
	AxisUnit       string
	SmoothSpecies  []string
	BoundsTolerance float64
}

// Load reads path (TOML, YAML, or JSON, whichever viper's extension sniff
// picks) into a *viper.Viper and unmarshals the `Regrid` section into a
// RegridDefaults, the way VarGridConfig unmarshals the `VarGrid` section.
func Load(path string) (*RegridDefaults, error) {
	cfg := viper.New()
	cfg.SetConfigFile(path)
	if err := cfg.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return fromViper(cfg)
}

func fromViper(cfg *viper.Viper) (*RegridDefaults, error) {
	d := &RegridDefaults{
		AxisName:        os.ExpandEnv(cfg.GetString("Regrid.AxisName")),
		AxisUnit:        os.ExpandEnv(cfg.GetString("Regrid.AxisUnit")),
		SmoothSpecies:   cfg.GetStringSlice("Regrid.SmoothSpecies"),
		BoundsTolerance: cfg.GetFloat64("Regrid.BoundsTolerance"),
	}
	if d.AxisName == "" {
		return nil, fmt.Errorf("config: Regrid.AxisName is not specified")
	}
	if d.AxisUnit == "" {
		return nil, fmt.Errorf("config: Regrid.AxisUnit is not specified")
	}
	return d, nil
}
