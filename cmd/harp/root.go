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

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bruno-rino/harp/internal/hlog"
)

// Cfg is the process-wide viper instance, bound to Root's persistent flags
// the way inmaputil.Cfg is bound in cmd.go's init function.
var Cfg = viper.New()

func init() {
	Root.PersistentFlags().String("config", "", "path to a regrid-defaults config file")
	Root.PersistentFlags().Bool("debug", false, "enable debug logging")
	Cfg.BindPFlag("config", Root.PersistentFlags().Lookup("config"))
	Cfg.BindPFlag("debug", Root.PersistentFlags().Lookup("debug"))
	Cfg.SetEnvPrefix("HARP")

	Root.AddCommand(listConversionsCmd)
	Root.AddCommand(regridCmd)
}

// Root is the main command. It exercises the harp library the way
// cmd/inmap's Root exercises package inmap: thin handlers, no business
// logic of its own.
var Root = &cobra.Command{
	Use:   "harp",
	Short: "Inspect and exercise the harp derived-variable resolver and vertical regridder.",
	Long: `harp is a command-line interface over the derived-variable resolver and
vertical regridding engine. It exists as ambient wiring around the library,
not as a specified surface: the grammar and UX of this CLI are out of scope.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		hlog.SetDebug(Cfg.GetBool("debug"))
		return nil
	},
}
