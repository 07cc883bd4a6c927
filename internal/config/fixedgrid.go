package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	harp "github.com/bruno-rino/harp"
)

// fixedGridFile is the TOML shape of a vertical-grid definition, an
// alternate to csvgrid's plain-text format for callers that keep their run
// configuration in TOML already.
type fixedGridFile struct {
	Name   string    `toml:"name"`
	Unit   string    `toml:"unit"`
	Values []float64 `toml:"values"`
}

// LoadFixedGridTOML reads a [vertical_grid] TOML table from path and
// returns the 1-D {vertical} float64 Variable it describes, the way
// csvgrid.Load builds one from the CSV format.
func LoadFixedGridTOML(path string) (*harp.Variable, error) {
	var doc struct {
		VerticalGrid fixedGridFile `toml:"vertical_grid"`
	}
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, harp.Wrapf(harp.ErrCSVParse, err, "config: decoding fixed grid TOML %s", path)
	}
	g := doc.VerticalGrid
	if g.Name != "altitude" && g.Name != "pressure" {
		return nil, harp.NewError(harp.ErrInvalidName, fmt.Sprintf(
			"config: vertical_grid.name %q must be \"altitude\" or \"pressure\"", g.Name))
	}
	if len(g.Values) == 0 {
		return nil, harp.NewError(harp.ErrCSVParse, "config: vertical_grid.values must have at least one entry")
	}
	v := harp.NewVariable(g.Name, harp.TypeFloat64, []harp.Dimension{{Kind: harp.DimVertical, Length: len(g.Values)}}, g.Unit)
	copy(v.Float64Data(), g.Values)
	return v, nil
}
