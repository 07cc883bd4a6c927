// Package csvgrid implements a plain-text vertical-grid file format: a
// header line "name [unit]" followed by one decimal value per line, used
// to build a fixed vertical axis Variable for the regridder. Despite the
// name, the format has no commas — "CSV" is the originating file
// extension, not the encoding — so this package uses bufio rather than
// encoding/csv; two stdlib calls plus a header regex is already the
// whole job, and no third-party CSV library in the reference corpus adds
// anything here (see DESIGN.md).
package csvgrid

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	harp "github.com/bruno-rino/harp"
)

var headerPattern = regexp.MustCompile(`^\s*(\S+)\s*\[\s*([^\]]*)\s*\]\s*$`)

var allowedNames = map[string]bool{
	"altitude": true,
	"pressure": true,
}

// Load reads a vertical-grid CSV file from r and returns a 1-D {vertical}
// float64 Variable named per the header's name field (either "altitude"
// or "pressure") and unit per the header's bracketed unit field. At least
// one data line is required.
func Load(r io.Reader) (*harp.Variable, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, harp.NewError(harp.ErrCSVParse, "csvgrid: empty file, missing header line")
	}
	name, unit, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, err
	}

	var values []float64
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		x, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, harp.NewError(harp.ErrCSVParse, fmt.Sprintf("csvgrid: invalid data line %q: %v", line, err))
		}
		values = append(values, x)
	}
	if err := scanner.Err(); err != nil {
		return nil, harp.Wrapf(harp.ErrFileRead, err, "csvgrid: read failed")
	}
	if len(values) == 0 {
		return nil, harp.NewError(harp.ErrCSVParse, "csvgrid: at least one data value is required")
	}

	v := harp.NewVariable(name, harp.TypeFloat64, []harp.Dimension{{Kind: harp.DimVertical, Length: len(values)}}, unit)
	copy(v.Float64Data(), values)
	return v, nil
}

func parseHeader(line string) (name, unit string, err error) {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", harp.NewError(harp.ErrCSVParse, fmt.Sprintf("csvgrid: malformed header %q, want \"name [unit]\"", line))
	}
	name, unit = m[1], strings.TrimSpace(m[2])
	if !allowedNames[name] {
		return "", "", harp.NewError(harp.ErrInvalidName, fmt.Sprintf(
			"csvgrid: header name %q must be \"altitude\" or \"pressure\"", name))
	}
	return name, unit, nil
}
