// Package ingestoptions implements the ingestion-option string grammar:
//
//	option  ::= name '=' value
//	options ::= option (';' option)*
//
// name is [A-Za-z][A-Za-z0-9_]*; value is a run of non-whitespace,
// non-';' characters; whitespace is allowed around tokens. A later
// duplicate name replaces an earlier one.
//
// Name characters are checked with explicit ASCII byte ranges rather
// than unicode.IsLetter/IsDigit, so a name containing a non-ASCII letter
// is rejected regardless of what a Unicode-aware classifier would allow.
package ingestoptions

import (
	"fmt"
	"sort"
	"strings"

	harp "github.com/bruno-rino/harp"
)

// Option is one parsed name=value pair.
type Option struct {
	Name  string
	Value string
}

func isASCIIAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isASCIIAlnumOrUnderscore(b byte) bool {
	return isASCIIAlpha(b) || (b >= '0' && b <= '9') || b == '_'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// Parse parses an ingestion-option string into an ordered slice of
// Options with duplicate names resolved (later wins), in first-occurrence
// position — e.g. "a=1;a=2" -> [("a","2")].
func Parse(s string) ([]Option, error) {
	var result []Option
	index := map[string]int{}

	parts := strings.Split(s, ";")
	for _, part := range parts {
		trimmed := strings.TrimFunc(part, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' })
		if trimmed == "" {
			if len(parts) == 1 {
				return nil, harp.NewError(harp.ErrIngestionOptionSyntax, "ingestoptions: empty options string")
			}
			continue
		}
		name, value, err := parseOption(trimmed)
		if err != nil {
			return nil, err
		}
		if i, ok := index[name]; ok {
			result[i].Value = value
			continue
		}
		index[name] = len(result)
		result = append(result, Option{Name: name, Value: value})
	}
	if len(result) == 0 {
		return nil, harp.NewError(harp.ErrIngestionOptionSyntax, "ingestoptions: no options parsed")
	}
	return result, nil
}

func parseOption(s string) (name, value string, err error) {
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return "", "", harp.NewError(harp.ErrIngestionOptionSyntax, fmt.Sprintf("ingestoptions: missing '=' in %q", s))
	}
	rawName := strings.TrimRightFunc(s[:eq], isSpaceRune)
	rawValue := strings.TrimLeftFunc(s[eq+1:], isSpaceRune)
	rawValue = strings.TrimRightFunc(rawValue, isSpaceRune)

	if rawName == "" || !isASCIIAlpha(rawName[0]) {
		return "", "", harp.NewError(harp.ErrIngestionOptionSyntax, fmt.Sprintf(
			"ingestoptions: name %q must start with an ASCII letter", rawName))
	}
	for i := 1; i < len(rawName); i++ {
		if !isASCIIAlnumOrUnderscore(rawName[i]) {
			return "", "", harp.NewError(harp.ErrIngestionOptionSyntax, fmt.Sprintf(
				"ingestoptions: name %q contains an invalid character", rawName))
		}
	}
	for i := 0; i < len(rawValue); i++ {
		if isSpace(rawValue[i]) {
			return "", "", harp.NewError(harp.ErrIngestionOptionSyntax, fmt.Sprintf(
				"ingestoptions: value %q must not contain whitespace", rawValue))
		}
	}
	if rawValue == "" {
		return "", "", harp.NewError(harp.ErrIngestionOptionSyntax, fmt.Sprintf(
			"ingestoptions: option %q has an empty value", s))
	}
	return rawName, rawValue, nil
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Serialize renders opts back into the grammar Parse accepts, in the
// order given, so that Parse(Serialize(opts)) == opts for any opts Parse
// itself would have produced.
func Serialize(opts []Option) string {
	parts := make([]string, len(opts))
	for i, o := range opts {
		parts[i] = fmt.Sprintf("%s=%s", o.Name, o.Value)
	}
	return strings.Join(parts, ";")
}

// SortByName returns a copy of opts sorted by name, for callers that want
// a canonical, order-independent representation (e.g. for diffing two
// option sets).
func SortByName(opts []Option) []Option {
	out := append([]Option(nil), opts...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
