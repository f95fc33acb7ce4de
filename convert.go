// FILE: lixenwraith/options/convert.go
package options

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ValueKind identifies the type of value an option carries. The set is
// closed: every kind has exactly one parse/format pair, selected by an
// exhaustive switch in converterFor.
type ValueKind int

const (
	// KindBool is a boolean option. Presence alone ("--flag") means true,
	// "--noflag" or "--flag=false" means false. This is the only kind for
	// which a bare flag name is meaningful without a value token.
	KindBool ValueKind = iota
	// KindInt is a base-10 integer, stored as int64.
	KindInt
	// KindFloat is a 64-bit float.
	KindFloat
	// KindString is an uninterpreted string; the empty string is legal.
	KindString
	// KindEnum is one of a fixed set of strings, matched case-insensitively
	// and stored in the declared spelling.
	KindEnum
	// KindStringList is a comma-separated list of strings.
	KindStringList
	// KindStringMap is a single "name=value" assignment per occurrence.
	KindStringMap
	// KindDuration is a time.Duration in Go syntax (e.g. "1h30m").
	KindDuration
	// KindPath is a cleaned filesystem path.
	KindPath
	// KindCustom delegates to the converter supplied on the definition.
	KindCustom
)

func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	case KindStringList:
		return "list"
	case KindStringMap:
		return "assignment"
	case KindDuration:
		return "duration"
	case KindPath:
		return "path"
	case KindCustom:
		return "custom"
	default:
		return "invalid"
	}
}

// MapEntry is one "name=value" assignment produced by a KindStringMap option.
type MapEntry struct {
	Key   string
	Value string
}

// Converter maps a raw string to a typed value and back. Parse must be pure:
// same input, same output, no side effects. Format must produce a string that
// Parse accepts and that round-trips to an equal value.
type Converter struct {
	Parse  func(raw string) (any, error)
	Format func(v any) string
}

// converterFor selects the parse/format pair for a definition. The switch is
// exhaustive over ValueKind; an unlisted kind is a schema defect.
func converterFor(def *OptionDefinition) (Converter, error) {
	switch def.Kind {
	case KindBool:
		return Converter{Parse: parseBool, Format: formatAny}, nil
	case KindInt:
		return Converter{
			Parse: func(raw string) (any, error) {
				n, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("%q is not an integer", raw)
				}
				return n, nil
			},
			Format: formatAny,
		}, nil
	case KindFloat:
		return Converter{
			Parse: func(raw string) (any, error) {
				f, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, fmt.Errorf("%q is not a number", raw)
				}
				return f, nil
			},
			Format: func(v any) string {
				return strconv.FormatFloat(v.(float64), 'g', -1, 64)
			},
		}, nil
	case KindString:
		return Converter{
			Parse:  func(raw string) (any, error) { return raw, nil },
			Format: func(v any) string { return v.(string) },
		}, nil
	case KindEnum:
		if len(def.EnumValues) == 0 {
			return Converter{}, schemaErrorf("enum option --%s declares no values", def.Name)
		}
		values := def.EnumValues
		return Converter{
			Parse: func(raw string) (any, error) {
				for _, v := range values {
					if strings.EqualFold(raw, v) {
						return v, nil
					}
				}
				return nil, fmt.Errorf("%q is not one of: %s", raw, strings.Join(values, ", "))
			},
			Format: func(v any) string { return v.(string) },
		}, nil
	case KindStringList:
		return Converter{
			Parse: func(raw string) (any, error) {
				if raw == "" {
					return []string{}, nil
				}
				return strings.Split(raw, ","), nil
			},
			Format: func(v any) string { return strings.Join(v.([]string), ",") },
		}, nil
	case KindStringMap:
		return Converter{
			Parse: func(raw string) (any, error) {
				key, value, ok := strings.Cut(raw, "=")
				if !ok || key == "" {
					return nil, fmt.Errorf("%q is not a name=value assignment", raw)
				}
				return MapEntry{Key: key, Value: value}, nil
			},
			Format: func(v any) string {
				e := v.(MapEntry)
				return e.Key + "=" + e.Value
			},
		}, nil
	case KindDuration:
		return Converter{
			Parse: func(raw string) (any, error) {
				d, err := time.ParseDuration(raw)
				if err != nil {
					return nil, fmt.Errorf("%q is not a duration", raw)
				}
				return d, nil
			},
			Format: func(v any) string { return v.(time.Duration).String() },
		}, nil
	case KindPath:
		return Converter{
			Parse: func(raw string) (any, error) {
				if raw == "" {
					return nil, fmt.Errorf("path may not be empty")
				}
				return filepath.Clean(raw), nil
			},
			Format: func(v any) string { return v.(string) },
		}, nil
	case KindCustom:
		if def.Converter == nil || def.Converter.Parse == nil || def.Converter.Format == nil {
			return Converter{}, schemaErrorf("custom option --%s has no converter", def.Name)
		}
		return *def.Converter, nil
	}
	return Converter{}, schemaErrorf("option --%s has invalid value kind %d", def.Name, def.Kind)
}

func parseBool(raw string) (any, error) {
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "t", "y":
		return true, nil
	case "false", "0", "no", "f", "n":
		return false, nil
	}
	return nil, fmt.Errorf("%q is not a boolean", raw)
}

func formatAny(v any) string {
	return fmt.Sprintf("%v", v)
}

// typeDescription renders the kind for help text, e.g. "an integer".
func typeDescription(def *OptionDefinition) string {
	switch def.Kind {
	case KindBool:
		return "a boolean"
	case KindInt:
		return "an integer"
	case KindFloat:
		return "a number"
	case KindString:
		return "a string"
	case KindEnum:
		return "one of: " + strings.Join(def.EnumValues, ", ")
	case KindStringList:
		return "a comma-separated list of strings"
	case KindStringMap:
		return "a 'name=value' assignment"
	case KindDuration:
		return "a duration"
	case KindPath:
		return "a path"
	case KindCustom:
		return "a value"
	default:
		return "a value"
	}
}
