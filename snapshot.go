// FILE: lixenwraith/options/snapshot.go
package options

import (
	"fmt"
	"time"
)

// Snapshot is an immutable, fully typed configuration instance for one
// schema, materialized from the parser's state at a point in time. Later
// Parse or ClearValue calls never change a snapshot already returned.
type Snapshot struct {
	schema string
	values map[string]any
}

// Materialize builds a snapshot for every flag the schema declares: the
// current merged value, or the converted default if the flag was never
// written.
func (p *Parser) Materialize(schema *Schema) (*Snapshot, error) {
	values := make(map[string]any, len(schema.Options))
	for _, def := range schema.Options {
		v, ok := p.engine.effectiveValue(def.Name)
		if !ok {
			return nil, schemaErrorf("schema %q declares option --%s not in this parser's registry",
				schema.Name, def.Name)
		}
		values[def.Name] = freeze(v)
	}
	return &Snapshot{schema: schema.Name, values: values}, nil
}

// MaterializeInto populates target through the schema's declared setter
// table: every definition with a Setter receives its effective (or default)
// value. No reflection is involved; definitions without a Setter are skipped.
func (p *Parser) MaterializeInto(schema *Schema, target any) error {
	for _, def := range schema.Options {
		if def.Setter == nil {
			continue
		}
		v, ok := p.engine.effectiveValue(def.Name)
		if !ok {
			return schemaErrorf("schema %q declares option --%s not in this parser's registry",
				schema.Name, def.Name)
		}
		if err := def.Setter(target, freeze(v)); err != nil {
			return fmt.Errorf("failed to set option --%s: %w", def.Name, err)
		}
	}
	return nil
}

// freeze copies slice-shaped values so snapshots do not alias engine state.
func freeze(v any) any {
	switch s := v.(type) {
	case []any:
		out := make([]any, len(s))
		copy(out, s)
		return out
	case []string:
		out := make([]string, len(s))
		copy(out, s)
		return out
	}
	return v
}

// Schema returns the name of the schema this snapshot was built for.
func (s *Snapshot) Schema() string {
	return s.schema
}

// Get retrieves the raw typed value for a flag. The second return value
// reports whether the schema declares the flag.
func (s *Snapshot) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// String retrieves a string-typed flag (string, enum or path kinds).
func (s *Snapshot) String(name string) (string, error) {
	v, ok := s.values[name]
	if !ok {
		return "", fmt.Errorf("option not in snapshot: %s", name)
	}
	switch t := v.(type) {
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	}
	return "", fmt.Errorf("cannot convert type %T to string for option %s", v, name)
}

// Int64 retrieves an integer flag.
func (s *Snapshot) Int64(name string) (int64, error) {
	v, ok := s.values[name]
	if !ok {
		return 0, fmt.Errorf("option not in snapshot: %s", name)
	}
	if n, isInt := v.(int64); isInt {
		return n, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to int64 for option %s", v, name)
}

// Bool retrieves a boolean flag.
func (s *Snapshot) Bool(name string) (bool, error) {
	v, ok := s.values[name]
	if !ok {
		return false, fmt.Errorf("option not in snapshot: %s", name)
	}
	if b, isBool := v.(bool); isBool {
		return b, nil
	}
	return false, fmt.Errorf("cannot convert type %T to bool for option %s", v, name)
}

// Float64 retrieves a float flag; an integer flag converts losslessly.
func (s *Snapshot) Float64(name string) (float64, error) {
	v, ok := s.values[name]
	if !ok {
		return 0, fmt.Errorf("option not in snapshot: %s", name)
	}
	switch t := v.(type) {
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	}
	return 0, fmt.Errorf("cannot convert type %T to float64 for option %s", v, name)
}

// Duration retrieves a duration flag.
func (s *Snapshot) Duration(name string) (time.Duration, error) {
	v, ok := s.values[name]
	if !ok {
		return 0, fmt.Errorf("option not in snapshot: %s", name)
	}
	if d, isDur := v.(time.Duration); isDur {
		return d, nil
	}
	return 0, fmt.Errorf("cannot convert type %T to duration for option %s", v, name)
}

// Strings retrieves a multi-valued string flag or a string-list flag as a
// flat string slice.
func (s *Snapshot) Strings(name string) ([]string, error) {
	v, ok := s.values[name]
	if !ok {
		return nil, fmt.Errorf("option not in snapshot: %s", name)
	}
	switch t := v.(type) {
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, el := range t {
			str, isStr := el.(string)
			if !isStr {
				return nil, fmt.Errorf("cannot convert element %T to string for option %s", el, name)
			}
			out = append(out, str)
		}
		return out, nil
	}
	return nil, fmt.Errorf("cannot convert type %T to []string for option %s", v, name)
}

// Values retrieves a multi-valued flag's ordered sequence, typed per the
// flag's kind.
func (s *Snapshot) Values(name string) ([]any, error) {
	v, ok := s.values[name]
	if !ok {
		return nil, fmt.Errorf("option not in snapshot: %s", name)
	}
	if seq, isSeq := v.([]any); isSeq {
		out := make([]any, len(seq))
		copy(out, seq)
		return out, nil
	}
	return nil, fmt.Errorf("option %s is not multi-valued (value type %T)", name, v)
}
