// FILE: lixenwraith/options/registry.go
package options

import (
	"strings"
	"sync"
	"time"
)

// Registry is the validated aggregation of every option definition
// contributed by an ordered list of schemas. It is immutable after
// construction and safe to share across parsers and goroutines.
type Registry struct {
	schemas  []*Schema
	ordered  []*OptionDefinition
	byName   map[string]*OptionDefinition
	byAbbrev map[string]*OptionDefinition
	convs    map[string]Converter
	defaults map[string]any
}

// Definition returns the definition for an exact flag name.
func (r *Registry) Definition(name string) (*OptionDefinition, bool) {
	def, ok := r.byName[name]
	return def, ok
}

// Schemas returns the schemas the registry was built from, in order.
func (r *Registry) Schemas() []*Schema {
	return r.schemas
}

// DefaultValue returns the converted default for a flag.
func (r *Registry) DefaultValue(name string) (any, bool) {
	v, ok := r.defaults[name]
	return v, ok
}

// Cache memoizes registry construction, keyed by the exact ordered list of
// schema names: the same schemas in a different order are a distinct entry.
// Construction is guarded by a single lock; entries are immutable once
// inserted, so lookups that hit need no further synchronization by callers
// holding a returned *Registry.
//
// A process normally uses the package-level cache through BuildRegistry.
// Tests construct their own caches to avoid cross-test interference.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Registry
}

// NewCache creates an empty registry cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Registry)}
}

// Registry returns the memoized registry for the given ordered schema list,
// building and validating it on first request.
func (c *Cache) Registry(schemas ...*Schema) (*Registry, error) {
	names := make([]string, len(schemas))
	for i, s := range schemas {
		if s == nil || s.Name == "" {
			return nil, schemaErrorf("schema %d has no name", i)
		}
		names[i] = s.Name
	}
	key := strings.Join(names, "\x00")

	c.mu.Lock()
	defer c.mu.Unlock()

	if reg, ok := c.entries[key]; ok {
		return reg, nil
	}

	reg, err := buildRegistry(schemas)
	if err != nil {
		return nil, err
	}
	c.entries[key] = reg
	return reg, nil
}

var defaultCache = NewCache()

// BuildRegistry builds (or returns the memoized) registry for the given
// ordered schema list using the package-level cache. A SchemaError here is a
// programming error in the embedding application and should halt startup.
func BuildRegistry(schemas ...*Schema) (*Registry, error) {
	return defaultCache.Registry(schemas...)
}

// buildRegistry performs the single validation pass over all schemas.
func buildRegistry(schemas []*Schema) (*Registry, error) {
	reg := &Registry{
		schemas:  schemas,
		byName:   make(map[string]*OptionDefinition),
		byAbbrev: make(map[string]*OptionDefinition),
		convs:    make(map[string]Converter),
		defaults: make(map[string]any),
	}

	for _, schema := range schemas {
		for _, def := range schema.Options {
			if err := reg.add(schema, def); err != nil {
				return nil, err
			}
		}
	}

	// Implicit requirements can reference flags from any schema, so they are
	// checked after every definition has been collected.
	for _, def := range reg.ordered {
		for _, req := range def.ImplicitRequirements {
			target, ok := reg.byName[req.Flag]
			if !ok {
				return nil, schemaErrorf(
					"option --%s implicitly requires unknown option --%s", def.Name, req.Flag)
			}
			if _, err := reg.convs[target.Name].Parse(req.Value); err != nil {
				return nil, schemaErrorf(
					"option --%s implicitly requires --%s=%s: %v", def.Name, req.Flag, req.Value, err)
			}
		}
	}

	return reg, nil
}

func (reg *Registry) add(schema *Schema, def *OptionDefinition) error {
	if def == nil {
		return schemaErrorf("schema %q contains a nil option", schema.Name)
	}
	if !isValidFlagName(def.Name) {
		return schemaErrorf("schema %q declares invalid option name %q", schema.Name, def.Name)
	}
	if _, dup := reg.byName[def.Name]; dup {
		return schemaErrorf("duplicate option --%s", def.Name)
	}

	// A boolean flag "x" is negatable as "--nox", so a sibling flag named
	// "nox" would be unreachable.
	if def.Kind == KindBool {
		if other, clash := reg.byName["no"+def.Name]; clash {
			return schemaErrorf("boolean option --%s collides with option --%s", def.Name, other.Name)
		}
	}
	if strings.HasPrefix(def.Name, "no") {
		if other, clash := reg.byName[strings.TrimPrefix(def.Name, "no")]; clash && other.Kind == KindBool {
			return schemaErrorf("option --%s collides with boolean option --%s", def.Name, other.Name)
		}
	}

	if def.Abbrev != "" {
		if len(def.Abbrev) != 1 {
			return schemaErrorf("option --%s abbreviation %q is not a single character", def.Name, def.Abbrev)
		}
		if other, dup := reg.byAbbrev[def.Abbrev]; dup {
			return schemaErrorf("options --%s and --%s share abbreviation -%s", other.Name, def.Name, def.Abbrev)
		}
	}

	if def.isExpansion() {
		if def.AllowMultiple {
			return schemaErrorf("option --%s cannot be both an expansion and multi-valued", def.Name)
		}
		if def.Kind != KindBool {
			return schemaErrorf("expansion option --%s must be boolean", def.Name)
		}
		if def.Default != "" {
			return schemaErrorf("expansion option --%s cannot declare a default", def.Name)
		}
		hasTokens := def.Expansion.Tokens != nil
		hasResolve := def.Expansion.Resolve != nil
		if hasTokens == hasResolve {
			return schemaErrorf("expansion option --%s must set exactly one of Tokens and Resolve", def.Name)
		}
	}

	conv, err := converterFor(def)
	if err != nil {
		return err
	}

	defaultValue, err := convertDefault(def, conv)
	if err != nil {
		return err
	}

	reg.ordered = append(reg.ordered, def)
	reg.byName[def.Name] = def
	if def.Abbrev != "" {
		reg.byAbbrev[def.Abbrev] = def
	}
	reg.convs[def.Name] = conv
	reg.defaults[def.Name] = defaultValue
	return nil
}

// convertDefault resolves the string-form default to a typed value once, at
// registry-build time, so a malformed default surfaces as a SchemaError
// rather than a late conversion failure.
func convertDefault(def *OptionDefinition, conv Converter) (any, error) {
	if def.AllowMultiple {
		if def.Default != "" {
			return nil, schemaErrorf("multi-valued option --%s cannot declare a default", def.Name)
		}
		return []any{}, nil
	}

	if def.Default != "" {
		v, err := conv.Parse(def.Default)
		if err != nil {
			return nil, schemaErrorf("option --%s has invalid default %q: %v", def.Name, def.Default, err)
		}
		return v, nil
	}

	// No declared default: use the kind's zero value.
	switch def.Kind {
	case KindBool:
		return false, nil
	case KindInt:
		return int64(0), nil
	case KindFloat:
		return float64(0), nil
	case KindString, KindPath:
		return "", nil
	case KindStringList:
		return []string{}, nil
	case KindDuration:
		return time.Duration(0), nil
	case KindEnum:
		return nil, schemaErrorf("enum option --%s must declare a default", def.Name)
	case KindStringMap, KindCustom:
		return nil, nil
	}
	return nil, schemaErrorf("option --%s has invalid value kind %d", def.Name, def.Kind)
}
