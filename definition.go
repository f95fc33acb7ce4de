// FILE: lixenwraith/options/definition.go
package options

import "runtime"

// OptionDefinition describes one flag: its name, value type, default,
// multiplicity and documentation metadata, plus the optional expansion and
// implicit-requirement specs that let one flag inject others. Definitions are
// immutable once a registry has been built from them; the same definition is
// shared by reference across every parser using that registry.
type OptionDefinition struct {
	// Name is the flag's full name, unique within a registry.
	Name string

	// Abbrev is an optional one-character alias, usable as "-x".
	Abbrev string

	// Kind selects the converter; see ValueKind.
	Kind ValueKind

	// Default is the default value in string form. It is converted through
	// the option's converter when a registry is built; an empty string maps
	// to the kind's zero value.
	Default string

	// AllowMultiple makes every occurrence accumulate instead of override.
	// The resolved value is then an ordered sequence across all priorities.
	AllowMultiple bool

	// Category groups the option in help output.
	Category string

	// Undocumented hides the option from help and completion output.
	Undocumented bool

	// Help is the option's description, shown at full verbosity.
	Help string

	// EnumValues lists the legal spellings for a KindEnum option.
	EnumValues []string

	// Converter supplies the parse/format pair for a KindCustom option.
	Converter *Converter

	// Expansion, if set, makes this flag shorthand for other flag tokens.
	// Expansion flags must be KindBool and take no value of their own.
	Expansion *ExpansionSpec

	// ImplicitRequirements are flag=value pairs applied automatically, at the
	// same priority and source, whenever this flag is set.
	ImplicitRequirements []Requirement

	// Setter populates one field of a schema's target during MaterializeInto.
	// It receives the target passed to MaterializeInto and the option's fully
	// typed resolved (or default) value. Optional; options without a setter
	// are reachable through Snapshot accessors only.
	Setter func(target any, value any) error
}

// takesValue reports whether a value token may follow the bare flag name.
// Booleans (and therefore expansion flags) never consume a following token;
// this asymmetry is load-bearing for compatibility and is not generalized.
func (d *OptionDefinition) takesValue() bool {
	return d.Kind != KindBool
}

func (d *OptionDefinition) isExpansion() bool {
	return d.Expansion != nil
}

// Requirement is one flag=value pair injected by an implicit requirement.
type Requirement struct {
	Flag  string
	Value string
}

// ExpansionContext carries the ambient facts an expansion may depend on.
// Expansion resolution must be a pure function of this context.
type ExpansionContext struct {
	OS   string
	Arch string
}

// DefaultExpansionContext describes the current host.
func DefaultExpansionContext() ExpansionContext {
	return ExpansionContext{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// ExpansionSpec resolves to the ordered flag tokens an expansion flag stands
// for. Exactly one of Tokens and Resolve must be set; Resolve supports
// context-dependent expansions (e.g. per-platform) and must be pure.
type ExpansionSpec struct {
	Tokens  []string
	Resolve func(ctx ExpansionContext) []string
}

func (e *ExpansionSpec) expand(ctx ExpansionContext) []string {
	if e.Resolve != nil {
		return e.Resolve(ctx)
	}
	return e.Tokens
}

// ExpandTo builds a fixed expansion spec.
func ExpandTo(tokens ...string) *ExpansionSpec {
	return &ExpansionSpec{Tokens: tokens}
}

// Schema is a named, ordered group of option definitions. The ordered list of
// schema names a registry is built from is the registry's cache identity.
type Schema struct {
	Name    string
	Options []*OptionDefinition
}
