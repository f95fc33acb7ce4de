// FILE: lixenwraith/options/engine.go
package options

import (
	"fmt"
	"sort"
	"strings"
)

// UnparsedValue is one raw flag occurrence accepted by the engine, recorded
// in arrival order for audit and canonicalization. ExpandedFrom and
// ImplicitDependant name the flag that injected this occurrence, if any.
type UnparsedValue struct {
	Name              string
	Value             string
	Priority          Priority
	Source            string
	Explicit          bool
	ExpandedFrom      string
	ImplicitDependant string
}

// EffectiveValue is the merged, typed result for one flag. For multi-valued
// flags Value is a []any ordered by ascending priority, then arrival;
// Priority and Source then describe nothing and are left zero.
type EffectiveValue struct {
	Name     string
	Value    any
	Priority Priority
	Source   string
}

type loggedValue struct {
	UnparsedValue
	def *OptionDefinition
}

// resolvedValue is the merged state of one flag. Exactly one of the two
// representations is used, fixed by the definition's AllowMultiple.
type resolvedValue struct {
	def      *OptionDefinition
	value    any
	priority Priority
	source   string
	written  bool
	perTier  map[Priority][]any
}

func (rv *resolvedValue) effective() any {
	if !rv.def.AllowMultiple {
		return rv.value
	}
	out := make([]any, 0)
	for _, p := range Priorities() {
		out = append(out, rv.perTier[p]...)
	}
	return out
}

// engine applies token batches into merged per-flag state. It is the only
// state machine in the package: applyBatch calls, executed sequentially, are
// the sole transitions. An engine is owned by exactly one Parser.
type engine struct {
	registry        *Registry
	log             []loggedValue
	values          map[string]*resolvedValue
	residue         []string
	warnings        []string
	allowSingleDash bool
	expansionCtx    ExpansionContext
}

func newEngine(reg *Registry) *engine {
	return &engine{
		registry:     reg,
		values:       make(map[string]*resolvedValue),
		expansionCtx: DefaultExpansionContext(),
	}
}

func (e *engine) applyBatch(priority Priority, sourceFn func(string) string, tokens []string) error {
	return e.applyTokens(priority, sourceFn, tokens, "", "", make(map[string]bool))
}

// applyTokens merges one token sequence. Merging is apply-as-you-go: an error
// aborts the remainder of this sequence but everything merged before the
// failing token stays merged. expandedFrom / implicitDependant carry the name
// of the flag that injected these tokens; visited is the set of flags on the
// current expansion/implicit recursion path, used to fail fast on cycles.
func (e *engine) applyTokens(priority Priority, sourceFn func(string) string, tokens []string,
	expandedFrom, implicitDependant string, visited map[string]bool) error {

	explicit := expandedFrom == "" && implicitDependant == ""

	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		i++

		// Explicit end of flags: everything after "--" is residue.
		if tok == "--" {
			e.residue = append(e.residue, tokens[i:]...)
			return nil
		}

		name, inline, hasInline, isFlag := splitFlagToken(tok, e.allowSingleDash)
		if !isFlag {
			e.residue = append(e.residue, tok)
			continue
		}

		def, negated, err := e.resolveDefinition(name)
		if err != nil {
			return err
		}

		// Determine the raw value for this occurrence. Booleans never consume
		// a following token; every other kind takes the inline value or the
		// next token.
		var raw string
		switch {
		case !def.takesValue():
			if hasInline {
				if def.isExpansion() {
					e.warn("option --%s is an expansion option; value %q ignored", def.Name, inline)
					raw = "true"
				} else if negated {
					return &ConversionError{Flag: def.Name, Raw: inline,
						Reason: "negated boolean option cannot take a value"}
				} else {
					raw = inline
				}
			} else if negated {
				raw = "false"
			} else {
				raw = "true"
			}
		case hasInline:
			raw = inline
		default:
			if i >= len(tokens) {
				return &ConversionError{Flag: def.Name, Raw: "", Reason: "expected a value"}
			}
			raw = tokens[i]
			i++
		}

		if !def.isExpansion() {
			conv := e.registry.convs[def.Name]
			value, convErr := conv.Parse(raw)
			if convErr != nil {
				return &ConversionError{Flag: def.Name, Raw: raw, Reason: convErr.Error()}
			}
			e.merge(def, value, priority, sourceFn(def.Name))
		}

		// Every accepted occurrence is logged in order, whether or not its
		// write won the merge.
		e.log = append(e.log, loggedValue{
			UnparsedValue: UnparsedValue{
				Name:              def.Name,
				Value:             raw,
				Priority:          priority,
				Source:            sourceFn(def.Name),
				Explicit:          explicit,
				ExpandedFrom:      expandedFrom,
				ImplicitDependant: implicitDependant,
			},
			def: def,
		})

		if def.isExpansion() || len(def.ImplicitRequirements) > 0 {
			if visited[def.Name] {
				return schemaErrorf("cycle in expansion of option --%s", def.Name)
			}
			visited[def.Name] = true

			if def.isExpansion() {
				expanded := def.Expansion.expand(e.expansionCtx)
				if err := e.applyTokens(priority, sourceFn, expanded, def.Name, implicitDependant, visited); err != nil {
					delete(visited, def.Name)
					return err
				}
			}
			for _, req := range def.ImplicitRequirements {
				reqTok := []string{"--" + req.Flag + "=" + req.Value}
				if err := e.applyTokens(priority, sourceFn, reqTok, "", def.Name, visited); err != nil {
					delete(visited, def.Name)
					return err
				}
			}

			delete(visited, def.Name)
		}
	}

	return nil
}

// splitFlagToken recognizes "--name", "--name=value", "-x", "-x=value" and,
// when allowSingleDash is set, "-name" and "-name=value". Anything else is
// not flag shaped and belongs in the residue.
func splitFlagToken(tok string, allowSingleDash bool) (name, value string, hasValue, isFlag bool) {
	var body string
	switch {
	case strings.HasPrefix(tok, "--"):
		body = tok[2:]
	case strings.HasPrefix(tok, "-") && len(tok) > 1:
		body = tok[1:]
		n, _, _ := strings.Cut(body, "=")
		if len(n) != 1 && !allowSingleDash {
			return "", "", false, false
		}
	default:
		return "", "", false, false
	}

	name, value, hasValue = strings.Cut(body, "=")
	if name == "" {
		return "", "", false, false
	}
	return name, value, hasValue, true
}

// resolveDefinition maps a token's name part to its definition: exact name
// first, then single-character abbreviation, then boolean negation ("noname"
// for a boolean flag "name").
func (e *engine) resolveDefinition(name string) (*OptionDefinition, bool, error) {
	if def, ok := e.registry.byName[name]; ok {
		return def, false, nil
	}
	if len(name) == 1 {
		if def, ok := e.registry.byAbbrev[name]; ok {
			return def, false, nil
		}
	}
	if rest, found := strings.CutPrefix(name, "no"); found {
		if def, ok := e.registry.byName[rest]; ok && def.Kind == KindBool && !def.isExpansion() {
			return def, true, nil
		}
	}
	return nil, false, &UnknownOptionError{Name: name}
}

func (e *engine) merge(def *OptionDefinition, value any, priority Priority, source string) {
	rv := e.values[def.Name]
	if rv == nil {
		rv = &resolvedValue{def: def}
		if def.AllowMultiple {
			rv.perTier = make(map[Priority][]any)
		}
		e.values[def.Name] = rv
	}

	if def.AllowMultiple {
		rv.perTier[priority] = append(rv.perTier[priority], value)
		return
	}

	// Equal priority means later arrival, which also wins.
	if !rv.written || priority >= rv.priority {
		rv.value = value
		rv.priority = priority
		rv.source = source
		rv.written = true
	}
}

func (e *engine) warn(format string, args ...any) {
	e.warnings = append(e.warnings, fmt.Sprintf(format, args...))
}

// clearValue removes every trace of one flag across all priorities and
// returns the previously merged value, if any. Snapshots materialized before
// the call are unaffected.
func (e *engine) clearValue(name string) (any, bool, error) {
	def, ok := e.registry.byName[name]
	if !ok {
		return nil, false, &UnknownOptionError{Name: name}
	}

	var prev any
	had := false
	if rv, written := e.values[def.Name]; written {
		prev = rv.effective()
		had = true
		delete(e.values, def.Name)
	}

	kept := e.log[:0]
	for _, lv := range e.log {
		if lv.Name != def.Name {
			kept = append(kept, lv)
		}
	}
	e.log = kept

	return prev, had, nil
}

// effectiveValue returns the merged value for one flag, or its default if the
// flag was never written.
func (e *engine) effectiveValue(name string) (any, bool) {
	def, ok := e.registry.byName[name]
	if !ok {
		return nil, false
	}
	if rv, written := e.values[def.Name]; written {
		return rv.effective(), true
	}
	v, _ := e.registry.DefaultValue(def.Name)
	return v, true
}

// effectiveValues lists the merged result for every registered flag, in
// registry declaration order.
func (e *engine) effectiveValues() []EffectiveValue {
	out := make([]EffectiveValue, 0, len(e.registry.ordered))
	for _, def := range e.registry.ordered {
		ev := EffectiveValue{Name: def.Name}
		if rv, written := e.values[def.Name]; written {
			ev.Value = rv.effective()
			if !def.AllowMultiple {
				ev.Priority = rv.priority
				ev.Source = rv.source
			}
		} else {
			ev.Value, _ = e.registry.DefaultValue(def.Name)
		}
		out = append(out, ev)
	}
	return out
}

// canonicalize renders the current state as a normalized, source-order
// independent token list that re-parses to the same effective values.
// Implicitly injected occurrences and expansion triggers are omitted: both
// are re-derived when the concrete flags are parsed again.
func (e *engine) canonicalize() []string {
	type occurrence struct {
		raw      string
		priority Priority
	}

	singles := make(map[string]occurrence)
	multis := make(map[string][]occurrence)
	var names []string

	seen := func(name string) {
		for _, n := range names {
			if n == name {
				return
			}
		}
		names = append(names, name)
	}

	for _, lv := range e.log {
		if lv.ImplicitDependant != "" || lv.def.isExpansion() {
			continue
		}
		if lv.def.AllowMultiple {
			multis[lv.Name] = append(multis[lv.Name], occurrence{lv.Value, lv.Priority})
			seen(lv.Name)
			continue
		}
		cur, written := singles[lv.Name]
		if !written || lv.Priority >= cur.priority {
			singles[lv.Name] = occurrence{lv.Value, lv.Priority}
		}
		seen(lv.Name)
	}

	sort.Strings(names)

	var out []string
	for _, name := range names {
		if occs, multi := multis[name]; multi {
			// Stable sort keeps arrival order within a tier, so the flat list
			// reads back in resolved order even when parsed as one batch.
			sort.SliceStable(occs, func(a, b int) bool { return occs[a].priority < occs[b].priority })
			for _, o := range occs {
				out = append(out, "--"+name+"="+o.raw)
			}
			continue
		}
		out = append(out, "--"+name+"="+singles[name].raw)
	}
	return out
}

func (e *engine) unparsedValues(explicitOnly bool) []UnparsedValue {
	out := make([]UnparsedValue, 0, len(e.log))
	for _, lv := range e.log {
		if explicitOnly && !lv.Explicit {
			continue
		}
		out = append(out, lv.UnparsedValue)
	}
	return out
}

func (e *engine) containsExplicitOption(name string) bool {
	for _, lv := range e.log {
		if lv.Explicit && lv.Name == name {
			return true
		}
	}
	return false
}
