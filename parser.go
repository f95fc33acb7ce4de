// FILE: lixenwraith/options/parser.go
package options

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// HelpVerbosity selects how much Describe prints per option.
type HelpVerbosity int

const (
	// HelpShort prints just the option names.
	HelpShort HelpVerbosity = iota
	// HelpMedium adds type, default and abbreviation.
	HelpMedium
	// HelpLong adds the full description.
	HelpLong
)

// ParserOptions configures a Parser's residue policy and token grammar.
type ParserOptions struct {
	// AllowResidue permits tokens that match no known flag; when false,
	// Parse fails with UnrecognizedArgumentsError on non-empty residue.
	AllowResidue bool

	// AllowSingleDash additionally recognizes "-name" for long options.
	AllowSingleDash bool

	// ExpansionContext is handed to context-dependent expansions.
	ExpansionContext ExpansionContext
}

// DefaultParserOptions returns the standard parser options.
func DefaultParserOptions() ParserOptions {
	return ParserOptions{
		AllowResidue:     true,
		ExpansionContext: DefaultExpansionContext(),
	}
}

// Parser is the public façade over the merge engine. It may be fed any number
// of batches, at any priorities, and materializes typed snapshots on demand.
// A Parser is not safe for concurrent use; the typical pattern is one parser
// per invocation, used by a single goroutine.
type Parser struct {
	engine       *engine
	allowResidue bool
	paramsFs     afero.Fs
}

// NewParser creates a parser over a registry with default options.
func NewParser(registry *Registry) *Parser {
	return NewParserWithOptions(registry, DefaultParserOptions())
}

// NewParserWithOptions creates a parser with explicit options.
func NewParserWithOptions(registry *Registry, opts ParserOptions) *Parser {
	e := newEngine(registry)
	e.allowSingleDash = opts.AllowSingleDash
	e.expansionCtx = opts.ExpansionContext
	return &Parser{
		engine:       e,
		allowResidue: opts.AllowResidue,
	}
}

// Registry returns the shared, read-only registry this parser consults.
func (p *Parser) Registry() *Registry {
	return p.engine.registry
}

// SetAllowResidue controls whether unrecognized tokens fail Parse.
func (p *Parser) SetAllowResidue(allow bool) {
	p.allowResidue = allow
}

// SetAllowSingleDash controls whether "-name" is accepted for long options.
func (p *Parser) SetAllowSingleDash(allow bool) {
	p.engine.allowSingleDash = allow
}

// EnableParamsFiles turns on @file token expansion, reading referenced files
// through the given filesystem.
func (p *Parser) EnableParamsFiles(fsys afero.Fs) {
	p.paramsFs = fsys
}

// Parse applies one batch of tokens at the given priority. The source is a
// free-form label recorded against every write for diagnostics. Parse may be
// called any number of times; later batches override earlier ones only at
// equal or higher priority. Merging is apply-as-you-go: on error, tokens
// earlier in the batch remain applied.
func (p *Parser) Parse(priority Priority, source string, tokens []string) error {
	return p.ParseWithSourceFunction(priority, func(string) string { return source }, tokens)
}

// ParseWithSourceFunction is Parse with a per-flag source label.
func (p *Parser) ParseWithSourceFunction(priority Priority, sourceFn func(name string) string, tokens []string) error {
	if p.paramsFs != nil {
		expanded, err := expandParamsFiles(p.paramsFs, tokens)
		if err != nil {
			return err
		}
		tokens = expanded
	}

	if err := p.engine.applyBatch(priority, sourceFn, tokens); err != nil {
		return err
	}

	if !p.allowResidue && len(p.engine.residue) > 0 {
		return &UnrecognizedArgumentsError{Residue: p.Residue()}
	}
	return nil
}

// ParseAndExitUponError is a convenience for main functions: it parses args
// at command-line priority, prints help and exits 0 if "--help" appears
// anywhere, and prints the error and exits 2 on any parse failure.
func (p *Parser) ParseAndExitUponError(args []string) {
	for _, arg := range args {
		if arg == "--help" {
			fmt.Fprintln(os.Stdout, p.Describe(nil, HelpLong))
			os.Exit(0)
		}
	}
	if err := p.Parse(PriorityCommandLine, "command line", args); err != nil {
		fmt.Fprintln(os.Stderr, "error parsing command line: "+err.Error())
		fmt.Fprintln(os.Stderr, "try --help.")
		os.Exit(2)
	}
}

// Residue returns the tokens that matched no known flag, in encounter order
// across all Parse calls.
func (p *Parser) Residue() []string {
	out := make([]string, len(p.engine.residue))
	copy(out, p.engine.residue)
	return out
}

// Warnings returns non-fatal diagnostics from previous Parse calls.
func (p *Parser) Warnings() []string {
	out := make([]string, len(p.engine.warnings))
	copy(out, p.engine.warnings)
	return out
}

// ClearValue removes every recorded write for the named flag across all
// priorities and returns the previously merged value, if there was one.
// Snapshots materialized before the call keep the old value.
func (p *Parser) ClearValue(name string) (any, bool, error) {
	return p.engine.clearValue(name)
}

// EffectiveValue returns the merged value for one flag, or its default if
// never written. The boolean reports whether the flag is registered.
func (p *Parser) EffectiveValue(name string) (any, bool) {
	return p.engine.effectiveValue(name)
}

// ContainsExplicitOption reports whether the flag was set directly by a
// caller, as opposed to by expansion or implicit requirement.
func (p *Parser) ContainsExplicitOption(name string) bool {
	return p.engine.containsExplicitOption(name)
}

// AsListOfUnparsedOptions returns every accepted flag occurrence in arrival
// order, including those injected by expansions and implicit requirements.
func (p *Parser) AsListOfUnparsedOptions() []UnparsedValue {
	return p.engine.unparsedValues(false)
}

// AsListOfExplicitOptions is AsListOfUnparsedOptions restricted to
// occurrences the caller set directly.
func (p *Parser) AsListOfExplicitOptions() []UnparsedValue {
	return p.engine.unparsedValues(true)
}

// AsListOfEffectiveOptions returns the merged result for every registered
// flag, defaults included, in registry declaration order.
func (p *Parser) AsListOfEffectiveOptions() []EffectiveValue {
	return p.engine.effectiveValues()
}

// Canonicalize renders the current state as a normalized token list, sorted
// by flag name, that re-parses to an identical effective-value map.
func (p *Parser) Canonicalize() []string {
	return p.engine.canonicalize()
}

// Describe renders help text for all documented options, grouped by category
// and sorted within each group. categoryDescriptions optionally maps a
// category name to a heading; absent entries get a generated heading.
func (p *Parser) Describe(categoryDescriptions map[string]string, verbosity HelpVerbosity) string {
	defs := make([]*OptionDefinition, 0, len(p.engine.registry.ordered))
	for _, def := range p.engine.registry.ordered {
		if !def.Undocumented {
			defs = append(defs, def)
		}
	}
	sort.Slice(defs, func(a, b int) bool {
		if defs[a].Category != defs[b].Category {
			return defs[a].Category < defs[b].Category
		}
		return defs[a].Name < defs[b].Name
	})

	var b strings.Builder
	prevCategory := ""
	started := false
	for _, def := range defs {
		if def.Category != prevCategory || !started {
			heading, ok := categoryDescriptions[def.Category]
			if !ok {
				heading = fmt.Sprintf("Options category '%s'", def.Category)
			}
			if started {
				b.WriteString("\n")
			}
			b.WriteString(heading + ":\n")
			prevCategory = def.Category
			started = true
		}
		p.describeOption(&b, def, verbosity)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (p *Parser) describeOption(b *strings.Builder, def *OptionDefinition, verbosity HelpVerbosity) {
	b.WriteString("  --" + def.Name)
	if verbosity >= HelpMedium {
		if def.Abbrev != "" {
			b.WriteString(" [-" + def.Abbrev + "]")
		}
		b.WriteString(" (" + typeDescription(def))
		if def.AllowMultiple {
			b.WriteString("; may be used multiple times")
		} else if def.Default != "" {
			b.WriteString("; default: " + def.Default)
		}
		b.WriteString(")")
	}
	b.WriteString("\n")
	if verbosity >= HelpLong && def.Help != "" {
		b.WriteString("      " + def.Help + "\n")
	}
}

// OptionsCompletion returns one completion entry per documented flag, sorted
// lexically: "--name=" for value-taking options, "--name" plus "--noname"
// for booleans.
func (p *Parser) OptionsCompletion() string {
	names := make([]string, 0, len(p.engine.registry.ordered))
	for _, def := range p.engine.registry.ordered {
		if !def.Undocumented {
			names = append(names, def.Name)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		def := p.engine.registry.byName[name]
		if def.Kind == KindBool {
			b.WriteString("--" + name + "\n")
			if !def.isExpansion() {
				b.WriteString("--no" + name + "\n")
			}
			continue
		}
		b.WriteString("--" + name + "=\n")
	}
	return b.String()
}
