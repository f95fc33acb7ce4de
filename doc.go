// File: lixenwraith/options/doc.go

// Package options resolves a tool's effective configuration from many
// simultaneously active sources (defaults, rc files, environment variables,
// command-line flags, flags injected by other flags) into one deterministic,
// typed snapshot.
//
// Features:
//   - Priority-tiered value resolution with a fixed, total order over sources
//   - Single- and multi-valued flags with distinct merge semantics
//   - Expansion flags (one flag standing for a list of others) and implicit
//     requirements, with cycle detection and full audit trails
//   - Params files (@file tokens) expanded through an injected filesystem
//   - Rc files in TOML, JSON or YAML, mapped into flag tokens
//   - Canonicalization: a normalized, re-parseable token list
//   - Grouped, sorted help text at three verbosity levels
//
// Quick Start:
//
//	schema := &options.Schema{
//	    Name: "build",
//	    Options: []*options.OptionDefinition{
//	        {Name: "retries", Kind: options.KindInt, Default: "0"},
//	        {Name: "tag", Kind: options.KindString, AllowMultiple: true},
//	    },
//	}
//
//	registry, err := options.BuildRegistry(schema)
//	if err != nil {
//	    log.Fatal(err) // schema defect, not user input
//	}
//
//	parser := options.NewParser(registry)
//	if err := parser.Parse(options.PriorityCommandLine, "cli", os.Args[1:]); err != nil {
//	    log.Fatal(err)
//	}
//
//	snap, _ := parser.Materialize(schema)
//	retries, _ := snap.Int64("retries")
//	tags, _ := snap.Strings("tag")
//
// Priority tiers (lowest to highest precedence):
//  1. PriorityDefault
//  2. PriorityComputedDefault
//  3. PriorityRcFile
//  4. PriorityEnv
//  5. PriorityCommandLine
//  6. PriorityInvocationPolicy
//
// Ties within a tier are broken by arrival order: for single-valued flags the
// last write wins, for multi-valued flags every value is kept in order.
//
// Thread Safety:
// A Parser owns its mutable state exclusively and must be confined to one
// goroutine. Registries and their option definitions are immutable after
// construction and may be shared freely; the registry Cache serializes
// construction with a single lock.
package options
