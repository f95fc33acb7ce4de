// FILE: lixenwraith/options/example/main.go
package main

import (
	"log"
	"os"

	"github.com/lixenwraith/options"
	"github.com/spf13/afero"
)

// BuildConfig is the target structure populated by Scan.
type BuildConfig struct {
	Retries int64    `flag:"retries"`
	Tags    []string `flag:"tag"`
	Verbose bool     `flag:"verbose"`
	Remote  struct {
		Host string `flag:"host"`
	} `flag:"remote"`
}

const rcFilePath = "example.toml"

func main() {
	// =========================================================================
	// PART 1: DECLARE THE SCHEMA
	// One schema describes every flag: type, default, docs, expansion.
	// =========================================================================
	log.Println("➡️  PART 1: Declaring the option schema...")

	schema := &options.Schema{
		Name: "example",
		Options: []*options.OptionDefinition{
			{Name: "retries", Kind: options.KindInt, Default: "3", Category: "run",
				Help: "Number of retry attempts before giving up."},
			{Name: "tag", Kind: options.KindString, AllowMultiple: true, Category: "run",
				Help: "A label attached to the invocation; repeatable."},
			{Name: "verbose", Kind: options.KindBool, Abbrev: "v", Category: "output"},
			{Name: "remote.host", Kind: options.KindString, Default: "localhost", Category: "remote"},
			{Name: "fast", Kind: options.KindBool, Category: "run",
				Help:      "Shorthand for --retries=0 --noverbose.",
				Expansion: options.ExpandTo("--retries=0", "--noverbose")},
		},
	}

	// =========================================================================
	// PART 2: SEED AN RC FILE
	// The rc-file source sits below env and command line in precedence.
	// =========================================================================
	log.Println("➡️  PART 2: Writing an rc file...")

	if err := os.WriteFile(rcFilePath, []byte("retries = 7\ntag = [\"from-rc\"]\n"), 0644); err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer func() {
		os.Remove(rcFilePath)
		os.Unsetenv("EXAMPLE_VERBOSE")
	}()
	os.Setenv("EXAMPLE_VERBOSE", "true")

	// =========================================================================
	// PART 3: BUILD THE PARSER
	// Sources apply in ascending tier order: rc file, env, command line.
	// =========================================================================
	log.Println("➡️  PART 3: Building the parser from all sources...")

	parser, err := options.NewBuilder().
		WithSchemas(schema).
		WithFs(afero.NewOsFs()).
		WithRcFile(rcFilePath).
		WithEnvPrefix("EXAMPLE_").
		WithArgs([]string{"--retries=9", "--tag=from-cli"}).
		Build()
	if err != nil {
		log.Fatalf("❌ Failed to build parser: %v", err)
	}

	var cfg BuildConfig
	if err := parser.Scan(&cfg); err != nil {
		log.Fatalf("❌ Failed to scan options: %v", err)
	}
	log.Printf("✅ Effective config: retries=%d tags=%v verbose=%t host=%s",
		cfg.Retries, cfg.Tags, cfg.Verbose, cfg.Remote.Host)

	// =========================================================================
	// PART 4: AUDIT AND CANONICALIZE
	// Every accepted occurrence is logged with its priority and source.
	// =========================================================================
	log.Println("➡️  PART 4: Inspecting the audit trail...")

	for _, uv := range parser.AsListOfUnparsedOptions() {
		log.Printf("   --%s=%s  (%s, source %q)", uv.Name, uv.Value, uv.Priority, uv.Source)
	}
	log.Printf("✅ Canonical form: %v", parser.Canonicalize())

	// =========================================================================
	// PART 5: HELP OUTPUT
	// =========================================================================
	log.Println("➡️  PART 5: Generated help text:")
	log.Println("\n" + parser.Describe(map[string]string{
		"run":    "Run options",
		"output": "Output options",
		"remote": "Remote options",
	}, options.HelpLong))
}
