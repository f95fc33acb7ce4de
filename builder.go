// FILE: lixenwraith/options/builder.go
package options

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// ValidatorFunc validates a fully loaded Parser at the end of Build.
type ValidatorFunc func(p *Parser) error

// Builder provides a fluent interface for assembling a parser and feeding it
// the standard source stack (rc file, environment, command line) in tier
// order with one call.
type Builder struct {
	cache       *Cache
	schemas     []*Schema
	opts        ParserOptions
	fsys        afero.Fs
	rcPath      string
	envPrefix   string
	envEnabled  bool
	paramsFiles bool
	args        []string
	validators  []ValidatorFunc
}

// NewBuilder creates a builder that parses os.Args and reads files from the
// host filesystem.
func NewBuilder() *Builder {
	return &Builder{
		cache: defaultCache,
		opts:  DefaultParserOptions(),
		fsys:  afero.NewOsFs(),
		args:  os.Args[1:],
	}
}

// WithSchemas sets the ordered schema list the registry is built from.
func (b *Builder) WithSchemas(schemas ...*Schema) *Builder {
	b.schemas = schemas
	return b
}

// WithCache uses a private registry cache instead of the process-wide one.
func (b *Builder) WithCache(cache *Cache) *Builder {
	b.cache = cache
	return b
}

// WithFs sets the filesystem used for rc files and params files.
func (b *Builder) WithFs(fsys afero.Fs) *Builder {
	b.fsys = fsys
	return b
}

// WithRcFile sets the rc file path, applied at rc-file priority.
func (b *Builder) WithRcFile(path string) *Builder {
	b.rcPath = path
	return b
}

// WithEnvPrefix enables the environment source with the given variable prefix.
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.envPrefix = prefix
	b.envEnabled = true
	return b
}

// WithArgs sets the command-line arguments, applied at command-line priority.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithParamsFiles enables @file expansion for all parsed batches.
func (b *Builder) WithParamsFiles() *Builder {
	b.paramsFiles = true
	return b
}

// WithAllowResidue sets the residue policy.
func (b *Builder) WithAllowResidue(allow bool) *Builder {
	b.opts.AllowResidue = allow
	return b
}

// WithSingleDash additionally accepts "-name" for long options.
func (b *Builder) WithSingleDash() *Builder {
	b.opts.AllowSingleDash = true
	return b
}

// WithValidator adds a validation function run at the end of Build.
// Multiple validators run in the order they were added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build constructs the registry, the parser, and applies rc file, environment
// and command-line sources in ascending tier order. A missing rc file is not
// fatal: Build still returns the parser, alongside ErrRcFileNotFound.
func (b *Builder) Build() (*Parser, error) {
	registry, err := b.cache.Registry(b.schemas...)
	if err != nil {
		return nil, err
	}

	parser := NewParserWithOptions(registry, b.opts)
	if b.paramsFiles {
		parser.EnableParamsFiles(b.fsys)
	}

	var rcErr error
	if b.rcPath != "" {
		if err := parser.ParseRcFile(b.fsys, b.rcPath); err != nil {
			if !errors.Is(err, ErrRcFileNotFound) {
				return nil, err
			}
			rcErr = err
		}
	}

	if b.envEnabled {
		if err := parser.ParseEnv(b.envPrefix); err != nil {
			return nil, err
		}
	}

	if len(b.args) > 0 {
		if err := parser.Parse(PriorityCommandLine, "command line", b.args); err != nil {
			return nil, err
		}
	}

	for _, validator := range b.validators {
		if err := validator(parser); err != nil {
			return nil, fmt.Errorf("options validation failed: %w", err)
		}
	}

	// ErrRcFileNotFound or nil
	return parser, rcErr
}

// MustBuild is like Build but panics on error. A missing rc file is ignored;
// the parser proceeds with the remaining sources.
func (b *Builder) MustBuild() *Parser {
	parser, err := b.Build()
	if err != nil && !errors.Is(err, ErrRcFileNotFound) {
		panic(fmt.Sprintf("options build failed: %v", err))
	}
	return parser
}
