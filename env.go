// FILE: lixenwraith/options/env.go
package options

import (
	"os"
	"strings"
)

// EnvTransformFunc converts a flag name to an environment variable name.
type EnvTransformFunc func(name string) string

// DefaultEnvTransform maps "remote.timeout" to "PREFIX_REMOTE_TIMEOUT":
// dots and dashes become underscores, letters are uppercased.
func DefaultEnvTransform(prefix string) EnvTransformFunc {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	return func(name string) string {
		return prefix + strings.ToUpper(replacer.Replace(name))
	}
}

// ParseEnv checks the environment for a variable per registered flag, using
// the default transform with the given prefix, and applies all values found
// as one batch at env priority.
func (p *Parser) ParseEnv(prefix string) error {
	return p.ParseEnvWithTransform(DefaultEnvTransform(prefix))
}

// ParseEnvWithTransform is ParseEnv with a custom name transform. Flags are
// probed in registry declaration order, so the resulting batch is
// deterministic for a fixed environment.
func (p *Parser) ParseEnvWithTransform(transform EnvTransformFunc) error {
	var tokens []string
	for _, def := range p.engine.registry.ordered {
		if value, exists := os.LookupEnv(transform(def.Name)); exists {
			tokens = append(tokens, "--"+def.Name+"="+value)
		}
	}
	if len(tokens) == 0 {
		return nil
	}
	return p.ParseWithSourceFunction(PriorityEnv, func(name string) string {
		return "env " + transform(name)
	}, tokens)
}

// DiscoverEnv finds the environment variables currently set for registered
// flags and returns a map of flag name to variable name.
func (p *Parser) DiscoverEnv(prefix string) map[string]string {
	transform := DefaultEnvTransform(prefix)
	discovered := make(map[string]string)
	for _, def := range p.engine.registry.ordered {
		envVar := transform(def.Name)
		if _, exists := os.LookupEnv(envVar); exists {
			discovered[def.Name] = envVar
		}
	}
	return discovered
}
