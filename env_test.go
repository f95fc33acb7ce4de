// FILE: lixenwraith/options/env_test.go
package options_test

import (
	"testing"

	"github.com/lixenwraith/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Run("PrefixedVariables", func(t *testing.T) {
		t.Setenv("MYAPP_RETRIES", "8")
		t.Setenv("MYAPP_VERBOSE", "true")
		t.Setenv("MYAPP_UNRELATED", "x")

		p := newTestParser(t)
		require.NoError(t, p.ParseEnv("MYAPP_"))

		v, _ := p.EffectiveValue("retries")
		assert.Equal(t, int64(8), v)
		verbose, _ := p.EffectiveValue("verbose")
		assert.Equal(t, true, verbose)

		unparsed := p.AsListOfUnparsedOptions()
		require.Len(t, unparsed, 2)
		assert.Equal(t, "env MYAPP_RETRIES", unparsed[0].Source)
		assert.Equal(t, options.PriorityEnv, unparsed[0].Priority)
	})

	t.Run("CommandLineOutranksEnv", func(t *testing.T) {
		t.Setenv("MYAPP_RETRIES", "8")

		p := newTestParser(t)
		require.NoError(t, p.ParseEnv("MYAPP_"))
		require.NoError(t, p.Parse(options.PriorityCommandLine, "cli", []string{"--retries=2"}))

		v, _ := p.EffectiveValue("retries")
		assert.Equal(t, int64(2), v)
	})

	t.Run("BadEnvValue", func(t *testing.T) {
		t.Setenv("MYAPP_RETRIES", "plenty")

		p := newTestParser(t)
		err := p.ParseEnv("MYAPP_")
		var convErr *options.ConversionError
		require.ErrorAs(t, err, &convErr)
		assert.Equal(t, "retries", convErr.Flag)
	})

	t.Run("CustomTransform", func(t *testing.T) {
		t.Setenv("OPT_retries", "4")

		p := newTestParser(t)
		require.NoError(t, p.ParseEnvWithTransform(func(name string) string {
			return "OPT_" + name
		}))

		v, _ := p.EffectiveValue("retries")
		assert.Equal(t, int64(4), v)
	})

	t.Run("DottedNameTransform", func(t *testing.T) {
		transform := options.DefaultEnvTransform("APP_")
		assert.Equal(t, "APP_REMOTE_TIMEOUT", transform("remote.timeout"))
		assert.Equal(t, "APP_DRY_RUN", transform("dry-run"))
	})

	t.Run("Discover", func(t *testing.T) {
		t.Setenv("MYAPP_VERBOSE", "1")

		p := newTestParser(t)
		found := p.DiscoverEnv("MYAPP_")
		assert.Equal(t, map[string]string{"verbose": "MYAPP_VERBOSE"}, found)
	})
}
