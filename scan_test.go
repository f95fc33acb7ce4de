// FILE: lixenwraith/options/scan_test.go
package options_test

import (
	"testing"
	"time"

	"github.com/lixenwraith/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	t.Run("FlatStruct", func(t *testing.T) {
		type appConfig struct {
			Retries int64    `flag:"retries"`
			Tags    []string `flag:"tag"`
			Verbose bool     `flag:"verbose"`
			Out     string   `flag:"out"`
		}

		p := newTestParser(t)
		require.NoError(t, p.Parse(options.PriorityCommandLine, "cli",
			[]string{"--retries=5", "--tag=a", "--tag=b", "--verbose"}))

		var cfg appConfig
		require.NoError(t, p.Scan(&cfg))
		assert.Equal(t, int64(5), cfg.Retries)
		assert.Equal(t, []string{"a", "b"}, cfg.Tags)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, "", cfg.Out)
	})

	t.Run("NestedStruct", func(t *testing.T) {
		type remoteConfig struct {
			Timeout time.Duration `flag:"timeout"`
			Host    string        `flag:"host"`
		}
		type appConfig struct {
			Remote remoteConfig `flag:"remote"`
		}

		schema := &options.Schema{Name: "nested", Options: []*options.OptionDefinition{
			{Name: "remote.timeout", Kind: options.KindDuration, Default: "30s"},
			{Name: "remote.host", Kind: options.KindString, Default: "localhost"},
		}}
		reg, err := options.NewCache().Registry(schema)
		require.NoError(t, err)
		p := options.NewParser(reg)
		require.NoError(t, p.Parse(options.PriorityCommandLine, "cli",
			[]string{"--remote.timeout=5s"}))

		var cfg appConfig
		require.NoError(t, p.Scan(&cfg))
		assert.Equal(t, 5*time.Second, cfg.Remote.Timeout)
		assert.Equal(t, "localhost", cfg.Remote.Host)
	})

	t.Run("RequiresPointer", func(t *testing.T) {
		p := newTestParser(t)
		var cfg struct{}
		assert.Error(t, p.Scan(cfg))
		assert.Error(t, p.Scan(nil))
	})
}
