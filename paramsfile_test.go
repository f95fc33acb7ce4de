// FILE: lixenwraith/options/paramsfile_test.go
package options_test

import (
	"testing"

	"github.com/lixenwraith/options"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParamsParser(t *testing.T, fsys afero.Fs) *options.Parser {
	t.Helper()
	p := newTestParser(t)
	p.EnableParamsFiles(fsys)
	return p
}

func TestParamsFiles(t *testing.T) {
	t.Run("ExpandsInPlace", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "args.txt",
			[]byte("--retries=5\n--tag='a b'\n"), 0644))

		p := newParamsParser(t, fsys)
		require.NoError(t, p.Parse(options.PriorityCommandLine, "cli",
			[]string{"--tag=first", "@args.txt", "rest"}))

		v, _ := p.EffectiveValue("retries")
		assert.Equal(t, int64(5), v)
		tags, _ := p.EffectiveValue("tag")
		assert.Equal(t, []any{"first", "a b"}, tags)
		assert.Equal(t, []string{"rest"}, p.Residue())
	})

	t.Run("NestedFiles", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "inner.txt", []byte("--retries=7\n"), 0644))
		require.NoError(t, afero.WriteFile(fsys, "outer.txt",
			[]byte("@inner.txt\n--tag=z\n"), 0644))

		p := newParamsParser(t, fsys)
		require.NoError(t, p.Parse(options.PriorityCommandLine, "cli", []string{"@outer.txt"}))

		v, _ := p.EffectiveValue("retries")
		assert.Equal(t, int64(7), v)
		tags, _ := p.EffectiveValue("tag")
		assert.Equal(t, []any{"z"}, tags)
	})

	t.Run("AtAtEscapesLiteralAt", func(t *testing.T) {
		p := newParamsParser(t, afero.NewMemMapFs())
		require.NoError(t, p.Parse(options.PriorityCommandLine, "cli",
			[]string{"--out=@@literal", "@@handle"}))

		// Only leading markers are interpreted; "@@" keeps a literal "@".
		v, _ := p.EffectiveValue("out")
		assert.Equal(t, "@@literal", v)
		assert.Equal(t, []string{"@handle"}, p.Residue())
	})

	t.Run("MissingFile", func(t *testing.T) {
		p := newParamsParser(t, afero.NewMemMapFs())
		err := p.Parse(options.PriorityCommandLine, "cli", []string{"@nope.txt"})

		var readErr *options.ParamsFileReadError
		require.ErrorAs(t, err, &readErr)
		assert.Equal(t, "nope.txt", readErr.Path)
	})

	t.Run("DepthLimit", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "loop.txt", []byte("@loop.txt\n"), 0644))

		p := newParamsParser(t, fsys)
		err := p.Parse(options.PriorityCommandLine, "cli", []string{"@loop.txt"})

		var readErr *options.ParamsFileReadError
		require.ErrorAs(t, err, &readErr)
		assert.Contains(t, readErr.Err.Error(), "nested")
	})

	t.Run("WriteRoundTrip", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		p := newParamsParser(t, fsys)
		require.NoError(t, p.Parse(options.PriorityCommandLine, "cli",
			[]string{"--retries=5", "--tag=a b", "--tag=c", "--verbose"}))

		require.NoError(t, p.WriteParamsFile(fsys, "saved/args.txt"))

		q := newParamsParser(t, fsys)
		require.NoError(t, q.Parse(options.PriorityCommandLine, "replay", []string{"@saved/args.txt"}))

		assert.Equal(t, effectiveMap(p), effectiveMap(q))

		tags, _ := q.EffectiveValue("tag")
		assert.Equal(t, []any{"a b", "c"}, tags)
	})
}
