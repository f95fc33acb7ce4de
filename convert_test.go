// FILE: lixenwraith/options/convert_test.go
package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverters(t *testing.T) {
	conv := func(t *testing.T, def *OptionDefinition) Converter {
		c, err := converterFor(def)
		require.NoError(t, err)
		return c
	}

	t.Run("Bool", func(t *testing.T) {
		c := conv(t, &OptionDefinition{Name: "b", Kind: KindBool})
		for _, raw := range []string{"true", "1", "yes", "t", "y", "YES", "True"} {
			v, err := c.Parse(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, true, v)
		}
		for _, raw := range []string{"false", "0", "no", "f", "n", "NO"} {
			v, err := c.Parse(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, false, v)
		}
		_, err := c.Parse("maybe")
		assert.Error(t, err)
		assert.Equal(t, "true", c.Format(true))
	})

	t.Run("Int", func(t *testing.T) {
		c := conv(t, &OptionDefinition{Name: "i", Kind: KindInt})
		v, err := c.Parse("-42")
		require.NoError(t, err)
		assert.Equal(t, int64(-42), v)
		_, err = c.Parse("4.2")
		assert.Error(t, err)
		assert.Equal(t, "7", c.Format(int64(7)))
	})

	t.Run("Float", func(t *testing.T) {
		c := conv(t, &OptionDefinition{Name: "f", Kind: KindFloat})
		v, err := c.Parse("2.5")
		require.NoError(t, err)
		assert.Equal(t, 2.5, v)
		_, err = c.Parse("x")
		assert.Error(t, err)
	})

	t.Run("Enum", func(t *testing.T) {
		c := conv(t, &OptionDefinition{
			Name: "mode", Kind: KindEnum, EnumValues: []string{"Fast", "safe"}, Default: "safe",
		})
		// Case-insensitive match returns the declared spelling
		v, err := c.Parse("FAST")
		require.NoError(t, err)
		assert.Equal(t, "Fast", v)
		_, err = c.Parse("slow")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "is not one of")
	})

	t.Run("StringList", func(t *testing.T) {
		c := conv(t, &OptionDefinition{Name: "l", Kind: KindStringList})
		v, err := c.Parse("a,b,c")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, v)
		assert.Equal(t, "a,b,c", c.Format([]string{"a", "b", "c"}))
	})

	t.Run("StringMap", func(t *testing.T) {
		c := conv(t, &OptionDefinition{Name: "m", Kind: KindStringMap})
		v, err := c.Parse("region=eu-west")
		require.NoError(t, err)
		assert.Equal(t, MapEntry{Key: "region", Value: "eu-west"}, v)
		_, err = c.Parse("noequals")
		assert.Error(t, err)
		assert.Equal(t, "region=eu-west", c.Format(MapEntry{Key: "region", Value: "eu-west"}))
	})

	t.Run("Duration", func(t *testing.T) {
		c := conv(t, &OptionDefinition{Name: "d", Kind: KindDuration})
		v, err := c.Parse("1m30s")
		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, v)
		_, err = c.Parse("90")
		assert.Error(t, err)
	})

	t.Run("Path", func(t *testing.T) {
		c := conv(t, &OptionDefinition{Name: "p", Kind: KindPath})
		v, err := c.Parse("a//b/../c")
		require.NoError(t, err)
		assert.Equal(t, "a/c", v)
		_, err = c.Parse("")
		assert.Error(t, err)
	})

	t.Run("Custom", func(t *testing.T) {
		custom := &Converter{
			Parse:  func(raw string) (any, error) { return len(raw), nil },
			Format: func(v any) string { return "n" },
		}
		c := conv(t, &OptionDefinition{Name: "c", Kind: KindCustom, Converter: custom})
		v, err := c.Parse("abc")
		require.NoError(t, err)
		assert.Equal(t, 3, v)

		_, err = converterFor(&OptionDefinition{Name: "c", Kind: KindCustom})
		assert.Error(t, err)
	})
}

func TestSplitFlagToken(t *testing.T) {
	cases := []struct {
		token      string
		singleDash bool
		name       string
		value      string
		hasValue   bool
		ok         bool
	}{
		{"--retries=5", false, "retries", "5", true, true},
		{"--verbose", false, "verbose", "", false, true},
		{"-v", false, "v", "", false, true},
		{"-v=1", false, "v", "1", true, true},
		{"-retries=5", false, "", "", false, false},
		{"-retries=5", true, "retries", "5", true, true},
		{"--=x", false, "", "", false, false},
		{"plain", false, "", "", false, false},
		{"-", false, "", "", false, false},
	}
	for _, tc := range cases {
		name, value, hasValue, ok := splitFlagToken(tc.token, tc.singleDash)
		assert.Equal(t, tc.ok, ok, tc.token)
		if tc.ok {
			assert.Equal(t, tc.name, name, tc.token)
			assert.Equal(t, tc.value, value, tc.token)
			assert.Equal(t, tc.hasValue, hasValue, tc.token)
		}
	}
}

func TestFlagNameValidation(t *testing.T) {
	valid := []string{"retries", "remote.timeout", "_internal", "a.b.c", "v2ray", "up-stream"}
	for _, name := range valid {
		assert.True(t, isValidFlagName(name), name)
	}
	invalid := []string{"", ".", "a.", ".b", "2fast", "has space", "a..b", "-lead"}
	for _, name := range invalid {
		assert.False(t, isValidFlagName(name), name)
	}
}
