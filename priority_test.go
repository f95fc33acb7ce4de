// FILE: lixenwraith/options/priority_test.go
package options_test

import (
	"testing"

	"github.com/lixenwraith/options"
	"github.com/stretchr/testify/assert"
)

func TestPriorityOrder(t *testing.T) {
	tiers := options.Priorities()
	assert.Equal(t, options.PriorityDefault, tiers[0])
	assert.Equal(t, options.PriorityInvocationPolicy, tiers[len(tiers)-1])

	for i := 1; i < len(tiers); i++ {
		assert.Less(t, tiers[i-1], tiers[i])
	}
}

func TestPriorityString(t *testing.T) {
	assert.Equal(t, "rc-file", options.PriorityRcFile.String())
	assert.Equal(t, "command-line", options.PriorityCommandLine.String())
	assert.Equal(t, "unknown", options.Priority(99).String())
}
