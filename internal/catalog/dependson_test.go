package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/stagegridgo/internal/definition"
	"github.com/zclconf/go-cty/cty"
)

func configSet(cfgs ...*definition.ConfigDefinition) map[string]*definition.ConfigDefinition {
	out := make(map[string]*definition.ConfigDefinition, len(cfgs))
	for _, c := range cfgs {
		out[c.Name] = c
	}
	return out
}

func TestResolveDependsOn_FlattensTransitiveChain(t *testing.T) {
	t.Parallel()
	configs := configSet(
		&definition.ConfigDefinition{Name: "a"},
		&definition.ConfigDefinition{
			Name:        "b",
			DependsOn:   "a",
			TriggeredBy: []cty.Value{cty.StringVal("1"), cty.StringVal("2")},
		},
		&definition.ConfigDefinition{
			Name:        "c",
			DependsOn:   "b",
			TriggeredBy: []cty.Value{cty.StringVal("x")},
		},
	)

	require.NoError(t, resolveDependsOn(configs))

	chain := configs["c"].DependsOnChain
	require.Len(t, chain, 2)
	assert.Equal(t, []cty.Value{cty.StringVal("x")}, chain["b"])
	assert.Equal(t, []cty.Value{cty.StringVal("1"), cty.StringVal("2")}, chain["a"])
}

func TestResolveDependsOn_NoChainYieldsNilMarker(t *testing.T) {
	t.Parallel()
	configs := configSet(&definition.ConfigDefinition{Name: "a"})

	require.NoError(t, resolveDependsOn(configs))
	assert.Nil(t, configs["a"].DependsOnChain, "an empty chain must be the explicit nil marker")
}

func TestResolveDependsOn_BrokenChainStopsSilently(t *testing.T) {
	t.Parallel()
	configs := configSet(
		&definition.ConfigDefinition{
			Name:        "b",
			DependsOn:   "missing",
			TriggeredBy: []cty.Value{cty.True},
		},
	)

	require.NoError(t, resolveDependsOn(configs))

	chain := configs["b"].DependsOnChain
	require.Len(t, chain, 1, "the dangling link itself is still recorded")
	assert.Equal(t, []cty.Value{cty.True}, chain["missing"])
}

func TestResolveDependsOn_CycleFails(t *testing.T) {
	t.Parallel()
	configs := configSet(
		&definition.ConfigDefinition{Name: "a", DependsOn: "b"},
		&definition.ConfigDefinition{Name: "b", DependsOn: "a"},
	)

	err := resolveDependsOn(configs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cyclic depends_on chain")
}
