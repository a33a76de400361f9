package isolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShared_DuplicateReturnsReceiver(t *testing.T) {
	t.Parallel()
	env := NewShared("flat-lib")

	dup, err := env.Duplicate()
	require.NoError(t, err)
	assert.Same(t, env, dup)
	assert.False(t, dup.Private())
	assert.Equal(t, "flat-lib", dup.Key())
}

func TestNamespace_DuplicateIsPrivateAndIndependent(t *testing.T) {
	t.Parallel()
	base := NewNamespace("lib-a", map[string]string{"region": "eu"})

	dup, err := base.Duplicate()
	require.NoError(t, err)
	require.True(t, dup.Private())
	assert.False(t, base.Private(), "base must stay non-private")
	assert.Equal(t, "lib-a", dup.Key())

	ns := dup.(*Namespace)
	v, ok := ns.Lookup("region")
	require.True(t, ok)
	assert.Equal(t, "eu", v)

	// Mutations on the duplicate never leak back to the base.
	ns.Set("region", "us")
	ns.Set("extra", "1")
	v, _ = base.Lookup("region")
	assert.Equal(t, "eu", v)
	_, ok = base.Lookup("extra")
	assert.False(t, ok)
}

func TestNamespace_DuplicatesDoNotShareState(t *testing.T) {
	t.Parallel()
	base := NewNamespace("lib-a", nil)

	first, err := base.Duplicate()
	require.NoError(t, err)
	second, err := base.Duplicate()
	require.NoError(t, err)

	first.(*Namespace).Set("who", "first")
	_, ok := second.(*Namespace).Lookup("who")
	assert.False(t, ok)
}
