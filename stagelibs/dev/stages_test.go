package dev

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/stagegridgo/internal/isolate"
	"github.com/vk/stagegridgo/internal/library"
	"github.com/vk/stagegridgo/internal/stage"
	"github.com/zclconf/go-cty/cty"
)

func registeredClass(t *testing.T, className string) *stage.Class {
	t.Helper()
	b := library.NewBundle(t.TempDir(), isolate.NewShared("dev-lib"))
	(&Module{}).Register(b)

	class, err := b.Class(className)
	require.NoError(t, err)
	return class
}

func TestModule_RegistersClasses(t *testing.T) {
	t.Parallel()
	source := registeredClass(t, "DevRandomSource")
	assert.Equal(t, "dev_random", source.Name)
	assert.False(t, source.Private, "dev stages run in the shared environment")

	target := registeredClass(t, "DevTrashTarget")
	assert.Equal(t, "dev_trash", target.Name)
}

func TestRandomSource_SeededRunsAreReproducible(t *testing.T) {
	t.Parallel()
	class := registeredClass(t, "DevRandomSource")
	cfg := stage.Config{
		"seed":   cty.NumberIntVal(42),
		"fields": cty.NumberIntVal(2),
	}

	first := class.New().(*randomSource)
	require.NoError(t, first.Init(context.Background(), cfg))
	second := class.New().(*randomSource)
	require.NoError(t, second.Init(context.Background(), cfg))

	assert.Equal(t, first.Next(), second.Next())
	require.NoError(t, first.Destroy(context.Background()))
	require.NoError(t, second.Destroy(context.Background()))
}

func TestRandomSource_FieldCountDefaults(t *testing.T) {
	t.Parallel()
	src := &randomSource{}
	require.NoError(t, src.Init(context.Background(), stage.Config{}))
	assert.Len(t, src.Next(), 3)
}

func TestTrashTarget_DiscardsRecords(t *testing.T) {
	t.Parallel()
	tgt := &trashTarget{}
	require.NoError(t, tgt.Init(context.Background(), stage.Config{"log_records": cty.True}))
	tgt.Write(context.Background(), []any{1, 2, 3})
	require.NoError(t, tgt.Destroy(context.Background()))
}
