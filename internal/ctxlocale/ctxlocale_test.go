package ctxlocale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestFromContext_Roundtrip(t *testing.T) {
	t.Parallel()
	ctx := WithLocale(context.Background(), language.French)

	tag, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, language.French, tag)
}

func TestFromContext_EmptyContext(t *testing.T) {
	t.Parallel()
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}
