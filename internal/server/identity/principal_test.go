package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithPrincipal(t *testing.T) {
	ctx := WithPrincipal(context.Background(), Principal{UserID: "u1", Username: "alice"})

	p, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "alice", p.Username)

	assert.Equal(t, p, MustFromContext(ctx))
}

func TestFromContext_Missing(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}

func TestMustFromContext_Panics(t *testing.T) {
	assert.PanicsWithValue(t, ErrNoPrincipal, func() {
		MustFromContext(context.Background())
	})
}

func TestPrincipal_ScopedToContext(t *testing.T) {
	parent := context.Background()
	alice := WithPrincipal(parent, Principal{UserID: "u1", Username: "alice"})
	bob := WithPrincipal(parent, Principal{UserID: "u2", Username: "bob"})

	assert.Equal(t, "u1", MustFromContext(alice).UserID)
	assert.Equal(t, "u2", MustFromContext(bob).UserID)

	_, ok := FromContext(parent)
	assert.False(t, ok)
}
