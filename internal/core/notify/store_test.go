package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(2)

	for _, msg := range []string{"a", "b", "c"} {
		_, err := s.Save(ctx, Notification{Level: LevelInfo, Message: msg})
		require.NoError(t, err)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].Message)
	assert.Equal(t, "b", list[1].Message)
	assert.Equal(t, int64(3), list[0].ID)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, s.Clear(ctx))
	n, _ = s.Count(ctx)
	assert.Zero(t, n)
}
