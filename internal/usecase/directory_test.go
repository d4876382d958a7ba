package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmuslimabdulj/comuno/internal/domain"
)

func TestStaticDirectory_ListCopies(t *testing.T) {
	dir := NewStaticDirectory(SampleFriends(epoch))

	first, err := dir.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 8)
	first[0].Username = "changed"

	second, err := dir.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Andrés López", second[0].Username)
}

func TestStaticDirectory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStaticDirectory(nil).List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSampleFriends(t *testing.T) {
	friends := SampleFriends(epoch)
	offline := 0
	for _, f := range friends {
		if f.Status == domain.StatusOffline {
			offline++
		}
		assert.False(t, f.LastSeenAt.After(epoch))
	}
	assert.Equal(t, 2, offline)
}
