package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venueseating/internal/domain"
)

func TestDraftStore_DisabledWithoutClient(t *testing.T) {
	ctx := context.Background()
	store := NewDraftStore(nil, time.Hour)

	require.NoError(t, store.SaveDraft(ctx, "chart-1", []byte(`{"version":1}`)))

	_, err := store.LoadDraft(ctx, "chart-1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.DiscardDraft(ctx, "chart-1"))
}

func TestDraftKey(t *testing.T) {
	assert.Equal(t, "seating:draft:chart-1", draftKey("chart-1"))
}
