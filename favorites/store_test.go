package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/status-im/market-aggregator/cache"
	mock_cache "github.com/status-im/market-aggregator/cache/mocks"
)

func newFileStore(t *testing.T) cache.Store {
	t.Helper()
	backend, err := cache.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	return backend
}

func TestStore_ToggleAndPersist(t *testing.T) {
	ctx := context.Background()
	backend := newFileStore(t)
	s := NewStore(backend)

	added, err := s.Toggle(ctx, "solana")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Toggle(ctx, "Bitcoin")
	require.NoError(t, err)
	assert.True(t, added)

	assert.True(t, s.IsFavorite("bitcoin"))
	assert.Equal(t, []string{"bitcoin", "solana"}, s.GetAllIDs())

	data, found, err := backend.Get(ctx, cache.FavoritesKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `["bitcoin","solana"]`, string(data))

	added, err = s.Toggle(ctx, "solana")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"bitcoin"}, s.GetAllIDs())
}

func TestStore_LoadRestoresSet(t *testing.T) {
	ctx := context.Background()
	backend := newFileStore(t)
	require.NoError(t, backend.Set(ctx, cache.FavoritesKey, []byte(`["ethereum"," Dogecoin ",""]`)))

	s := NewStore(backend)
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, []string{"dogecoin", "ethereum"}, s.GetAllIDs())
}

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	s := NewStore(newFileStore(t))
	require.NoError(t, s.Load(context.Background()))
	assert.Empty(t, s.GetAllIDs())
}

func TestStore_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	backend := newFileStore(t)
	require.NoError(t, backend.Set(ctx, cache.FavoritesKey, []byte(`{`)))

	assert.Error(t, NewStore(backend).Load(ctx))
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newFileStore(t))
	_, err := s.Toggle(ctx, "cardano")
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, "CARDANO"))
	require.NoError(t, s.Remove(ctx, "missing"))
	assert.False(t, s.IsFavorite("cardano"))
}

func TestStore_ToggleRollsBackOnWriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mock_cache.NewMockStore(ctrl)
	backend.EXPECT().Set(gomock.Any(), cache.FavoritesKey, gomock.Any()).Return(errors.New("disk full"))

	s := NewStore(backend)
	added, err := s.Toggle(context.Background(), "bitcoin")
	assert.Error(t, err)
	assert.False(t, added)
	assert.False(t, s.IsFavorite("bitcoin"))
}

func TestStore_ToggleEmptyID(t *testing.T) {
	_, err := NewStore(newFileStore(t)).Toggle(context.Background(), "  ")
	assert.Error(t, err)
}
