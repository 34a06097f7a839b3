package library

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/genricoloni/wallsync/internal/storage"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T, quota int64) (*Store, *storage.Adapter) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	codec, err := storage.NewCodec(0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = codec.Close() })

	adapter := storage.NewAdapter(zap.NewNop(), storage.NewRedisBackend(client, "lib"), codec, quota)
	return NewStore(zap.NewNop(), adapter), adapter
}

func remote(id string, tags ...string) domain.Wallpaper {
	return domain.Wallpaper{
		ID:         id,
		Path:       "https://w.example.com/full/" + id + ".jpg",
		Thumbnail:  "https://th.example.com/small/" + id + ".jpg",
		SourceType: domain.SourceRemote,
		Source:     "https://example.com/w/" + id,
		Resolution: "1920x1080",
		Info:       domain.WallpaperInfo{Title: id, Tags: tags},
	}
}

func upload(id string) domain.Wallpaper {
	return domain.Wallpaper{
		ID:         id,
		Path:       "data:image/jpeg;base64," + strings.Repeat("Q", 3_000),
		Thumbnail:  "data:image/jpeg;base64,dGh1bWI=",
		SourceType: domain.SourceLocal,
		Source:     domain.LocalUploadSource,
		Resolution: "800x600",
	}
}

func ids(items []domain.Wallpaper) []string {
	out := make([]string, len(items))
	for i, w := range items {
		out[i] = w.ID
	}
	return out
}

func TestStore_AddIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t, 0)
	ctx := context.Background()
	w := remote("a")

	added, err := s.Add(ctx, w)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Add(ctx, w)
	require.NoError(t, err)
	assert.False(t, added, "second add must be a no-op")

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
	assert.NotNil(t, items[0].AddedAt)
}

func TestStore_AddDoesNotOverwrite(t *testing.T) {
	s, _ := newTestStore(t, 0)
	ctx := context.Background()

	_, err := s.Add(ctx, remote("a"))
	require.NoError(t, err)

	changed := remote("a")
	changed.Info.Title = "changed"
	_, err = s.Add(ctx, changed)
	require.NoError(t, err)

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.Info.Title)
}

func TestStore_ListIsNewestFirst(t *testing.T) {
	s, _ := newTestStore(t, 0)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := s.Add(ctx, remote(id))
		require.NoError(t, err)
	}

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, ids(items))
}

func TestStore_ListRepairsDuplicates(t *testing.T) {
	s, adapter := newTestStore(t, 0)
	ctx := context.Background()

	corrupted := []domain.Wallpaper{remote("a"), remote("b"), remote("a")}
	require.NoError(t, adapter.Write(ctx, storage.KeyLibrary, corrupted))

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(items))

	var persisted []domain.Wallpaper
	_, err = adapter.Read(ctx, storage.KeyLibrary, &persisted)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(persisted), "repaired list must be written back")
}

func TestStore_Remove(t *testing.T) {
	s, _ := newTestStore(t, 0)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := s.Add(ctx, remote(id))
		require.NoError(t, err)
	}

	removed, err := s.Remove(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", removed.ID)

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, ids(items))

	_, err = s.Remove(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, IsNotFound(err))
}

func TestStore_SetCurrent(t *testing.T) {
	tests := []struct {
		name          string
		wallpaper     domain.Wallpaper
		expectLibrary []string
	}{
		{name: "Local upload is auto-added", wallpaper: upload("local-1"), expectLibrary: []string{"local-1"}},
		{name: "Remote item is not added", wallpaper: remote("r1"), expectLibrary: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t, 0)
			ctx := context.Background()

			current, err := s.GetCurrent(ctx)
			require.NoError(t, err)
			assert.Nil(t, current)

			require.NoError(t, s.SetCurrent(ctx, tt.wallpaper))

			current, err = s.GetCurrent(ctx)
			require.NoError(t, err)
			require.NotNil(t, current)
			assert.Equal(t, tt.wallpaper.ID, current.ID)

			items, err := s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.expectLibrary, ids(items))
		})
	}
}

func TestStore_AddDegradesOnQuota(t *testing.T) {
	s, _ := newTestStore(t, 1_500)
	ctx := context.Background()
	w := upload("local-big")

	added, err := s.Add(ctx, w)
	require.NoError(t, err)
	assert.True(t, added)

	got, err := s.Get(ctx, "local-big")
	require.NoError(t, err)
	assert.Equal(t, w.Thumbnail, got.Path)
}

func TestStore_AddSurfacesQuotaError(t *testing.T) {
	s, _ := newTestStore(t, 100)

	_, err := s.Add(context.Background(), upload("local-big"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	assert.Contains(t, err.Error(), "remove items from your library")
}

func TestStore_SettingsAndBookkeeping(t *testing.T) {
	s, _ := newTestStore(t, 0)
	ctx := context.Background()

	settings, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)

	want := domain.Settings{
		RefreshSource:     domain.SourceBrowse,
		RefreshNsfwFilter: domain.NsfwAllowed,
		ShuffleInterval:   5,
		IsShuffleEnabled:  true,
	}
	require.NoError(t, s.SaveSettings(ctx, want))
	settings, err = s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, settings)

	require.NoError(t, s.SaveShuffleState(ctx, true, 5))
	enabled, interval, err := s.ShuffleState(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.Equal(t, 5, interval)

	_, ok, err := s.LastShuffleTime(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	now := time.Now()
	require.NoError(t, s.TouchLastShuffle(ctx, now))
	last, ok, err := s.LastShuffleTime(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, now.UnixMilli(), last.UnixMilli())
}

func TestStore_RemoveWhenOverBudget(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	codec, err := storage.NewCodec(0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = codec.Close() })

	backend := storage.NewRedisBackend(client, "lib")
	ctx := context.Background()

	// Filled while the budget was unlimited
	unlimited := NewStore(zap.NewNop(), storage.NewAdapter(zap.NewNop(), backend, codec, 0))
	for _, id := range []string{"local-a", "local-b", "local-c"} {
		_, err := unlimited.Add(ctx, upload(id))
		require.NoError(t, err)
	}

	// Same data under a budget it no longer fits in
	s := NewStore(zap.NewNop(), storage.NewAdapter(zap.NewNop(), backend, codec, 5000))

	_, err = s.Add(ctx, upload("local-d"))
	require.Error(t, err, "growing the library must still respect the budget")

	removed, err := s.Remove(ctx, "local-a")
	require.NoError(t, err)
	assert.Equal(t, "local-a", removed.ID)

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"local-c", "local-b"}, ids(items))
}
