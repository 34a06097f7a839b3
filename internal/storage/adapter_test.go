package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupAdapter starts a miniredis server and returns an adapter on top of it
func setupAdapter(t *testing.T, quota int64, threshold int) (*Adapter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	codec, err := NewCodec(threshold)
	require.NoError(t, err)
	t.Cleanup(func() { _ = codec.Close() })

	return NewAdapter(zap.NewNop(), NewRedisBackend(client, "test"), codec, quota), mr
}

func bigWallpaper(id string, pathSize int) domain.Wallpaper {
	return domain.Wallpaper{
		ID:         id,
		Path:       "data:image/jpeg;base64," + strings.Repeat("A", pathSize),
		Thumbnail:  "data:image/jpeg;base64,thumb",
		SourceType: domain.SourceLocal,
		Source:     domain.LocalUploadSource,
		Resolution: "1920x1080",
	}
}

func TestAdapter_ReadWrite(t *testing.T) {
	a, mr := setupAdapter(t, 0, 0)
	ctx := context.Background()

	var missing domain.Wallpaper
	found, err := a.Read(ctx, KeyCurrentWallpaper, &missing)
	require.NoError(t, err)
	assert.False(t, found)

	w := bigWallpaper("w1", 10)
	require.NoError(t, a.Write(ctx, KeyCurrentWallpaper, w))
	assert.True(t, mr.Exists("test:"+KeyCurrentWallpaper), "value should live under the namespace")

	var got domain.Wallpaper
	found, err = a.Read(ctx, KeyCurrentWallpaper, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, w, got)
}

func TestAdapter_ReadCorruptValue(t *testing.T) {
	a, mr := setupAdapter(t, 0, 0)
	require.NoError(t, mr.Set("test:"+KeySettings, "j{not json"))

	var s domain.Settings
	_, err := a.Read(context.Background(), KeySettings, &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt value")
}

func TestAdapter_QuotaDegradation(t *testing.T) {
	tests := []struct {
		name        string
		quota       int64
		expectErr   bool
		expectThumb bool
	}{
		{name: "Fits without degradation", quota: 100_000, expectThumb: false},
		{name: "Degrades to thumbnail", quota: 1_000, expectThumb: true},
		{name: "Thumbnail does not fit either", quota: 50, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := setupAdapter(t, tt.quota, 0)
			ctx := context.Background()
			w := bigWallpaper("w1", 4_000)

			err := a.WriteWallpaper(ctx, KeyCurrentWallpaper, w)

			if tt.expectErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrQuotaExceeded))
				var qe *domain.QuotaError
				require.True(t, errors.As(err, &qe))
				assert.Contains(t, qe.Error(), "remove items from your library")

				var stored domain.Wallpaper
				found, readErr := a.Read(ctx, KeyCurrentWallpaper, &stored)
				require.NoError(t, readErr)
				assert.False(t, found, "nothing should be written on failure")
				return
			}

			require.NoError(t, err)
			var stored domain.Wallpaper
			found, err := a.Read(ctx, KeyCurrentWallpaper, &stored)
			require.NoError(t, err)
			require.True(t, found)
			if tt.expectThumb {
				assert.Equal(t, w.Thumbnail, stored.Path)
			} else {
				assert.Equal(t, w.Path, stored.Path)
			}
		})
	}
}

func TestAdapter_QuotaCountsOtherKeys(t *testing.T) {
	a, _ := setupAdapter(t, 1_000, 0)
	ctx := context.Background()

	require.NoError(t, a.Write(ctx, KeyLibrary, []domain.Wallpaper{bigWallpaper("a", 400)}))

	// Overwriting the same key only counts the new size
	require.NoError(t, a.Write(ctx, KeyLibrary, []domain.Wallpaper{bigWallpaper("a", 450)}))

	err := a.Write(ctx, KeyCurrentWallpaper, bigWallpaper("b", 400))
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

	used, err := a.Usage(ctx)
	require.NoError(t, err)
	assert.Greater(t, used, int64(450))
	assert.LessOrEqual(t, used, int64(1_000))
}

func TestAdapter_CompressionShrinksStoredValue(t *testing.T) {
	a, mr := setupAdapter(t, 0, 64)
	ctx := context.Background()

	w := bigWallpaper("w1", 20_000)
	require.NoError(t, a.Write(ctx, KeyCurrentWallpaper, w))

	raw, err := mr.Get("test:" + KeyCurrentWallpaper)
	require.NoError(t, err)
	assert.Equal(t, byte(headerZstd), raw[0])
	assert.Less(t, len(raw), 2_000)

	var got domain.Wallpaper
	_, err = a.Read(ctx, KeyCurrentWallpaper, &got)
	require.NoError(t, err)
	assert.Equal(t, w.Path, got.Path)
}

func TestAdapter_ShrinkingWriteIgnoresQuota(t *testing.T) {
	a, _ := setupAdapter(t, 0, 0)
	ctx := context.Background()

	big := []domain.Wallpaper{bigWallpaper("a", 2000), bigWallpaper("b", 2000)}
	require.NoError(t, a.Write(ctx, KeyLibrary, big))

	// Budget lowered below what is already stored
	a.quota = 1000

	err := a.Write(ctx, KeyLibrary, append(big, bigWallpaper("c", 10)))
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded, "growing a key stays subject to the budget")

	require.NoError(t, a.Write(ctx, KeyLibrary, big[:1]), "shrinking a key must succeed while over budget")

	var got []domain.Wallpaper
	_, err = a.Read(ctx, KeyLibrary, &got)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
