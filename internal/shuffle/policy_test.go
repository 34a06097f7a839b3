package shuffle

import (
	"math/rand/v2"
	"testing"

	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, purity string, tags ...string) domain.Wallpaper {
	return domain.Wallpaper{
		ID:         id,
		Path:       "https://w.example.com/" + id + ".jpg",
		Thumbnail:  "https://th.example.com/" + id + ".jpg",
		SourceType: domain.SourceRemote,
		Info:       domain.WallpaperInfo{Purity: purity, Tags: tags},
	}
}

func TestOptions_Resolve(t *testing.T) {
	settings := domain.Settings{RefreshSource: domain.SourceLibrary, RefreshNsfwFilter: domain.NsfwOff}

	tests := []struct {
		name       string
		opts       Options
		wantSource domain.RefreshSource
		wantFilter domain.NsfwFilter
	}{
		{name: "Settings apply by default", wantSource: domain.SourceLibrary, wantFilter: domain.NsfwOff},
		{name: "Source override", opts: Options{Source: domain.SourceBrowse}, wantSource: domain.SourceBrowse, wantFilter: domain.NsfwOff},
		{name: "Filter override", opts: Options{NsfwFilter: domain.NsfwOnly}, wantSource: domain.SourceLibrary, wantFilter: domain.NsfwOnly},
		{name: "Unknown values ignored", opts: Options{Source: "elsewhere", NsfwFilter: "maybe"}, wantSource: domain.SourceLibrary, wantFilter: domain.NsfwOff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, filter := tt.opts.Resolve(settings)
			assert.Equal(t, tt.wantSource, source)
			assert.Equal(t, tt.wantFilter, filter)
		})
	}
}

func TestFilterByRating(t *testing.T) {
	items := []domain.Wallpaper{
		item("safe", "sfw", "landscape"),
		item("tagged", "", "NSFW"),
		item("rated", "sketchy"),
		item("unsafe-tag", "", "unsafe"),
	}

	tests := []struct {
		name   string
		filter domain.NsfwFilter
		want   []string
	}{
		{name: "Off keeps everything", filter: domain.NsfwOff, want: []string{"safe", "tagged", "rated", "unsafe-tag"}},
		{name: "Allowed keeps everything", filter: domain.NsfwAllowed, want: []string{"safe", "tagged", "rated", "unsafe-tag"}},
		{name: "Only keeps unsafe items", filter: domain.NsfwOnly, want: []string{"tagged", "rated", "unsafe-tag"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByRating(items, tt.filter)
			ids := make([]string, len(got))
			for i, w := range got {
				ids[i] = w.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSelect_Failures(t *testing.T) {
	tests := []struct {
		name    string
		source  domain.RefreshSource
		filter  domain.NsfwFilter
		pool    []domain.Wallpaper
		wantErr error
	}{
		{name: "Empty library", source: domain.SourceLibrary, filter: domain.NsfwOff, wantErr: domain.ErrEmptyLibrary},
		{
			name:    "Only filter with safe library",
			source:  domain.SourceLibrary,
			filter:  domain.NsfwOnly,
			pool:    []domain.Wallpaper{item("a", "sfw"), item("b", "sfw")},
			wantErr: domain.ErrNoMatchingContent,
		},
		{name: "No provider results", source: domain.SourceBrowse, filter: domain.NsfwOnly, wantErr: domain.ErrNoResultsAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Select(tt.source, tt.filter, tt.pool, nil, rand.New(rand.NewPCG(1, 2)))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, domain.IsPolicyFailure(err))
		})
	}
}

func TestSelect_OnlyFilterPicksUnsafeItem(t *testing.T) {
	pool := []domain.Wallpaper{item("safe", "sfw"), item("spicy", "nsfw")}
	rng := rand.New(rand.NewPCG(7, 7))

	for i := 0; i < 50; i++ {
		got, err := Select(domain.SourceLibrary, domain.NsfwOnly, pool, nil, rng)
		require.NoError(t, err)
		assert.Equal(t, "spicy", got.ID)
	}
}

func TestPick_AvoidsCurrent(t *testing.T) {
	tests := []struct {
		name string
		pool []string
	}{
		{name: "Two items", pool: []string{"a", "b"}},
		{name: "Many items", pool: []string{"a", "b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := make([]domain.Wallpaper, len(tt.pool))
			for i, id := range tt.pool {
				pool[i] = item(id, "sfw")
			}
			current := pool[0]
			rng := rand.New(rand.NewPCG(42, 1))

			for i := 0; i < 500; i++ {
				got := Pick(pool, &current, rng)
				assert.NotEqual(t, current.ID, got.ID)
			}
		})
	}
}

func TestPick_SingleItemMayRepeat(t *testing.T) {
	pool := []domain.Wallpaper{item("only", "sfw")}
	got := Pick(pool, &pool[0], rand.New(rand.NewPCG(1, 1)))
	assert.Equal(t, "only", got.ID)
}

func TestPick_CoversWholePool(t *testing.T) {
	pool := []domain.Wallpaper{item("a", "sfw"), item("b", "sfw"), item("c", "sfw")}
	rng := rand.New(rand.NewPCG(3, 9))

	seen := map[string]bool{}
	for i := 0; i < 300; i++ {
		seen[Pick(pool, nil, rng).ID] = true
	}
	assert.Len(t, seen, 3)
}
