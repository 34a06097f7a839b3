// Package provider implements the remote image provider client.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/genricoloni/wallsync/internal/metrics"
	"go.uber.org/zap"
)

const (
	_maxResponseSize = 4 * 1024 * 1024
	userAgent        = "wallsync/1.0"
	createdAtLayout  = "2006-01-02 15:04:05"
)

// WallhavenClient searches a wallhaven-compatible API.
// Search never returns an error: failures are logged and reported as an empty page.
type WallhavenClient struct {
	logger     *zap.Logger
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
	bias       QueryBias
	atLeast    *domain.ScreenResolution
	sorting    string
	order      string
}

// NewWallhavenClient creates a provider client. res may be nil, in which case
// no minimum resolution is requested.
func NewWallhavenClient(logger *zap.Logger, cfg domain.Config, res *domain.ScreenResolution) *WallhavenClient {
	return &WallhavenClient{
		logger:     logger,
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(cfg.GetProviderURL(), "/"),
		apiKey:     cfg.GetProviderAPIKey(),
		timeout:    cfg.GetProviderTimeout(),
		bias:       DefaultBias,
		atLeast:    res,
		sorting:    SortRandom,
		order:      OrderDesc,
	}
}

// WithBias replaces the query bias policy
func (c *WallhavenClient) WithBias(b QueryBias) *WallhavenClient {
	if b == nil {
		b = NoBias{}
	}
	c.bias = b
	return c
}

// WithSorting changes the result ordering
func (c *WallhavenClient) WithSorting(sorting, order string) *WallhavenClient {
	c.sorting = sorting
	c.order = order
	return c
}

// Search runs one paginated query
func (c *WallhavenClient) Search(ctx context.Context, q domain.SearchQuery) domain.SearchResult {
	if q.Page < 1 {
		q.Page = 1
	}
	empty := domain.SearchResult{PageInfo: domain.PageInfo{CurrentPage: q.Page}}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	searchURL := c.buildURL(q)
	resp, err := c.fetch(ctx, searchURL)
	if err != nil {
		c.logger.Warn("Provider search failed, treating as empty",
			zap.String("query", q.Text),
			zap.Int("page", q.Page),
			zap.Error(err))
		metrics.RecordProviderRequest("error")
		return empty
	}

	items := make([]domain.Wallpaper, 0, len(resp.Data))
	for _, item := range resp.Data {
		if item.ID == "" || item.Path == "" {
			continue
		}
		items = append(items, item.toWallpaper())
	}

	status := "ok"
	if len(items) == 0 {
		status = "empty"
	}
	metrics.RecordProviderRequest(status)

	c.logger.Debug("Provider search completed",
		zap.Int("items", len(items)),
		zap.Int("total", resp.Meta.Total))

	return domain.SearchResult{
		Items: items,
		PageInfo: domain.PageInfo{
			CurrentPage: resp.Meta.CurrentPage,
			LastPage:    resp.Meta.LastPage,
			PerPage:     resp.Meta.perPage(),
			Total:       resp.Meta.Total,
		},
	}
}

// buildURL assembles the search URL. It carries the API key, so it is never logged.
func (c *WallhavenClient) buildURL(q domain.SearchQuery) string {
	params := url.Values{}
	params.Set("categories", CategoryBits(q.Filters.Categories))
	params.Set("purity", PurityBits(q.Filters.Nsfw))
	params.Set("sorting", c.sorting)
	params.Set("order", c.order)
	params.Set("q", c.bias.Apply(q.Text, q.Filters.Nsfw))
	params.Set("page", strconv.Itoa(q.Page))
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}
	if c.atLeast != nil && c.atLeast.Width > 0 && c.atLeast.Height > 0 {
		params.Set("atleast", c.atLeast.String())
	}
	return c.baseURL + "/search?" + params.Encode()
}

func (c *WallhavenClient) fetch(ctx context.Context, searchURL string) (*searchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var out searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, _maxResponseSize)).Decode(&out); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	return &out, nil
}

// --- Provider JSON ---

type searchResponse struct {
	Data []searchItem `json:"data"`
	Meta searchMeta   `json:"meta"`
}

type searchMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	// per_page is sent as a string by some API versions
	PerPage json.Number `json:"per_page"`
	Total   int         `json:"total"`
}

func (m searchMeta) perPage() int {
	n, err := m.PerPage.Int64()
	if err != nil {
		return 0
	}
	return int(n)
}

type searchItem struct {
	ID         string `json:"id"`
	ShortURL   string `json:"short_url"`
	URL        string `json:"url"`
	Purity     string `json:"purity"`
	Category   string `json:"category"`
	DimensionX int    `json:"dimension_x"`
	DimensionY int    `json:"dimension_y"`
	Resolution string `json:"resolution"`
	FileSize   int64  `json:"file_size"`
	FileType   string `json:"file_type"`
	CreatedAt  string `json:"created_at"`
	Path       string `json:"path"`
	Thumbs     struct {
		Large    string `json:"large"`
		Original string `json:"original"`
		Small    string `json:"small"`
	} `json:"thumbs"`
	Tags []struct {
		Name string `json:"name"`
	} `json:"tags"`
}

func (item searchItem) toWallpaper() domain.Wallpaper {
	resolution := item.Resolution
	if resolution == "" && item.DimensionX > 0 {
		resolution = domain.FormatResolution(item.DimensionX, item.DimensionY)
	}

	thumb := item.Thumbs.Large
	if thumb == "" {
		thumb = item.Thumbs.Original
	}
	if thumb == "" {
		thumb = item.Thumbs.Small
	}
	if thumb == "" {
		thumb = item.Path
	}

	source := item.ShortURL
	if source == "" {
		source = item.URL
	}

	var tags []string
	for _, t := range item.Tags {
		if t.Name != "" {
			tags = append(tags, t.Name)
		}
	}
	if item.Category != "" {
		tags = append(tags, item.Category)
	}
	if item.Purity != "" {
		tags = append(tags, item.Purity)
	}

	created, _ := time.Parse(createdAtLayout, item.CreatedAt)

	return domain.Wallpaper{
		ID:         item.ID,
		Path:       item.Path,
		Thumbnail:  thumb,
		SourceType: domain.SourceRemote,
		Source:     source,
		Resolution: resolution,
		Info: domain.WallpaperInfo{
			Title:     "Wallpaper " + item.ID,
			CreatedAt: created.UTC(),
			FileSize:  item.FileSize,
			MimeType:  item.FileType,
			Tags:      tags,
			Purity:    item.Purity,
		},
	}
}
