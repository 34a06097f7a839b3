package fetcher

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/genricoloni/wallsync/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestFetcher(t *testing.T, limit int64) *HTTPFetcher {
	t.Helper()
	cfg := mocks.NewMockConfig(gomock.NewController(t))
	cfg.EXPECT().GetProviderTimeout().Return(2 * time.Second).AnyTimes()
	f := NewHTTPFetcher(zap.NewNop(), cfg)
	if limit > 0 {
		f.maxSize = limit
	}
	return f
}

// imageServer serves body with the given status and content type
func imageServer(t *testing.T, status int, contentType string, body []byte) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "wallsync/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server.URL + "/walls/city.png"
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	pixels := bytes.Repeat([]byte{0x89}, 1024)

	tests := []struct {
		name        string
		status      int
		contentType string
		body        []byte
		limit       int64
		wantErr     string
		wantBytes   int
	}{
		{name: "Downloads image", status: http.StatusOK, contentType: "image/png", body: pixels, wantBytes: 1024},
		{name: "Body at the limit", status: http.StatusOK, contentType: "image/png", body: pixels, limit: 1024, wantBytes: 1024},
		{name: "Body over the limit", status: http.StatusOK, contentType: "image/png", body: pixels, limit: 1023, wantErr: "image exceeds 1023 bytes"},
		{name: "Missing upstream", status: http.StatusNotFound, contentType: "image/png", wantErr: "unexpected status code: 404"},
		{name: "HTML page instead of image", status: http.StatusOK, contentType: "text/html; charset=utf-8", body: []byte("<html>"), wantErr: "url is not an image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := imageServer(t, tt.status, tt.contentType, tt.body)

			data, err := newTestFetcher(t, tt.limit).Fetch(context.Background(), url)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, data, tt.wantBytes)
		})
	}
}

func TestHTTPFetcher_CancelledContext(t *testing.T) {
	url := imageServer(t, http.StatusOK, "image/jpeg", []byte("jpeg"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestFetcher(t, 0).Fetch(ctx, url)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPFetcher_RejectsNonHTTP(t *testing.T) {
	fetcher := newTestFetcher(t, 0)

	for _, url := range []string{"file:///etc/passwd", "ftp://example.com/a.jpg", "data:image/png;base64,AAAA"} {
		_, err := fetcher.Fetch(context.Background(), url)
		assert.Error(t, err, url)
	}
}
