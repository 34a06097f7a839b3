// Package upload turns user-supplied images into self-contained local wallpapers.
package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // GIF format support
	_ "image/jpeg" // JPEG format support
	_ "image/png"  // PNG format support
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/wallsync/internal/domain"
	"go.uber.org/zap"
)

const (
	defaultThumbnailWidth = 400
	defaultThumbQuality   = 80
	_maxUploadSize        = 20 * 1024 * 1024 // 20 MB
)

// ProcessorConfig holds configuration for thumbnail generation
type ProcessorConfig struct {
	ThumbnailWidth int
	JPEGQuality    int
}

// Processor builds local-upload wallpapers. The full image and its
// thumbnail are embedded as data URLs so the record stays valid after the
// original file is gone.
type Processor struct {
	logger  *zap.Logger
	fetcher domain.Fetcher
	config  ProcessorConfig
	now     func() time.Time
	rng     *rand.Rand
}

// NewProcessor creates a new upload processor
func NewProcessor(logger *zap.Logger, fetcher domain.Fetcher) *Processor {
	return &Processor{
		logger:  logger,
		fetcher: fetcher,
		config: ProcessorConfig{
			ThumbnailWidth: defaultThumbnailWidth,
			JPEGQuality:    defaultThumbQuality,
		},
		now: time.Now,
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// FromFile reads an image from disk
func (p *Processor) FromFile(ctx context.Context, path string) (domain.Wallpaper, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.Wallpaper{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if info.Size() > _maxUploadSize {
		return domain.Wallpaper{}, fmt.Errorf("%s exceeds %d bytes", path, _maxUploadSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Wallpaper{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return p.Process(ctx, data, filepath.Base(path))
}

// FromURL downloads an image and stores it as a local upload
func (p *Processor) FromURL(ctx context.Context, url string) (domain.Wallpaper, error) {
	data, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return domain.Wallpaper{}, fmt.Errorf("failed to download image: %w", err)
	}
	name := url
	if i := strings.LastIndex(url, "/"); i >= 0 && i < len(url)-1 {
		name = url[i+1:]
	}
	return p.Process(ctx, data, name)
}

// Process decodes imageData and builds the wallpaper record
func (p *Processor) Process(ctx context.Context, imageData []byte, name string) (domain.Wallpaper, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return domain.Wallpaper{}, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dy() == 0 || bounds.Dx() == 0 {
		return domain.Wallpaper{}, fmt.Errorf("invalid image dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}

	thumb, err := p.thumbnail(img)
	if err != nil {
		return domain.Wallpaper{}, err
	}

	mimeType := "image/" + format
	now := p.now()
	title := strings.TrimSpace(strings.TrimSuffix(name, filepath.Ext(name)))
	if title == "" {
		title = "Uploaded wallpaper"
	}

	w := domain.Wallpaper{
		ID:         domain.NewLocalID(now, p.rng),
		Path:       dataURL(mimeType, imageData),
		Thumbnail:  dataURL("image/jpeg", thumb),
		SourceType: domain.SourceLocal,
		Source:     domain.LocalUploadSource,
		Resolution: domain.FormatResolution(bounds.Dx(), bounds.Dy()),
		Info: domain.WallpaperInfo{
			Title:     title,
			CreatedAt: now.UTC(),
			FileSize:  int64(len(imageData)),
			MimeType:  mimeType,
			Tags:      []string{"upload"},
		},
	}

	p.logger.Debug("Upload processed",
		zap.String("id", w.ID),
		zap.String("resolution", w.Resolution),
		zap.Int("bytes", len(imageData)),
		zap.Int("thumbBytes", len(thumb)))
	return w, nil
}

// thumbnail scales img down to the configured width and encodes it as JPEG
func (p *Processor) thumbnail(img image.Image) ([]byte, error) {
	if img.Bounds().Dx() > p.config.ThumbnailWidth {
		img = imaging.Resize(img, p.config.ThumbnailWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(p.config.JPEGQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func dataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
