// ABOUTME: Thumbnail color service extracts the prominent color of card images
// ABOUTME: Uses K-means clustering and caches results so cards only read cached colors

package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/EdlinOrg/prominentcolor"
	_ "golang.org/x/image/webp"

	"nepalvoices-web/core/domain"
	"nepalvoices-web/core/interfaces"
)

const (
	defaultColorValue = 128
	colorCacheTTL     = 24 * time.Hour
	maxImageBytes     = 10 << 20
	batchConcurrency  = 5
)

// ErrColorNotCached is returned by GetCachedColor on a miss
var ErrColorNotCached = errors.New("color not found in cache")

// ThumbnailColorService handles color extraction from images
type ThumbnailColorService struct {
	deps interfaces.Dependencies
}

// NewThumbnailColorService creates a new thumbnail color service
func NewThumbnailColorService(deps interfaces.Dependencies) *ThumbnailColorService {
	return &ThumbnailColorService{deps: deps}
}

func colorCacheKey(imageURL string) string {
	return fmt.Sprintf("thumbnailColor:%s", imageURL)
}

// DefaultColor is the neutral gray used while no color is known
func DefaultColor() *domain.RGBColor {
	return &domain.RGBColor{R: defaultColorValue, G: defaultColorValue, B: defaultColorValue}
}

// ExtractColor returns the prominent color of an image, computing and caching
// it on a miss. Download or decode failures yield the default color.
func (s *ThumbnailColorService) ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	if imageURL == "" {
		return DefaultColor(), nil
	}

	if color, err := s.GetCachedColor(ctx, imageURL); err == nil {
		return color, nil
	}

	color, err := s.extractColorFromURL(ctx, imageURL)
	if err != nil {
		s.deps.Logger.Debug("Failed to extract color from thumbnail", map[string]interface{}{
			"url":   imageURL,
			"error": err.Error(),
		})
		color = DefaultColor()
	}

	if s.deps.Cache != nil {
		data := fmt.Sprintf("%d,%d,%d", color.R, color.G, color.B)
		_ = s.deps.Cache.Set(ctx, colorCacheKey(imageURL), []byte(data), colorCacheTTL)
	}

	return color, nil
}

// GetCachedColor retrieves a color from cache without computing it
func (s *ThumbnailColorService) GetCachedColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	if imageURL == "" {
		return nil, fmt.Errorf("empty image URL")
	}
	if s.deps.Cache == nil {
		return nil, ErrColorNotCached
	}

	data, err := s.deps.Cache.Get(ctx, colorCacheKey(imageURL))
	if err != nil || data == nil {
		return nil, ErrColorNotCached
	}

	var color domain.RGBColor
	if _, err := fmt.Sscanf(string(data), "%d,%d,%d", &color.R, &color.G, &color.B); err != nil {
		return nil, ErrColorNotCached
	}
	return &color, nil
}

// ExtractColorBatch extracts colors for multiple URLs concurrently
func (s *ThumbnailColorService) ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor {
	results := make(map[string]*domain.RGBColor, len(imageURLs))
	var mu sync.Mutex

	s.deps.Logger.Debug("Starting batch color extraction", map[string]interface{}{
		"count": len(imageURLs),
	})

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, batchConcurrency)

	for _, u := range uniqueNonEmpty(imageURLs) {
		wg.Add(1)
		go func(imageURL string) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
				defer func() { <-semaphore }()
			case <-ctx.Done():
				return
			}

			color, err := s.ExtractColor(ctx, imageURL)
			if err != nil {
				return
			}

			mu.Lock()
			results[imageURL] = color
			mu.Unlock()
		}(u)
	}

	wg.Wait()

	s.deps.Logger.Debug("Completed batch color extraction", map[string]interface{}{
		"requested": len(imageURLs),
		"extracted": len(results),
	})

	return results
}

func (s *ThumbnailColorService) extractColorFromURL(ctx context.Context, imageURL string) (color *domain.RGBColor, err error) {
	// prominentcolor panics on some degenerate images
	defer func() {
		if rec := recover(); rec != nil {
			color = nil
			err = fmt.Errorf("panic recovered: %v", rec)
		}
	}()

	parsedURL, parseErr := url.Parse(imageURL)
	if parseErr != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid image URL: %s", imageURL)
	}
	if strings.HasSuffix(strings.ToLower(parsedURL.Path), ".svg") {
		return nil, fmt.Errorf("SVG images are not supported")
	}
	if s.deps.HTTPClient == nil {
		return nil, fmt.Errorf("no http client configured")
	}

	resp, err := s.deps.HTTPClient.Get(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	body := resp.Body()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	img, _, err := image.Decode(io.LimitReader(body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return prominentColor(img)
}

// prominentColor runs k-means with the default masks first and retries
// without them for images that are mostly masked out
func prominentColor(img image.Image) (*domain.RGBColor, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has empty bounds")
	}

	nrgba := image.NewNRGBA(bounds)
	draw.Draw(nrgba, bounds, img, bounds.Min, draw.Src)

	colors, err := prominentcolor.KmeansWithAll(
		prominentcolor.DefaultK,
		nrgba,
		prominentcolor.ArgumentDefault,
		prominentcolor.DefaultSize,
		prominentcolor.GetDefaultMasks(),
	)
	if err != nil || len(colors) == 0 {
		colors, err = prominentcolor.KmeansWithAll(
			prominentcolor.DefaultK,
			nrgba,
			prominentcolor.ArgumentDefault,
			prominentcolor.DefaultSize,
			nil,
		)
		if err != nil || len(colors) == 0 {
			return nil, fmt.Errorf("no colors extracted from image")
		}
	}

	return &domain.RGBColor{
		R: uint8(colors[0].Color.R),
		G: uint8(colors[0].Color.G),
		B: uint8(colors[0].Color.B),
	}, nil
}

func uniqueNonEmpty(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
