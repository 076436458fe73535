// ABOUTME: Banner ad source backed by the ads GraphQL endpoint
// ABOUTME: Failures degrade to an empty list so pages render without ads

package ads

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"nepalvoices-web/core/domain"
	"nepalvoices-web/core/errors"
	"nepalvoices-web/core/interfaces"
	"nepalvoices-web/pkg/utils/parse"
)

const apiName = "ads"

const bannersQuery = `
query FinalBannerAds {
  finalbannerads {
    nodes {
      id
      title
      date
      finalBannerFields {
        adimage { node { title sourceUrl } }
        link
        addtitle
        priority
        active
        category
        slug
      }
    }
  }
}
`

type bannersResponse struct {
	Data *struct {
		FinalBannerAds *struct {
			Nodes []bannerNode `json:"nodes"`
		} `json:"finalbannerads"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type bannerNode struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Fields *bannerFields `json:"finalBannerFields"`
}

// Custom field plugins return loosely typed values, hence the raw messages
type bannerFields struct {
	AdImage *struct {
		Node *struct {
			SourceURL string `json:"sourceUrl"`
		} `json:"node"`
	} `json:"adimage"`
	Link     *string         `json:"link"`
	AddTitle *string         `json:"addtitle"`
	Priority json.RawMessage `json:"priority"`
	Active   json.RawMessage `json:"active"`
	Category json.RawMessage `json:"category"`
	Slug     *string         `json:"slug"`
}

// Service implements interfaces.AdSource
type Service struct {
	deps     interfaces.Dependencies
	endpoint string
}

// NewService creates a banner ad service for the given GraphQL endpoint
func NewService(deps interfaces.Dependencies, endpoint string) *Service {
	return &Service{deps: deps, endpoint: endpoint}
}

// FetchBanners returns every banner sorted by descending priority. Upstream
// failures are logged and yield an empty list.
func (s *Service) FetchBanners(ctx context.Context) ([]domain.BannerAd, error) {
	banners, err := s.fetch(ctx)
	if err != nil {
		s.deps.Logger.Warn("Failed to fetch banner ads", map[string]interface{}{
			"endpoint": s.endpoint,
			"error":    err.Error(),
		})
		return []domain.BannerAd{}, nil
	}

	domain.SortBannersByPriority(banners)
	return banners, nil
}

// Banners returns banners optionally narrowed to a category and to active ones
func (s *Service) Banners(ctx context.Context, category string, activeOnly bool) []domain.BannerAd {
	banners, _ := s.FetchBanners(ctx)
	return Filter(banners, category, activeOnly)
}

// Filter narrows banners by category (case-insensitive) and activity,
// preserving order
func Filter(banners []domain.BannerAd, category string, activeOnly bool) []domain.BannerAd {
	out := make([]domain.BannerAd, 0, len(banners))
	for _, b := range banners {
		if activeOnly && !b.Active {
			continue
		}
		if category != "" && !strings.EqualFold(b.Category, category) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (s *Service) fetch(ctx context.Context) ([]domain.BannerAd, error) {
	body, err := json.Marshal(map[string]string{"query": bannersQuery})
	if err != nil {
		return nil, err
	}

	resp, err := s.deps.HTTPClient.Post(ctx, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &errors.ExternalAPIError{API: apiName, StatusCode: resp.StatusCode(), Message: "unexpected status"}
	}

	payload, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, err
	}

	var decoded bannersResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, err
	}
	if len(decoded.Errors) > 0 {
		return nil, &errors.GraphQLError{API: apiName, Message: decoded.Errors[0].Message, Count: len(decoded.Errors)}
	}
	if decoded.Data == nil || decoded.Data.FinalBannerAds == nil {
		return []domain.BannerAd{}, nil
	}

	banners := make([]domain.BannerAd, 0, len(decoded.Data.FinalBannerAds.Nodes))
	for _, n := range decoded.Data.FinalBannerAds.Nodes {
		banners = append(banners, n.toDomain())
	}
	return banners, nil
}

func (n bannerNode) toDomain() domain.BannerAd {
	b := domain.BannerAd{ID: n.ID, Title: n.Title}
	f := n.Fields
	if f == nil {
		return b
	}

	if f.AdImage != nil && f.AdImage.Node != nil {
		b.AdImage = f.AdImage.Node.SourceURL
	}
	b.Link = strOrEmpty(f.Link)
	b.AdTitle = strOrEmpty(f.AddTitle)
	b.Slug = strOrEmpty(f.Slug)
	b.Category = firstString(f.Category)
	b.Priority = parse.LenientInt(f.Priority)
	b.Active = parse.LenientBool(f.Active)
	return b
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// firstString reads a select field that may be a string or a list of strings
func firstString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}
