package news

import (
	"context"
	"sync"

	"nepalvoices-web/core/domain"
	"nepalvoices-web/core/errors"
)

// mockContentSource is a func-field implementation of interfaces.ContentSource
type mockContentSource struct {
	fetchPostsFunc    func(ctx context.Context, first int) ([]domain.Post, error)
	fetchPostFunc     func(ctx context.Context, slug string) (*domain.Post, error)
	fetchHomeFunc     func(ctx context.Context) (*domain.HomePagePosts, error)
	fetchCategoryFunc func(ctx context.Context, slug string, first int) ([]domain.Post, error)
	fetchRelatedFunc  func(ctx context.Context, category, excludeID string, limit int) ([]domain.Post, error)

	mu    sync.Mutex
	calls []string
}

func (m *mockContentSource) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockContentSource) called(call string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (m *mockContentSource) FetchPosts(ctx context.Context, first int) ([]domain.Post, error) {
	m.record("posts")
	if m.fetchPostsFunc != nil {
		return m.fetchPostsFunc(ctx, first)
	}
	return []domain.Post{}, nil
}

func (m *mockContentSource) FetchPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	m.record("post")
	if m.fetchPostFunc != nil {
		return m.fetchPostFunc(ctx, slug)
	}
	return nil, &errors.NotFoundError{Resource: "post", ID: slug}
}

func (m *mockContentSource) FetchHomePagePosts(ctx context.Context) (*domain.HomePagePosts, error) {
	m.record("home")
	if m.fetchHomeFunc != nil {
		return m.fetchHomeFunc(ctx)
	}
	return &domain.HomePagePosts{}, nil
}

func (m *mockContentSource) FetchCategoryPosts(ctx context.Context, slug string, first int) ([]domain.Post, error) {
	m.record("category")
	if m.fetchCategoryFunc != nil {
		return m.fetchCategoryFunc(ctx, slug, first)
	}
	return []domain.Post{}, nil
}

func (m *mockContentSource) FetchRelatedPosts(ctx context.Context, category, excludeID string, limit int) ([]domain.Post, error) {
	m.record("related")
	if m.fetchRelatedFunc != nil {
		return m.fetchRelatedFunc(ctx, category, excludeID, limit)
	}
	return []domain.Post{}, nil
}

type staticDirectory map[string]domain.NavCategory

func (d staticDirectory) Lookup(slug string) (domain.NavCategory, bool) {
	c, ok := d[slug]
	return c, ok
}

func (d staticDirectory) Categories() []domain.NavCategory {
	out := make([]domain.NavCategory, 0, len(d))
	for _, c := range d {
		out = append(out, c)
	}
	return out
}

var errColorMiss = &errors.NotFoundError{Resource: "color"}

type mockColors struct {
	known map[string]domain.RGBColor
}

func (m *mockColors) GetCachedColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	if c, ok := m.known[imageURL]; ok {
		return &c, nil
	}
	return nil, errColorMiss
}

type mockWarmer struct {
	batches [][]string
}

func (m *mockWarmer) Warm(urls []string) {
	m.batches = append(m.batches, append([]string(nil), urls...))
}

type mockLogger struct {
	mu    sync.Mutex
	warns []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}

func (m *mockLogger) Info(msg string, fields map[string]interface{}) {}

func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warns = append(m.warns, msg)
}

func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
