package handlers

import (
	"context"

	"nepalvoices-web/core/domain"
	"nepalvoices-web/core/images"
)

type mockPostLister struct {
	fetchPostsFunc func(ctx context.Context, first int) ([]domain.Post, error)
	lastFirst      int
}

func (m *mockPostLister) FetchPosts(ctx context.Context, first int) ([]domain.Post, error) {
	m.lastFirst = first
	if m.fetchPostsFunc != nil {
		return m.fetchPostsFunc(ctx, first)
	}
	return nil, nil
}

type mockArticles struct {
	markdownFunc func(ctx context.Context, slug string) (string, error)
}

func (m *mockArticles) PostImages(post domain.Post) []string {
	return images.ExtractImages(post.Content, "https://news.nepalvoices.com")
}

func (m *mockArticles) ArticleMarkdown(ctx context.Context, slug string) (string, error) {
	if m.markdownFunc != nil {
		return m.markdownFunc(ctx, slug)
	}
	return "", nil
}

type mockCommentSink struct {
	createFunc func(ctx context.Context, input domain.CommentInput) (*domain.CommentResult, error)
	received   []domain.CommentInput
}

func (m *mockCommentSink) CreateComment(ctx context.Context, input domain.CommentInput) (*domain.CommentResult, error) {
	m.received = append(m.received, input)
	if m.createFunc != nil {
		return m.createFunc(ctx, input)
	}
	return &domain.CommentResult{Success: true}, nil
}

type mockBannerSource struct {
	banners      []domain.BannerAd
	lastCategory string
	lastActive   bool
	calls        int
}

func (m *mockBannerSource) Banners(ctx context.Context, category string, activeOnly bool) []domain.BannerAd {
	m.calls++
	m.lastCategory = category
	m.lastActive = activeOnly
	return m.banners
}

type mockClock struct {
	now domain.NepaliDateTime
	err error
}

func (m *mockClock) Now() (domain.NepaliDateTime, error) {
	return m.now, m.err
}

type pipelineResolver struct{}

func (pipelineResolver) ResolveImages(src domain.ArticleImageSource) domain.Resolution {
	return images.Resolve(src, "https://news.nepalvoices.com")
}
