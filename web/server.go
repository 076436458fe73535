// ABOUTME: Server-rendered HTML pages of the news site
// ABOUTME: Home, category and article pages from embedded templates plus the rotator socket

package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"nepalvoices-web/core/domain"
	"nepalvoices-web/core/errors"
	"nepalvoices-web/core/interfaces"
	"nepalvoices-web/core/news"
	"nepalvoices-web/pkg/featureflags"
)

//go:embed templates/*.html static/*
var assets embed.FS

const siteName = "Nepal Voices"

// PageService assembles page view models
type PageService interface {
	HomePage(ctx context.Context) (*news.HomePage, error)
	CategoryPage(ctx context.Context, slug string) (*news.CategoryPage, error)
	ArticlePage(ctx context.Context, slug string) (*news.ArticlePage, error)
	RotatorImages(ctx context.Context, slug string) ([]string, error)
	Navigation() []domain.NavCategory
}

// BannerSource returns banner ads in display order
type BannerSource interface {
	Banners(ctx context.Context, category string, activeOnly bool) []domain.BannerAd
}

// Clock reads the current Nepali date and time
type Clock interface {
	Now() (domain.NepaliDateTime, error)
}

// Options configure a Server
type Options struct {
	Pages   PageService
	Banners BannerSource
	Clock   Clock
	Flags   featureflags.Manager
	Logger  interfaces.Logger

	// RotatorInterval is the dwell time of the server-driven rotator
	RotatorInterval time.Duration
}

// Server renders the site's HTML pages
type Server struct {
	pages           PageService
	banners         BannerSource
	clock           Clock
	flags           featureflags.Manager
	logger          interfaces.Logger
	rotatorInterval time.Duration
	templates       map[string]*template.Template
	sessions        atomic.Int64
}

// pageData is the model every template receives
type pageData struct {
	Title        string
	Description  string
	CanonicalURL string
	Active       string
	Navigation   []domain.NavCategory
	Clock        *domain.NepaliDateTime
	Banners      []domain.BannerAd
	Year         int
	Summarizer   bool
	Page         interface{}
}

// errorPage is the body of the error template
type errorPage struct {
	Status  int
	Heading string
	Message string
}

// NewServer parses the embedded templates
func NewServer(opts Options) (*Server, error) {
	templates, err := parseTemplates(assets)
	if err != nil {
		return nil, errors.WrapError(err, "failed to parse templates")
	}

	flags := opts.Flags
	if flags == nil {
		flags = featureflags.NewStaticManager(featureflags.Defaults)
	}

	return &Server{
		pages:           opts.Pages,
		banners:         opts.Banners,
		clock:           opts.Clock,
		flags:           flags,
		logger:          opts.Logger,
		rotatorInterval: opts.RotatorInterval,
		templates:       templates,
	}, nil
}

// RegisterRoutes mounts the pages on r. Category pages are registered last
// so fixed paths such as /docs and /healthz take precedence.
func (s *Server) RegisterRoutes(r chi.Router) {
	static, _ := fs.Sub(assets, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Get("/", s.handleHome)
	r.Get("/news/{slug}", s.handleArticle)
	r.Get("/ws/rotator", s.handleRotator)
	r.Get("/{category}", s.handleCategory)
	r.NotFound(s.handleNotFound)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	page, err := s.pages.HomePage(r.Context())
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}

	data := s.newPageData(r, siteName, "")
	data.Description = "Nepal Voices: news, politics, society and culture from Nepal"
	data.Banners = s.activeBanners(r.Context(), "")
	data.Page = page
	s.render(w, r, "home.html", http.StatusOK, data)
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	page, err := s.pages.CategoryPage(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}

	data := s.newPageData(r, page.Category.English+" | "+siteName, page.Category.Slug)
	data.Banners = s.activeBanners(r.Context(), page.Category.Slug)
	data.Page = page
	s.render(w, r, "category.html", http.StatusOK, data)
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	page, err := s.pages.ArticlePage(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.renderFailure(w, r, err)
		return
	}

	data := s.newPageData(r, page.Title+" | "+siteName, "")
	data.CanonicalURL = page.CanonicalURL
	data.Description = page.Title
	data.Summarizer = s.flags.IsEnabled(r.Context(), featureflags.SummarizerEnabled)
	data.Page = articleView{
		ArticlePage:   page,
		RotatorSocket: s.flags.IsEnabled(r.Context(), featureflags.RotatorSocketEnabled),
	}
	s.render(w, r, "article.html", http.StatusOK, data)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, r, http.StatusNotFound)
}

// articleView adds rendering switches to the article model
type articleView struct {
	*news.ArticlePage
	RotatorSocket bool
}

func (s *Server) newPageData(r *http.Request, title, active string) pageData {
	data := pageData{
		Title:      title,
		Active:     active,
		Navigation: s.pages.Navigation(),
		Year:       time.Now().Year(),
	}
	if s.clock != nil {
		if now, err := s.clock.Now(); err == nil {
			data.Clock = &now
		}
	}
	return data
}

func (s *Server) activeBanners(ctx context.Context, category string) []domain.BannerAd {
	if s.banners == nil || !s.flags.IsEnabled(ctx, featureflags.BannersEnabled) {
		return nil
	}
	return s.banners.Banners(ctx, category, true)
}

// renderFailure maps a page error to the error template
func (s *Server) renderFailure(w http.ResponseWriter, r *http.Request, err error) {
	if errors.IsNotFound(err) {
		s.renderError(w, r, http.StatusNotFound)
		return
	}

	s.logError("Failed to build page", err, r)
	s.renderError(w, r, http.StatusBadGateway)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int) {
	page := errorPage{
		Status:  status,
		Heading: "Something went wrong",
		Message: "The news service is not responding right now. Please try again in a moment.",
	}
	if status == http.StatusNotFound {
		page.Heading = "Page not found"
		page.Message = "The page you are looking for does not exist or has been moved."
	}

	data := s.newPageData(r, page.Heading+" | "+siteName, "")
	data.Page = page
	s.render(w, r, "error.html", status, data)
}

// render executes into a buffer so template errors never produce half a page
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, status int, data pageData) {
	tmpl, ok := s.templates[name]
	if !ok {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logError("Failed to render template", err, r)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) logError(msg string, err error, r *http.Request) {
	if s.logger == nil {
		return
	}
	s.logger.Error(msg, map[string]interface{}{
		"path":  r.URL.Path,
		"error": err.Error(),
	})
}
