package news

import (
	"context"

	"nepalvoices-web/core/domain"
	"nepalvoices-web/core/images"
	htmlutil "nepalvoices-web/pkg/utils/html"
	timeutil "nepalvoices-web/pkg/utils/time"
)

// cardBuilder builds the cards of one page, attaching cached colors and
// collecting misses so they are warmed in a single batch
type cardBuilder struct {
	ctx      context.Context
	resolver *images.Resolver
	colors   ColorLookup
	warmer   ColorWarmer
	misses   []string
	seen     map[string]struct{}
}

func (s *Service) newCardBuilder(ctx context.Context) *cardBuilder {
	return &cardBuilder{
		ctx:      ctx,
		resolver: s.resolver,
		colors:   s.colors,
		warmer:   s.warmer,
		seen:     make(map[string]struct{}),
	}
}

func (cb *cardBuilder) card(post domain.Post, excerptLength int) domain.Card {
	return cb.withColor(buildCard(post, cb.resolver, excerptLength))
}

func (cb *cardBuilder) cards(posts []domain.Post, excerptLength int) []domain.Card {
	out := make([]domain.Card, 0, len(posts))
	for _, p := range posts {
		out = append(out, cb.card(p, excerptLength))
	}
	return out
}

// relatedCards show every body image in a slider, or the featured image when
// the body has none
func (cb *cardBuilder) relatedCards(posts []domain.Post) []domain.Card {
	out := make([]domain.Card, 0, len(posts))
	for _, p := range posts {
		card := buildCard(p, cb.resolver, CardExcerptLength)
		contentImages := cb.resolver.Extract(p.Content)
		switch {
		case len(contentImages) > 0:
			card.Images = contentImages
		case p.FeaturedImageURL() != "":
			card.Images = []string{p.FeaturedImageURL()}
		default:
			card.Images = []string{}
		}
		out = append(out, cb.withColor(card))
	}
	return out
}

func (cb *cardBuilder) withColor(card domain.Card) domain.Card {
	thumb := card.Thumbnail()
	if thumb == "" || cb.colors == nil {
		return card
	}

	if color, err := cb.colors.GetCachedColor(cb.ctx, thumb); err == nil {
		card.Color = color
		return card
	}

	if _, ok := cb.seen[thumb]; !ok {
		cb.seen[thumb] = struct{}{}
		cb.misses = append(cb.misses, thumb)
	}
	return card
}

// flush hands color misses to the warmer
func (cb *cardBuilder) flush() {
	if cb.warmer == nil || len(cb.misses) == 0 {
		return
	}
	cb.warmer.Warm(cb.misses)
	cb.misses = nil
}

// buildCard applies the teaser rules: cleaned title and excerpt, and the
// featured image or else the first body image
func buildCard(post domain.Post, resolver *images.Resolver, excerptLength int) domain.Card {
	return domain.Card{
		ID:      post.ID,
		Title:   htmlutil.CleanTitle(post.Title),
		Excerpt: htmlutil.CleanContent(post.Content, excerptLength),
		Link:    PostPath(post.Slug),
		Date:    timeutil.FormatLongDate(post.Date),
		Images:  images.CardImages(post.FeaturedImageURL(), resolver.Extract(post.Content)),
	}
}
