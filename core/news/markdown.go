package news

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"golang.org/x/net/html"
)

var (
	mdConverter     *converter.Converter
	mdConverterOnce sync.Once
)

// markdownConverter drops data URI images, which lazy-loading plugins leave
// behind as placeholders
func markdownConverter() *converter.Converter {
	mdConverterOnce.Do(func() {
		mdConverter = converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		)
		mdConverter.Register.RendererFor("img", converter.TagTypeInline,
			func(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
				src := dom.GetAttributeOr(n, "src", "")
				if !strings.HasPrefix(src, "data:") {
					return converter.RenderTryNext
				}
				return converter.RenderSuccess
			},
			converter.PriorityEarly,
		)
	})
	return mdConverter
}

// ArticleMarkdown renders an article as CommonMark: the cleaned title, the
// publication date and the body with the card thumbnail removed
func (s *Service) ArticleMarkdown(ctx context.Context, slug string) (string, error) {
	post, err := s.content.FetchPostBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	return RenderMarkdown(s.article(post))
}

// RenderMarkdown converts an assembled article page to Markdown
func RenderMarkdown(page *ArticlePage) (string, error) {
	body, err := markdownConverter().ConvertString(page.Resolution.CleanedBodyHTML)
	if err != nil {
		return "", fmt.Errorf("markdown conversion: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(page.Title)
	sb.WriteString("\n\n")
	if page.Date != "" {
		sb.WriteString("*")
		sb.WriteString(page.Date)
		sb.WriteString("*\n\n")
	}
	if page.Resolution.CardThumbnail != "" {
		fmt.Fprintf(&sb, "![%s](%s)\n\n", page.Title, page.Resolution.CardThumbnail)
	}
	sb.WriteString(strings.TrimSpace(body))
	sb.WriteString("\n")

	return sb.String(), nil
}
