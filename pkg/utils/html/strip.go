// ABOUTME: HTML utilities for stripping tags, decoding entities and sanitizing bodies
// ABOUTME: Built on bluemonday policies shared across the application

package html

import (
	stdhtml "html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy

	articleOnce   sync.Once
	articlePolicy *bluemonday.Policy
)

// textPolicy drops every tag, and the content of script and style elements
func textPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
		strictPolicy.AddSpaceWhenStrippingTag(true)
	})
	return strictPolicy
}

// ArticlePolicy is the UGC policy used for rendering WordPress bodies. Lazy
// loading attributes survive so the browser can still load deferred images.
func ArticlePolicy() *bluemonday.Policy {
	articleOnce.Do(func() {
		articlePolicy = bluemonday.UGCPolicy()
		articlePolicy.AllowAttrs("data-src", "data-lazy-src", "loading", "decoding", "srcset", "sizes").OnElements("img")
		articlePolicy.AllowAttrs("class").Globally()
		articlePolicy.AllowElements("figure", "figcaption")
		articlePolicy.AllowIFrames()
		articlePolicy.AllowAttrs("src", "width", "height", "allowfullscreen", "frameborder").OnElements("iframe")
		articlePolicy.RequireNoReferrerOnLinks(true)
	})
	return articlePolicy
}

// SanitizeArticle removes scripts, event handlers and other unsafe markup
func SanitizeArticle(body string) string {
	return ArticlePolicy().Sanitize(body)
}

// StripHTML removes HTML tags, script and style content, decodes entities and
// collapses whitespace
func StripHTML(text string) string {
	if text == "" {
		return ""
	}
	return CollapseWhitespace(DecodeEntities(textPolicy().Sanitize(text)))
}

// DecodeEntities decodes HTML entities; non-breaking spaces become plain spaces
func DecodeEntities(text string) string {
	return strings.ReplaceAll(stdhtml.UnescapeString(text), "\u00a0", " ")
}

// CollapseWhitespace trims text and joins runs of whitespace with one space
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
