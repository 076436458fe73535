// ABOUTME: Extractive article summarizer used by the summary button
// ABOUTME: Strips markup and returns the leading characters of the article text

package summary

import (
	"strings"

	"nepalvoices-web/core/errors"
	"nepalvoices-web/pkg/utils/html"
)

// DefaultMaxChars is the summary length before the ellipsis
const DefaultMaxChars = 500

// ErrNoText is the message returned for empty input
const ErrNoText = "No text provided for summarization"

// Service summarizes article text
type Service struct {
	maxChars int
}

// NewService creates a summarizer; maxChars <= 0 means DefaultMaxChars
func NewService(maxChars int) *Service {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Service{maxChars: maxChars}
}

// Summarize removes scripts, styles and tags, collapses whitespace and cuts
// the text to the configured number of characters followed by "...".
func (s *Service) Summarize(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &errors.ValidationError{Field: "text", Message: ErrNoText}
	}

	clean := html.StripHTML(text)

	runes := []rune(clean)
	if len(runes) <= s.maxChars {
		return clean, nil
	}
	return string(runes[:s.maxChars]) + "...", nil
}
