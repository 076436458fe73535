package html

import (
	"regexp"
	"strings"
)

const (
	// NoPreview is shown for posts without body text
	NoPreview = "No preview available."
	// UntitledPost is shown for posts without a usable title
	UntitledPost = "Untitled Post"
)

var (
	bracketed   = regexp.MustCompile(`\[[^\]]*\]`)
	fraction    = regexp.MustCompile(`\b\d+/\d+\b`)
	countOf     = regexp.MustCompile(`(?i)\b\d+ of \d+\b`)
	bareURL     = regexp.MustCompile(`https?://\S+`)
	parenthesis = regexp.MustCompile(`\([^)]*\)`)
	credits     = regexp.MustCompile(`(?i)\b(?:Photo|Image|Source|Credit|Getty|Reuters|AFP|AP|PTI)\b.*`)
	spaceDot    = regexp.MustCompile(`\s+\.`)
	spaceComma  = regexp.MustCompile(`\s+,`)
)

// sentenceEnds includes the Devanagari danda
const sentenceEnds = ".?!।"

// CleanTitle decodes a rendered title and drops gallery counters and
// bracketed notes
func CleanTitle(title string) string {
	if title == "" {
		return UntitledPost
	}

	clean := DecodeEntities(title)
	clean = fraction.ReplaceAllString(clean, "")
	clean = countOf.ReplaceAllString(clean, "")
	clean = bracketed.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)

	if clean == "" {
		return UntitledPost
	}
	return clean
}

// CleanContent turns body HTML into a plain-text teaser of at most maxLength
// characters plus a trailing ellipsis.
func CleanContent(content string, maxLength int) string {
	if content == "" {
		return NoPreview
	}

	clean := StripHTML(content)
	clean = bracketed.ReplaceAllString(clean, "")
	clean = fraction.ReplaceAllString(clean, "")
	clean = countOf.ReplaceAllString(clean, "")
	clean = bareURL.ReplaceAllString(clean, "")
	clean = parenthesis.ReplaceAllString(clean, "")
	clean = credits.ReplaceAllString(clean, "")
	clean = spaceDot.ReplaceAllString(clean, ".")
	clean = spaceComma.ReplaceAllString(clean, ",")
	clean = CollapseWhitespace(clean)

	if clean == "" {
		return NoPreview
	}

	return truncateText(clean, maxLength)
}

// truncateText prefers a sentence end past half of the budget, then a word
// boundary past 70% of it, then a hard cut
func truncateText(text string, maxLength int) string {
	runes := []rune(text)
	if maxLength <= 0 || len(runes) <= maxLength {
		return text
	}

	truncated := runes[:maxLength]

	breakPoint := -1
	for i, r := range truncated {
		if strings.ContainsRune(sentenceEnds, r) {
			breakPoint = i
		}
	}
	if float64(breakPoint) > float64(maxLength)*0.5 {
		return string(truncated[:breakPoint+1]) + ".."
	}

	lastSpace := -1
	for i, r := range truncated {
		if r == ' ' {
			lastSpace = i
		}
	}
	if float64(lastSpace) > float64(maxLength)*0.7 {
		return string(truncated[:lastSpace]) + "..."
	}

	return string(truncated) + "..."
}
