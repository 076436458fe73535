// ABOUTME: Extracts the ordered, de-duplicated image URLs referenced by article HTML
// ABOUTME: Handles lazy-loading attributes, data URI placeholders and relative URLs

package images

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// lazyAttrs are read before src, in order
var lazyAttrs = []string{"data-src", "data-lazy-src"}

const dataImagePrefix = "data:image"

// ExtractImages returns every distinct image URL in bodyHTML in first-seen order.
// Root-relative URLs are resolved against origin. Malformed or empty markup
// yields an empty slice.
func ExtractImages(bodyHTML, origin string) []string {
	images := make([]string, 0)
	if strings.TrimSpace(bodyHTML) == "" {
		return images
	}

	doc, err := parseFragment(bodyHTML)
	if err != nil {
		return images
	}

	seen := make(map[string]struct{})
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src := imageSource(img)
		if src == "" {
			return
		}
		src = NormalizeURL(src, origin)
		if _, dup := seen[src]; dup {
			return
		}
		seen[src] = struct{}{}
		images = append(images, src)
	})

	return images
}

// NormalizeURL makes protocol-relative and root-relative URLs absolute
func NormalizeURL(src, origin string) string {
	switch {
	case strings.HasPrefix(src, "//"):
		return "https:" + src
	case strings.HasPrefix(src, "/"):
		return strings.TrimRight(origin, "/") + src
	default:
		return src
	}
}

// imageSource picks the effective source of an <img>. A data URI placeholder in
// the chosen attribute defers to the lazy-loading attributes; if those are also
// empty or placeholders the image is skipped.
func imageSource(img *goquery.Selection) string {
	src := firstAttr(img, lazyAttrs...)
	if src == "" {
		src = img.AttrOr("src", "")
	}

	if strings.HasPrefix(src, dataImagePrefix) {
		src = firstAttr(img, lazyAttrs...)
		if strings.HasPrefix(src, dataImagePrefix) {
			return ""
		}
	}

	return src
}

func firstAttr(img *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v := img.AttrOr(name, ""); v != "" {
			return v
		}
	}
	return ""
}

// parseFragment parses body markup in a <body> context and hangs the result
// off a detached <div> so the fragment can be serialized back without the
// html/head/body wrapper.
func parseFragment(bodyHTML string) (*goquery.Document, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(bodyHTML), context)
	if err != nil {
		return nil, err
	}

	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}

	return goquery.NewDocumentFromNode(root), nil
}
