package images

import (
	"regexp"
	"strings"
)

var (
	// sizeSuffix matches a WordPress rendition suffix such as "-300x200." and
	// keeps the dot of the extension.
	sizeSuffix = regexp.MustCompile(`-\d+x\d+\.`)
	schemeMark = regexp.MustCompile(`^https?:`)
)

// NormalizedIdentity reduces an image URL to the file name WordPress shares
// between all renditions of the same upload:
//
//	https://cdn.example.com/2024/05/photo-300x200.jpg?ver=2  ->  photo.jpg
//
// Two URLs referring to different sizes of one image have equal identities.
// An empty result never matches anything.
func NormalizedIdentity(rawURL string) string {
	name := rawURL
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	if loc := sizeSuffix.FindStringIndex(name); loc != nil {
		name = name[:loc[0]] + name[loc[1]-1:]
	}

	if i := strings.Index(name, "?"); i >= 0 {
		name = name[:i]
	}

	return schemeMark.ReplaceAllString(name, "")
}

// SameImage reports whether two URLs have the same non-empty identity
func SameImage(a, b string) bool {
	id := NormalizedIdentity(a)
	return id != "" && id == NormalizedIdentity(b)
}
