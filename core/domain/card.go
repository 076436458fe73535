// ABOUTME: Card view model for list views and the RGBColor placeholder type
// ABOUTME: Cards are built from posts by the news service

package domain

import "fmt"

// RGBColor represents an RGB color value
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// CSS renders the color as an rgb() expression
func (c RGBColor) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Card is a teaser for a post in a list view
type Card struct {
	ID      string
	Title   string
	Excerpt string
	Link    string
	Date    string
	Images  []string

	// Color is the prominent color of the first image, nil until computed
	Color *RGBColor
}

// Thumbnail returns the first card image or an empty string
func (c Card) Thumbnail() string {
	if len(c.Images) == 0 {
		return ""
	}
	return c.Images[0]
}
