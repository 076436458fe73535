// ABOUTME: Banner ad domain model loaded from the ads GraphQL source
// ABOUTME: Provides ordering and activity helpers used by the ads service

package domain

import "sort"

// BannerAd is a sponsored banner
type BannerAd struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	AdTitle  string `json:"adTitle"`
	Slug     string `json:"slug,omitempty"`
	Category string `json:"category,omitempty"`
	AdImage  string `json:"adImage,omitempty"`
	Link     string `json:"link,omitempty"`
	Priority int    `json:"priority"`
	Active   bool   `json:"active"`
}

// SortBannersByPriority orders banners by descending priority, keeping input
// order between equal priorities
func SortBannersByPriority(banners []BannerAd) {
	sort.SliceStable(banners, func(i, j int) bool {
		return banners[i].Priority > banners[j].Priority
	})
}

// ActiveBanners returns the banners flagged active
func ActiveBanners(banners []BannerAd) []BannerAd {
	active := make([]BannerAd, 0, len(banners))
	for _, b := range banners {
		if b.Active {
			active = append(active, b)
		}
	}
	return active
}
