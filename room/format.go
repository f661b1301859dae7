package room

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	NotAvailable = "N/A"
	MaxPriceTier = 4

	defaultAlt = "Restaurant image"
)

// FormatPrice renders a price tier as dollar signs. The tier is clamped to
// [0, MaxPriceTier]; zero and absent tiers render as N/A.
func FormatPrice(level *int) string {
	tier := 0
	if level != nil {
		tier = max(0, min(MaxPriceTier, *level))
	}
	if tier == 0 {
		return NotAvailable
	}
	return strings.Repeat("$", tier)
}

func FormatRating(rating *float64, reviews *int) string {
	r := NotAvailable
	if rating != nil {
		r = strconv.FormatFloat(*rating, 'f', -1, 64)
	}
	n := 0
	if reviews != nil {
		n = *reviews
	}
	return fmt.Sprintf("Rating: %s (%d reviews)", r, n)
}

func DisplayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return NotAvailable
	}
	return name
}

// Image is one displayed image slot. It falls back to a placeholder when the
// reference is empty, and at most once more when loading fails.
type Image struct {
	URL      string
	Alt      string
	fallback string
	fellBack bool
}

func NewImage(url, name, fallback string) *Image {
	img := &Image{URL: url, Alt: defaultAlt, fallback: fallback}
	if strings.TrimSpace(name) != "" {
		img.Alt = "Photo of " + name
	}
	if img.URL == "" {
		img.URL = fallback
	}
	return img
}

// LoadFailed switches the slot to the fallback image. It reports whether a
// switch happened; later failures are ignored so a broken fallback cannot loop.
func (i *Image) LoadFailed() bool {
	if i.fellBack {
		return false
	}
	i.fellBack = true
	i.URL = i.fallback
	i.Alt = defaultAlt
	return true
}

func (i *Image) FellBack() bool {
	return i.fellBack
}
