package domain

import (
	"fmt"
	"strings"
)

// Image is a single record returned by the image source
type Image struct {
	ID     string   // Source-assigned unique identifier
	URL    string   // Locator for the image asset
	Width  int      // Pixel width (0 if unknown)
	Height int      // Pixel height (0 if unknown)
	Breeds []string // Breed names, empty for most images
}

// Label returns the searchable text for a card: the id, then BreedList if any
func (i Image) Label() string {
	if len(i.Breeds) == 0 {
		return i.ID
	}
	return i.ID + " " + i.BreedList()
}

// BreedList returns the breed names as displayed on a card
func (i Image) BreedList() string {
	return strings.Join(i.Breeds, ", ")
}

// Dimensions returns "WxH" or an empty string when the source did not report a size
func (i Image) Dimensions() string {
	if i.Width <= 0 || i.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", i.Width, i.Height)
}
