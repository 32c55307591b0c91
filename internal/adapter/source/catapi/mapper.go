package catapi

import (
	"log/slog"

	"github.com/mmcdole/gatos/internal/domain"
)

// MapImages converts API records to domain images, keeping source order.
// Records without an id or url cannot be rendered or favorited and are dropped.
func MapImages(items []ImageResponse, logger *slog.Logger) []domain.Image {
	images := make([]domain.Image, 0, len(items))
	for i, item := range items {
		if item.ID == "" || item.URL == "" {
			logger.Warn("dropping incomplete image record", "index", i, "id", item.ID)
			continue
		}
		images = append(images, MapImage(item))
	}
	return images
}

// MapImage converts a single API record
func MapImage(item ImageResponse) domain.Image {
	var breeds []string
	for _, b := range item.Breeds {
		if b.Name != "" {
			breeds = append(breeds, b.Name)
		}
	}
	return domain.Image{
		ID:     item.ID,
		URL:    item.URL,
		Width:  item.Width,
		Height: item.Height,
		Breeds: breeds,
	}
}
