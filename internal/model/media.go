package model

import (
	"time"

	"github.com/fhuszti/event-medias-go/internal/uuid"
)

// AssetKind is the category of an ingested file.
type AssetKind string

const (
	AssetKindImage AssetKind = "image"
	AssetKindVideo AssetKind = "video"
)

func (k AssetKind) Valid() bool {
	return k == AssetKindImage || k == AssetKindVideo
}

// Prefix is the storage folder objects of this kind live under.
func (k AssetKind) Prefix() string {
	switch k {
	case AssetKindImage:
		return "images"
	case AssetKindVideo:
		return "videos"
	default:
		return ""
	}
}

// MediaAsset is a catalog entry pointing at a file already live on the CDN.
type MediaAsset struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
