package models

import (
	"time"
)

// GalleryItem is a single gallery entry as served by the gallery API.
type GalleryItem struct {
	ID        int64     `json:"id"`
	ImageURL  string    `json:"image_url"`
	Character string    `json:"character"`
	Place     string    `json:"place"`
	Caption   string    `json:"caption"`
	MapsURL   string    `json:"maps_url"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	IsActive  bool      `json:"is_active"`
}

// GalleryPage is one page of the gallery listing.
type GalleryPage struct {
	Items       []GalleryItem
	TotalPages  int
	CurrentPage int
	TotalItems  int
}

const (
	AllCharacters = "All Character"
	AllPlaces     = "All Place"
)

// FilterState holds the selected character and place. Each selector is either
// its sentinel or a catalogue id.
type FilterState struct {
	Character string `json:"character"`
	Place     string `json:"place"`
}

func DefaultFilter() FilterState {
	return FilterState{
		Character: AllCharacters,
		Place:     AllPlaces,
	}
}

// GalleryQuery is a listing request. Empty Character/Place mean "no filter".
type GalleryQuery struct {
	Page      int
	Limit     int
	Character string
	Place     string
}
