package models

// CatalogSong is a track as exposed by the catalog proxy endpoints.
// Search and lookup results carry both id and trackId; featured entries
// carry id only.
type CatalogSong struct {
	ID              TrackID `json:"id"`
	TrackID         TrackID `json:"trackId,omitempty"`
	Title           string  `json:"title"`
	Artist          string  `json:"artist"`
	Album           string  `json:"album,omitempty"`
	Cover           string  `json:"cover"`
	PreviewURL      string  `json:"previewUrl,omitempty"`
	Year            string  `json:"year,omitempty"`
	ReleaseDate     string  `json:"releaseDate,omitempty"`
	Genre           string  `json:"genre,omitempty"`
	TrackTimeMillis int64   `json:"trackTimeMillis,omitempty"`
}
