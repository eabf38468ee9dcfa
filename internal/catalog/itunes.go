package catalog

import (
	"strings"
	"time"

	"github.com/NathanBartolo/echo/internal/models"
)

// Artwork sizes substituted into the 100x100 thumbnail URL
const (
	artworkThumb  = "100x100"
	artworkMedium = "300x300"
	artworkLarge  = "600x600"
)

type searchResponse struct {
	ResultCount int           `json:"resultCount"`
	Results     []itunesTrack `json:"results"`
}

// itunesTrack is the subset of an iTunes Search API result used by Echo
type itunesTrack struct {
	WrapperType      string         `json:"wrapperType"`
	TrackID          models.TrackID `json:"trackId"`
	TrackName        string         `json:"trackName"`
	ArtistName       string         `json:"artistName"`
	CollectionName   string         `json:"collectionName"`
	ArtworkURL100    string         `json:"artworkUrl100"`
	PreviewURL       string         `json:"previewUrl"`
	ReleaseDate      string         `json:"releaseDate"`
	PrimaryGenreName string         `json:"primaryGenreName"`
	TrackTimeMillis  int64          `json:"trackTimeMillis"`
}

func artwork(url, size string) string {
	return strings.Replace(url, artworkThumb, size, 1)
}

// releaseYear extracts the year from an RFC 3339 release date
func releaseYear(date string) string {
	if date == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.Format("2006")
	}
	if len(date) >= 4 {
		return date[:4]
	}
	return ""
}

func (t itunesTrack) suggestion() models.CatalogSong {
	return models.CatalogSong{
		ID:              t.TrackID,
		TrackID:         t.TrackID,
		Title:           t.TrackName,
		Artist:          t.ArtistName,
		Album:           t.CollectionName,
		Cover:           artwork(t.ArtworkURL100, artworkMedium),
		PreviewURL:      t.PreviewURL,
		Year:            releaseYear(t.ReleaseDate),
		TrackTimeMillis: t.TrackTimeMillis,
	}
}

func (t itunesTrack) details() models.CatalogSong {
	return models.CatalogSong{
		ID:              t.TrackID,
		TrackID:         t.TrackID,
		Title:           t.TrackName,
		Artist:          t.ArtistName,
		Album:           t.CollectionName,
		Cover:           artwork(t.ArtworkURL100, artworkLarge),
		PreviewURL:      t.PreviewURL,
		ReleaseDate:     t.ReleaseDate,
		Genre:           t.PrimaryGenreName,
		TrackTimeMillis: t.TrackTimeMillis,
	}
}

func (t itunesTrack) featured() models.CatalogSong {
	return models.CatalogSong{
		ID:     t.TrackID,
		Title:  t.TrackName,
		Artist: t.ArtistName,
		Album:  t.CollectionName,
		Cover:  artwork(t.ArtworkURL100, artworkMedium),
	}
}
