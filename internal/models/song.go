package models

import (
	"encoding/json"
	"fmt"
)

// TrackID is a catalog track identifier. The catalog emits numeric ids while
// clients echo them back as strings, so both JSON forms are accepted.
type TrackID string

// UnmarshalJSON accepts a JSON string, number or null.
func (t *TrackID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TrackID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("track id must be a string or number: %w", err)
	}
	*t = TrackID(n.String())
	return nil
}

// FavoriteSong is a catalog track saved by a user. The id is unique within a
// user's favorites; adding the same id twice is rejected.
type FavoriteSong struct {
	ID         TrackID `bson:"id" json:"id"`
	Title      string  `bson:"title" json:"title"`
	Artist     string  `bson:"artist" json:"artist"`
	Album      string  `bson:"album,omitempty" json:"album,omitempty"`
	Cover      string  `bson:"cover,omitempty" json:"cover,omitempty"`
	PreviewURL string  `bson:"previewUrl,omitempty" json:"previewUrl,omitempty"`
}

// PlaylistSong is an entry in a playlist. ID identifies the entry itself, so
// the same TrackID can appear any number of times.
type PlaylistSong struct {
	ID         string  `bson:"id" json:"id"`
	TrackID    TrackID `bson:"trackId,omitempty" json:"trackId,omitempty"`
	Title      string  `bson:"title" json:"title"`
	Artist     string  `bson:"artist,omitempty" json:"artist,omitempty"`
	Album      string  `bson:"album,omitempty" json:"album,omitempty"`
	Cover      string  `bson:"cover,omitempty" json:"cover,omitempty"`
	PreviewURL string  `bson:"previewUrl,omitempty" json:"previewUrl,omitempty"`
}
