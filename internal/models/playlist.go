package models

import (
	"time"

	"gorm.io/datatypes"
)

// Playlist belongs to exactly one user. Songs keep insertion order and may
// repeat the same catalog track.
type Playlist struct {
	ID          string                            `gorm:"primaryKey" bson:"_id" json:"id"`
	UserID      string                            `gorm:"index;not null" bson:"userId" json:"userId"`
	Name        string                            `gorm:"not null" bson:"name" json:"name"`
	Description string                            `bson:"description" json:"description"`
	CoverImage  string                            `gorm:"type:text" bson:"coverImage" json:"coverImage"`
	Songs       datatypes.JSONSlice[PlaylistSong] `bson:"songs" json:"songs"`

	CreatedAt time.Time `gorm:"index" bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// OwnedBy reports whether userID owns the playlist.
func (p *Playlist) OwnedBy(userID string) bool {
	return p.UserID == userID
}

// Normalize replaces a nil song list with an empty one so it serializes as [].
func (p *Playlist) Normalize() {
	if p.Songs == nil {
		p.Songs = datatypes.JSONSlice[PlaylistSong]{}
	}
}

// SongIndex returns the index of the song entry with the given id, or -1.
func (p *Playlist) SongIndex(songID string) int {
	for i, s := range p.Songs {
		if s.ID == songID {
			return i
		}
	}
	return -1
}
