package models

import (
	"time"

	"gorm.io/datatypes"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the account aggregate. Favorites are embedded and only ever written
// together with the owning row.
type User struct {
	ID           string                            `gorm:"primaryKey" bson:"_id" json:"id"`
	Name         string                            `gorm:"not null" bson:"name" json:"name"`
	Email        string                            `gorm:"uniqueIndex;not null" bson:"email" json:"email"`
	PasswordHash string                            `bson:"passwordHash,omitempty" json:"-"` // empty for Google-only accounts
	Role         string                            `gorm:"not null;default:'user'" bson:"role" json:"role"`
	GoogleID     string                            `gorm:"uniqueIndex:idx_users_google_id_unique,where:google_id <> ''" bson:"googleId,omitempty" json:"googleId,omitempty"`
	Avatar       string                            `gorm:"type:text" bson:"avatar,omitempty" json:"avatar,omitempty"`
	Favorites    datatypes.JSONSlice[FavoriteSong] `bson:"favorites" json:"favorites"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsAdmin returns true if the user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPassword reports whether the account can log in with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// FindFavorite returns the index of the favorite with the given id, or -1.
func (u *User) FindFavorite(id TrackID) int {
	for i, fav := range u.Favorites {
		if fav.ID == id {
			return i
		}
	}
	return -1
}

// Profile is the public projection returned alongside tokens.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile returns the public view of the user.
func (u *User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}
