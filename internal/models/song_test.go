package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTrackID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TrackID
		wantErr bool
	}{
		{name: "number", input: `{"id":1440857781}`, want: "1440857781"},
		{name: "string", input: `{"id":"1440857781"}`, want: "1440857781"},
		{name: "null", input: `{"id":null}`, want: ""},
		{name: "object", input: `{"id":{"x":1}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fav FavoriteSong
			err := json.Unmarshal([]byte(tt.input), &fav)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fav.ID != tt.want {
				t.Errorf("expected %q, got %q", tt.want, fav.ID)
			}
		})
	}
}

func TestTrackID_MarshalsAsString(t *testing.T) {
	b, err := json.Marshal(FavoriteSong{ID: "42", Title: "t", Artist: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `{"id":"42","title":"t","artist":"a"}` {
		t.Errorf("unexpected encoding: %s", b)
	}
}

func TestPlaylist_Helpers(t *testing.T) {
	p := &Playlist{UserID: "owner"}
	p.Normalize()

	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if songs, ok := decoded["songs"].([]any); !ok || len(songs) != 0 {
		t.Errorf("expected songs to encode as [], got %v", decoded["songs"])
	}

	p.Songs = append(p.Songs, PlaylistSong{ID: "a"}, PlaylistSong{ID: "b"})
	if idx := p.SongIndex("b"); idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
	if idx := p.SongIndex("missing"); idx != -1 {
		t.Errorf("expected -1, got %d", idx)
	}
	if !p.OwnedBy("owner") || p.OwnedBy("other") {
		t.Error("OwnedBy returned the wrong result")
	}
}

func TestUser_Helpers(t *testing.T) {
	u := &User{Role: RoleAdmin, Favorites: []FavoriteSong{{ID: "1"}, {ID: "2"}}}
	if !u.IsAdmin() {
		t.Error("expected admin")
	}
	if u.HasPassword() {
		t.Error("expected no password")
	}
	if u.FindFavorite("2") != 1 || u.FindFavorite("3") != -1 {
		t.Error("FindFavorite returned the wrong index")
	}

	b, _ := json.Marshal(&User{PasswordHash: "secret"})
	if strings.Contains(string(b), "secret") {
		t.Errorf("password hash leaked into JSON: %s", b)
	}
}
