package handlers

import (
	"net/http"

	"github.com/NathanBartolo/echo/internal/middleware"
	"github.com/NathanBartolo/echo/internal/models"
	"github.com/NathanBartolo/echo/internal/services"

	"github.com/gin-gonic/gin"
)

// PlaylistHandler serves playlist CRUD and song management
type PlaylistHandler struct {
	playlists *services.PlaylistService
}

func NewPlaylistHandler(playlists *services.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
}

type updatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CoverImage  *string `json:"coverImage"`
}

// addSongRequest accepts {"song": {...}} as well as a bare song object
type addSongRequest struct {
	Song *models.PlaylistSong `json:"song"`
	models.PlaylistSong
}

func (r *addSongRequest) song() models.PlaylistSong {
	if r.Song != nil {
		return *r.Song
	}
	return r.PlaylistSong
}

type reorderRequest struct {
	SongIDs []string `json:"songIds"`
}

// Create handles POST /api/playlists
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req createPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ErrPlaylistNameRequired)
		return
	}

	playlist, err := h.playlists.Create(c.Request.Context(), middleware.CurrentUser(c), services.PlaylistInput{
		Name:        req.Name,
		Description: req.Description,
		CoverImage:  req.CoverImage,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, playlist)
}

// ListForUser handles GET /api/playlists/user/:userId
func (h *PlaylistHandler) ListForUser(c *gin.Context) {
	playlists, err := h.playlists.ListForUser(c.Request.Context(), middleware.CurrentUser(c), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlists)
}

// Get handles GET /api/playlists/:id
func (h *PlaylistHandler) Get(c *gin.Context) {
	playlist, err := h.playlists.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}

// Update handles PUT /api/playlists/:id
func (h *PlaylistHandler) Update(c *gin.Context) {
	var req updatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ErrPlaylistNameRequired)
		return
	}

	playlist, err := h.playlists.Update(
		c.Request.Context(),
		middleware.CurrentUser(c),
		c.Param("id"),
		services.PlaylistUpdate{
			Name:        req.Name,
			Description: req.Description,
			CoverImage:  req.CoverImage,
		},
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}

// Delete handles DELETE /api/playlists/:id
func (h *PlaylistHandler) Delete(c *gin.Context) {
	if err := h.playlists.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Deleted")
}

// AddSong handles POST /api/playlists/:id/song
func (h *PlaylistHandler) AddSong(c *gin.Context) {
	var req addSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ErrSongDataRequired)
		return
	}

	playlist, err := h.playlists.AddSong(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.song())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}

// RemoveSong handles DELETE /api/playlists/:id/song/:songId
func (h *PlaylistHandler) RemoveSong(c *gin.Context) {
	playlist, err := h.playlists.RemoveSong(
		c.Request.Context(),
		middleware.CurrentUser(c),
		c.Param("id"),
		c.Param("songId"),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}

// Reorder handles PUT /api/playlists/:id/reorder
func (h *PlaylistHandler) Reorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, services.ErrInvalidSongOrder)
		return
	}

	playlist, err := h.playlists.ReorderSongs(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req.SongIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}
