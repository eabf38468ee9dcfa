package handlers

import (
	"net/http"

	"github.com/NathanBartolo/echo/internal/middleware"
	"github.com/NathanBartolo/echo/internal/models"
	"github.com/NathanBartolo/echo/internal/services"

	"github.com/gin-gonic/gin"
)

// FavoriteHandler serves the caller's favorite songs
type FavoriteHandler struct {
	favorites *services.FavoriteService
}

func NewFavoriteHandler(favorites *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// List handles GET /api/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	favorites, err := h.favorites.List(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

// Add handles POST /api/favorites
func (h *FavoriteHandler) Add(c *gin.Context) {
	var song models.FavoriteSong
	if err := c.ShouldBindJSON(&song); err != nil {
		respondError(c, services.ErrSongDataRequired)
		return
	}

	favorites, err := h.favorites.Add(c.Request.Context(), middleware.CurrentUser(c).ID, song)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

// Remove handles DELETE /api/favorites/:songId
func (h *FavoriteHandler) Remove(c *gin.Context) {
	favorites, err := h.favorites.Remove(
		c.Request.Context(),
		middleware.CurrentUser(c).ID,
		models.TrackID(c.Param("songId")),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}
