package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/NathanBartolo/echo/internal/catalog"
	"github.com/NathanBartolo/echo/internal/core"

	"github.com/gin-gonic/gin"
)

const (
	defaultSearchLimit = 5
	maxSearchLimit     = 50
)

// CatalogHandler proxies the public song catalog
type CatalogHandler struct {
	catalog core.Catalog
}

func NewCatalogHandler(c core.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// Search handles GET /api/search?q=&limit=
func (h *CatalogHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search query"})
		return
	}

	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, maxSearchLimit)
		}
	}

	songs, err := h.catalog.Search(c.Request.Context(), q, limit)
	if err != nil {
		respondServerError(c, err, "Failed to fetch suggestions")
		return
	}
	c.JSON(http.StatusOK, songs)
}

// Song handles GET /api/song/:id
func (h *CatalogHandler) Song(c *gin.Context) {
	song, err := h.catalog.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Song not found"})
			return
		}
		respondServerError(c, err, "Failed to fetch song details")
		return
	}
	c.JSON(http.StatusOK, song)
}

// Featured handles GET /api/featured
func (h *CatalogHandler) Featured(c *gin.Context) {
	songs, err := h.catalog.Featured(c.Request.Context())
	if err != nil {
		respondServerError(c, err, "Failed to fetch featured songs")
		return
	}
	c.JSON(http.StatusOK, songs)
}
