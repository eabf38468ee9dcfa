package core

import (
	"context"

	"github.com/NathanBartolo/echo/internal/models"
)

// Catalog is the read-only music catalog proxied by the API.
type Catalog interface {
	Search(ctx context.Context, term string, limit int) ([]models.CatalogSong, error)
	// Lookup returns catalog.ErrNotFound when the id does not resolve.
	Lookup(ctx context.Context, id string) (*models.CatalogSong, error)
	Featured(ctx context.Context) ([]models.CatalogSong, error)
}
