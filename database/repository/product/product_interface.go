package productRepo

import (
	"pitchbook/models"
)

// ProductRepository defines the read surface the chat core consumes.
type ProductRepository interface {
	// GetAll retrieves the full product catalog.
	GetAll() ([]models.Product, error)
	// GetByName retrieves the first product whose name contains the given
	// text, case-insensitively. A miss is (nil, nil), not an error.
	GetByName(name string) (*models.Product, error)
	// GetTopSelling retrieves up to limit products ordered by total sold, descending.
	GetTopSelling(limit int) ([]models.Product, error)
}
