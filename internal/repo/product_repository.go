package repo

import (
	"errors"

	"github.com/dmarket/dmarket-api/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
}

// ErrProductNotFound is returned when no row matches the requested id.
var ErrProductNotFound = errors.New("product not found")
