package repository

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/woodcrrests/scratchcard_api/internal/models"
)

const productSelectCols = `id, name, img, is_mega, product_value, created_at, updated_at`

// ProductRepository provides data access methods for the products table.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List retrieves all products ordered by value, cheapest first.
func (r *ProductRepository) List() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Select(&products,
		"SELECT "+productSelectCols+" FROM products ORDER BY product_value ASC")
	if err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID finds a product by id.
func (r *ProductRepository) GetByID(id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.Get(&p, "SELECT "+productSelectCols+" FROM products WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product.
func (r *ProductRepository) Create(p *models.Product) error {
	const q = `INSERT INTO products (name, img, is_mega, product_value)
              VALUES ($1, $2, $3, $4)
              RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q, p.Name, p.Img, p.IsMega, p.ProductValue).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// Update updates an existing product.
func (r *ProductRepository) Update(p *models.Product) error {
	const q = `UPDATE products SET
                name = $1, img = $2, is_mega = $3, product_value = $4, updated_at = NOW()
              WHERE id = $5
              RETURNING updated_at`

	return r.db.QueryRowx(q, p.Name, p.Img, p.IsMega, p.ProductValue, p.ID).
		Scan(&p.UpdatedAt)
}

// Delete removes a product by id. Its scratchcards go with it via
// ON DELETE CASCADE. Returns the number of deleted rows.
func (r *ProductRepository) Delete(id uuid.UUID) (int64, error) {
	res, err := r.db.Exec("DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
