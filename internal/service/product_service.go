package service

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/woodcrrests/scratchcard_api/internal/models"
	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

// ProductService handles product business logic, including cleanup of
// uploaded image files.
type ProductService struct {
	products  ProductStore
	uploadDir string
}

// NewProductService constructs a ProductService.
func NewProductService(products ProductStore, uploadDir string) *ProductService {
	return &ProductService{products: products, uploadDir: uploadDir}
}

// UpdateProductRequest represents a partial product update.
type UpdateProductRequest struct {
	Name         string `json:"name"`
	ProductValue *int   `json:"productValue"`
	IsMega       *bool  `json:"isMega"`
}

// CreateProduct stores a new product. imgPath is the public path of an
// already-saved upload, or empty for the default placeholder.
func (s *ProductService) CreateProduct(name string, productValue int, isMega bool, imgPath string) (*models.Product, error) {
	if productValue <= 0 {
		return nil, utils.Validationf("productValue must be greater than 0")
	}
	if imgPath == "" {
		imgPath = models.DefaultProductImage
	}

	product := &models.Product{
		Name:         name,
		Img:          imgPath,
		IsMega:       isMega,
		ProductValue: productValue,
	}
	if err := s.products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts retrieves all products ordered by value.
func (s *ProductService) ListProducts() ([]models.Product, error) {
	return s.products.List()
}

// UpdateProduct applies a partial update to a product.
func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.ProductValue != nil {
		if *req.ProductValue <= 0 {
			return nil, utils.Validationf("productValue must be greater than 0")
		}
		product.ProductValue = *req.ProductValue
	}
	if req.IsMega != nil {
		product.IsMega = *req.IsMega
	}

	if err := s.products.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product, its scratchcards (storage cascade) and any
// non-default image file backing it.
func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}

	count, err := s.products.Delete(id)
	if err != nil {
		return err
	}
	if count == 0 {
		return utils.ErrProductNotFound
	}

	utils.DeleteImage(s.uploadDir, product.Img)
	return nil
}
