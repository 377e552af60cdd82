package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/woodcrrests/scratchcard_api/internal/service"
	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

// ProductHandler handles product-related HTTP endpoints.
type ProductHandler struct {
	productService *service.ProductService
	uploadDir      string
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService, uploadDir string) *ProductHandler {
	return &ProductHandler{productService: productService, uploadDir: uploadDir}
}

// GetProducts returns all products ordered by value.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.ListProducts()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get products")
		return
	}

	utils.Success(c, 200, "Products retrieved successfully", gin.H{
		"products": products,
	})
}

// CreateProduct stores a new product. Accepts multipart form data with an
// optional "img" picture.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req struct {
		Name         string `form:"name" binding:"required"`
		ProductValue string `form:"productValue" binding:"required"`
		IsMega       string `form:"isMega"`
	}

	if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Name and productValue are required")
		return
	}

	productValue, err := strconv.Atoi(req.ProductValue)
	if err != nil {
		utils.Error(c, 400, "VALIDATION_ERROR", "productValue must be a number")
		return
	}
	isMega := false
	if req.IsMega != "" {
		isMega, err = strconv.ParseBool(req.IsMega)
		if err != nil {
			utils.Error(c, 400, "VALIDATION_ERROR", "isMega must be a boolean")
			return
		}
	}

	imgPath := ""
	if fh, err := c.FormFile("img"); err == nil {
		saved, err := utils.SaveImage(h.uploadDir, fh)
		if err != nil {
			utils.Error(c, 500, "UPLOAD_FAILED", "Failed to save product image")
			return
		}
		imgPath = saved
	}

	product, err := h.productService.CreateProduct(req.Name, productValue, isMega, imgPath)
	if err != nil {
		if utils.IsValidation(err) {
			utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create product")
		return
	}

	utils.Success(c, 201, "Product created successfully", gin.H{
		"product": product,
	})
}

// UpdateProduct applies a partial update to a product.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.productService.UpdateProduct(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrProductNotFound):
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		case utils.IsValidation(err):
			utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update product")
		}
		return
	}

	utils.Success(c, 200, "Product updated successfully", gin.H{
		"product": product,
	})
}

// DeleteProduct removes a product and its image file.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete product")
		return
	}

	utils.Success(c, 200, "Product deleted successfully", nil)
}
