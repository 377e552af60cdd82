package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/woodcrrests/scratchcard_api/internal/service"
	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

// TraderHandler handles trader-related HTTP endpoints.
type TraderHandler struct {
	traderService *service.TraderService
}

// NewTraderHandler constructs a TraderHandler.
func NewTraderHandler(traderService *service.TraderService) *TraderHandler {
	return &TraderHandler{traderService: traderService}
}

// GetTraders returns the trader list with search, range filters, sorting and
// pagination taken from the query string.
func (h *TraderHandler) GetTraders(c *gin.Context) {
	page, err := h.traderService.ListTraders(c.Request.URL.Query())
	if err != nil {
		if utils.IsValidation(err) {
			utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get traders")
		return
	}

	utils.SuccessWithPagination(c, 200, "Traders retrieved successfully", gin.H{
		"traders": page.Traders,
	}, page.Page, page.Limit, page.TotalItems)
}

// GetTrader returns a single trader by id.
func (h *TraderHandler) GetTrader(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid trader ID")
		return
	}

	trader, err := h.traderService.GetTrader(id)
	if err != nil {
		if errors.Is(err, utils.ErrTraderNotFound) {
			utils.Error(c, 404, "TRADER_NOT_FOUND", "Trader not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get trader")
		return
	}

	utils.Success(c, 200, "Trader retrieved successfully", gin.H{
		"trader": trader,
	})
}

// CreateTrader registers a new trader.
func (h *TraderHandler) CreateTrader(c *gin.Context) {
	var req service.CreateTraderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	trader, err := h.traderService.CreateTrader(&req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrTraderCodeExists):
			utils.Error(c, 409, "TRADER_CODE_EXISTS", "Trader code is already registered")
		case errors.Is(err, utils.ErrTraderEmailExists):
			utils.Error(c, 409, "TRADER_EMAIL_EXISTS", "Email is already registered")
		case utils.IsValidation(err):
			utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to create trader")
		}
		return
	}

	utils.Success(c, 201, "Trader created successfully", gin.H{
		"trader": trader,
	})
}

// UpdateTrader applies a partial update to a trader.
func (h *TraderHandler) UpdateTrader(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid trader ID")
		return
	}

	var req service.UpdateTraderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	trader, err := h.traderService.UpdateTrader(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrTraderNotFound):
			utils.Error(c, 404, "TRADER_NOT_FOUND", "Trader not found")
		case utils.IsValidation(err):
			utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update trader")
		}
		return
	}

	utils.Success(c, 200, "Trader updated successfully", gin.H{
		"trader": trader,
	})
}

// DeleteTraders removes the traders listed in the request body.
func (h *TraderHandler) DeleteTraders(c *gin.Context) {
	var req struct {
		IDs []uuid.UUID `json:"ids" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Trader IDs array is required")
		return
	}

	count, err := h.traderService.DeleteTraders(req.IDs)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrTraderNotFound):
			utils.Error(c, 404, "TRADER_NOT_FOUND", "No matching traders found")
		case utils.IsValidation(err):
			utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete traders")
		}
		return
	}

	utils.Success(c, 200, "Traders deleted successfully", gin.H{
		"deleted": count,
	})
}
