package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/woodcrrests/scratchcard_api/internal/models"
	"github.com/woodcrrests/scratchcard_api/internal/repository"
	"github.com/woodcrrests/scratchcard_api/internal/service"
	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

// ScratchCardHandler handles scratchcard-related HTTP endpoints.
type ScratchCardHandler struct {
	cardService *service.ScratchCardService
}

// NewScratchCardHandler constructs a ScratchCardHandler.
func NewScratchCardHandler(cardService *service.ScratchCardService) *ScratchCardHandler {
	return &ScratchCardHandler{cardService: cardService}
}

// AssignCard gives a trader a scratchcard for a product. Assignment is
// idempotent: an existing pending card for the pair is returned with 200, a
// freshly created one with 201.
func (h *ScratchCardHandler) AssignCard(c *gin.Context) {
	var req struct {
		TraderID  uuid.UUID `json:"traderId" binding:"required"`
		ProductID uuid.UUID `json:"productId" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "traderId and productId are required")
		return
	}

	result, err := h.cardService.Assign(req.TraderID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrTraderNotFound):
			utils.Error(c, 404, "TRADER_NOT_FOUND", "Trader not found")
		case errors.Is(err, utils.ErrProductNotFound):
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		case errors.Is(err, utils.ErrPendingCardExists):
			utils.Error(c, 409, "PENDING_CARD_EXISTS", "Trader already has a pending card for this product")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to assign scratchcard")
		}
		return
	}

	if result.Created {
		utils.Success(c, 201, "Scratchcard assigned successfully", gin.H{
			"scratchCard": result.Card,
		})
		return
	}
	utils.Success(c, 200, "Scratchcard already assigned", gin.H{
		"scratchCard": result.Card,
	})
}

// GetCards returns a paginated scratchcard listing with product detail.
// Supports traderId and productId query filters.
func (h *ScratchCardHandler) GetCards(c *gin.Context) {
	filter := &repository.CardFilter{Page: 1, Limit: 10}

	if v := c.Query("traderId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			utils.Error(c, 400, "INVALID_ID", "Invalid trader ID")
			return
		}
		filter.TraderID = &id
	}
	if v := c.Query("productId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
			return
		}
		filter.ProductID = &id
	}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	page, err := h.cardService.ListCards(filter)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get scratchcards")
		return
	}

	utils.SuccessWithPagination(c, 200, "Scratchcards retrieved successfully", gin.H{
		"scratchCards": page.Cards,
	}, page.Page, page.Limit, page.TotalItems)
}

// GetPendingCards returns the trader's pending cards with product detail.
func (h *ScratchCardHandler) GetPendingCards(c *gin.Context) {
	h.pendingCards(c, false)
}

// GetMegaPendingCards narrows GetPendingCards to jackpot-tier cards.
func (h *ScratchCardHandler) GetMegaPendingCards(c *gin.Context) {
	h.pendingCards(c, true)
}

func (h *ScratchCardHandler) pendingCards(c *gin.Context, mega bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid trader ID")
		return
	}

	var (
		trader *models.Trader
		cards  []models.ScratchCard
	)
	if mega {
		trader, cards, err = h.cardService.MegaPendingCards(id)
	} else {
		trader, cards, err = h.cardService.PendingCards(id)
	}
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrTraderNotFound):
			utils.Error(c, 404, "TRADER_NOT_FOUND", "Trader not found")
		case errors.Is(err, utils.ErrNoPendingCards):
			utils.Error(c, 404, "NO_PENDING_CARDS", "Trader has no pending scratchcards")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get scratchcards")
		}
		return
	}

	utils.Success(c, 200, "Scratchcards retrieved successfully", gin.H{
		"trader":       trader,
		"scratchCards": cards,
	})
}

// UpdateCardStatus moves a card to the requested status. The only legal
// transition is pending to redeemed.
func (h *ScratchCardHandler) UpdateCardStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid scratchcard ID")
		return
	}

	var req struct {
		Status models.CardStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "status is required")
		return
	}

	card, err := h.cardService.RedeemCard(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrCardNotFound):
			utils.Error(c, 404, "CARD_NOT_FOUND", "Scratchcard not found")
		case errors.Is(err, utils.ErrInvalidTransition):
			utils.Error(c, 400, "INVALID_TRANSITION", "Scratchcards can only move from pending to redeemed")
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update scratchcard")
		}
		return
	}

	utils.Success(c, 200, "Scratchcard updated successfully", gin.H{
		"scratchCard": card,
	})
}

// BulkRedeem flips the trader's pending cards among the given ids to redeemed.
func (h *ScratchCardHandler) BulkRedeem(c *gin.Context) {
	traderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid trader ID")
		return
	}

	var req struct {
		IDs []uuid.UUID `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Scratchcard IDs array is required")
		return
	}

	cards, err := h.cardService.BulkRedeem(traderID, req.IDs)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrTraderNotFound):
			utils.Error(c, 404, "TRADER_NOT_FOUND", "Trader not found")
		case errors.Is(err, utils.ErrNoRedeemableCards):
			utils.Error(c, 400, "NO_REDEEMABLE_CARDS", "No valid scratchcards found to redeem")
		case utils.IsValidation(err):
			utils.Error(c, 400, "VALIDATION_ERROR", err.Error())
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to redeem scratchcards")
		}
		return
	}

	utils.Success(c, 200, "Scratchcards redeemed successfully", gin.H{
		"scratchCards": cards,
		"redeemed":     len(cards),
	})
}

// DeleteCard removes a single scratchcard.
func (h *ScratchCardHandler) DeleteCard(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid scratchcard ID")
		return
	}

	if err := h.cardService.DeleteCard(id); err != nil {
		if errors.Is(err, utils.ErrCardNotFound) {
			utils.Error(c, 404, "CARD_NOT_FOUND", "Scratchcard not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete scratchcard")
		return
	}

	utils.Success(c, 200, "Scratchcard deleted successfully", nil)
}
