package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/woodcrrests/scratchcard_api/internal/service"
	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

// NotificationHandler handles reward announcement emails.
type NotificationHandler struct {
	notifier *service.Notifier
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(notifier *service.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// SendRewardEmail mails the trader an announcement of their pending rewards.
func (h *NotificationHandler) SendRewardEmail(c *gin.Context) {
	var req struct {
		TraderID uuid.UUID `json:"traderId" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "traderId is required")
		return
	}

	if err := h.notifier.NotifyRewards(req.TraderID); err != nil {
		switch {
		case errors.Is(err, utils.ErrTraderNotFound):
			utils.Error(c, 404, "TRADER_NOT_FOUND", "Trader not found")
		case errors.Is(err, utils.ErrNoPendingCards):
			utils.Error(c, 404, "NO_PENDING_CARDS", "Trader has no pending scratchcards")
		default:
			utils.Error(c, 500, "EMAIL_FAILED", "Failed to send reward email")
		}
		return
	}

	utils.Success(c, 200, "Reward email sent successfully", nil)
}
