package service

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/woodcrrests/scratchcard_api/internal/models"
	"github.com/woodcrrests/scratchcard_api/internal/repository"
	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

// ScratchCardService owns the scratchcard lifecycle: assignment, listing,
// the pending-to-redeemed transition and deletion.
type ScratchCardService struct {
	traders  TraderStore
	products ProductStore
	cards    CardStore
}

// NewScratchCardService constructs a ScratchCardService.
func NewScratchCardService(traders TraderStore, products ProductStore, cards CardStore) *ScratchCardService {
	return &ScratchCardService{traders: traders, products: products, cards: cards}
}

// AssignResult carries the card of an assignment and whether it was newly
// created, or an existing pending card returned unchanged.
type AssignResult struct {
	Card    *models.ScratchCard
	Created bool
}

// Assign gives the trader a scratchcard for the product. When a pending card
// already exists for the pair it is returned unchanged, keeping assignment
// idempotent. A concurrent duplicate insert is rejected by the storage
// constraint and surfaces as ErrPendingCardExists.
func (s *ScratchCardService) Assign(traderID, productID uuid.UUID) (*AssignResult, error) {
	if _, err := s.traders.GetByID(traderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrTraderNotFound
		}
		return nil, err
	}
	product, err := s.products.GetByID(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}

	existing, err := s.cards.FindPending(traderID, productID)
	if err == nil {
		return &AssignResult{Card: existing, Created: false}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	card := &models.ScratchCard{
		Status:    models.CardPending,
		IsMega:    product.IsMega,
		TraderID:  traderID,
		ProductID: productID,
	}
	if err := s.cards.Create(card); err != nil {
		return nil, err
	}
	return &AssignResult{Card: card, Created: true}, nil
}

// ListCards returns a paginated card listing with product detail.
func (s *ScratchCardService) ListCards(f *repository.CardFilter) (*repository.CardPage, error) {
	return s.cards.List(f)
}

// PendingCards returns the trader's pending cards with product detail.
// A trader with zero pending cards yields ErrNoPendingCards, a domain
// condition rather than a lookup failure.
func (s *ScratchCardService) PendingCards(traderID uuid.UUID) (*models.Trader, []models.ScratchCard, error) {
	return s.pendingCards(traderID, nil)
}

// MegaPendingCards narrows PendingCards to jackpot-tier cards.
func (s *ScratchCardService) MegaPendingCards(traderID uuid.UUID) (*models.Trader, []models.ScratchCard, error) {
	mega := true
	return s.pendingCards(traderID, &mega)
}

func (s *ScratchCardService) pendingCards(traderID uuid.UUID, mega *bool) (*models.Trader, []models.ScratchCard, error) {
	trader, err := s.traders.GetByID(traderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, utils.ErrTraderNotFound
		}
		return nil, nil, err
	}

	cards, err := s.cards.PendingForTrader(traderID, mega)
	if err != nil {
		return nil, nil, err
	}
	if len(cards) == 0 {
		return trader, nil, utils.ErrNoPendingCards
	}
	return trader, cards, nil
}

// RedeemCard moves a card to the given status. The only legal transition is
// pending to redeemed; any other target is rejected. Redeeming a card that is
// already redeemed returns it unchanged.
func (s *ScratchCardService) RedeemCard(id uuid.UUID, target models.CardStatus) (*models.ScratchCard, error) {
	if target != models.CardRedeemed {
		return nil, utils.ErrInvalidTransition
	}

	if _, err := s.cards.Redeem(id); err != nil {
		return nil, err
	}

	card, err := s.cards.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

// BulkRedeem flips the pending cards among ids to redeemed for the trader.
// Already-redeemed or unknown ids are excluded silently; zero matches is a
// caller error.
func (s *ScratchCardService) BulkRedeem(traderID uuid.UUID, ids []uuid.UUID) ([]models.ScratchCard, error) {
	if _, err := s.traders.GetByID(traderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrTraderNotFound
		}
		return nil, err
	}
	if len(ids) == 0 {
		return nil, utils.Validationf("Provide at least one scratchcard to redeem")
	}

	cards, err := s.cards.RedeemMany(ids)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, utils.ErrNoRedeemableCards
	}
	return cards, nil
}

// DeleteCard removes a single card by id.
func (s *ScratchCardService) DeleteCard(id uuid.UUID) error {
	count, err := s.cards.Delete(id)
	if err != nil {
		return err
	}
	if count == 0 {
		return utils.ErrCardNotFound
	}
	return nil
}
