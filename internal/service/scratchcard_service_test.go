package service_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/woodcrrests/scratchcard_api/internal/models"
	"github.com/woodcrrests/scratchcard_api/internal/service"
	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

func newCardService(traders *fakeTraderStore, products *fakeProductStore, cards *fakeCardStore) *service.ScratchCardService {
	return service.NewScratchCardService(traders, products, cards)
}

func TestAssignIsIdempotent(t *testing.T) {
	trader := &models.Trader{TraderName: "Acme", TraderCode: "AC1", Email: "acme@example.com"}
	product := &models.Product{Name: "Blender", ProductValue: 500}
	traders := newFakeTraderStore(trader)
	products := newFakeProductStore(product)
	cards := newFakeCardStore()
	svc := newCardService(traders, products, cards)

	first, err := svc.Assign(trader.ID, product.ID)
	if err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if !first.Created {
		t.Fatal("first assign should create a card")
	}

	second, err := svc.Assign(trader.ID, product.ID)
	if err != nil {
		t.Fatalf("second assign: %v", err)
	}
	if second.Created {
		t.Fatal("second assign should reuse the pending card")
	}
	if second.Card.ID != first.Card.ID {
		t.Fatalf("expected card %s, got %s", first.Card.ID, second.Card.ID)
	}
}

func TestAssignAfterRedeemCreatesNewCard(t *testing.T) {
	trader := &models.Trader{TraderName: "Acme"}
	product := &models.Product{Name: "Blender", ProductValue: 500}
	traders := newFakeTraderStore(trader)
	products := newFakeProductStore(product)
	cards := newFakeCardStore()
	svc := newCardService(traders, products, cards)

	first, err := svc.Assign(trader.ID, product.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := svc.RedeemCard(first.Card.ID, models.CardRedeemed); err != nil {
		t.Fatalf("redeem: %v", err)
	}

	second, err := svc.Assign(trader.ID, product.ID)
	if err != nil {
		t.Fatalf("assign after redeem: %v", err)
	}
	if !second.Created {
		t.Fatal("redeemed card should not block a new assignment")
	}
	if second.Card.ID == first.Card.ID {
		t.Fatal("expected a fresh card after redemption")
	}
}

func TestAssignUnknownTraderOrProduct(t *testing.T) {
	trader := &models.Trader{TraderName: "Acme"}
	product := &models.Product{Name: "Blender", ProductValue: 500}
	svc := newCardService(newFakeTraderStore(trader), newFakeProductStore(product), newFakeCardStore())

	if _, err := svc.Assign(uuid.New(), product.ID); !errors.Is(err, utils.ErrTraderNotFound) {
		t.Fatalf("expected ErrTraderNotFound, got %v", err)
	}
	if _, err := svc.Assign(trader.ID, uuid.New()); !errors.Is(err, utils.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestAssignCopiesMegaFlagFromProduct(t *testing.T) {
	trader := &models.Trader{TraderName: "Acme"}
	product := &models.Product{Name: "Car", ProductValue: 100000, IsMega: true}
	svc := newCardService(newFakeTraderStore(trader), newFakeProductStore(product), newFakeCardStore())

	result, err := svc.Assign(trader.ID, product.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if !result.Card.IsMega {
		t.Fatal("card should inherit the product mega flag")
	}
}

func TestRedeemCardRejectsInvalidTarget(t *testing.T) {
	card := &models.ScratchCard{Status: models.CardPending, TraderID: uuid.New(), ProductID: uuid.New()}
	svc := newCardService(newFakeTraderStore(), newFakeProductStore(), newFakeCardStore(card))

	if _, err := svc.RedeemCard(card.ID, models.CardPending); !errors.Is(err, utils.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRedeemCardIsIdempotent(t *testing.T) {
	card := &models.ScratchCard{Status: models.CardRedeemed, TraderID: uuid.New(), ProductID: uuid.New()}
	svc := newCardService(newFakeTraderStore(), newFakeProductStore(), newFakeCardStore(card))

	got, err := svc.RedeemCard(card.ID, models.CardRedeemed)
	if err != nil {
		t.Fatalf("redeem already-redeemed: %v", err)
	}
	if got.Status != models.CardRedeemed {
		t.Fatalf("expected redeemed, got %s", got.Status)
	}
}

func TestRedeemCardUnknown(t *testing.T) {
	svc := newCardService(newFakeTraderStore(), newFakeProductStore(), newFakeCardStore())

	if _, err := svc.RedeemCard(uuid.New(), models.CardRedeemed); !errors.Is(err, utils.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestBulkRedeemSkipsNonPending(t *testing.T) {
	trader := &models.Trader{TraderName: "Acme"}
	traders := newFakeTraderStore(trader)
	pending := &models.ScratchCard{Status: models.CardPending, TraderID: trader.ID, ProductID: uuid.New()}
	redeemed := &models.ScratchCard{Status: models.CardRedeemed, TraderID: trader.ID, ProductID: uuid.New()}
	cards := newFakeCardStore(pending, redeemed)
	svc := newCardService(traders, newFakeProductStore(), cards)

	got, err := svc.BulkRedeem(trader.ID, []uuid.UUID{pending.ID, redeemed.ID})
	if err != nil {
		t.Fatalf("bulk redeem: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 redeemed card, got %d", len(got))
	}
	if got[0].ID != pending.ID {
		t.Fatalf("expected card %s, got %s", pending.ID, got[0].ID)
	}
}

func TestBulkRedeemNoMatches(t *testing.T) {
	trader := &models.Trader{TraderName: "Acme"}
	traders := newFakeTraderStore(trader)
	redeemed := &models.ScratchCard{Status: models.CardRedeemed, TraderID: trader.ID, ProductID: uuid.New()}
	svc := newCardService(traders, newFakeProductStore(), newFakeCardStore(redeemed))

	if _, err := svc.BulkRedeem(trader.ID, []uuid.UUID{redeemed.ID}); !errors.Is(err, utils.ErrNoRedeemableCards) {
		t.Fatalf("expected ErrNoRedeemableCards, got %v", err)
	}
}

func TestBulkRedeemRequiresIDs(t *testing.T) {
	trader := &models.Trader{TraderName: "Acme"}
	svc := newCardService(newFakeTraderStore(trader), newFakeProductStore(), newFakeCardStore())

	_, err := svc.BulkRedeem(trader.ID, nil)
	if !utils.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPendingCardsExcludesRedeemed(t *testing.T) {
	trader := &models.Trader{TraderName: "Acme"}
	traders := newFakeTraderStore(trader)
	pending := &models.ScratchCard{Status: models.CardPending, TraderID: trader.ID, ProductID: uuid.New()}
	redeemed := &models.ScratchCard{Status: models.CardRedeemed, TraderID: trader.ID, ProductID: uuid.New()}
	svc := newCardService(traders, newFakeProductStore(), newFakeCardStore(pending, redeemed))

	got, cards, err := svc.PendingCards(trader.ID)
	if err != nil {
		t.Fatalf("pending cards: %v", err)
	}
	if got.ID != trader.ID {
		t.Fatalf("expected trader %s, got %s", trader.ID, got.ID)
	}
	if len(cards) != 1 || cards[0].ID != pending.ID {
		t.Fatalf("expected only the pending card, got %d cards", len(cards))
	}
}

func TestPendingCardsEmpty(t *testing.T) {
	trader := &models.Trader{TraderName: "Acme"}
	svc := newCardService(newFakeTraderStore(trader), newFakeProductStore(), newFakeCardStore())

	if _, _, err := svc.PendingCards(trader.ID); !errors.Is(err, utils.ErrNoPendingCards) {
		t.Fatalf("expected ErrNoPendingCards, got %v", err)
	}
}

func TestMegaPendingCardsFiltersTier(t *testing.T) {
	trader := &models.Trader{TraderName: "Acme"}
	traders := newFakeTraderStore(trader)
	regular := &models.ScratchCard{Status: models.CardPending, TraderID: trader.ID, ProductID: uuid.New()}
	mega := &models.ScratchCard{Status: models.CardPending, IsMega: true, TraderID: trader.ID, ProductID: uuid.New()}
	svc := newCardService(traders, newFakeProductStore(), newFakeCardStore(regular, mega))

	_, cards, err := svc.MegaPendingCards(trader.ID)
	if err != nil {
		t.Fatalf("mega pending cards: %v", err)
	}
	if len(cards) != 1 || cards[0].ID != mega.ID {
		t.Fatalf("expected only the mega card, got %d cards", len(cards))
	}
}
