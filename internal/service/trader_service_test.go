package service_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/woodcrrests/scratchcard_api/internal/models"
	"github.com/woodcrrests/scratchcard_api/internal/service"
	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

func validTraderRequest() *service.CreateTraderRequest {
	return &service.CreateTraderRequest{
		TraderName:        "Acme Traders",
		TraderCode:        "AC1",
		ContactPersonName: "Jo",
		Email:             "acme@example.com",
		Mobile:            "9999999999",
		Address:           "1 Main St",
		State:             "Kerala",
		Pincode:           680001,
		NumberOfSheets:    5,
	}
}

func TestCreateTrader(t *testing.T) {
	svc := service.NewTraderService(newFakeTraderStore())

	trader, err := svc.CreateTrader(validTraderRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if trader.ID == uuid.Nil {
		t.Fatal("expected an assigned id")
	}
	if trader.NumberOfSheets != 5 {
		t.Fatalf("expected 5 sheets, got %d", trader.NumberOfSheets)
	}
}

func TestCreateTraderDuplicates(t *testing.T) {
	existing := &models.Trader{TraderCode: "AC1", Email: "acme@example.com"}
	svc := service.NewTraderService(newFakeTraderStore(existing))

	req := validTraderRequest()
	if _, err := svc.CreateTrader(req); !errors.Is(err, utils.ErrTraderCodeExists) {
		t.Fatalf("expected ErrTraderCodeExists, got %v", err)
	}

	req.TraderCode = "AC2"
	if _, err := svc.CreateTrader(req); !errors.Is(err, utils.ErrTraderEmailExists) {
		t.Fatalf("expected ErrTraderEmailExists, got %v", err)
	}
}

func TestCreateTraderNegativeSheets(t *testing.T) {
	svc := service.NewTraderService(newFakeTraderStore())

	req := validTraderRequest()
	req.NumberOfSheets = -1
	if _, err := svc.CreateTrader(req); !utils.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateTraderPartial(t *testing.T) {
	trader := &models.Trader{TraderName: "Acme", Mobile: "111", Pincode: 680001, NumberOfSheets: 5}
	svc := service.NewTraderService(newFakeTraderStore(trader))

	sheets := 9
	got, err := svc.UpdateTrader(trader.ID, &service.UpdateTraderRequest{
		Mobile:         "222",
		NumberOfSheets: &sheets,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Mobile != "222" || got.NumberOfSheets != 9 {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.TraderName != "Acme" || got.Pincode != 680001 {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestUpdateTraderNegativeSheets(t *testing.T) {
	trader := &models.Trader{TraderName: "Acme"}
	svc := service.NewTraderService(newFakeTraderStore(trader))

	sheets := -3
	if _, err := svc.UpdateTrader(trader.ID, &service.UpdateTraderRequest{NumberOfSheets: &sheets}); !utils.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateTraderUnknown(t *testing.T) {
	svc := service.NewTraderService(newFakeTraderStore())

	if _, err := svc.UpdateTrader(uuid.New(), &service.UpdateTraderRequest{}); !errors.Is(err, utils.ErrTraderNotFound) {
		t.Fatalf("expected ErrTraderNotFound, got %v", err)
	}
}

func TestDeleteTraders(t *testing.T) {
	a := &models.Trader{TraderName: "A"}
	b := &models.Trader{TraderName: "B"}
	svc := service.NewTraderService(newFakeTraderStore(a, b))

	count, err := svc.DeleteTraders([]uuid.UUID{a.ID, b.ID, uuid.New()})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 deleted, got %d", count)
	}
}

func TestDeleteTradersValidation(t *testing.T) {
	svc := service.NewTraderService(newFakeTraderStore())

	if _, err := svc.DeleteTraders(nil); !utils.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.DeleteTraders([]uuid.UUID{uuid.New()}); !errors.Is(err, utils.ErrTraderNotFound) {
		t.Fatalf("expected ErrTraderNotFound, got %v", err)
	}
}
