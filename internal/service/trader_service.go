package service

import (
	"database/sql"
	"errors"
	"net/url"

	"github.com/google/uuid"

	"github.com/woodcrrests/scratchcard_api/internal/models"
	"github.com/woodcrrests/scratchcard_api/internal/repository"
	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

// TraderService handles trader business logic.
type TraderService struct {
	traders TraderStore
}

// NewTraderService constructs a TraderService.
func NewTraderService(traders TraderStore) *TraderService {
	return &TraderService{traders: traders}
}

// CreateTraderRequest represents the request to register a trader.
type CreateTraderRequest struct {
	TraderName        string `json:"traderName" binding:"required"`
	TraderCode        string `json:"traderCode" binding:"required"`
	ContactPersonName string `json:"contactPersonName" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Mobile            string `json:"mobile" binding:"required"`
	Address           string `json:"address" binding:"required"`
	State             string `json:"state" binding:"required"`
	Pincode           int    `json:"pincode" binding:"required"`
	NumberOfSheets    int    `json:"numberOfSheets"`
}

// UpdateTraderRequest represents a partial trader update.
type UpdateTraderRequest struct {
	TraderName        string `json:"traderName"`
	ContactPersonName string `json:"contactPersonName"`
	Mobile            string `json:"mobile"`
	Address           string `json:"address"`
	State             string `json:"state"`
	Pincode           *int   `json:"pincode"`
	NumberOfSheets    *int   `json:"numberOfSheets"`
}

// ListTraders parses the query parameters and returns the matching trader page.
func (s *TraderService) ListTraders(values url.Values) (*repository.TraderPage, error) {
	filter, err := ParseTraderQuery(values)
	if err != nil {
		return nil, err
	}
	return s.traders.List(filter)
}

// CreateTrader registers a new trader. Trader code and email must be unique.
func (s *TraderService) CreateTrader(req *CreateTraderRequest) (*models.Trader, error) {
	if req.NumberOfSheets < 0 {
		return nil, utils.Validationf("Number of sheets cannot be less than 0")
	}

	if _, err := s.traders.GetByCode(req.TraderCode); err == nil {
		return nil, utils.ErrTraderCodeExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	if _, err := s.traders.GetByEmail(req.Email); err == nil {
		return nil, utils.ErrTraderEmailExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	trader := &models.Trader{
		TraderName:        req.TraderName,
		TraderCode:        req.TraderCode,
		ContactPersonName: req.ContactPersonName,
		Email:             req.Email,
		Mobile:            req.Mobile,
		Address:           req.Address,
		State:             req.State,
		Pincode:           req.Pincode,
		NumberOfSheets:    req.NumberOfSheets,
	}

	// The unique constraints catch the race the find-first checks cannot.
	if err := s.traders.Create(trader); err != nil {
		return nil, err
	}
	return trader, nil
}

// GetTrader retrieves a trader by id.
func (s *TraderService) GetTrader(id uuid.UUID) (*models.Trader, error) {
	trader, err := s.traders.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrTraderNotFound
		}
		return nil, err
	}
	return trader, nil
}

// UpdateTrader applies a partial update to a trader.
func (s *TraderService) UpdateTrader(id uuid.UUID, req *UpdateTraderRequest) (*models.Trader, error) {
	trader, err := s.GetTrader(id)
	if err != nil {
		return nil, err
	}

	if req.TraderName != "" {
		trader.TraderName = req.TraderName
	}
	if req.ContactPersonName != "" {
		trader.ContactPersonName = req.ContactPersonName
	}
	if req.Mobile != "" {
		trader.Mobile = req.Mobile
	}
	if req.Address != "" {
		trader.Address = req.Address
	}
	if req.State != "" {
		trader.State = req.State
	}
	if req.Pincode != nil {
		trader.Pincode = *req.Pincode
	}
	if req.NumberOfSheets != nil {
		if *req.NumberOfSheets < 0 {
			return nil, utils.Validationf("Number of sheets cannot be less than 0")
		}
		trader.NumberOfSheets = *req.NumberOfSheets
	}

	if err := s.traders.Update(trader); err != nil {
		return nil, err
	}
	return trader, nil
}

// DeleteTraders removes the given traders and, through the storage cascade,
// all their scratchcards. Returns the number of deleted traders.
func (s *TraderService) DeleteTraders(ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, utils.Validationf("Trader IDs array is required")
	}
	count, err := s.traders.DeleteByIDs(ids)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, utils.ErrTraderNotFound
	}
	return count, nil
}
