package service

import (
	"github.com/google/uuid"

	"github.com/woodcrrests/scratchcard_api/internal/models"
	"github.com/woodcrrests/scratchcard_api/internal/repository"
)

// TraderStore is the trader persistence surface consumed by services.
// *repository.TraderRepository satisfies it.
type TraderStore interface {
	List(f *repository.TraderFilter) (*repository.TraderPage, error)
	GetByID(id uuid.UUID) (*models.Trader, error)
	GetByCode(code string) (*models.Trader, error)
	GetByEmail(email string) (*models.Trader, error)
	Create(t *models.Trader) error
	Update(t *models.Trader) error
	DeleteByIDs(ids []uuid.UUID) (int64, error)
}

// ProductStore is the product persistence surface consumed by services.
type ProductStore interface {
	List() ([]models.Product, error)
	GetByID(id uuid.UUID) (*models.Product, error)
	Create(p *models.Product) error
	Update(p *models.Product) error
	Delete(id uuid.UUID) (int64, error)
}

// CardStore is the scratchcard persistence surface consumed by services.
type CardStore interface {
	GetByID(id uuid.UUID) (*models.ScratchCard, error)
	FindPending(traderID, productID uuid.UUID) (*models.ScratchCard, error)
	Create(c *models.ScratchCard) error
	List(f *repository.CardFilter) (*repository.CardPage, error)
	PendingForTrader(traderID uuid.UUID, mega *bool) ([]models.ScratchCard, error)
	Redeem(id uuid.UUID) (bool, error)
	RedeemMany(ids []uuid.UUID) ([]models.ScratchCard, error)
	Delete(id uuid.UUID) (int64, error)
}

// UserStore is the user persistence surface consumed by the auth service.
type UserStore interface {
	GetByLogin(login string) (*models.User, error)
	ExistsByUsernameOrEmail(username, email string) (bool, error)
	Create(u *models.User) error
}
