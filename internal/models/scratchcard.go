package models

import (
	"time"

	"github.com/google/uuid"
)

type CardStatus string

const (
	CardPending  CardStatus = "pending"
	CardRedeemed CardStatus = "redeemed"
)

// Valid reports whether s is a known card status.
func (s CardStatus) Valid() bool {
	return s == CardPending || s == CardRedeemed
}

// ScratchCard links one Trader to one Product. A card enters the pending state
// on assignment and can only ever move forward to redeemed.
type ScratchCard struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Status    CardStatus `db:"status" json:"status"`
	IsMega    bool       `db:"is_mega" json:"isMega"`
	TraderID  uuid.UUID  `db:"trader_id" json:"traderId"`
	ProductID uuid.UUID  `db:"product_id" json:"productId"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"-"`

	// Product detail joined on list/fetch endpoints, never persisted from here.
	Product *Product `db:"-" json:"product,omitempty"`
}
