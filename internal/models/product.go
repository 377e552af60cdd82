package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultProductImage is assigned when a product is created without an upload.
const DefaultProductImage = "/images/default.jpg"

// Product is a reward item of a given monetary value. Mega products belong to
// the jackpot tier and use a separate notification path.
type Product struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Img          string    `db:"img" json:"img"`
	IsMega       bool      `db:"is_mega" json:"isMega"`
	ProductValue int       `db:"product_value" json:"productValue"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"-"`
}
