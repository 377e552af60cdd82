package models

import (
	"time"

	"github.com/google/uuid"
)

// Trader represents a retail partner that accumulates and redeems scratchcards.
type Trader struct {
	ID                uuid.UUID `db:"id" json:"id"`
	TraderName        string    `db:"trader_name" json:"traderName"`
	TraderCode        string    `db:"trader_code" json:"traderCode"`
	ContactPersonName string    `db:"contact_person_name" json:"contactPersonName"`
	Email             string    `db:"email" json:"email"`
	Mobile            string    `db:"mobile" json:"mobile"`
	Address           string    `db:"address" json:"address"`
	State             string    `db:"state" json:"state"`
	Pincode           int       `db:"pincode" json:"pincode"`
	NumberOfSheets    int       `db:"number_of_sheets" json:"numberOfSheets"`
	CreatedAt         time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time `db:"updated_at" json:"-"`
}
