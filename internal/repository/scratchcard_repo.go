package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/woodcrrests/scratchcard_api/internal/models"
	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

// CardFilter holds optional filters and the page window for card listing.
type CardFilter struct {
	TraderID  *uuid.UUID
	ProductID *uuid.UUID
	Page      int
	Limit     int
}

// CardPage contains paginated scratchcard results.
type CardPage struct {
	Cards      []models.ScratchCard
	TotalItems int
	TotalPages int
	Page       int
	Limit      int
}

// ScratchCardRepository provides data access methods for the scratchcards table.
type ScratchCardRepository struct {
	db *sqlx.DB
}

// NewScratchCardRepository creates a new ScratchCardRepository.
func NewScratchCardRepository(db *sqlx.DB) *ScratchCardRepository {
	return &ScratchCardRepository{db: db}
}

const cardSelectCols = `id, status, is_mega, trader_id, product_id, created_at, updated_at`

// cardWithProduct is a helper struct for scanning cards with joined product fields.
type cardWithProduct struct {
	ID               uuid.UUID         `db:"id"`
	Status           models.CardStatus `db:"status"`
	IsMega           bool              `db:"is_mega"`
	TraderID         uuid.UUID         `db:"trader_id"`
	ProductID        uuid.UUID         `db:"product_id"`
	CreatedAt        time.Time         `db:"created_at"`
	UpdatedAt        time.Time         `db:"updated_at"`
	ProductName      string            `db:"product_name"`
	ProductImg       string            `db:"product_img"`
	ProductIsMega    bool              `db:"product_is_mega"`
	ProductValue     int               `db:"product_value"`
	ProductCreatedAt time.Time         `db:"product_created_at"`
}

func (c *cardWithProduct) toCard() models.ScratchCard {
	return models.ScratchCard{
		ID:        c.ID,
		Status:    c.Status,
		IsMega:    c.IsMega,
		TraderID:  c.TraderID,
		ProductID: c.ProductID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Product: &models.Product{
			ID:           c.ProductID,
			Name:         c.ProductName,
			Img:          c.ProductImg,
			IsMega:       c.ProductIsMega,
			ProductValue: c.ProductValue,
			CreatedAt:    c.ProductCreatedAt,
		},
	}
}

const cardJoinedSelect = `
        SELECT s.id, s.status, s.is_mega, s.trader_id, s.product_id, s.created_at, s.updated_at,
               p.name AS product_name, p.img AS product_img, p.is_mega AS product_is_mega,
               p.product_value, p.created_at AS product_created_at
        FROM scratchcards s
        JOIN products p ON s.product_id = p.id`

// GetByID finds a scratchcard by id.
func (r *ScratchCardRepository) GetByID(id uuid.UUID) (*models.ScratchCard, error) {
	var c models.ScratchCard
	err := r.db.Get(&c, "SELECT "+cardSelectCols+" FROM scratchcards WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindPending returns the pending card for a (trader, product) pair, if any.
func (r *ScratchCardRepository) FindPending(traderID, productID uuid.UUID) (*models.ScratchCard, error) {
	var c models.ScratchCard
	err := r.db.Get(&c,
		"SELECT "+cardSelectCols+" FROM scratchcards WHERE trader_id = $1 AND product_id = $2 AND status = 'pending' LIMIT 1",
		traderID, productID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new pending scratchcard. The partial unique index on
// (trader_id, product_id) WHERE status = 'pending' turns a lost assignment
// race into ErrPendingCardExists instead of a duplicate card.
func (r *ScratchCardRepository) Create(c *models.ScratchCard) error {
	const q = `INSERT INTO scratchcards (status, is_mega, trader_id, product_id)
              VALUES ($1, $2, $3, $4)
              RETURNING id, created_at, updated_at`

	err := r.db.QueryRowx(q, c.Status, c.IsMega, c.TraderID, c.ProductID).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "scratchcards_pending_pair_idx") {
			return utils.ErrPendingCardExists
		}
		return err
	}
	return nil
}

// List returns scratchcards matching the filter with pagination, each row
// enriched with its product.
func (r *ScratchCardRepository) List(f *CardFilter) (*CardPage, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if f.TraderID != nil {
		where += fmt.Sprintf(" AND s.trader_id = $%d", argIdx)
		args = append(args, *f.TraderID)
		argIdx++
	}
	if f.ProductID != nil {
		where += fmt.Sprintf(" AND s.product_id = $%d", argIdx)
		args = append(args, *f.ProductID)
		argIdx++
	}

	// Count total
	var total int
	countQ := "SELECT COUNT(*) FROM scratchcards s " + where
	if err := r.db.Get(&total, countQ, args...); err != nil {
		return nil, err
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	offset := (f.Page - 1) * f.Limit
	totalPages := (total + f.Limit - 1) / f.Limit

	selectQ := fmt.Sprintf("%s %s ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d",
		cardJoinedSelect, where, argIdx, argIdx+1)
	args = append(args, f.Limit, offset)

	rows, err := r.db.Queryx(selectQ, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.ScratchCard
	for rows.Next() {
		var cw cardWithProduct
		if err := rows.StructScan(&cw); err != nil {
			return nil, err
		}
		cards = append(cards, cw.toCard())
	}

	return &CardPage{
		Cards:      cards,
		TotalItems: total,
		TotalPages: totalPages,
		Page:       f.Page,
		Limit:      f.Limit,
	}, rows.Err()
}

// PendingForTrader returns a trader's pending cards with product detail.
// mega narrows by card tier when non-nil.
func (r *ScratchCardRepository) PendingForTrader(traderID uuid.UUID, mega *bool) ([]models.ScratchCard, error) {
	q := cardJoinedSelect + " WHERE s.trader_id = $1 AND s.status = 'pending'"
	args := []interface{}{traderID}
	if mega != nil {
		q += " AND s.is_mega = $2"
		args = append(args, *mega)
	}
	q += " ORDER BY s.created_at DESC"

	rows, err := r.db.Queryx(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.ScratchCard
	for rows.Next() {
		var cw cardWithProduct
		if err := rows.StructScan(&cw); err != nil {
			return nil, err
		}
		cards = append(cards, cw.toCard())
	}
	return cards, rows.Err()
}

// Redeem flips a single card from pending to redeemed. Returns false when the
// card was not in pending state (or does not exist).
func (r *ScratchCardRepository) Redeem(id uuid.UUID) (bool, error) {
	res, err := r.db.Exec(
		"UPDATE scratchcards SET status = 'redeemed', updated_at = NOW() WHERE id = $1 AND status = 'pending'", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// RedeemMany flips the pending cards among ids to redeemed in a single
// conditional update and returns the updated rows. Cards that are already
// redeemed or unknown are excluded, not errors.
func (r *ScratchCardRepository) RedeemMany(ids []uuid.UUID) ([]models.ScratchCard, error) {
	const q = `UPDATE scratchcards
              SET status = 'redeemed', updated_at = NOW()
              WHERE id = ANY($1) AND status = 'pending'
              RETURNING ` + cardSelectCols

	var cards []models.ScratchCard
	if err := r.db.Select(&cards, q, pq.Array(ids)); err != nil {
		return nil, err
	}
	return cards, nil
}

// Delete removes a scratchcard by id. Returns the number of deleted rows.
func (r *ScratchCardRepository) Delete(id uuid.UUID) (int64, error) {
	res, err := r.db.Exec("DELETE FROM scratchcards WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
