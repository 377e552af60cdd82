package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/woodcrrests/scratchcard_api/internal/models"
	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

// traderColumns maps API field names to trader table columns. Only these
// fields may appear in filter and sort parameters; everything else is
// rejected before it reaches SQL.
var traderColumns = map[string]string{
	"traderName":        "trader_name",
	"traderCode":        "trader_code",
	"contactPersonName": "contact_person_name",
	"email":             "email",
	"mobile":            "mobile",
	"address":           "address",
	"state":             "state",
	"pincode":           "pincode",
	"numberOfSheets":    "number_of_sheets",
	"date":              "created_at",
	"createdAt":         "created_at",
}

// TraderColumn resolves an API field name to its column, reporting whether
// the field is known.
func TraderColumn(field string) (string, bool) {
	col, ok := traderColumns[field]
	return col, ok
}

// FieldRange is one bounded comparison over a trader field. Bounds are raw
// strings except for the date field, whose bounds are parsed to time.Time
// before they get here.
type FieldRange struct {
	Field string
	GTE   interface{}
	LTE   interface{}
}

// TraderFilter holds search, range filters, sorting and the page window for
// trader listing.
type TraderFilter struct {
	Search string
	Ranges []FieldRange
	Sort   string // API field name, empty for default created_at DESC
	Order  string // "asc" or "desc"
	Page   int
	Limit  int
}

// TraderPage contains paginated trader results.
type TraderPage struct {
	Traders    []models.Trader
	TotalItems int
	TotalPages int
	Page       int
	Limit      int
}

// TraderRepository provides data access methods for the traders table.
type TraderRepository struct {
	db *sqlx.DB
}

// NewTraderRepository creates a new TraderRepository.
func NewTraderRepository(db *sqlx.DB) *TraderRepository {
	return &TraderRepository{db: db}
}

// BuildTraderWhere assembles the WHERE clause and ordered args for a trader
// filter. Exposed as a pure function so the query grammar is testable without
// a database.
func BuildTraderWhere(f *TraderFilter) (string, []interface{}, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if f.Search != "" {
		p := fmt.Sprintf("$%d", argIdx)
		where += fmt.Sprintf(
			" AND (trader_name ILIKE %[1]s OR trader_code ILIKE %[1]s OR email ILIKE %[1]s"+
				" OR contact_person_name ILIKE %[1]s OR mobile ILIKE %[1]s"+
				" OR CAST(number_of_sheets AS TEXT) ILIKE %[1]s)", p)
		args = append(args, "%"+f.Search+"%")
		argIdx++
	}

	for _, rng := range f.Ranges {
		col, ok := traderColumns[rng.Field]
		if !ok {
			return "", nil, utils.Validationf("unknown filter field %q", rng.Field)
		}
		if rng.GTE == nil && rng.LTE == nil {
			return "", nil, utils.Validationf(
				"either gte_%s or lte_%s is required for filtering %s", rng.Field, rng.Field, rng.Field)
		}
		if rng.GTE != nil {
			where += fmt.Sprintf(" AND %s >= $%d", col, argIdx)
			args = append(args, rng.GTE)
			argIdx++
		}
		if rng.LTE != nil {
			where += fmt.Sprintf(" AND %s <= $%d", col, argIdx)
			args = append(args, rng.LTE)
			argIdx++
		}
	}

	return where, args, nil
}

// BuildTraderOrder assembles the ORDER BY clause for a trader filter.
// Default order is newest first.
func BuildTraderOrder(f *TraderFilter) (string, error) {
	if f.Sort == "" {
		return "ORDER BY created_at DESC", nil
	}
	col, ok := traderColumns[f.Sort]
	if !ok {
		return "", utils.Validationf("unknown sort field %q", f.Sort)
	}
	dir := "ASC"
	if f.Order == "desc" {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", col, dir), nil
}

const traderSelectCols = `id, trader_name, trader_code, contact_person_name, email,
        mobile, address, state, pincode, number_of_sheets, created_at, updated_at`

// List returns traders matching the filter with pagination.
func (r *TraderRepository) List(f *TraderFilter) (*TraderPage, error) {
	where, args, err := BuildTraderWhere(f)
	if err != nil {
		return nil, err
	}
	order, err := BuildTraderOrder(f)
	if err != nil {
		return nil, err
	}

	// Count total
	var total int
	if err := r.db.Get(&total, "SELECT COUNT(*) FROM traders "+where, args...); err != nil {
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

	selectQ := fmt.Sprintf("SELECT %s FROM traders %s %s LIMIT $%d OFFSET $%d",
		traderSelectCols, where, order, len(args)+1, len(args)+2)
	args = append(args, f.Limit, offset)

	var traders []models.Trader
	if err := r.db.Select(&traders, selectQ, args...); err != nil {
		return nil, err
	}

	return &TraderPage{
		Traders:    traders,
		TotalItems: total,
		TotalPages: totalPages,
		Page:       f.Page,
		Limit:      f.Limit,
	}, nil
}

// GetByID finds a trader by id.
func (r *TraderRepository) GetByID(id uuid.UUID) (*models.Trader, error) {
	var t models.Trader
	err := r.db.Get(&t, "SELECT "+traderSelectCols+" FROM traders WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByCode finds a trader by its unique trader code.
func (r *TraderRepository) GetByCode(code string) (*models.Trader, error) {
	var t models.Trader
	err := r.db.Get(&t, "SELECT "+traderSelectCols+" FROM traders WHERE trader_code = $1", code)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByEmail finds a trader by its unique email.
func (r *TraderRepository) GetByEmail(email string) (*models.Trader, error) {
	var t models.Trader
	err := r.db.Get(&t, "SELECT "+traderSelectCols+" FROM traders WHERE email = $1", email)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new trader. Unique violations on trader_code or email are
// translated to the matching application error.
func (r *TraderRepository) Create(t *models.Trader) error {
	const q = `INSERT INTO traders (trader_name, trader_code, contact_person_name, email,
                mobile, address, state, pincode, number_of_sheets)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
              RETURNING id, created_at, updated_at`

	err := r.db.QueryRowx(q,
		t.TraderName, t.TraderCode, t.ContactPersonName, t.Email,
		t.Mobile, t.Address, t.State, t.Pincode, t.NumberOfSheets,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err, "traders_trader_code_key"):
			return utils.ErrTraderCodeExists
		case isUniqueViolation(err, "traders_email_key"):
			return utils.ErrTraderEmailExists
		}
		return err
	}
	return nil
}

// Update updates the mutable fields of an existing trader.
func (r *TraderRepository) Update(t *models.Trader) error {
	const q = `UPDATE traders SET
                trader_name = $1, contact_person_name = $2, mobile = $3, address = $4,
                state = $5, pincode = $6, number_of_sheets = $7, updated_at = NOW()
              WHERE id = $8
              RETURNING updated_at`

	err := r.db.QueryRowx(q,
		t.TraderName, t.ContactPersonName, t.Mobile, t.Address,
		t.State, t.Pincode, t.NumberOfSheets, t.ID,
	).Scan(&t.UpdatedAt)
	if err == sql.ErrNoRows {
		return sql.ErrNoRows
	}
	return err
}

// DeleteByIDs removes traders by id. Associated scratchcards go with them via
// the ON DELETE CASCADE constraint. Returns the number of deleted traders.
func (r *TraderRepository) DeleteByIDs(ids []uuid.UUID) (int64, error) {
	res, err := r.db.Exec("DELETE FROM traders WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
