package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/woodcrrests/scratchcard_api/internal/models"
	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

const userSelectCols = `id, username, password_hash, email, role, img, created_at, updated_at`

// UserRepository provides data access methods for the users table.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByLogin finds a user by username or email, the two identifiers accepted
// at login.
func (r *UserRepository) GetByLogin(login string) (*models.User, error) {
	var u models.User
	err := r.db.Get(&u,
		"SELECT "+userSelectCols+" FROM users WHERE username = $1 OR email = $1 LIMIT 1", login)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ExistsByUsernameOrEmail reports whether a user already holds either identifier.
func (r *UserRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var exists bool
	err := r.db.Get(&exists,
		"SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)", username, email)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a new user. Unique violations on username or email are
// translated to ErrUserExists.
func (r *UserRepository) Create(u *models.User) error {
	const q = `INSERT INTO users (username, password_hash, email, role, img)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING id, created_at, updated_at`

	err := r.db.QueryRowx(q, u.Username, u.PasswordHash, u.Email, u.Role, u.Img).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return utils.ErrUserExists
		}
		return err
	}
	return nil
}
