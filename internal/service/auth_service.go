package service

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/woodcrrests/scratchcard_api/internal/models"
	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

// AuthService handles account registration, login and trader token issuance.
type AuthService struct {
	users   UserStore
	traders TraderStore
	secret  string
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserStore, traders TraderStore, secret string) *AuthService {
	return &AuthService{users: users, traders: traders, secret: secret}
}

// Register creates a new admin account. imgPath is the public path of an
// already-saved upload, or empty for the default profile image.
func (s *AuthService) Register(username, password, email, imgPath string) (*models.User, error) {
	exists, err := s.users.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if imgPath == "" {
		imgPath = models.DefaultUserImage
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashed),
		Email:        email,
		Role:         models.RoleAdmin,
		Img:          imgPath,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials by username or email and returns a signed admin
// token.
func (s *AuthService) Login(login, password string) (string, *models.User, error) {
	user, err := s.users.GetByLogin(login)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, utils.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Debug().Str("login", login).Msg("password verification failed")
		return "", nil, utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateUserToken(s.secret,
		user.ID.String(), user.Username, user.Email, user.Img, user.Role)
	if err != nil {
		return "", nil, err
	}

	log.Info().Str("username", user.Username).Msg("login successful")
	return token, user, nil
}

// TraderToken issues a trader-scoped token for redemption links after
// confirming the trader exists.
func (s *AuthService) TraderToken(traderID uuid.UUID) (string, *models.Trader, error) {
	trader, err := s.traders.GetByID(traderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, utils.ErrTraderNotFound
		}
		return "", nil, err
	}

	token, err := utils.GenerateTraderToken(s.secret, trader.ID.String())
	if err != nil {
		return "", nil, err
	}
	return token, trader, nil
}
