package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bbqmenu/bbq-menu-ai/backend/internal/models"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/types"
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenIssuer = "bbq-menu-ai"

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User    *models.User
	Token   string
	Credits int64
	// Welcome is set on registration.
	Welcome *WelcomeInfo
}

type WelcomeInfo struct {
	Granted bool  `json:"granted"`
	Credits int64 `json:"credits"`
}

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	expiry    time.Duration
	ledger    CreditLedger
	logger    *zap.Logger
}

func NewAuthService(db *gorm.DB, jwtSecret string, expiry time.Duration, ledger CreditLedger, logger *zap.Logger) *AuthService {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		expiry:    expiry,
		ledger:    ledger,
		logger:    logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the user and grants the welcome bonus. A ledger failure
// does not fail registration; the bonus can be claimed later.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*AuthResult, error) {
	email := normalizeEmail(req.Email)
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Locale:       string(units.ParseLocale(req.Locale)),
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	result := &AuthResult{User: user, Welcome: &WelcomeInfo{}}
	if s.ledger != nil {
		welcome, err := s.ledger.GrantWelcomeCredits(ctx, user.ID, user.Email)
		if err != nil {
			s.logger.Warn("welcome credits not granted", zap.String("user_id", user.ID.String()), zap.Error(err))
		} else {
			result.Welcome = &WelcomeInfo{Granted: welcome.Granted, Credits: welcome.CreditsGranted}
			result.Credits = welcome.CurrentCredits
		}
	}

	result.Token, err = s.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return result, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, err
	}

	result := &AuthResult{User: &user, Token: token}
	if s.ledger != nil {
		if balance, err := s.ledger.RemainingCredits(ctx, user.ID); err == nil {
			result.Credits = balance
		} else {
			s.logger.Warn("failed to load balance on login", zap.Error(err))
		}
	}
	return result, nil
}

func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
