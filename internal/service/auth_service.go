// Package service contains the application business logic, decoupled from
// HTTP handlers and persistence details.
package service

import (
	"context"
	"fmt"
	"time"

	"formhub/internal/config"
	"formhub/internal/models"
	"formhub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Token issuer/audience values baked into every JWT this service signs.
const (
	TokenIssuer   = "formhub-api"
	TokenAudience = "formhub-client"
)

// TokenPair carries a freshly issued access/refresh token pair.
type TokenPair struct {
	Access  string
	Refresh string
}

// AuthService handles registration, login, token issuance and role changes.
type AuthService struct {
	users repository.UserRepository
	cfg   *config.Config
	now   func() time.Time
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg, now: time.Now}
}

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new account and issues its first token pair.
// A taken email is rejected before hashing; the unique index on users.email
// covers the remaining race.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, *TokenPair, error) {
	existing, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, models.NewConflictError("El email ya existe")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     "user",
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Authenticate verifies the credentials and, on success, stamps last_login
// and issues a token pair. Both unknown email and wrong password collapse
// into the same response so the endpoint does not leak which emails exist.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, models.NewUnauthorizedError("Credenciales inválidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, models.NewUnauthorizedError("Credenciales inválidas")
	}

	now := s.now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a brand new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, models.NewUnauthorizedError("Invalid token type")
	}

	// the account must still exist
	if _, err := s.users.GetByID(ctx, claims.UserID); err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewUnauthorizedError("Invalid or expired token")
		}
		return nil, err
	}

	return s.issuePair(claims.UserID)
}

// SetRole updates the role of the given user. Any string is accepted.
func (s *AuthService) SetRole(ctx context.Context, id uint, role string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	user.Role = role
	return s.users.Update(ctx, user)
}

// TokenClaims is the validated content of a formhub JWT.
type TokenClaims struct {
	UserID    uint
	TokenType string
	JTI       string
}

// ParseToken validates signature, expiry, issuer and audience, and returns
// the claims. It does not check the token type; callers decide which type
// they accept.
func (s *AuthService) ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}
	var userID uint
	if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil || userID == 0 {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	tokenType, _ := claims["token_type"].(string)
	jti, _ := claims["jti"].(string)

	return &TokenClaims{UserID: userID, TokenType: tokenType, JTI: jti}, nil
}

func (s *AuthService) issuePair(userID uint) (*TokenPair, error) {
	accessTTL := time.Duration(s.cfg.AccessTokenTTLMin) * time.Minute
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	refreshTTL := time.Duration(s.cfg.RefreshTokenTTLHours) * time.Hour
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}

	access, err := s.signToken(userID, "access", accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(userID, "refresh", refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) signToken(userID uint, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":        fmt.Sprintf("%d", userID),
		"iss":        TokenIssuer,
		"aud":        TokenAudience,
		"exp":        now.Add(ttl).Unix(),
		"iat":        now.Unix(),
		"nbf":        now.Unix(),
		"jti":        generateJTI(now),
		"token_type": tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return signed, nil
}

// generateJTI produces a unique token ID: timestamp plus a uuid prefix.
func generateJTI(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString()[:8])
}
