package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleCustomer    = "customer"
	RoleAgencyOwner = "agency_owner"
	RoleAdmin       = "admin"
)

// UserClaims is the token payload issued by the identity provider.
type UserClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// DisplayName falls back to the email when the token carries no name.
func (p Principal) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return p.Email
}

var ErrInvalidToken = errors.New("invalid or expired token")

// Authenticator verifies (and, for local tooling, mints) HS256 tokens.
type Authenticator struct {
	secret []byte
	log    *slog.Logger
	now    func() time.Time
}

func NewAuthenticator(secret string, log *slog.Logger) *Authenticator {
	log.Info("[auth] JWT configuration loaded and signing key initialized.")
	return &Authenticator{secret: []byte(secret), log: log, now: time.Now}
}

// GenerateJWT creates a signed token for the given principal.
func (a *Authenticator) GenerateJWT(p Principal, ttl time.Duration) (string, error) {
	now := a.now()
	claims := UserClaims{
		UserID: p.UserID,
		Email:  p.Email,
		Name:   p.Name,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		a.log.Error(fmt.Sprintf("[auth] Failed to sign JWT for user %s (%s): %v", p.UserID, p.Email, err))
		return "", err
	}

	a.log.Info(fmt.Sprintf("[auth] Successfully generated JWT for user %s (Role: %s).", p.UserID, p.Role))
	return tokenString, nil
}

// ParseToken validates tokenString and returns the principal it names.
func (a *Authenticator) ParseToken(tokenString string) (Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || claims.UserID == "" {
		return Principal{}, ErrInvalidToken
	}

	role := claims.Role
	if role == "" {
		role = RoleCustomer
	}
	return Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   role,
	}, nil
}
