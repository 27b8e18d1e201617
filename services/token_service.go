package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID returns the numeric subject of a user token.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// TokenService signs and checks HS256 session tokens.
type TokenService struct {
	secret   []byte
	adminTTL time.Duration
	userTTL  time.Duration
	issuer   string
}

func NewTokenService(secret string, adminTTL, userTTL time.Duration) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		adminTTL: adminTTL,
		userTTL:  userTTL,
		issuer:   "etkinlik-api",
	}
}

func (s *TokenService) IssueAdmin(email string) (string, time.Time, error) {
	return s.issue(RoleAdmin, "admin", email, s.adminTTL)
}

func (s *TokenService) IssueUser(userID uint, email string) (string, time.Time, error) {
	return s.issue(RoleUser, strconv.FormatUint(uint64(userID), 10), email, s.userTTL)
}

func (s *TokenService) issue(role, subject, email string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(ttl)
	claims := Claims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// Parse validates signature, expiry and issuer.
func (s *TokenService) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
