// internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/constants"
	helper "github.com/GradGuide-Team/CRM-Gradguide/internals/helpers"
)

// AccessClaims: sub carries the email, id and role identify the principal.
type AccessClaims struct {
	ID   string `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock swaps the time source; used by tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

func (s *TokenService) Issue(userID uuid.UUID, email, role string) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("JWT secret is empty")
	}
	now := s.now()
	claims := AccessClaims{
		ID:   userID.String(),
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the claims with a canonical role.
func (s *TokenService) Verify(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, helper.Errorf(helper.ErrUnauthorized, "Could not validate credentials")
	}
	if claims.ExpiresAt == nil || !s.now().Before(claims.ExpiresAt.Time) {
		return nil, helper.Errorf(helper.ErrUnauthorized, "Token expired")
	}
	if _, err := uuid.Parse(claims.ID); err != nil || claims.Subject == "" {
		return nil, helper.Errorf(helper.ErrUnauthorized, "Could not validate credentials")
	}
	role, ok := constants.NormalizeRole(claims.Role)
	if !ok {
		return nil, helper.Errorf(helper.ErrUnauthorized, "Could not validate credentials")
	}
	claims.Role = role
	return claims, nil
}
