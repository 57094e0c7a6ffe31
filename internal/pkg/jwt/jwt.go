// Package jwt validates the access tokens issued by the identity service. Issuing is only
// needed by tooling and tests.
package jwt

import (
	"errors"
	"time"

	"table-booking/internal/domain/user"
	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// Actor converts verified claims into the caller of an operation.
func (c *Claims) Actor() (user.Actor, error) {
	role, err := user.NewRole(c.Role)
	if err != nil {
		return user.Actor{}, ErrInvalidToken
	}
	return user.Actor{ID: c.UserID, Role: role}, nil
}

type Service struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	clock     clock.Clock
}

func NewService(cfg config.JWTConfig, clk clock.Clock) *Service {
	return &Service{
		secretKey: []byte(cfg.Secret),
		issuer:    cfg.Issuer,
		ttl:       cfg.AccessTokenDuration,
		clock:     clk,
	}
}

func (s *Service) GenerateAccessToken(userID uuid.UUID, role user.Role) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		UserID: userID,
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
}

// ValidateToken accepts HS256 tokens with an expiry and, when an issuer is configured, a
// matching iss claim.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secretKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
