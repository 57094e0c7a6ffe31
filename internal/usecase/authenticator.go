package usecase

import (
	"table-booking/internal/domain/user"
	"table-booking/internal/pkg/jwt"
)

// Authenticator resolves a bearer or cookie token into the calling actor.
type Authenticator interface {
	Authenticate(token string) (user.Actor, error)
}

type jwtAuthenticator struct {
	jwtService *jwt.Service
}

func NewAuthenticator(jwtService *jwt.Service) Authenticator {
	return &jwtAuthenticator{jwtService: jwtService}
}

func (a *jwtAuthenticator) Authenticate(token string) (user.Actor, error) {
	claims, err := a.jwtService.ValidateToken(token)
	if err != nil {
		return user.Actor{}, err
	}
	return claims.Actor()
}
