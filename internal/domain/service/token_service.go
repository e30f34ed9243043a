package service

import (
	"bazaar/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by issued tokens.
type Claims struct {
	UserID uuid.UUID
	Role   entity.Role
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating bearer
// credentials. This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Generate creates a signed token for the given user and role.
	Generate(userID uuid.UUID, role entity.Role) (string, error)

	// Validate checks a token string and returns its claims.
	Validate(tokenString string) (*Claims, error)
}
