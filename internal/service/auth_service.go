package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tatamihq/tatami-backend/internal/config"
)

// Role is the caller's role as asserted by the external identity provider.
// Token issuance, password handling, and role assignment all live outside
// this service; we only verify the signature and read the claims.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleProfessor  Role = "professor"
	RoleInstructor Role = "instructor"
	RoleMember     Role = "member"
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	Role   Role `json:"role"`
	UserID int  `json:"user_id"`
}

// IsAdmin reports whether the caller holds blanket capability.
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CanManageRosters reports whether the caller may view rosters and issue
// check-in/check-out commands.
func (c *Claims) CanManageRosters() bool {
	switch c.Role {
	case RoleAdmin, RoleProfessor, RoleInstructor:
		return true
	default:
		return false
	}
}

// AuthService validates identity tokens issued by the external provider.
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
