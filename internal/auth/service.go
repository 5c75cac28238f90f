package auth

import (
	"fmt"
	"time"

	"branch-billing-backend/internal/config"
	"branch-billing-backend/internal/database/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT token claims issued for branch users. The branch
// slug travels in the tenantId claim; the user identifier may arrive as
// userId or, from older clients, as id.
type Claims struct {
	UserID   string `json:"userId,omitempty"`
	AltID    string `json:"id,omitempty"`
	TenantID string `json:"tenantId,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserKey returns the effective user identifier claim
func (c *Claims) UserKey() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.AltID
}

// Service issues and verifies bearer tokens
type Service struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewService creates a token service from the application configuration
func NewService(cfg *config.Config) *Service {
	return &Service{
		secret: []byte(cfg.JWTSecret),
		expiry: time.Duration(cfg.JWTExpiryHours) * time.Hour,
		issuer: "branch-billing-backend",
	}
}

// GenerateToken issues a signed token for a user of the given branch
func (s *Service) GenerateToken(user *models.User, branchID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID.String(),
		TenantID: branchID,
		Email:    user.Email,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies a token's signature and expiry and returns its claims
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// BranchClaim verifies a token and returns its branch claim. It reports
// ok=false for an unverifiable token or one without a branch claim; the
// tenant resolver treats both as "try the next signal", not as errors.
func (s *Service) BranchClaim(tokenString string) (string, bool) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", false
	}
	if claims.TenantID == "" {
		return "", false
	}
	return claims.TenantID, true
}
