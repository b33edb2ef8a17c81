package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ticketscan/internal/config"
	"ticketscan/internal/domain"
)

// adminAudience is the only audience admin tokens are issued for.
const adminAudience = "admin"

// AdminClaims represents the JWT claims of an admin session.
type AdminClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// AdminToken is a signed admin session token.
type AdminToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AdminLoginInput is the DTO for admin login requests.
type AdminLoginInput struct {
	Password string `json:"password" binding:"required"`
}

// AdminService defines the administrative gate contract.
type AdminService interface {
	Login(ctx context.Context, input AdminLoginInput) (*AdminToken, error)
	ValidateToken(tokenString string) (*AdminClaims, error)
}

type adminService struct {
	cfg config.AdminConfig
}

// NewAdminService creates a new AdminService implementation.
func NewAdminService(cfg config.AdminConfig) AdminService {
	return &adminService{cfg: cfg}
}

func (s *adminService) Login(_ context.Context, input AdminLoginInput) (*AdminToken, error) {
	if s.cfg.PasswordHash == "" || s.cfg.JWTSecret == "" {
		return nil, domain.ErrAdminNotConfigured
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	expiry := now.Add(s.cfg.TokenExpiry)
	claims := &AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminAudience,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{adminAudience},
		},
		Role: adminAudience,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("signing admin token: %w", err)
	}
	return &AdminToken{Token: signed, ExpiresAt: expiry}, nil
}

func (s *adminService) ValidateToken(tokenString string) (*AdminClaims, error) {
	if s.cfg.JWTSecret == "" {
		return nil, domain.ErrAdminNotConfigured
	}
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithAudience(adminAudience))
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid || claims.Role != adminAudience {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
