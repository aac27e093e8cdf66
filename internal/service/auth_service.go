package service

import (
	"context"
	"errors"
	"time"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/config"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/models"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/store"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and token issuance. Tokens are
// stateless HS256 JWTs carrying the user id and role.
type AuthService struct {
	store  *store.Store
	cfg    config.AuthConfig
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(st *store.Store, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		store:  st,
		cfg:    cfg,
		logger: util.GetLogger(),
	}
}

// Claims are the JWT claims issued at login
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RegisterRequest represents a signup
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=customer vendor"`
	Phone    string `json:"phone,omitempty"`

	// Vendor signups open a store in the same request
	StoreName        string `json:"storeName,omitempty"`
	StoreDescription string `json:"storeDescription,omitempty"`
}

// AuthResult is returned from Register and Login
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a user account. A vendor signup also creates the pending
// vendor profile; it stays invisible until an admin approves it.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error) {
	ctx, span := util.StartSpan(ctx, "AuthService.Register")
	defer span.End()

	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     role,
		Phone:    req.Phone,
		IsActive: true,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if role == models.RoleVendor {
		storeName := req.StoreName
		if storeName == "" {
			storeName = req.Name + "'s Store"
		}
		vendor := &models.Vendor{
			User:             user.ID,
			StoreName:        storeName,
			StoreDescription: req.StoreDescription,
			StoreSettings:    models.DefaultStoreSettings(),
			CommissionRate:   0.10,
		}
		if err := s.store.CreateVendor(ctx, vendor); err != nil {
			return nil, err
		}
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", role))
	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	ctx, span := util.StartSpan(ctx, "AuthService.Login")
	defer span.End()

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// GetUser fetches the account behind a token's user id
func (s *AuthService) GetUser(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.store.GetUser(ctx, userID)
}

// ParseToken validates a bearer token and returns its claims
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.cfg.TokenTTLHours) * time.Hour)),
			Subject:   user.ID.Hex(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
