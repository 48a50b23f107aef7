package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"fakestore/internal/config"
	"fakestore/internal/models"
	"fakestore/internal/repositories"
)

// Claims is the payload of an access token.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.StandardClaims
}

// AuthService handles authentication: credentials, tokens and resolution of
// the current tenant and user.
type AuthService struct {
	tenantRepo repositories.TenantRepository
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	log        *zap.Logger
	events     EventPublisher

	now func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(tenantRepo repositories.TenantRepository, userRepo repositories.UserRepository, cfg *config.Config, log *zap.Logger, events EventPublisher) *AuthService {
	return &AuthService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		jwtSecret:  []byte(cfg.JWTSecret),
		tokenTTL:   cfg.AccessTokenTTL,
		bcryptCost: cfg.BcryptCost,
		log:        log,
		events:     events,
		now:        time.Now,
	}
}

// ResolveTenant returns the tenant owning key.
func (s *AuthService) ResolveTenant(ctx context.Context, key string) (*models.APIKey, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrInvalidAPIKey
	}
	tenant, err := s.tenantRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidAPIKey
		}
		return nil, fmt.Errorf("failed to resolve api key: %w", err)
	}
	return tenant, nil
}

// Register creates a customer in tenant. Any role in the input is ignored.
func (s *AuthService) Register(ctx context.Context, tenant *models.APIKey, in UserInput) (*models.User, error) {
	in.Role = models.RoleCustomer
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         in.Name,
		Email:        strings.ToLower(in.Email),
		Address:      in.Address,
		PasswordHash: hash,
		Role:         models.RoleCustomer,
		APIKeyID:     tenant.ID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	publish(s.log, s.events, EventUserCreated, map[string]interface{}{
		"api_key_id": tenant.ID, "user_id": user.ID, "role": user.Role, "source": "register",
	})
	return user, nil
}

// Authenticate checks email and password against tenant's users and issues an
// access token.
func (s *AuthService) Authenticate(ctx context.Context, tenant *models.APIKey, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, tenant.ID, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.IssueToken(user.ID)
}

// IssueToken signs an access token for userID valid for the configured TTL.
func (s *AuthService) IssueToken(userID uint) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.tokenTTL).Unix(),
		},
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		// An expired token only counts as expired if it was ours to begin with.
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 &&
			ve.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorMalformed|jwt.ValidationErrorUnverifiable) == 0 {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}
	return claims, nil
}

// ResolveCurrentUser returns the live user named by tokenString.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	return user, nil
}

func hashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
