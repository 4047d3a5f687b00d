package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"tennis-academy-api/internal/model"
	"tennis-academy-api/internal/repository"
	"tennis-academy-api/pkg/apierror"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type userStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByEmailOrWhatsapp(ctx context.Context, email string, whatsapp string) (model.User, error)
	Create(ctx context.Context, nu repository.NewUser) (model.User, error)
	TouchLastLogin(ctx context.Context, userID string) error
}

type intentStore interface {
	Add(ctx context.Context, userID string, intent string) (bool, error)
}

// AuthService issues and verifies the two JWT kinds. Access and refresh
// tokens are signed with distinct secrets, so one kind never validates
// against the other verifier.
type AuthService struct {
	users         userStore
	intents       intentStore
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(users userStore, intents intentStore, accessSecret string, refreshSecret string, accessTTL time.Duration, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		intents:       intents,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *AuthService) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *AuthService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func onlyDigits(raw string) string {
	var b strings.Builder
	for _, ch := range raw {
		if ch >= '0' && ch <= '9' {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

func normalizeInstagram(raw string) *string {
	v := strings.TrimSpace(raw)
	for strings.HasPrefix(v, "@") {
		v = strings.TrimSpace(v[1:])
	}
	if v == "" {
		return nil
	}
	return &v
}

// Register creates the user unless the email or phone already belongs to
// someone, in which case the existing account is reused. The declared
// intent is always recorded; duplicates are a silent no-op.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)
	whatsapp := onlyDigits(req.Whatsapp)

	if len(fullName) < 3 {
		return model.RegisterResponse{}, apierror.Validation("full_name must have at least 3 characters", "full_name")
	}
	if email == "" || !strings.Contains(email, "@") {
		return model.RegisterResponse{}, apierror.Validation("invalid email", "email")
	}
	if len(req.Password) < 6 || len(req.Password) > 128 {
		return model.RegisterResponse{}, apierror.Validation("password must have between 6 and 128 characters", "password")
	}
	if !model.ValidIntent(req.Intent) {
		return model.RegisterResponse{}, apierror.Validation("intent must be lesson, rental or student", "intent")
	}
	if len(whatsapp) != 10 && len(whatsapp) != 11 {
		return model.RegisterResponse{}, apierror.New("BAD_REQUEST", "invalid whatsapp number", "whatsapp", http.StatusBadRequest)
	}

	created := false
	user, err := s.users.FindByEmailOrWhatsapp(ctx, email, whatsapp)
	if errors.Is(err, model.ErrUserNotFound) {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if hashErr != nil {
			return model.RegisterResponse{}, hashErr
		}

		user, err = s.users.Create(ctx, repository.NewUser{
			Email:        email,
			PasswordHash: string(hash),
			FullName:     fullName,
			Whatsapp:     whatsapp,
			Instagram:    normalizeInstagram(req.Instagram),
			Role:         "staff",
		})
		if errors.Is(err, model.ErrUserAlreadyExists) {
			return model.RegisterResponse{}, apierror.Conflict("user already registered")
		}
		if err != nil {
			return model.RegisterResponse{}, err
		}
		created = true
	} else if err != nil {
		return model.RegisterResponse{}, err
	}

	intentAdded, err := s.intents.Add(ctx, user.ID, req.Intent)
	if err != nil {
		return model.RegisterResponse{}, apierror.New("INTERNAL_ERROR", "failed to record intent", "", http.StatusInternalServerError)
	}

	return model.RegisterResponse{
		UserID:      user.ID,
		Created:     created,
		IntentAdded: intentAdded,
		Intent:      req.Intent,
		Email:       email,
	}, nil
}

// Login verifies the credentials and returns the access token response
// plus the refresh token for the cookie.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.TokenResponse, string, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, model.ErrUserNotFound) {
		return model.TokenResponse{}, "", model.ErrInvalidCredentials
	}
	if err != nil {
		return model.TokenResponse{}, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.TokenResponse{}, "", model.ErrInvalidCredentials
	}

	if !user.IsActive {
		return model.TokenResponse{}, "", model.ErrUserInactive
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		slog.Warn("failed to update last login", "user_id", user.ID, "error", err)
	}

	return s.issueTokens(user.ID)
}

// Refresh validates the cookie token, checks the subject still exists and
// is active, and rotates both tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenResponse, string, error) {
	claims, err := s.validateToken(refreshToken, tokenTypeRefresh, s.refreshSecret)
	if err != nil {
		return model.TokenResponse{}, "", model.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.TokenResponse{}, "", model.ErrInvalidToken
	}
	if err != nil {
		return model.TokenResponse{}, "", err
	}
	if !user.IsActive {
		return model.TokenResponse{}, "", model.ErrInvalidToken
	}

	return s.issueTokens(user.ID)
}

// ValidateAccessToken is the verifier the auth middleware uses.
func (s *AuthService) ValidateAccessToken(tokenString string) (*model.AuthClaims, error) {
	return s.validateToken(tokenString, tokenTypeAccess, s.accessSecret)
}

func (s *AuthService) issueTokens(userID string) (model.TokenResponse, string, error) {
	access, err := s.signToken(userID, tokenTypeAccess, s.accessSecret, s.accessTTL)
	if err != nil {
		return model.TokenResponse{}, "", err
	}

	refresh, err := s.signToken(userID, tokenTypeRefresh, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return model.TokenResponse{}, "", err
	}

	return model.TokenResponse{
		AccessToken: access,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, refresh, nil
}

func (s *AuthService) signToken(subject string, tokenType string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"type": tokenType,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}

// validateToken checks signature and expiry against the kind-specific
// secret, then requires a matching type and a non-empty subject.
func (s *AuthService) validateToken(tokenString string, expectedType string, secret []byte) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, model.ErrInvalidToken
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, model.ErrInvalidToken
	}

	typ, _ := claimsMap["type"].(string)
	if typ != expectedType {
		return nil, model.ErrInvalidToken
	}

	sub, _ := claimsMap["sub"].(string)
	if sub == "" {
		return nil, model.ErrInvalidToken
	}

	return &model.AuthClaims{UserID: sub, Type: typ}, nil
}
