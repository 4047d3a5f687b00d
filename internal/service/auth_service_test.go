package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tennis-academy-api/internal/model"
	"tennis-academy-api/internal/repository"
	"tennis-academy-api/pkg/apierror"
)

type fakeUserStore struct {
	users       map[string]model.User
	createErr   error
	touchCalls  int
	createCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]model.User{}}
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) FindByEmailOrWhatsapp(_ context.Context, email string, whatsapp string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email || u.Whatsapp == whatsapp {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (f *fakeUserStore) Create(_ context.Context, nu repository.NewUser) (model.User, error) {
	f.createCalls++
	if f.createErr != nil {
		return model.User{}, f.createErr
	}
	u := model.User{
		ID:           "1f2e3d4c-0000-4000-8000-00000000000a",
		Email:        nu.Email,
		PasswordHash: nu.PasswordHash,
		FullName:     nu.FullName,
		Whatsapp:     nu.Whatsapp,
		Instagram:    nu.Instagram,
		Role:         nu.Role,
		IsActive:     true,
	}
	f.users[u.Email] = u
	return u, nil
}

func (f *fakeUserStore) TouchLastLogin(_ context.Context, _ string) error {
	f.touchCalls++
	return nil
}

type fakeIntentStore struct {
	added map[string]bool
	err   error
}

func (f *fakeIntentStore) Add(_ context.Context, userID string, intent string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.added == nil {
		f.added = map[string]bool{}
	}
	key := userID + "/" + intent
	if f.added[key] {
		return false, nil
	}
	f.added[key] = true
	return true, nil
}

func newTestAuthService(users *fakeUserStore, intents *fakeIntentStore) *AuthService {
	return NewAuthService(users, intents, "access-secret", "refresh-secret", 15*time.Minute, 14*24*time.Hour)
}

func validRegisterRequest() model.RegisterRequest {
	return model.RegisterRequest{
		FullName: "Maria Souza",
		Email:    "Maria@Example.com",
		Password: "segredo1",
		Whatsapp: "(11) 98877-6655",
		Intent:   model.IntentLesson,
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates user and records intent", func(t *testing.T) {
		users := newFakeUserStore()
		s := newTestAuthService(users, &fakeIntentStore{})

		resp, err := s.Register(context.Background(), validRegisterRequest())
		require.NoError(t, err)
		require.True(t, resp.Created)
		require.True(t, resp.IntentAdded)
		require.Equal(t, "maria@example.com", resp.Email)

		stored := users.users["maria@example.com"]
		require.Equal(t, "11988776655", stored.Whatsapp)
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("segredo1")))
	})

	t.Run("reuses existing account and only adds the intent", func(t *testing.T) {
		users := newFakeUserStore()
		intents := &fakeIntentStore{}
		s := newTestAuthService(users, intents)

		first, err := s.Register(context.Background(), validRegisterRequest())
		require.NoError(t, err)

		req := validRegisterRequest()
		req.Intent = model.IntentRental
		second, err := s.Register(context.Background(), req)
		require.NoError(t, err)
		require.False(t, second.Created)
		require.True(t, second.IntentAdded)
		require.Equal(t, first.UserID, second.UserID)
		require.Equal(t, 1, users.createCalls)
	})

	t.Run("repeated intent reports intent_added false", func(t *testing.T) {
		users := newFakeUserStore()
		s := newTestAuthService(users, &fakeIntentStore{})

		_, err := s.Register(context.Background(), validRegisterRequest())
		require.NoError(t, err)

		resp, err := s.Register(context.Background(), validRegisterRequest())
		require.NoError(t, err)
		require.False(t, resp.Created)
		require.False(t, resp.IntentAdded)
	})

	t.Run("short full_name is 422", func(t *testing.T) {
		s := newTestAuthService(newFakeUserStore(), &fakeIntentStore{})

		req := validRegisterRequest()
		req.FullName = "Jo"

		_, err := s.Register(context.Background(), req)
		requireValidationError(t, err)
	})

	t.Run("bad phone is 400, not 422", func(t *testing.T) {
		s := newTestAuthService(newFakeUserStore(), &fakeIntentStore{})

		req := validRegisterRequest()
		req.Whatsapp = "12345"

		_, err := s.Register(context.Background(), req)

		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.HTTPStatus)
	})

	t.Run("unknown intent is 422", func(t *testing.T) {
		s := newTestAuthService(newFakeUserStore(), &fakeIntentStore{})

		req := validRegisterRequest()
		req.Intent = "coaching"

		_, err := s.Register(context.Background(), req)
		requireValidationError(t, err)
	})

	t.Run("create race maps to 409", func(t *testing.T) {
		users := newFakeUserStore()
		users.createErr = model.ErrUserAlreadyExists
		s := newTestAuthService(users, &fakeIntentStore{})

		_, err := s.Register(context.Background(), validRegisterRequest())

		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusConflict, apiErr.HTTPStatus)
	})

	t.Run("intent persistence failure is 500", func(t *testing.T) {
		s := newTestAuthService(newFakeUserStore(), &fakeIntentStore{err: context.DeadlineExceeded})

		_, err := s.Register(context.Background(), validRegisterRequest())

		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusInternalServerError, apiErr.HTTPStatus)
	})
}

func registeredUser(t *testing.T, users *fakeUserStore, password string, active bool) model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := model.User{
		ID:           "1f2e3d4c-0000-4000-8000-00000000000b",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		FullName:     "Ana Lima",
		Whatsapp:     "11911112222",
		Role:         "staff",
		IsActive:     active,
	}
	users.users[u.Email] = u
	return u
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("returns tokens and touches last login", func(t *testing.T) {
		users := newFakeUserStore()
		registeredUser(t, users, "segredo1", true)
		s := newTestAuthService(users, &fakeIntentStore{})

		tokens, refresh, err := s.Login(context.Background(), "ANA@example.com ", "segredo1")
		require.NoError(t, err)
		require.NotEmpty(t, tokens.AccessToken)
		require.NotEmpty(t, refresh)
		require.Equal(t, "bearer", tokens.TokenType)
		require.Equal(t, int64(900), tokens.ExpiresIn)
		require.Equal(t, 1, users.touchCalls)
	})

	t.Run("wrong password is invalid credentials", func(t *testing.T) {
		users := newFakeUserStore()
		registeredUser(t, users, "segredo1", true)
		s := newTestAuthService(users, &fakeIntentStore{})

		_, _, err := s.Login(context.Background(), "ana@example.com", "errada")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("unknown email is invalid credentials", func(t *testing.T) {
		s := newTestAuthService(newFakeUserStore(), &fakeIntentStore{})

		_, _, err := s.Login(context.Background(), "ghost@example.com", "segredo1")
		require.ErrorIs(t, err, model.ErrInvalidCredentials)
	})

	t.Run("inactive user is rejected after the password check", func(t *testing.T) {
		users := newFakeUserStore()
		registeredUser(t, users, "segredo1", false)
		s := newTestAuthService(users, &fakeIntentStore{})

		_, _, err := s.Login(context.Background(), "ana@example.com", "segredo1")
		require.ErrorIs(t, err, model.ErrUserInactive)
	})
}

func TestTokenKinds(t *testing.T) {
	t.Parallel()

	loginTokens := func(t *testing.T, s *AuthService, users *fakeUserStore) (model.TokenResponse, string) {
		t.Helper()
		registeredUser(t, users, "segredo1", true)
		tokens, refresh, err := s.Login(context.Background(), "ana@example.com", "segredo1")
		require.NoError(t, err)
		return tokens, refresh
	}

	t.Run("access token validates and carries the subject", func(t *testing.T) {
		users := newFakeUserStore()
		s := newTestAuthService(users, &fakeIntentStore{})
		tokens, _ := loginTokens(t, s, users)

		claims, err := s.ValidateAccessToken(tokens.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "1f2e3d4c-0000-4000-8000-00000000000b", claims.UserID)
		require.Equal(t, "access", claims.Type)
	})

	t.Run("refresh token does not validate as access", func(t *testing.T) {
		users := newFakeUserStore()
		s := newTestAuthService(users, &fakeIntentStore{})
		_, refresh := loginTokens(t, s, users)

		_, err := s.ValidateAccessToken(refresh)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("access token does not refresh", func(t *testing.T) {
		users := newFakeUserStore()
		s := newTestAuthService(users, &fakeIntentStore{})
		tokens, _ := loginTokens(t, s, users)

		_, _, err := s.Refresh(context.Background(), tokens.AccessToken)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("refresh rotates both tokens", func(t *testing.T) {
		users := newFakeUserStore()
		s := newTestAuthService(users, &fakeIntentStore{})
		_, refresh := loginTokens(t, s, users)

		tokens, newRefresh, err := s.Refresh(context.Background(), refresh)
		require.NoError(t, err)
		require.NotEmpty(t, tokens.AccessToken)
		require.NotEmpty(t, newRefresh)

		_, err = s.ValidateAccessToken(tokens.AccessToken)
		require.NoError(t, err)
	})

	t.Run("refresh for a deactivated user fails", func(t *testing.T) {
		users := newFakeUserStore()
		s := newTestAuthService(users, &fakeIntentStore{})
		_, refresh := loginTokens(t, s, users)

		u := users.users["ana@example.com"]
		u.IsActive = false
		users.users[u.Email] = u

		_, _, err := s.Refresh(context.Background(), refresh)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		users := newFakeUserStore()
		s := newTestAuthService(users, &fakeIntentStore{})
		other := NewAuthService(users, &fakeIntentStore{}, "other-access", "other-refresh", 15*time.Minute, time.Hour)
		tokens, _ := loginTokens(t, other, users)

		_, err := s.ValidateAccessToken(tokens.AccessToken)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		s := newTestAuthService(newFakeUserStore(), &fakeIntentStore{})

		_, err := s.ValidateAccessToken("not.a.jwt")
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})
}
