package unit_test

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/repository"
	"inkwell/internal/service"
	"inkwell/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		svc := service.NewAuthService(userRepo, sessionRepo, nil, testConfig())

		userRepo.On("ExistsByEmail", ctx, "new@example.com").Return(false, nil).Once()
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "new@example.com" && u.IsActive && u.PasswordHash != "secret-password"
		})).Return(nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		user, tokens, err := svc.Register(ctx, domain.CreateUserInput{
			Email:    "new@example.com",
			Password: "secret-password",
			FullName: "New User",
		})

		require.NoError(t, err)
		require.NotNil(t, user)
		require.NotNil(t, tokens)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		userRepo.AssertExpectations(t)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		svc := service.NewAuthService(userRepo, sessionRepo, nil, testConfig())

		userRepo.On("ExistsByEmail", ctx, "taken@example.com").Return(true, nil).Once()

		_, _, err := svc.Register(ctx, domain.CreateUserInput{
			Email:    "taken@example.com",
			Password: "secret-password",
			FullName: "Someone",
		})

		assert.ErrorIs(t, err, service.ErrEmailExists)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: string(hash),
		FullName:     "Existing User",
	}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		svc := service.NewAuthService(userRepo, sessionRepo, nil, testConfig())

		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		got, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-password"})

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		svc := service.NewAuthService(userRepo, sessionRepo, nil, testConfig())

		userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "wrong"})

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		svc := service.NewAuthService(userRepo, sessionRepo, nil, testConfig())

		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "ghost@example.com", Password: "whatever"})

		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	ctx := context.Background()

	userRepo := new(mocks.UserRepository)
	sessionRepo := new(mocks.SessionRepository)
	svc := service.NewAuthService(userRepo, sessionRepo, nil, testConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("pw12345678"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := &domain.User{ID: uuid.New(), Email: "claims@example.com", PasswordHash: string(hash)}

	userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
	sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

	_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "pw12345678"})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)

	_, err = svc.ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("RotatesSession", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		svc := service.NewAuthService(userRepo, sessionRepo, nil, testConfig())

		user := &domain.User{ID: uuid.New(), Email: "r@example.com"}
		session := &repository.Session{
			ID:        uuid.New(),
			UserID:    user.ID,
			TokenHash: "hash",
			ExpiresAt: time.Now().Add(time.Hour),
		}

		sessionRepo.On("GetByTokenHash", ctx, mock.AnythingOfType("string")).Return(session, nil).Once()
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		sessionRepo.On("Revoke", ctx, session.ID).Return(nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		tokens, err := svc.RefreshToken(ctx, "some-refresh-token")

		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		sessionRepo.AssertExpectations(t)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		sessionRepo := new(mocks.SessionRepository)
		svc := service.NewAuthService(userRepo, sessionRepo, nil, testConfig())

		sessionRepo.On("GetByTokenHash", ctx, mock.AnythingOfType("string")).Return(nil, nil).Once()

		_, err := svc.RefreshToken(ctx, "stale-token")

		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})
}
