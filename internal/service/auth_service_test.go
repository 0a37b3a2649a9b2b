package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookkeeper/internal/auth"
	apperrors "bookkeeper/internal/errors"
	"bookkeeper/internal/model"
	"bookkeeper/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	userID := uuid.New()

	tests := []struct {
		name          string
		input         LoginInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful login",
			input: LoginInput{Email: "test@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           userID,
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
		},
		{
			name:  "invalid credentials - user not found",
			input: LoginInput{Email: "notfound@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, repository.ErrNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:  "invalid credentials - wrong password",
			input: LoginInput{Email: "test@example.com", Password: "wrong"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.User{
					ID:           userID,
					Email:        "test@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:          "missing password",
			input:         LoginInput{Email: "test@example.com"},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.NewValidationError(msgCredentialsRequired),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret", time.Hour)
			svc, err := NewAuthService(mockRepo, jwtService, bcrypt.MinCost)
			require.NoError(t, err)

			token, err := svc.Login(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)

				identity, err := svc.Authenticate(token)
				require.NoError(t, err)
				assert.Equal(t, userID, identity.UserID)
				assert.Equal(t, tt.input.Email, identity.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginStorageFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, errors.New("connection reset"))

	svc, err := NewAuthService(mockRepo, auth.NewJWTService("test-secret", time.Hour), bcrypt.MinCost)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{Email: "test@example.com", Password: "x"})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}

func TestAuthService_AuthenticateRejectsBadTokens(t *testing.T) {
	svc, err := NewAuthService(new(MockUserRepository), auth.NewJWTService("test-secret", time.Hour), bcrypt.MinCost)
	require.NoError(t, err)

	foreign, err := auth.NewJWTService("other", time.Hour).Issue(uuid.New(), "a@x.com")
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", foreign} {
		_, err := svc.Authenticate(token)
		assert.Equal(t, apperrors.ErrAccessDenied, err)
	}
}
