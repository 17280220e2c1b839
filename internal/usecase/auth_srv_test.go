package usecase

import (
	"context"
	"testing"
	"time"

	"travel-portal/internal/data/entity"
	"travel-portal/internal/dto/request"
	"travel-portal/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24},
	}
}

func testUser() *entity.User {
	hash, _ := utils.HashPassword("Str0ngPass")
	return &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Username:     "wanderer",
		Email:        "wanderer@example.com",
		PasswordHash: hash,
		Role:         entity.RoleUser,
	}
}

func validRegisterRequest() *request.RegisterRequest {
	return &request.RegisterRequest{
		Username:        "wanderer",
		Email:           "wanderer@example.com",
		Password:        "Str0ngPass",
		ConfirmPassword: "Str0ngPass",
	}
}

func TestRegister_Success(t *testing.T) {
	repo, userRepo, sessionRepo, _, _ := newMockRepository()
	service := NewAuthService(repo, testConfig(), testLogger())

	userRepo.On("FindByEmail", mock.Anything, "wanderer@example.com").Return(nil, nil)
	userRepo.On("FindByUsername", mock.Anything, "wanderer").Return(nil, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "wanderer" &&
			u.Role == entity.RoleUser &&
			u.PasswordHash != "Str0ngPass" // stored hashed, never plaintext
	})).Return(nil)
	sessionRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.Register(context.Background(), validRegisterRequest())

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, entity.RoleUser, resp.Role)
	userRepo.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	repo, userRepo, _, _, _ := newMockRepository()
	service := NewAuthService(repo, testConfig(), testLogger())

	userRepo.On("FindByEmail", mock.Anything, "wanderer@example.com").Return(testUser(), nil)

	_, err := service.Register(context.Background(), validRegisterRequest())

	assert.ErrorIs(t, err, ErrEmailTaken)
	userRepo.AssertNotCalled(t, "Create")
}

func TestRegister_UsernameTaken(t *testing.T) {
	repo, userRepo, _, _, _ := newMockRepository()
	service := NewAuthService(repo, testConfig(), testLogger())

	userRepo.On("FindByEmail", mock.Anything, "wanderer@example.com").Return(nil, nil)
	userRepo.On("FindByUsername", mock.Anything, "wanderer").Return(testUser(), nil)

	_, err := service.Register(context.Background(), validRegisterRequest())

	assert.ErrorIs(t, err, ErrUsernameTaken)
	userRepo.AssertNotCalled(t, "Create")
}

func TestRegister_WeakPassword(t *testing.T) {
	repo, userRepo, _, _, _ := newMockRepository()
	service := NewAuthService(repo, testConfig(), testLogger())

	req := validRegisterRequest()
	req.Password = "alllowercase"
	req.ConfirmPassword = "alllowercase"

	_, err := service.Register(context.Background(), req)

	assert.ErrorIs(t, err, ErrWeakPassword)
	userRepo.AssertNotCalled(t, "FindByEmail")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	repo, _, _, _, _ := newMockRepository()
	service := NewAuthService(repo, testConfig(), testLogger())

	req := validRegisterRequest()
	req.ConfirmPassword = "Different1"

	_, err := service.Register(context.Background(), req)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLogin_ByEmail(t *testing.T) {
	repo, userRepo, sessionRepo, _, _ := newMockRepository()
	service := NewAuthService(repo, testConfig(), testLogger())

	user := testUser()
	userRepo.On("FindByEmail", mock.Anything, "wanderer@example.com").Return(user, nil)
	sessionRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.Login(context.Background(), &request.LoginRequest{
		Username: "wanderer@example.com",
		Password: "Str0ngPass",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID.String(), resp.UserID)
}

func TestLogin_ByUsernameFallback(t *testing.T) {
	repo, userRepo, sessionRepo, _, _ := newMockRepository()
	service := NewAuthService(repo, testConfig(), testLogger())

	user := testUser()
	userRepo.On("FindByEmail", mock.Anything, "wanderer").Return(nil, nil)
	userRepo.On("FindByUsername", mock.Anything, "wanderer").Return(user, nil)
	sessionRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.Login(context.Background(), &request.LoginRequest{
		Username: "wanderer",
		Password: "Str0ngPass",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo, userRepo, sessionRepo, _, _ := newMockRepository()
	service := NewAuthService(repo, testConfig(), testLogger())

	userRepo.On("FindByEmail", mock.Anything, "wanderer@example.com").Return(testUser(), nil)

	_, err := service.Login(context.Background(), &request.LoginRequest{
		Username: "wanderer@example.com",
		Password: "WrongPass1",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	sessionRepo.AssertNotCalled(t, "Create")
}

func TestLogin_UnknownUser(t *testing.T) {
	repo, userRepo, _, _, _ := newMockRepository()
	service := NewAuthService(repo, testConfig(), testLogger())

	userRepo.On("FindByEmail", mock.Anything, "ghost").Return(nil, nil)
	userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, nil)

	_, err := service.Login(context.Background(), &request.LoginRequest{
		Username: "ghost",
		Password: "Whatever1",
	})

	// Same error as a bad password, callers cannot probe for accounts
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_RevokesSession(t *testing.T) {
	repo, _, sessionRepo, _, _ := newMockRepository()
	service := NewAuthService(repo, testConfig(), testLogger())

	token := uuid.New().String()
	sessionRepo.On("Revoke", mock.Anything, token).Return(nil)

	err := service.Logout(context.Background(), token)

	assert.NoError(t, err)
	sessionRepo.AssertExpectations(t)
}

func TestLogout_BadTokenFormat(t *testing.T) {
	repo, _, sessionRepo, _, _ := newMockRepository()
	service := NewAuthService(repo, testConfig(), testLogger())

	err := service.Logout(context.Background(), "not-a-uuid")

	assert.Error(t, err)
	sessionRepo.AssertNotCalled(t, "Revoke")
}
