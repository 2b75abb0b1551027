package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"movie-reviews/internal/data/repository/repotest"
	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/usecase"
	"movie-reviews/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T) (usecase.UserService, *repotest.Store) {
	t.Helper()
	store := repotest.New()
	return usecase.NewUserService(store.Repository().User, utils.NewBcryptHasher(bcrypt.MinCost), zap.NewNop()), store
}

func register(t *testing.T, svc usecase.UserService, username, email, password string) int64 {
	t.Helper()
	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return resp.ID
}

func TestUserService_Register(t *testing.T) {
	svc, store := newUserService(t)

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "  alice ",
		Email:    "alice@x.com",
		Password: "pw1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@x.com", resp.Email)

	stored := store.User(resp.ID)
	require.NotNil(t, stored)
	assert.NotEqual(t, "pw1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw1")))
}

func TestUserService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   request.RegisterRequest
		field string
	}{
		{"missing username", request.RegisterRequest{Email: "a@x.com", Password: "pw"}, "username"},
		{"blank username", request.RegisterRequest{Username: "   ", Email: "a@x.com", Password: "pw"}, "username"},
		{"missing email", request.RegisterRequest{Username: "a", Password: "pw"}, "email"},
		{"missing password", request.RegisterRequest{Username: "a", Email: "a@x.com"}, "password"},
		{"username too long", request.RegisterRequest{Username: strings.Repeat("u", 51), Email: "a@x.com", Password: "pw"}, "username"},
		{"password too long", request.RegisterRequest{Username: "a", Email: "a@x.com", Password: strings.Repeat("p", 73)}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newUserService(t)

			_, err := svc.Register(context.Background(), &tt.req)

			appErr := utils.AsAppError(err)
			assert.Equal(t, utils.KindValidation, appErr.Kind)
			assert.Contains(t, appErr.Fields, tt.field)
			assert.Nil(t, store.User(1))
		})
	}
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	svc, _ := newUserService(t)
	register(t, svc, "alice", "alice@x.com", "pw1")

	tests := []struct {
		name string
		req  request.RegisterRequest
	}{
		{"same email", request.RegisterRequest{Username: "alice2", Email: "alice@x.com", Password: "pw"}},
		{"same username", request.RegisterRequest{Username: "alice", Email: "other@x.com", Password: "pw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &tt.req)
			assert.Equal(t, utils.KindConflict, utils.KindOf(err))
			assert.Equal(t, "Username or email already exists", utils.AsAppError(err).Message)
		})
	}
}

func TestUserService_RegisterStoreFailure(t *testing.T) {
	svc, store := newUserService(t)
	store.FailWith(errors.New("connection refused"))

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice", Email: "alice@x.com", Password: "pw1",
	})
	assert.Equal(t, utils.KindInternal, utils.KindOf(err))
}

func TestUserService_Login(t *testing.T) {
	svc, _ := newUserService(t)
	id := register(t, svc, "alice", "alice@x.com", "pw1")

	resp, err := svc.Login(context.Background(), &request.LoginRequest{Email: "alice@x.com", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.False(t, resp.CreatedAt.IsZero())
	assert.Nil(t, resp.UpdatedAt)
}

func TestUserService_LoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newUserService(t)
	register(t, svc, "alice", "alice@x.com", "pw1")

	_, wrongPassword := svc.Login(context.Background(), &request.LoginRequest{Email: "alice@x.com", Password: "nope"})
	_, unknownEmail := svc.Login(context.Background(), &request.LoginRequest{Email: "ghost@x.com", Password: "pw1"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, utils.KindAuth, utils.KindOf(wrongPassword))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestUserService_LoginRequiresFields(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.Login(context.Background(), &request.LoginRequest{Email: "alice@x.com"})
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
	assert.Equal(t, "Email and password are required", utils.AsAppError(err).Message)
}

func TestUserService_GetByID(t *testing.T) {
	svc, _ := newUserService(t)
	id := register(t, svc, "alice", "alice@x.com", "pw1")

	user, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", user.Email)
	require.NotNil(t, user.UpdatedAt)

	_, err = svc.GetByID(context.Background(), 999)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}
