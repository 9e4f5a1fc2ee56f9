package service

import (
	"testing"
	"time"

	"vibestudy/internal/config"
	"vibestudy/internal/model"
	"vibestudy/internal/repository"
	"vibestudy/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour

	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthService(t)

	user := &model.User{
		Email:    "ada@example.com",
		Password: "hunter22",
		FullName: "Ada Lovelace",
	}
	require.NoError(t, auth.Register(user))
	assert.NotEmpty(t, user.ID, "registration assigns a uuid")
	assert.NotEqual(t, "hunter22", user.Password, "password is stored hashed")

	token, err := auth.Login("ada@example.com", "hunter22")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := newAuthService(t)

	require.NoError(t, auth.Register(&model.User{Email: "ada@example.com", Password: "pw1"}))

	err := auth.Register(&model.User{Email: "ada@example.com", Password: "pw2"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginBadCredentials(t *testing.T) {
	auth := newAuthService(t)

	require.NoError(t, auth.Register(&model.User{Email: "ada@example.com", Password: "hunter22"}))

	_, err := auth.Login("ada@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = auth.Login("nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
