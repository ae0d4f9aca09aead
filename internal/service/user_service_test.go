package service

import (
	"context"
	"testing"

	"github.com/dmitryhil/vineweb/config"
	"github.com/dmitryhil/vineweb/internal/domain"
	"github.com/dmitryhil/vineweb/internal/dto"
	"github.com/dmitryhil/vineweb/internal/repository/memory"
	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := CreateUserService(memory.NewStore().Users(), testConfig())

	registered, err := svc.Register(ctx, dto.RegisterRequest{Username: "olena", Email: "olena@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, registered.User.Role)
	assert.NotEmpty(t, registered.Token)

	token, err := jwt.Parse(registered.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, registered.User.ID, claims["id"])
	assert.Equal(t, "olena", claims["username"])
	assert.Equal(t, "olena@example.com", claims["email"])
	assert.Equal(t, domain.RoleUser, claims["role"])

	testCases := []struct {
		name        string
		request     dto.LoginRequest
		expectedErr error
	}{
		{name: "login by username", request: dto.LoginRequest{Username: "olena", Password: "secret1"}},
		{name: "login by email", request: dto.LoginRequest{Username: "olena@example.com", Password: "secret1"}},
		{name: "wrong password", request: dto.LoginRequest{Username: "olena", Password: "nope"}, expectedErr: errs.ErrInvalidCredentials},
		{name: "unknown user", request: dto.LoginRequest{Username: "nobody", Password: "secret1"}, expectedErr: errs.ErrInvalidCredentials},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Login(ctx, tc.request)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, registered.User.ID, res.User.ID)
			assert.NotNil(t, res.User.LastLogin)
		})
	}

	me, err := svc.GetUserByID(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.NotNil(t, me.LastLogin)
}

func TestUserService_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := CreateUserService(memory.NewStore().Users(), testConfig())

	_, err := svc.Register(ctx, dto.RegisterRequest{Username: "olena", Email: "olena@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{Username: "olena", Email: "other@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, errs.ErrUserAlreadyExists)

	_, err = svc.Register(ctx, dto.RegisterRequest{Username: "other", Email: "olena@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, errs.ErrUserAlreadyExists)
}

func TestUserService_SeedAdmin(t *testing.T) {
	ctx := context.Background()
	users := memory.NewStore().Users()
	svc := CreateUserService(users, testConfig())

	require.NoError(t, svc.SeedAdmin(ctx, config.SeedConfig{}))
	exists, err := users.ExistsByRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, exists)

	seed := config.SeedConfig{AdminUsername: "root", AdminEmail: "root@example.com", AdminPassword: "s3cret!"}
	require.NoError(t, svc.SeedAdmin(ctx, seed))
	require.NoError(t, svc.SeedAdmin(ctx, seed))

	res, err := svc.Login(ctx, dto.LoginRequest{Username: "root", Password: "s3cret!"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.User.Role)

	count, err := users.CountUsers(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
