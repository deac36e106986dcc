package domain

import (
	"testing"

	"github.com/clanhub/backend/internal/entity"
	"github.com/clanhub/backend/internal/model"
	"github.com/clanhub/backend/internal/repository"
	"github.com/clanhub/backend/pkg/errorx"
	"github.com/clanhub/backend/pkg/testutil"
	"github.com/clanhub/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_authDomain_Register(t *testing.T) {
	ctx := testutil.MockContext(t)
	domain := NewAuthDomain(repository.NewUserRepository())

	// The first account owns the deployment.
	first, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "founder@example.com",
		Password: "hunter2hunter2",
		Username: "founder",
	})
	require.NoError(t, err)
	require.NotEmpty(t, first.AccessToken)
	require.NotEmpty(t, first.RefreshToken)
	require.Equal(t, string(entity.RoleSuperAdmin), first.User.Role)

	second, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "member@example.com",
		Password: "hunter2hunter2",
		Username: "member",
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.RoleUser), second.User.Role)

	var accessToken model.AccessToken
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(second.AccessToken, &accessToken))
	require.Equal(t, second.User.ID, accessToken.ID)
	require.Equal(t, "member", accessToken.Username)

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Email:    "member@example.com",
		Password: "hunter2hunter2",
		Username: "someone-else",
	})
	require.Equal(t, errorx.New(errorx.AlreadyExists, "Email or username is already taken"), err)

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Email:    "short@example.com",
		Password: "short",
		Username: "short",
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Password must be at least 8 characters"), err)

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Email:    "not-an-email",
		Password: "hunter2hunter2",
		Username: "someone",
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid email address"), err)
}

func Test_authDomain_Login(t *testing.T) {
	ctx := testutil.MockContext(t)
	domain := NewAuthDomain(repository.NewUserRepository())

	registered, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "member@example.com",
		Password: "hunter2hunter2",
		Username: "member",
	})
	require.NoError(t, err)

	resp, err := domain.Login(ctx, &model.LoginRequest{
		Email:    "member@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, registered.User.ID, resp.User.ID)
	require.NotNil(t, resp.User.LastLoginAt)

	_, err = domain.Login(ctx, &model.LoginRequest{
		Email:    "member@example.com",
		Password: "wrong-password",
	})
	require.Equal(t, errorx.New(errorx.Unauthenticated, "Invalid email or password"), err)

	_, err = domain.Login(ctx, &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter2hunter2",
	})
	require.Equal(t, errorx.New(errorx.Unauthenticated, "Invalid email or password"), err)
}

func Test_authDomain_Login_banned(t *testing.T) {
	ctx := testutil.MockContext(t)
	userRepo := repository.NewUserRepository()
	domain := NewAuthDomain(userRepo)

	registered, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "member@example.com",
		Password: "hunter2hunter2",
		Username: "member",
	})
	require.NoError(t, err)

	require.NoError(t, userRepo.SetBanned(ctx, registered.User.ID, true))

	_, err = domain.Login(ctx, &model.LoginRequest{
		Email:    "member@example.com",
		Password: "hunter2hunter2",
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Your account is banned"), err)
}

func Test_authDomain_Refresh(t *testing.T) {
	ctx := testutil.MockContext(t)
	domain := NewAuthDomain(repository.NewUserRepository())

	registered, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "member@example.com",
		Password: "hunter2hunter2",
		Username: "member",
	})
	require.NoError(t, err)

	resp, err := domain.Refresh(ctx, &model.RefreshTokenRequest{
		RefreshToken: registered.RefreshToken,
	})
	require.NoError(t, err)

	var accessToken model.AccessToken
	require.NoError(t, xcontext.TokenEngine(ctx).Verify(resp.AccessToken, &accessToken))
	require.Equal(t, registered.User.ID, accessToken.ID)

	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: "garbage"})
	require.Equal(t, errorx.New(errorx.Unauthenticated, "Invalid refresh token"), err)

	// Token for a user that no longer exists.
	engine := xcontext.TokenEngine(ctx)
	orphanToken, err := engine.Generate(
		xcontext.Configs(ctx).Auth.RefreshToken.Expiration.Duration(),
		model.RefreshToken{ID: "user_gone"},
	)
	require.NoError(t, err)

	_, err = domain.Refresh(ctx, &model.RefreshTokenRequest{RefreshToken: orphanToken})
	require.Equal(t, errorx.New(errorx.Unauthenticated, "Invalid refresh token"), err)
}
