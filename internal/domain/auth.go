package domain

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/clanhub/backend/internal/entity"
	"github.com/clanhub/backend/internal/model"
	"github.com/clanhub/backend/internal/repository"
	"github.com/clanhub/backend/pkg/crypto"
	"github.com/clanhub/backend/pkg/errorx"
	"github.com/clanhub/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	Refresh(context.Context, *model.RefreshTokenRequest) (*model.RefreshTokenResponse, error)
}

type authDomain struct {
	userRepo repository.UserRepository
}

func NewAuthDomain(userRepo repository.UserRepository) *authDomain {
	return &authDomain{userRepo: userRepo}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid email address")
	}

	if req.Username == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty username")
	}

	if len(req.Password) < 8 {
		return nil, errorx.New(errorx.BadRequest, "Password must be at least 8 characters")
	}

	_, err := d.userRepo.GetByEmailOrUsername(ctx, req.Email, req.Username)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Email or username is already taken")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing user: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.userRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	hashedPassword, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	// The first account ever registered owns the deployment.
	role := entity.RoleUser
	if count == 0 {
		role = entity.RoleSuperAdmin
	}

	user := &entity.User{
		Base:            entity.Base{ID: uuid.NewString()},
		Email:           req.Email,
		HashedPassword:  hashedPassword,
		Username:        req.Username,
		DiscordUsername: req.DiscordUsername,
		RobloxUsername:  req.RobloxUsername,
		Role:            role,
		IPAddress:       requestIP(ctx),
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	accessToken, refreshToken, err := generateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.RegisterResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         model.ConvertUser(user),
	}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if err := crypto.ComparePassword(user.HashedPassword, req.Password); err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	if user.Banned {
		return nil, errorx.New(errorx.PermissionDenied, "Your account is banned")
	}

	if err := d.userRepo.SetLastLogin(ctx, user.ID, time.Now()); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot record last login: %v", err)
	}

	accessToken, refreshToken, err := generateTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         model.ConvertUser(user),
	}, nil
}

func (d *authDomain) Refresh(
	ctx context.Context, req *model.RefreshTokenRequest,
) (*model.RefreshTokenResponse, error) {
	var refreshToken model.RefreshToken
	err := xcontext.TokenEngine(ctx).Verify(req.RefreshToken, &refreshToken)
	if err != nil {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
	}

	user, err := d.userRepo.GetByID(ctx, refreshToken.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid refresh token")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.Banned {
		return nil, errorx.New(errorx.PermissionDenied, "Your account is banned")
	}

	cfg := xcontext.Configs(ctx).Auth
	accessToken, err := xcontext.TokenEngine(ctx).Generate(
		cfg.AccessToken.Expiration.Duration(),
		model.AccessToken{ID: user.ID, Username: user.Username, Role: string(user.Role)},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RefreshTokenResponse{AccessToken: accessToken}, nil
}

func generateTokens(ctx context.Context, user *entity.User) (string, string, error) {
	cfg := xcontext.Configs(ctx).Auth
	accessToken, err := xcontext.TokenEngine(ctx).Generate(
		cfg.AccessToken.Expiration.Duration(),
		model.AccessToken{ID: user.ID, Username: user.Username, Role: string(user.Role)},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return "", "", errorx.Unknown
	}

	refreshToken, err := xcontext.TokenEngine(ctx).Generate(
		cfg.RefreshToken.Expiration.Duration(),
		model.RefreshToken{ID: user.ID},
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate refresh token: %v", err)
		return "", "", errorx.Unknown
	}

	return accessToken, refreshToken, nil
}

func requestIP(ctx context.Context) string {
	r := xcontext.HTTPRequest(ctx)
	if r == nil {
		return ""
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}

	return r.RemoteAddr
}
