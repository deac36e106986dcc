package domain

import (
	"context"
	"errors"
	"net/mail"

	"github.com/clanhub/backend/internal/common"
	"github.com/clanhub/backend/internal/entity"
	"github.com/clanhub/backend/internal/model"
	"github.com/clanhub/backend/internal/repository"
	"github.com/clanhub/backend/pkg/crypto"
	"github.com/clanhub/backend/pkg/enum"
	"github.com/clanhub/backend/pkg/errorx"
	"github.com/clanhub/backend/pkg/xcontext"
	mathutil "github.com/pkg/math"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	UpdateProfile(context.Context, *model.UpdateProfileRequest) (*model.UpdateProfileResponse, error)
	GetUsers(context.Context, *model.GetUsersRequest) (*model.GetUsersResponse, error)
	BanUser(context.Context, *model.BanUserRequest) (*model.BanUserResponse, error)
	SetRole(context.Context, *model.SetUserRoleRequest) (*model.SetUserRoleResponse, error)
}

type userDomain struct {
	userRepo           repository.UserRepository
	globalRoleVerifier *common.GlobalRoleVerifier
}

func NewUserDomain(userRepo repository.UserRepository) *userDomain {
	return &userDomain{
		userRepo:           userRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMeResponse{User: model.ConvertUser(user)}, nil
}

func (d *userDomain) UpdateProfile(
	ctx context.Context, req *model.UpdateProfileRequest,
) (*model.UpdateProfileResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	data := entity.User{
		DiscordUsername: req.DiscordUsername,
		RobloxUsername:  req.RobloxUsername,
	}

	if req.Email != "" && req.Email != user.Email {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid email address")
		}

		if err := d.checkAvailable(ctx, req.Email, ""); err != nil {
			return nil, err
		}

		data.Email = req.Email
	}

	if req.Username != "" && req.Username != user.Username {
		if err := d.checkAvailable(ctx, "", req.Username); err != nil {
			return nil, err
		}

		data.Username = req.Username
	}

	if req.NewPassword != "" {
		if err := crypto.ComparePassword(user.HashedPassword, req.CurrentPassword); err != nil {
			return nil, errorx.New(errorx.Unauthenticated, "Current password is incorrect")
		}

		if len(req.NewPassword) < 8 {
			return nil, errorx.New(errorx.BadRequest, "Password must be at least 8 characters")
		}

		hashedPassword, err := crypto.HashPassword(req.NewPassword)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
			return nil, errorx.Unknown
		}

		data.HashedPassword = hashedPassword
	}

	if err := d.userRepo.UpdateByID(ctx, userID, &data); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	updated, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get updated user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateProfileResponse{User: model.ConvertUser(updated)}, nil
}

func (d *userDomain) GetUsers(
	ctx context.Context, req *model.GetUsersRequest,
) (*model.GetUsersResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}
	req.Limit = mathutil.MinInt(req.Limit, apiCfg.MaxLimit)

	users, err := d.userRepo.GetList(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	clientUsers := []model.User{}
	for i := range users {
		clientUsers = append(clientUsers, model.ConvertUser(&users[i]))
	}

	return &model.GetUsersResponse{Users: clientUsers}, nil
}

func (d *userDomain) BanUser(
	ctx context.Context, req *model.BanUserRequest,
) (*model.BanUserResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	target, err := d.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if slices.Contains(entity.GlobalAdminRoles, target.Role) {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot ban an admin")
	}

	if err := d.userRepo.SetBanned(ctx, req.ID, req.Banned); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.BanUserResponse{}, nil
}

func (d *userDomain) SetRole(
	ctx context.Context, req *model.SetUserRoleRequest,
) (*model.SetUserRoleResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	if err := d.globalRoleVerifier.Verify(ctx, entity.RoleSuperAdmin); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	role, err := enum.ToEnum[entity.GlobalRole](req.Role)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid role %s", req.Role)
	}

	target, err := d.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if target.Role == entity.RoleSuperAdmin {
		return nil, errorx.New(errorx.PermissionDenied, "Cannot change the role of a super admin")
	}

	if err := d.userRepo.UpdateByID(ctx, req.ID, &entity.User{Role: role}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user role: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetUserRoleResponse{}, nil
}

func (d *userDomain) checkAvailable(ctx context.Context, email, username string) error {
	_, err := d.userRepo.GetByEmailOrUsername(ctx, email, username)
	if err == nil {
		return errorx.New(errorx.AlreadyExists, "Email or username is already taken")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing user: %v", err)
		return errorx.Unknown
	}

	return nil
}
