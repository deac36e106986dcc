package repository

import (
	"context"
	"time"

	"github.com/clanhub/backend/internal/entity"
	"github.com/clanhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.User, error)
	UpdateByID(ctx context.Context, id string, data *entity.User) error
	SetApplied(ctx context.Context, id string) error
	SetBanned(ctx context.Context, id string, banned bool) error
	SetLastLogin(ctx context.Context, id string, at time.Time) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "email=?", email).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByEmailOrUsername(
	ctx context.Context, email, username string,
) (*entity.User, error) {
	var result entity.User
	err := xcontext.DB(ctx).Take(&result, "email=? OR username=?", email, username).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	var result []entity.User
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) GetList(ctx context.Context, offset, limit int) ([]entity.User, error) {
	var result []entity.User
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, data *entity.User) error {
	return xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Updates(data).Error
}

// SetApplied marks that the user submitted an application. It fails with
// gorm.ErrRecordNotFound if the flag was already set, which backs up the
// one-application-per-user invariant under concurrent submissions.
func (r *userRepository) SetApplied(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=? AND has_applied=?", id, false).
		Update("has_applied", true)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	tx := xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", id).
		Update("banned", banned)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userRepository) SetLastLogin(ctx context.Context, id string, at time.Time) error {
	return xcontext.DB(ctx).Model(&entity.User{}).
		Where("id=?", id).
		Update("last_login_at", at).Error
}
