package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/clanhub/backend/internal/entity"
	"github.com/clanhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *entity.Application) error
	GetByID(ctx context.Context, id string) (*entity.Application, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Application, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Application, error)
	UpdateReviewByID(
		ctx context.Context, id string, status entity.ApplicationStatus, reviewerID string,
	) error
}

type applicationRepository struct{}

func NewApplicationRepository() *applicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(ctx context.Context, application *entity.Application) error {
	return xcontext.DB(ctx).Create(application).Error
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*entity.Application, error) {
	var result entity.Application
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *applicationRepository) GetByUserID(ctx context.Context, userID string) (*entity.Application, error) {
	var result entity.Application
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *applicationRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Application, error) {
	var result []entity.Application
	err := xcontext.DB(ctx).
		Order("submitted_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateReviewByID transitions a pending application to the given status. It
// fails with gorm.ErrRecordNotFound if the application is not pending
// anymore, so a review cannot be overwritten.
func (r *applicationRepository) UpdateReviewByID(
	ctx context.Context, id string, status entity.ApplicationStatus, reviewerID string,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Application{}).
		Where("id=? AND status=?", id, entity.Pending).
		Updates(map[string]any{
			"status":      status,
			"reviewed_by": sql.NullString{String: reviewerID, Valid: true},
			"reviewed_at": sql.NullTime{Time: time.Now(), Valid: true},
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
