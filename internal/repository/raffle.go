package repository

import (
	"context"

	"github.com/clanhub/backend/internal/entity"
	"github.com/clanhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type RaffleRepository interface {
	Create(ctx context.Context, raffle *entity.Raffle) error
	GetByID(ctx context.Context, id string) (*entity.Raffle, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Raffle, error)
	UpdateByID(ctx context.Context, id string, data *entity.Raffle) error
	DeleteByID(ctx context.Context, id string) error

	// CompareAndSwapParticipants replaces the participant list only if it
	// still equals the expected one. A zero-row update reports
	// gorm.ErrRecordNotFound, meaning a concurrent writer got there first.
	CompareAndSwapParticipants(
		ctx context.Context, id string, expected, updated entity.Array[string],
	) error

	// CheckAndSetWinner sets the winner and deactivates the raffle only if no
	// winner was drawn yet. A zero-row update reports gorm.ErrRecordNotFound.
	CheckAndSetWinner(ctx context.Context, id, winnerID string) error
}

type raffleRepository struct{}

func NewRaffleRepository() *raffleRepository {
	return &raffleRepository{}
}

func (r *raffleRepository) Create(ctx context.Context, raffle *entity.Raffle) error {
	return xcontext.DB(ctx).Create(raffle).Error
}

func (r *raffleRepository) GetByID(ctx context.Context, id string) (*entity.Raffle, error) {
	var result entity.Raffle
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *raffleRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Raffle, error) {
	var result []entity.Raffle
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *raffleRepository) UpdateByID(ctx context.Context, id string, data *entity.Raffle) error {
	updates := map[string]any{
		"title":       data.Title,
		"description": data.Description,
		"end_date":    data.EndDate,
	}

	tx := xcontext.DB(ctx).Model(&entity.Raffle{}).Where("id=?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *raffleRepository) DeleteByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Raffle{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *raffleRepository) CompareAndSwapParticipants(
	ctx context.Context, id string, expected, updated entity.Array[string],
) error {
	expectedValue, err := expected.Value()
	if err != nil {
		return err
	}

	tx := xcontext.DB(ctx).Model(&entity.Raffle{}).
		Where("id=? AND participants=?", id, expectedValue).
		Update("participants", updated)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *raffleRepository) CheckAndSetWinner(ctx context.Context, id, winnerID string) error {
	tx := xcontext.DB(ctx).Model(&entity.Raffle{}).
		Where("id=? AND winner=?", id, "").
		Updates(map[string]any{
			"winner":    winnerID,
			"is_active": false,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
