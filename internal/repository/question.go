package repository

import (
	"context"

	"github.com/clanhub/backend/internal/entity"
	"github.com/clanhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	GetByID(ctx context.Context, id string) (*entity.Question, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Question, error)
	GetList(ctx context.Context) ([]entity.Question, error)
	MaxPosition(ctx context.Context) (int, error)
	UpdateByID(ctx context.Context, id string, data *entity.Question) error
	UpdatePosition(ctx context.Context, id string, position int) error
	DeleteByID(ctx context.Context, id string) error
}

type questionRepository struct{}

func NewQuestionRepository() *questionRepository {
	return &questionRepository{}
}

func (r *questionRepository) Create(ctx context.Context, question *entity.Question) error {
	return xcontext.DB(ctx).Create(question).Error
}

func (r *questionRepository) GetByID(ctx context.Context, id string) (*entity.Question, error) {
	var result entity.Question
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *questionRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Question, error) {
	var result []entity.Question
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questionRepository) GetList(ctx context.Context) ([]entity.Question, error) {
	var result []entity.Question
	if err := xcontext.DB(ctx).Order("position ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questionRepository) MaxPosition(ctx context.Context) (int, error) {
	var result int
	err := xcontext.DB(ctx).Model(&entity.Question{}).
		Select("COALESCE(MAX(position), 0)").
		Take(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *questionRepository) UpdateByID(ctx context.Context, id string, data *entity.Question) error {
	updates := map[string]any{
		"text":             data.Text,
		"type":             data.Type,
		"options":          data.Options,
		"required":         data.Required,
		"contradicts_with": data.ContradictsWith,
	}

	tx := xcontext.DB(ctx).Model(&entity.Question{}).Where("id=?", id).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *questionRepository) UpdatePosition(ctx context.Context, id string, position int) error {
	return xcontext.DB(ctx).Model(&entity.Question{}).
		Where("id=?", id).
		Update("position", position).Error
}

func (r *questionRepository) DeleteByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Delete(&entity.Question{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
