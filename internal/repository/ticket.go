package repository

import (
	"context"
	"database/sql"

	"github.com/clanhub/backend/internal/entity"
	"github.com/clanhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	GetByID(ctx context.Context, id string) (*entity.Ticket, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Ticket, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Ticket, error)
	UpdateStatusByID(ctx context.Context, id string, status entity.TicketStatus) error
	SetAssignee(ctx context.Context, id, userID string) error

	CreateResponse(ctx context.Context, response *entity.TicketResponse) error
	GetResponsesByTicketID(ctx context.Context, ticketID string) ([]entity.TicketResponse, error)
}

type ticketRepository struct{}

func NewTicketRepository() *ticketRepository {
	return &ticketRepository{}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	return xcontext.DB(ctx).Create(ticket).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*entity.Ticket, error) {
	var result entity.Ticket
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *ticketRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.Ticket, error) {
	var result []entity.Ticket
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Ticket, error) {
	var result []entity.Ticket
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) UpdateStatusByID(
	ctx context.Context, id string, status entity.TicketStatus,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Ticket{}).
		Where("id=?", id).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *ticketRepository) SetAssignee(ctx context.Context, id, userID string) error {
	return xcontext.DB(ctx).Model(&entity.Ticket{}).
		Where("id=?", id).
		Update("assigned_to", sql.NullString{String: userID, Valid: true}).Error
}

func (r *ticketRepository) CreateResponse(ctx context.Context, response *entity.TicketResponse) error {
	return xcontext.DB(ctx).Create(response).Error
}

func (r *ticketRepository) GetResponsesByTicketID(
	ctx context.Context, ticketID string,
) ([]entity.TicketResponse, error) {
	var result []entity.TicketResponse
	err := xcontext.DB(ctx).
		Where("ticket_id=?", ticketID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
