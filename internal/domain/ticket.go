package domain

import (
	"context"
	"errors"

	"github.com/clanhub/backend/internal/common"
	"github.com/clanhub/backend/internal/entity"
	"github.com/clanhub/backend/internal/model"
	"github.com/clanhub/backend/internal/repository"
	"github.com/clanhub/backend/pkg/enum"
	"github.com/clanhub/backend/pkg/errorx"
	"github.com/clanhub/backend/pkg/xcontext"
	"github.com/google/uuid"
	mathutil "github.com/pkg/math"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type TicketDomain interface {
	Create(context.Context, *model.CreateTicketRequest) (*model.CreateTicketResponse, error)
	GetMy(context.Context, *model.GetMyTicketsRequest) (*model.GetMyTicketsResponse, error)
	GetList(context.Context, *model.GetTicketsRequest) (*model.GetTicketsResponse, error)
	Respond(context.Context, *model.RespondTicketRequest) (*model.RespondTicketResponse, error)
	UpdateStatus(context.Context, *model.UpdateTicketStatusRequest) (*model.UpdateTicketStatusResponse, error)
}

type ticketDomain struct {
	ticketRepo         repository.TicketRepository
	userRepo           repository.UserRepository
	globalRoleVerifier *common.GlobalRoleVerifier
}

func NewTicketDomain(
	ticketRepo repository.TicketRepository,
	userRepo repository.UserRepository,
) *ticketDomain {
	return &ticketDomain{
		ticketRepo:         ticketRepo,
		userRepo:           userRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *ticketDomain) Create(
	ctx context.Context, req *model.CreateTicketRequest,
) (*model.CreateTicketResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	priority := entity.PriorityMedium
	if req.Priority != "" {
		var err error
		priority, err = enum.ToEnum[entity.TicketPriority](req.Priority)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid priority %s", req.Priority)
		}
	}

	ticket := &entity.Ticket{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      xcontext.RequestUserID(ctx),
		Title:       req.Title,
		Description: req.Description,
		Status:      entity.TicketOpen,
		Priority:    priority,
	}

	if err := d.ticketRepo.Create(ctx, ticket); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create ticket: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateTicketResponse{ID: ticket.ID}, nil
}

func (d *ticketDomain) GetMy(
	ctx context.Context, req *model.GetMyTicketsRequest,
) (*model.GetMyTicketsResponse, error) {
	tickets, err := d.ticketRepo.GetListByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tickets: %v", err)
		return nil, errorx.Unknown
	}

	clientTickets, err := d.convertTickets(ctx, tickets, false)
	if err != nil {
		return nil, err
	}

	return &model.GetMyTicketsResponse{Tickets: clientTickets}, nil
}

func (d *ticketDomain) GetList(
	ctx context.Context, req *model.GetTicketsRequest,
) (*model.GetTicketsResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}
	req.Limit = mathutil.MinInt(req.Limit, apiCfg.MaxLimit)

	tickets, err := d.ticketRepo.GetList(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tickets: %v", err)
		return nil, errorx.Unknown
	}

	clientTickets, err := d.convertTickets(ctx, tickets, true)
	if err != nil {
		return nil, err
	}

	return &model.GetTicketsResponse{Tickets: clientTickets}, nil
}

func (d *ticketDomain) Respond(
	ctx context.Context, req *model.RespondTicketRequest,
) (*model.RespondTicketResponse, error) {
	if req.TicketID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty ticket id")
	}

	if req.Message == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty message")
	}

	ticket, err := d.ticketRepo.GetByID(ctx, req.TicketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found ticket")
		}

		xcontext.Logger(ctx).Errorf("Cannot get ticket: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	isAdmin := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...) == nil
	if ticket.UserID != userID && !isAdmin {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	response := &entity.TicketResponse{
		Base:            entity.Base{ID: uuid.NewString()},
		TicketID:        req.TicketID,
		UserID:          userID,
		Message:         req.Message,
		IsAdminResponse: isAdmin,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.ticketRepo.CreateResponse(ctx, response); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create ticket response: %v", err)
		return nil, errorx.Unknown
	}

	// The first admin who answers takes the ticket. Any reply on a closed
	// ticket reopens it.
	if isAdmin && !ticket.AssignedTo.Valid {
		if err := d.ticketRepo.SetAssignee(ctx, ticket.ID, userID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot assign ticket: %v", err)
			return nil, errorx.Unknown
		}
	}

	if ticket.Status == entity.TicketClosed {
		if err := d.ticketRepo.UpdateStatusByID(ctx, ticket.ID, entity.TicketInProgress); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot reopen ticket: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.RespondTicketResponse{ID: response.ID}, nil
}

func (d *ticketDomain) UpdateStatus(
	ctx context.Context, req *model.UpdateTicketStatusRequest,
) (*model.UpdateTicketStatusResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	status, err := enum.ToEnum[entity.TicketStatus](req.Status)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
	}

	if err := d.ticketRepo.UpdateStatusByID(ctx, req.ID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found ticket")
		}

		xcontext.Logger(ctx).Errorf("Cannot update ticket status: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateTicketStatusResponse{}, nil
}

func (d *ticketDomain) convertTickets(
	ctx context.Context, tickets []entity.Ticket, withUsernames bool,
) ([]model.Ticket, error) {
	usernames := map[string]string{}
	if withUsernames {
		userIDs := []string{}
		for _, ticket := range tickets {
			if !slices.Contains(userIDs, ticket.UserID) {
				userIDs = append(userIDs, ticket.UserID)
			}
		}

		users, err := d.userRepo.GetByIDs(ctx, userIDs)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get ticket owners: %v", err)
			return nil, errorx.Unknown
		}

		for _, user := range users {
			usernames[user.ID] = user.Username
		}
	}

	clientTickets := []model.Ticket{}
	for i := range tickets {
		responses, err := d.ticketRepo.GetResponsesByTicketID(ctx, tickets[i].ID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get ticket responses: %v", err)
			return nil, errorx.Unknown
		}

		clientTickets = append(clientTickets, model.ConvertTicket(
			&tickets[i], usernames[tickets[i].UserID], responses))
	}

	return clientTickets, nil
}
