package domain

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/clanhub/backend/internal/common"
	"github.com/clanhub/backend/internal/entity"
	"github.com/clanhub/backend/internal/model"
	"github.com/clanhub/backend/internal/repository"
	"github.com/clanhub/backend/pkg/crypto"
	"github.com/clanhub/backend/pkg/errorx"
	"github.com/clanhub/backend/pkg/xcontext"
	"github.com/google/uuid"
	mathutil "github.com/pkg/math"
	"github.com/puzpuzpuz/xsync"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RandIntFunc returns a uniform random integer in [0, n). The production
// wiring uses crypto.RandIntn; tests substitute a deterministic one.
type RandIntFunc func(n int) int

type RaffleDomain interface {
	Get(context.Context, *model.GetRaffleRequest) (*model.GetRaffleResponse, error)
	GetList(context.Context, *model.GetRafflesRequest) (*model.GetRafflesResponse, error)
	Create(context.Context, *model.CreateRaffleRequest) (*model.CreateRaffleResponse, error)
	Update(context.Context, *model.UpdateRaffleRequest) (*model.UpdateRaffleResponse, error)
	Delete(context.Context, *model.DeleteRaffleRequest) (*model.DeleteRaffleResponse, error)
	Join(context.Context, *model.JoinRaffleRequest) (*model.JoinRaffleResponse, error)
	DrawWinner(context.Context, *model.DrawRaffleWinnerRequest) (*model.DrawRaffleWinnerResponse, error)
}

type raffleDomain struct {
	raffleRepo         repository.RaffleRepository
	userRepo           repository.UserRepository
	globalRoleVerifier *common.GlobalRoleVerifier
	randomizer         RandIntFunc
	raffleLocks        *xsync.MapOf[string, *sync.Mutex]
}

func NewRaffleDomain(
	raffleRepo repository.RaffleRepository,
	userRepo repository.UserRepository,
	randomizer RandIntFunc,
) *raffleDomain {
	if randomizer == nil {
		randomizer = crypto.RandIntn
	}

	return &raffleDomain{
		raffleRepo:         raffleRepo,
		userRepo:           userRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
		randomizer:         randomizer,
		raffleLocks:        xsync.NewMapOf[*sync.Mutex](),
	}
}

func (d *raffleDomain) lockRaffle(id string) func() {
	mutex, _ := d.raffleLocks.LoadOrStore(id, &sync.Mutex{})
	mutex.Lock()
	return mutex.Unlock
}

func (d *raffleDomain) Get(
	ctx context.Context, req *model.GetRaffleRequest,
) (*model.GetRaffleResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	raffle, err := d.raffleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetRaffleResponse{Raffle: model.ConvertRaffle(raffle)}, nil
}

func (d *raffleDomain) GetList(
	ctx context.Context, req *model.GetRafflesRequest,
) (*model.GetRafflesResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}
	req.Limit = mathutil.MinInt(req.Limit, apiCfg.MaxLimit)

	raffles, err := d.raffleRepo.GetList(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get raffles: %v", err)
		return nil, errorx.Unknown
	}

	clientRaffles := []model.Raffle{}
	for i := range raffles {
		clientRaffles = append(clientRaffles, model.ConvertRaffle(&raffles[i]))
	}

	return &model.GetRafflesResponse{Raffles: clientRaffles}, nil
}

func (d *raffleDomain) Create(
	ctx context.Context, req *model.CreateRaffleRequest,
) (*model.CreateRaffleResponse, error) {
	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	if req.EndDate.Before(time.Now()) {
		return nil, errorx.New(errorx.BadRequest, "End date must be in the future")
	}

	raffle := &entity.Raffle{
		Base:         entity.Base{ID: uuid.NewString()},
		Title:        req.Title,
		Description:  req.Description,
		EndDate:      req.EndDate,
		Participants: entity.Array[string]{},
		IsActive:     true,
		CreatedBy:    xcontext.RequestUserID(ctx),
	}

	if err := d.raffleRepo.Create(ctx, raffle); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create raffle: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateRaffleResponse{ID: raffle.ID}, nil
}

func (d *raffleDomain) Update(
	ctx context.Context, req *model.UpdateRaffleRequest,
) (*model.UpdateRaffleResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	raffle, err := d.raffleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	if raffle.Winner != "" {
		return nil, errorx.New(errorx.AlreadyDrawn, "Raffle already has a winner")
	}

	err = d.raffleRepo.UpdateByID(ctx, req.ID, &entity.Raffle{
		Title:       req.Title,
		Description: req.Description,
		EndDate:     req.EndDate,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update raffle: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateRaffleResponse{}, nil
}

func (d *raffleDomain) Delete(
	ctx context.Context, req *model.DeleteRaffleRequest,
) (*model.DeleteRaffleResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if err := d.raffleRepo.DeleteByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete raffle: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteRaffleResponse{}, nil
}

func (d *raffleDomain) Join(
	ctx context.Context, req *model.JoinRaffleRequest,
) (*model.JoinRaffleResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	userID := xcontext.RequestUserID(ctx)
	unlock := d.lockRaffle(req.ID)
	defer unlock()

	raffle, err := d.raffleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	if !raffle.IsActive || raffle.Winner != "" {
		return nil, errorx.New(errorx.RaffleNotActive, "Raffle is not active")
	}

	if raffle.EndDate.Before(time.Now()) {
		return nil, errorx.New(errorx.RaffleExpired, "Raffle has ended")
	}

	if slices.Contains(raffle.Participants, userID) {
		return nil, errorx.New(errorx.AlreadyJoined, "You already joined this raffle")
	}

	updated := append(slices.Clone(raffle.Participants), userID)
	err = d.raffleRepo.CompareAndSwapParticipants(ctx, req.ID, raffle.Participants, updated)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.AlreadyJoined, "You already joined this raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot join raffle: %v", err)
		return nil, errorx.Unknown
	}

	return &model.JoinRaffleResponse{}, nil
}

func (d *raffleDomain) DrawWinner(
	ctx context.Context, req *model.DrawRaffleWinnerRequest,
) (*model.DrawRaffleWinnerResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	unlock := d.lockRaffle(req.ID)
	defer unlock()

	raffle, err := d.raffleRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found raffle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get raffle: %v", err)
		return nil, errorx.Unknown
	}

	if raffle.Winner != "" {
		return nil, errorx.New(errorx.AlreadyDrawn, "Raffle already has a winner")
	}

	if len(raffle.Participants) == 0 {
		return nil, errorx.New(errorx.NoParticipants, "Raffle has no participants")
	}

	winnerID := raffle.Participants[d.randomizer(len(raffle.Participants))]
	if err := d.raffleRepo.CheckAndSetWinner(ctx, req.ID, winnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.AlreadyDrawn, "Raffle already has a winner")
		}

		xcontext.Logger(ctx).Errorf("Cannot set raffle winner: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DrawRaffleWinnerResponse{WinnerID: winnerID}, nil
}
