package domain

import (
	"testing"
	"time"

	"github.com/clanhub/backend/internal/model"
	"github.com/clanhub/backend/internal/repository"
	"github.com/clanhub/backend/pkg/errorx"
	"github.com/clanhub/backend/pkg/testutil"
	"github.com/clanhub/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestRaffleDomain(randomizer RandIntFunc) *raffleDomain {
	return NewRaffleDomain(
		repository.NewRaffleRepository(),
		repository.NewUserRepository(),
		randomizer,
	)
}

func Test_raffleDomain_Join(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member1.ID)
	testutil.InsertUsers(ctx)
	testutil.InsertRaffles(ctx)

	domain := newTestRaffleDomain(nil)

	_, err := domain.Join(ctx, &model.JoinRaffleRequest{ID: testutil.ActiveRaffle.ID})
	require.NoError(t, err)

	resp, err := domain.Get(ctx, &model.GetRaffleRequest{ID: testutil.ActiveRaffle.ID})
	require.NoError(t, err)
	require.Equal(t, []string{testutil.Member1.ID}, resp.Raffle.Participants)

	_, err = domain.Join(ctx, &model.JoinRaffleRequest{ID: testutil.ActiveRaffle.ID})
	require.Equal(t, errorx.New(errorx.AlreadyJoined, "You already joined this raffle"), err)

	// A second member joins behind the first.
	member2Ctx := xcontext.WithRequestUserID(ctx, testutil.Member2.ID)
	_, err = domain.Join(member2Ctx, &model.JoinRaffleRequest{ID: testutil.ActiveRaffle.ID})
	require.NoError(t, err)

	resp, err = domain.Get(ctx, &model.GetRaffleRequest{ID: testutil.ActiveRaffle.ID})
	require.NoError(t, err)
	require.Equal(t, []string{testutil.Member1.ID, testutil.Member2.ID}, resp.Raffle.Participants)
}

func Test_raffleDomain_Join_rejections(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Member2.ID)
	testutil.InsertUsers(ctx)
	testutil.InsertRaffles(ctx)

	domain := newTestRaffleDomain(nil)

	testcases := []struct {
		name     string
		raffleID string
		expected error
	}{
		{
			name:     "not found raffle",
			raffleID: "raffle_unknown",
			expected: errorx.New(errorx.NotFound, "Not found raffle"),
		},
		{
			name:     "expired raffle",
			raffleID: testutil.ExpiredRaffle.ID,
			expected: errorx.New(errorx.RaffleExpired, "Raffle has ended"),
		},
		{
			name:     "drawn raffle",
			raffleID: testutil.DrawnRaffle.ID,
			expected: errorx.New(errorx.RaffleNotActive, "Raffle is not active"),
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.Join(ctx, &model.JoinRaffleRequest{ID: tc.raffleID})
			require.Equal(t, tc.expected, err)
		})
	}
}

func Test_raffleDomain_DrawWinner(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Admin.ID)
	testutil.InsertUsers(ctx)
	testutil.InsertRaffles(ctx)

	raffleRepo := repository.NewRaffleRepository()
	domain := NewRaffleDomain(raffleRepo, repository.NewUserRepository(),
		func(n int) int { return n - 1 })

	member1Ctx := xcontext.WithRequestUserID(ctx, testutil.Member1.ID)
	member2Ctx := xcontext.WithRequestUserID(ctx, testutil.Member2.ID)

	_, err := domain.Join(member1Ctx, &model.JoinRaffleRequest{ID: testutil.ActiveRaffle.ID})
	require.NoError(t, err)
	_, err = domain.Join(member2Ctx, &model.JoinRaffleRequest{ID: testutil.ActiveRaffle.ID})
	require.NoError(t, err)

	// The deterministic randomizer picks the last participant.
	resp, err := domain.DrawWinner(ctx, &model.DrawRaffleWinnerRequest{ID: testutil.ActiveRaffle.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Member2.ID, resp.WinnerID)

	raffle, err := raffleRepo.GetByID(ctx, testutil.ActiveRaffle.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Member2.ID, raffle.Winner)
	require.False(t, raffle.IsActive)

	// The draw is irreversible.
	_, err = domain.DrawWinner(ctx, &model.DrawRaffleWinnerRequest{ID: testutil.ActiveRaffle.ID})
	require.Equal(t, errorx.New(errorx.AlreadyDrawn, "Raffle already has a winner"), err)

	// A drawn raffle accepts no more participants.
	_, err = domain.Join(member1Ctx, &model.JoinRaffleRequest{ID: testutil.ActiveRaffle.ID})
	require.Equal(t, errorx.New(errorx.RaffleNotActive, "Raffle is not active"), err)
}

func Test_raffleDomain_DrawWinner_rejections(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Admin.ID)
	testutil.InsertUsers(ctx)
	testutil.InsertRaffles(ctx)

	domain := newTestRaffleDomain(nil)

	_, err := domain.DrawWinner(ctx, &model.DrawRaffleWinnerRequest{ID: testutil.DrawnRaffle.ID})
	require.Equal(t, errorx.New(errorx.AlreadyDrawn, "Raffle already has a winner"), err)

	_, err = domain.DrawWinner(ctx, &model.DrawRaffleWinnerRequest{ID: testutil.ActiveRaffle.ID})
	require.Equal(t, errorx.New(errorx.NoParticipants, "Raffle has no participants"), err)

	memberCtx := xcontext.WithRequestUserID(ctx, testutil.Member1.ID)
	_, err = domain.DrawWinner(memberCtx, &model.DrawRaffleWinnerRequest{ID: testutil.ActiveRaffle.ID})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Permission denied"), err)
}

func Test_raffleDomain_CreateUpdateDelete(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Admin.ID)
	testutil.InsertUsers(ctx)

	domain := newTestRaffleDomain(nil)

	_, err := domain.Create(ctx, &model.CreateRaffleRequest{
		Title:   "Past giveaway",
		EndDate: time.Now().AddDate(0, 0, -1),
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "End date must be in the future"), err)

	created, err := domain.Create(ctx, &model.CreateRaffleRequest{
		Title:       "Monthly giveaway",
		Description: "One winner takes it all",
		EndDate:     time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	resp, err := domain.Get(ctx, &model.GetRaffleRequest{ID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "Monthly giveaway", resp.Raffle.Title)
	require.True(t, resp.Raffle.IsActive)
	require.Empty(t, resp.Raffle.Winner)
	require.Equal(t, testutil.Admin.ID, resp.Raffle.CreatedBy)

	_, err = domain.Update(ctx, &model.UpdateRaffleRequest{
		ID:      created.ID,
		Title:   "Monthly giveaway v2",
		EndDate: time.Now().AddDate(0, 2, 0),
	})
	require.NoError(t, err)

	resp, err = domain.Get(ctx, &model.GetRaffleRequest{ID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "Monthly giveaway v2", resp.Raffle.Title)

	_, err = domain.Delete(ctx, &model.DeleteRaffleRequest{ID: created.ID})
	require.NoError(t, err)

	_, err = domain.Get(ctx, &model.GetRaffleRequest{ID: created.ID})
	require.Equal(t, errorx.New(errorx.NotFound, "Not found raffle"), err)
}
