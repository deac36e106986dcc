package repository

import (
	"testing"

	"github.com/clanhub/backend/internal/entity"
	"github.com/clanhub/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_raffleRepository_CompareAndSwapParticipants(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.InsertUsers(ctx)
	testutil.InsertRaffles(ctx)

	repo := NewRaffleRepository()

	base := entity.Array[string]{}
	withMember1 := entity.Array[string]{testutil.Member1.ID}

	err := repo.CompareAndSwapParticipants(ctx, testutil.ActiveRaffle.ID, base, withMember1)
	require.NoError(t, err)

	// A swap against a stale snapshot fails.
	err = repo.CompareAndSwapParticipants(ctx, testutil.ActiveRaffle.ID, base,
		entity.Array[string]{testutil.Member2.ID})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.CompareAndSwapParticipants(ctx, testutil.ActiveRaffle.ID, withMember1,
		entity.Array[string]{testutil.Member1.ID, testutil.Member2.ID})
	require.NoError(t, err)

	raffle, err := repo.GetByID(ctx, testutil.ActiveRaffle.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Array[string]{testutil.Member1.ID, testutil.Member2.ID}, raffle.Participants)
}

func Test_raffleRepository_CheckAndSetWinner(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.InsertUsers(ctx)
	testutil.InsertRaffles(ctx)

	repo := NewRaffleRepository()

	err := repo.CheckAndSetWinner(ctx, testutil.ActiveRaffle.ID, testutil.Member1.ID)
	require.NoError(t, err)

	raffle, err := repo.GetByID(ctx, testutil.ActiveRaffle.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Member1.ID, raffle.Winner)
	require.False(t, raffle.IsActive)

	// A winner is set exactly once.
	err = repo.CheckAndSetWinner(ctx, testutil.ActiveRaffle.ID, testutil.Member2.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.CheckAndSetWinner(ctx, testutil.DrawnRaffle.ID, testutil.Member2.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
