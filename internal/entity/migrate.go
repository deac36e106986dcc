package entity

import (
	"context"

	"github.com/clanhub/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Question{},
		&Application{},
		&Raffle{},
		&Ticket{},
		&TicketResponse{},
	)
}
