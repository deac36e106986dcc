package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/clanhub/backend/config"
	"github.com/clanhub/backend/internal/entity"
	"github.com/clanhub/backend/pkg/authenticator"
	"github.com/clanhub/backend/pkg/logger"
	"github.com/clanhub/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func MockContext(t *testing.T) context.Context {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, config.Configs{
		Env: "testing",
		ApiServer: config.ServerConfigs{
			DefaultLimit: 10,
			MaxLimit:     50,
		},
		Auth: config.AuthConfigs{
			TokenSecret:  "secret",
			AccessToken:  config.TokenConfigs{Name: "access_token", Expiration: config.Duration(60e9)},
			RefreshToken: config.TokenConfigs{Name: "refresh_token", Expiration: config.Duration(3600e9)},
		},
	})

	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine("secret"))

	// Every test gets its own named in-memory database. The shared cache keeps
	// all pooled connections on the same database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("cannot open the in-memory database: %v", err)
	}

	ctx = xcontext.WithDB(ctx, db)
	if err := entity.MigrateTable(ctx); err != nil {
		t.Fatalf("cannot migrate tables: %v", err)
	}

	return ctx
}

func MockContextWithUserID(t *testing.T, userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(t), userID)
}
