package main

import (
	"github.com/clanhub/backend/internal/entity"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cliCtx *cli.Context) error {
	if err := s.loadConfig(cliCtx); err != nil {
		return err
	}

	s.loadLogger()
	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := entity.MigrateTable(s.baseContext()); err != nil {
		return err
	}

	s.logger.Infof("Migrated the database tables successfully")
	return nil
}
