package main

import (
	"context"

	"github.com/clanhub/backend/config"
	"github.com/clanhub/backend/internal/domain"
	"github.com/clanhub/backend/internal/repository"
	"github.com/clanhub/backend/pkg/logger"
	"github.com/clanhub/backend/pkg/router"
	"github.com/clanhub/backend/pkg/xcontext"
	"github.com/clanhub/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB

	redisClient xredis.Client

	userRepo        repository.UserRepository
	questionRepo    repository.QuestionRepository
	applicationRepo repository.ApplicationRepository
	raffleRepo      repository.RaffleRepository
	ticketRepo      repository.TicketRepository

	authDomain        domain.AuthDomain
	userDomain        domain.UserDomain
	questionDomain    domain.QuestionDomain
	applicationDomain domain.ApplicationDomain
	raffleDomain      domain.RaffleDomain
	ticketDomain      domain.TicketDomain

	router *router.Router
}

func (s *srv) loadConfig(cliCtx *cli.Context) error {
	configs, err := config.Load(cliCtx.String("config"))
	if err != nil {
		return err
	}

	s.configs = configs
	return nil
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
}

func (s *srv) loadDatabase() error {
	db, err := gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		return err
	}

	s.db = db
	return nil
}

// loadRedis is best effort. Without redis the question list is simply read
// from the database on every request.
func (s *srv) loadRedis(ctx context.Context) {
	if s.configs.Redis.Addr == "" {
		return
	}

	redisClient, err := xredis.NewClient(ctx)
	if err != nil {
		s.logger.Warnf("Cannot connect to redis, running without cache: %v", err)
		return
	}

	s.redisClient = redisClient
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.questionRepo = repository.NewQuestionRepository()
	s.applicationRepo = repository.NewApplicationRepository()
	s.raffleRepo = repository.NewRaffleRepository()
	s.ticketRepo = repository.NewTicketRepository()
}

func (s *srv) loadDomains() {
	s.authDomain = domain.NewAuthDomain(s.userRepo)
	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.questionDomain = domain.NewQuestionDomain(s.questionRepo, s.userRepo, s.redisClient)
	s.applicationDomain = domain.NewApplicationDomain(s.applicationRepo, s.questionRepo, s.userRepo)
	s.raffleDomain = domain.NewRaffleDomain(s.raffleRepo, s.userRepo, nil)
	s.ticketDomain = domain.NewTicketDomain(s.ticketRepo, s.userRepo)
}

func (s *srv) baseContext() context.Context {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	if s.db != nil {
		ctx = xcontext.WithDB(ctx, s.db)
	}

	return ctx
}
