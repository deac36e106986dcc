package main

import (
	"net/http"

	"github.com/clanhub/backend/internal/middleware"
	"github.com/clanhub/backend/pkg/prometheus"
	"github.com/clanhub/backend/pkg/router"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cliCtx *cli.Context) error {
	if err := s.loadConfig(cliCtx); err != nil {
		return err
	}

	s.loadLogger()
	if err := s.loadDatabase(); err != nil {
		return err
	}

	s.loadRedis(s.baseContext())
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	httpSrv := &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: cors.AllowAll().Handler(s.router.Handler()),
	}

	s.logger.Infof("Starting api server on %s", httpSrv.Addr)
	if cert, key := s.configs.ApiServer.Cert, s.configs.ApiServer.Key; cert != "" && key != "" {
		return httpSrv.ListenAndServeTLS(cert, key)
	}

	return httpSrv.ListenAndServe()
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())
	s.router.Handle("/metrics", prometheus.NewHandler())

	publicRouter := s.router.Branch()
	router.POST(publicRouter, "/register", s.authDomain.Register)
	router.POST(publicRouter, "/login", s.authDomain.Login)
	router.POST(publicRouter, "/refreshToken", s.authDomain.Refresh)
	router.GET(publicRouter, "/getQuestions", s.questionDomain.GetList)
	router.GET(publicRouter, "/getRaffle", s.raffleDomain.Get)
	router.GET(publicRouter, "/getRaffles", s.raffleDomain.GetList)

	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier().Middleware())
	router.GET(authRouter, "/getMe", s.userDomain.GetMe)
	router.POST(authRouter, "/updateProfile", s.userDomain.UpdateProfile)
	router.POST(authRouter, "/submitApplication", s.applicationDomain.Submit)
	router.GET(authRouter, "/getMyApplication", s.applicationDomain.GetMy)
	router.POST(authRouter, "/joinRaffle", s.raffleDomain.Join)
	router.POST(authRouter, "/createTicket", s.ticketDomain.Create)
	router.GET(authRouter, "/getMyTickets", s.ticketDomain.GetMy)
	router.POST(authRouter, "/respondTicket", s.ticketDomain.Respond)

	adminRouter := authRouter.Branch()
	adminRouter.Before(middleware.NewOnlyAdmin(s.userRepo).Middleware())
	router.POST(adminRouter, "/createQuestion", s.questionDomain.Create)
	router.POST(adminRouter, "/updateQuestion", s.questionDomain.Update)
	router.POST(adminRouter, "/deleteQuestion", s.questionDomain.Delete)
	router.POST(adminRouter, "/reorderQuestions", s.questionDomain.Reorder)
	router.GET(adminRouter, "/getApplications", s.applicationDomain.GetList)
	router.POST(adminRouter, "/reviewApplication", s.applicationDomain.Review)
	router.POST(adminRouter, "/createRaffle", s.raffleDomain.Create)
	router.POST(adminRouter, "/updateRaffle", s.raffleDomain.Update)
	router.POST(adminRouter, "/deleteRaffle", s.raffleDomain.Delete)
	router.POST(adminRouter, "/drawRaffleWinner", s.raffleDomain.DrawWinner)
	router.GET(adminRouter, "/getUsers", s.userDomain.GetUsers)
	router.POST(adminRouter, "/banUser", s.userDomain.BanUser)
	router.POST(adminRouter, "/setUserRole", s.userDomain.SetRole)
	router.GET(adminRouter, "/getTickets", s.ticketDomain.GetList)
	router.POST(adminRouter, "/updateTicketStatus", s.ticketDomain.UpdateStatus)
}
