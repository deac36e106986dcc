package router

import (
	"context"
	"net/http"

	"github.com/clanhub/backend/config"
	"github.com/clanhub/backend/pkg/authenticator"
	"github.com/clanhub/backend/pkg/errorx"
	"github.com/clanhub/backend/pkg/logger"
	"github.com/clanhub/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before or after a handler. It can derive a new context
// which is passed along the chain; returning a nil context keeps the current
// one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response was written, success or failure.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux         *http.ServeMux
	cfg         config.Configs
	logger      logger.Logger
	db          *gorm.DB
	tokenEngine authenticator.TokenEngine

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:         http.NewServeMux(),
		cfg:         cfg,
		logger:      logger,
		db:          db,
		tokenEngine: authenticator.NewTokenEngine(cfg.Auth.TokenSecret),
	}
}

// Branch returns a router sharing the same mux but with an independent
// middleware chain, so groups of endpoints can differ in authentication.
func (r *Router) Branch() *Router {
	branch := *r
	branch.befores = append([]MiddlewareFunc{}, r.befores...)
	branch.afters = append([]MiddlewareFunc{}, r.afters...)
	branch.closers = append([]CloserFunc{}, r.closers...)
	return &branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

func wrapHandler[Request, Response any](
	r *Router, method string, handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	// The middleware chain is captured at registration time, so branches
	// configured later do not leak into this endpoint.
	befores := append([]MiddlewareFunc{}, r.befores...)
	afters := append([]MiddlewareFunc{}, r.afters...)
	closers := append([]CloserFunc{}, r.closers...)

	return func(w http.ResponseWriter, httpReq *http.Request) {
		ctx := httpReq.Context()
		ctx = xcontext.WithHTTPRequest(ctx, httpReq)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = xcontext.WithConfigs(ctx, r.cfg)
		ctx = xcontext.WithLogger(ctx, r.logger)
		ctx = xcontext.WithDB(ctx, r.db)
		ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)

		ctx, err := func() (context.Context, error) {
			if httpReq.Method != method {
				return ctx, errorx.New(errorx.NotFound, "Not supported method %s", httpReq.Method)
			}

			for _, middleware := range befores {
				newCtx, err := middleware(ctx)
				if err != nil {
					return ctx, err
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			var req Request
			if err := bindRequest(httpReq, &req); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return ctx, errorx.New(errorx.BadRequest, "Cannot bind the request")
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return ctx, err
			}

			return xcontext.WithResponse(ctx, resp), nil
		}()

		if err != nil {
			ctx = xcontext.WithError(ctx, err)
		}

		for _, middleware := range afters {
			newCtx, err := middleware(ctx)
			if err != nil {
				ctx = xcontext.WithError(ctx, err)
				break
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		handleResponse(ctx)

		for _, closer := range closers {
			closer(ctx)
		}
	}
}
