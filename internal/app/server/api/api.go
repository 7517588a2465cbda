// HTTP surface of the sync server.
//
// POST /api/auth/register                  # create an account (public)
// POST /api/auth/login                     # exchange credentials for a token (public)
// POST /api/auth/logout                    # revoke the current token
// GET  /api/v1/health                      # liveness probe (public)
// POST /api/sync/replace-all-client-data   # push the full client set (auth)
// GET  /api/sync/get-all-server-data       # pull the full server state (auth)

package api

import (
	healthAPI "gastos/internal/app/server/api/http/health"
	"gastos/internal/app/server/api/http/middleware"
	"gastos/internal/app/server/api/http/middleware/auth"
	"gastos/internal/app/server/api/http/middleware/logger"
	syncAPI "gastos/internal/app/server/api/http/sync"
	userAPI "gastos/internal/app/server/api/http/user"
	"gastos/internal/domain/session"
	"gastos/internal/domain/sync"
	"gastos/internal/domain/user"
	"gastos/internal/infrastructure/storage/postgres"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

type Handlers struct {
	Health *healthAPI.Handler
	User   *userAPI.Handler
	Sync   *syncAPI.Handler
}

// New builds a *chi.Mux with every operation registered through huma.
func New(storage *postgres.Storage, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Gastos Sync API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(storage, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Sync.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, log *slog.Logger) *Handlers {
	sessionRepo := postgres.NewSessionRepository(storage, log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(storage, log)
	userService := user.NewService(userRepo, user.NewCredentialsValidator(), log)
	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, middlewares.GetAllAndClear())

	expenseRepo := postgres.NewExpenseRepository(storage, log)
	syncService := sync.NewService(expenseRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	syncHandler := syncAPI.NewHandler(syncService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Sync:   syncHandler,
	}
}
