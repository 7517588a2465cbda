package sync

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"gastos/internal/app/server/api/http/middleware/auth"
	"gastos/internal/domain/sync"
)

type Handler struct {
	service    sync.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service sync.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.replaceAllOp(), h.replaceAll)
	huma.Register(api, h.getAllOp(), h.getAll)
}

// replaceAll receives the complete client-side expense set and diffs it
// against the stored state: rows absent from the payload are deleted.
func (h *Handler) replaceAll(ctx context.Context, input *replaceAllInput) (*replaceAllOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("missing user identity")
	}

	resp, err := h.service.ReplaceAll(ctx, userID, input.Body)
	if err != nil {
		h.log.Error("replace-all failed", "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("failed to apply client data")
	}

	return &replaceAllOutput{Status: http.StatusOK, Body: *resp}, nil
}

// getAll returns the server's complete state for the user, soft-deleted
// rows included.
func (h *Handler) getAll(ctx context.Context, _ *getAllInput) (*getAllOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("missing user identity")
	}

	resp, err := h.service.FetchAll(ctx, userID)
	if err != nil {
		h.log.Error("fetch-all failed", "user_id", userID, "error", err)
		return nil, huma.Error500InternalServerError("failed to load server data")
	}

	return &getAllOutput{Status: http.StatusOK, Body: *resp}, nil
}
