package user

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"gastos/internal/domain/session"
	"gastos/internal/domain/user"
)

type Handler struct {
	service    user.Servicer
	session    session.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, session session.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		session:    session,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
	huma.Register(api, h.logoutOp(), h.logout)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	userID, err := h.service.Register(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, user.ErrAlreadyExists) {
			status = http.StatusConflict
		}
		return &registerOutput{
			Status: status,
			Body:   RegisterResponse{Status: "Error", Error: err.Error()},
		}, nil
	}

	return &registerOutput{
		Status: http.StatusCreated,
		Body:   RegisterResponse{ID: userID, Status: "Ok"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		return &loginOutput{
			Status: http.StatusUnauthorized,
			Body:   LoginResponse{Status: "Error", Error: "invalid credentials"},
		}, nil
	}

	token, err := h.session.Create(ctx, u.ID)
	if err != nil {
		h.log.Error("failed to create session", "user_id", u.ID, "error", err)
		return &loginOutput{
			Status: http.StatusInternalServerError,
			Body:   LoginResponse{Status: "Error", Error: "failed to create session"},
		}, nil
	}

	return &loginOutput{
		Status: http.StatusOK,
		Body:   LoginResponse{Token: token, Status: "Ok"},
	}, nil
}

func (h *Handler) logout(ctx context.Context, input *logoutInput) (*logoutOutput, error) {
	token, ok := strings.CutPrefix(input.Authorization, "Bearer ")
	if !ok || token == "" {
		return &logoutOutput{
			Status: http.StatusUnauthorized,
			Body:   LogoutResponse{Status: "Error", Error: "missing bearer token"},
		}, nil
	}

	if err := h.session.Revoke(ctx, token); err != nil {
		h.log.Warn("failed to revoke session", "error", err)
		return &logoutOutput{
			Status: http.StatusInternalServerError,
			Body:   LogoutResponse{Status: "Error", Error: "failed to revoke session"},
		}, nil
	}

	return &logoutOutput{
		Status: http.StatusOK,
		Body:   LogoutResponse{Status: "Ok"},
	}, nil
}
