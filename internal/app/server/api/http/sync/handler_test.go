package sync

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"gastos/internal/app/server/api/http/middleware/auth"
	"gastos/internal/domain/sync"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ReplaceAll(ctx context.Context, userID int, req sync.PushRequest) (*sync.PushResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.PushResponse), args.Error(1)
}

func (m *MockService) FetchAll(ctx context.Context, userID int) (*sync.PullResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.PullResponse), args.Error(1)
}

func authedCtx(userID int) context.Context {
	return context.WithValue(context.Background(), auth.UserIDKey, userID)
}

func TestHandler_ReplaceAll(t *testing.T) {
	service := new(MockService)
	handler := NewHandler(service, slog.Default(), huma.Middlewares{})

	req := sync.PushRequest{Expenses: []sync.PushExpense{{Product: "Coffee", Price: 3.5, Timestamp: "2026-03-14T09:00:00Z"}}}
	service.On("ReplaceAll", mock.Anything, 7, req).Return(&sync.PushResponse{CreatedCount: 1}, nil)

	output, err := handler.replaceAll(authedCtx(7), &replaceAllInput{Body: req})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, output.Status)
	assert.Equal(t, 1, output.Body.CreatedCount)
	service.AssertExpectations(t)
}

func TestHandler_ReplaceAll_NoIdentity(t *testing.T) {
	service := new(MockService)
	handler := NewHandler(service, slog.Default(), huma.Middlewares{})

	_, err := handler.replaceAll(context.Background(), &replaceAllInput{})

	assert.Error(t, err)
	service.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_GetAll(t *testing.T) {
	service := new(MockService)
	handler := NewHandler(service, slog.Default(), huma.Middlewares{})

	service.On("FetchAll", mock.Anything, 7).Return(&sync.PullResponse{
		ServerTimestamp: "2026-03-14T09:00:00Z",
	}, nil)

	output, err := handler.getAll(authedCtx(7), &getAllInput{})

	require.NoError(t, err)
	assert.Equal(t, "2026-03-14T09:00:00Z", output.Body.ServerTimestamp)
	service.AssertExpectations(t)
}

func TestHandler_GetAll_ServiceError(t *testing.T) {
	service := new(MockService)
	handler := NewHandler(service, slog.Default(), huma.Middlewares{})

	service.On("FetchAll", mock.Anything, 7).Return(nil, assert.AnError)

	_, err := handler.getAll(authedCtx(7), &getAllInput{})

	assert.Error(t, err)
}
