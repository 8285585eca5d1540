package listown

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/event-management/internal/http/middlewarectx"
	"github.com/magabrotheeeer/event-management/internal/models"
)

// MockService реализует интерфейс listown.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ListOwn(ctx context.Context, username string) ([]*models.Event, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func TestListOwnHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	own := []*models.Event{
		{ID: 3, Title: "Draft Event", Status: models.StatusDraft},
		{ID: 4, Title: "Public Event", Status: models.StatusPublished},
	}

	tests := []struct {
		name           string
		username       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешная выдача собственных событий",
			username: "testuser",
			setupMock: func(m *MockService) {
				m.On("ListOwn", mock.Anything, "testuser").Return(own, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Draft Event"`,
		},
		{
			name:           "отсутствует авторизация",
			username:       "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:     "ошибка сервиса",
			username: "testuser",
			setupMock: func(m *MockService) {
				m.On("ListOwn", mock.Anything, "testuser").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to list events"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/events/my", nil)
			ctx := context.WithValue(req.Context(), middlewarectx.User, tt.username)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
