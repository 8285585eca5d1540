package capacity

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	services "github.com/magabrotheeeer/event-management/internal/services/event"
)

// MockService реализует интерфейс capacity.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) AttendeeCount(ctx context.Context, eventID int) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func TestCapacityHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный подсчет участников",
			id:   "7",
			setupMock: func(m *MockService) {
				m.On("AttendeeCount", mock.Anything, 7).Return(42, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"attendees":42`,
		},
		{
			name: "событие без участников",
			id:   "8",
			setupMock: func(m *MockService) {
				m.On("AttendeeCount", mock.Anything, 8).Return(0, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"attendees":0`,
		},
		{
			name:           "некорректный id в url",
			id:             "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid event id"`,
		},
		{
			name: "событие не найдено",
			id:   "999",
			setupMock: func(m *MockService) {
				m.On("AttendeeCount", mock.Anything, 999).Return(0, services.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"event not found"`,
		},
		{
			name: "ошибка сервиса",
			id:   "7",
			setupMock: func(m *MockService) {
				m.On("AttendeeCount", mock.Anything, 7).Return(0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to count attendees"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/events/"+tt.id+"/capacity", nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
