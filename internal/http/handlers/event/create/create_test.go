package create

import (
	"bytes"
	"context"
	"encoding/json"
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
	services "github.com/magabrotheeeer/event-management/internal/services/event"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, actingUsername string, req models.DummyEvent) (*models.Event, error) {
	args := m.Called(ctx, actingUsername, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func validBody() models.DummyEvent {
	return models.DummyEvent{
		Title:     "Go Meetup",
		StartDate: "2030-05-01T18:00:00Z",
		EndDate:   "2030-05-01T21:00:00Z",
		Location:  "Moscow",
		Capacity:  100,
		Price:     500,
	}
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		username       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное создание события",
			requestBody: validBody(),
			username:    "testuser",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "testuser", mock.AnythingOfType("models.DummyEvent")).
					Return(&models.Event{ID: 1, Title: "Go Meetup", Status: models.StatusDraft}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"DRAFT"`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    validBody(),
			username:       "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			username:       "testuser",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"failed to decode request"`,
		},
		{
			name:           "ошибка валидации вместимости",
			requestBody:    models.DummyEvent{Title: "Go Meetup", StartDate: "2030-05-01T18:00:00Z", EndDate: "2030-05-01T21:00:00Z", Location: "Moscow", Capacity: 20000},
			username:       "testuser",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Capacity is above the allowed maximum`,
		},
		{
			name:        "дата начала в прошлом",
			requestBody: validBody(),
			username:    "testuser",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "testuser", mock.AnythingOfType("models.DummyEvent")).
					Return(nil, errors.Join(services.ErrValidation, errors.New("start date must be in the future")))
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `start date must be in the future`,
		},
		{
			name:        "неизвестный пользователь",
			requestBody: validBody(),
			username:    "ghost",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "ghost", mock.AnythingOfType("models.DummyEvent")).
					Return(nil, services.ErrUnknownUser)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: validBody(),
			username:    "testuser",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "testuser", mock.AnythingOfType("models.DummyEvent")).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to create event"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

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
