package generate

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/nutrition-practice/internal/aicontent"
)

// MockService реализует интерфейс generate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Generate(ctx context.Context, kind aicontent.Kind, prompt string) (string, error) {
	args := m.Called(ctx, kind, prompt)
	return args.String(0), args.Error(1)
}

func TestGenerateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная генерация плана питания",
			body: `{"kind":"plan","prompt":"план питания на неделю без глютена"}`,
			setupMock: func(m *MockService) {
				m.On("Generate", mock.Anything, aicontent.KindPlan, "план питания на неделю без глютена").
					Return("Понедельник: ...", nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"kind":"plan"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{invalid`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "неподдерживаемый вид контента",
			body:           `{"kind":"poetry","prompt":"стихи о еде"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Kind has an unsupported value`,
		},
		{
			name: "ошибка генерации",
			body: `{"kind":"chat","prompt":"рекомендации по белку"}`,
			setupMock: func(m *MockService) {
				m.On("Generate", mock.Anything, aicontent.KindChat, "рекомендации по белку").
					Return("", errors.New("api error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not generate content"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/ai/generate", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
