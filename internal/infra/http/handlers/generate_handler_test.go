package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spectix11/ai-sdr/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLeadGenTrigger struct {
	mock.Mock
}

func (m *MockLeadGenTrigger) Trigger(ctx context.Context, input usecase.GenerateLeadsInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func TestGenerateHandlerSuccess(t *testing.T) {
	trigger := new(MockLeadGenTrigger)
	trigger.On("Trigger", mock.Anything, mock.Anything).Return("Generation started", nil)

	handler := NewGenerateHandler(usecase.NewGenerateLeadsUseCase(trigger))

	body, _ := json.Marshal(usecase.GenerateLeadsInput{JobTitle: "CTO", CompanySize: "11-50"})
	req := httptest.NewRequest("POST", "/api/generate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var out usecase.GenerateLeadsOutput
	json.NewDecoder(w.Body).Decode(&out)
	assert.True(t, out.Success)
	assert.Equal(t, "Generation started", out.Message)
}

func TestGenerateHandlerValidationError(t *testing.T) {
	trigger := new(MockLeadGenTrigger)
	handler := NewGenerateHandler(usecase.NewGenerateLeadsUseCase(trigger))

	body, _ := json.Marshal(usecase.GenerateLeadsInput{Keywords: "saas"})
	req := httptest.NewRequest("POST", "/api/generate", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResponse map[string]string
	json.NewDecoder(w.Body).Decode(&errResponse)
	assert.Equal(t, "VALIDATION_ERROR", errResponse["error"])
	trigger.AssertNotCalled(t, "Trigger", mock.Anything, mock.Anything)
}

func TestGenerateHandlerInvalidJSON(t *testing.T) {
	handler := NewGenerateHandler(usecase.NewGenerateLeadsUseCase(nil))

	req := httptest.NewRequest("POST", "/api/generate", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	handler.Handle(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateHandlerRateLimit(t *testing.T) {
	trigger := new(MockLeadGenTrigger)
	trigger.On("Trigger", mock.Anything, mock.Anything).Return("ok", nil)

	handler := NewGenerateHandler(usecase.NewGenerateLeadsUseCase(trigger))

	body, _ := json.Marshal(usecase.GenerateLeadsInput{JobTitle: "CTO", CompanySize: "11-50"})

	var last int
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest("POST", "/api/generate", bytes.NewReader(body))
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		handler.Handle(w, req)
		last = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}
