package leadgen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spectix11/ai-sdr/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func TestTriggerSendsPayloadWithTimestamp(t *testing.T) {
	var received triggerRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(triggerResponse{Message: "queued"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123")
	msg, err := client.Trigger(context.Background(), usecase.GenerateLeadsInput{
		JobTitle:    "Head of Growth",
		CompanySize: "11-50",
		Keywords:    "fintech",
	})

	assert.NoError(t, err)
	assert.Equal(t, "queued", msg)
	assert.Equal(t, "Head of Growth", received.JobTitle)
	assert.Equal(t, "11-50", received.CompanySize)
	assert.NotEmpty(t, received.Timestamp)
}

func TestTriggerSurfacesErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(triggerResponse{Error: "no credits left"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Trigger(context.Background(), usecase.GenerateLeadsInput{JobTitle: "CTO", CompanySize: "1-10"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no credits left")
}

func TestTriggerGenericFailureWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Trigger(context.Background(), usecase.GenerateLeadsInput{JobTitle: "CTO", CompanySize: "1-10"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestTriggerNotConfigured(t *testing.T) {
	client := NewClient("", "")
	_, err := client.Trigger(context.Background(), usecase.GenerateLeadsInput{JobTitle: "CTO", CompanySize: "1-10"})
	assert.Error(t, err)
}
