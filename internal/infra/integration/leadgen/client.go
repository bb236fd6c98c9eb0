package leadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spectix11/ai-sdr/internal/usecase"
)

// Client dispara o webhook do fluxo externo de geração de leads (n8n).
type Client struct {
	webhookURL string
	authToken  string
	http       *http.Client
}

func NewClient(webhookURL, authToken string) *Client {
	return &Client{
		webhookURL: webhookURL,
		authToken:  authToken,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Trigger fires the generation webhook once and returns the flow's
// confirmation message. No retry here: failures surface to the form for a
// manual resubmit.
func (c *Client) Trigger(ctx context.Context, input usecase.GenerateLeadsInput) (string, error) {
	if c.webhookURL == "" {
		return "", fmt.Errorf("lead generation webhook not configured")
	}

	payload := triggerRequest{
		JobTitle:    input.JobTitle,
		CompanySize: input.CompanySize,
		Keywords:    input.Keywords,
		Location:    input.Location,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("erro ao marshal trigger: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.webhookURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro request leadgen: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure triggerResponse
		if json.Unmarshal(body, &failure) == nil && failure.Error != "" {
			return "", fmt.Errorf("lead generation failed: %s", failure.Error)
		}
		return "", fmt.Errorf("lead generation failed (status %d)", resp.StatusCode)
	}

	var response triggerResponse
	if err := json.Unmarshal(body, &response); err != nil {
		// fluxo respondeu 2xx sem JSON: considera sucesso com mensagem padrão
		return "", nil
	}

	return response.Message, nil
}
