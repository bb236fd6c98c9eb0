package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/spectix11/ai-sdr/internal/infra/http/middleware"
	"github.com/spectix11/ai-sdr/internal/infra/queue"
)

// WebhookHandler recebe os leads gerados pelo fluxo externo (n8n) e joga na
// fila de importação. A persistência fica com o worker.
type WebhookHandler struct {
	Producer queue.QueueProducerInterface
}

func NewWebhookHandler(producer queue.QueueProducerInterface) *WebhookHandler {
	return &WebhookHandler{Producer: producer}
}

// Handle (POST /webhook/leads) — aceita um lead ou um batch.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var event struct {
		Leads []queue.ImportPayload `json:"leads"`
	}

	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Bad JSON", 400)
		return
	}

	if len(event.Leads) == 0 {
		w.WriteHeader(200)
		return
	}

	published := 0
	for _, lead := range event.Leads {
		if lead.Email == "" {
			log.Printf("⚠️ Webhook: lead sem email ignorado")
			continue
		}

		if err := h.Producer.PublishLeadImport(r.Context(), lead); err != nil {
			log.Printf("❌ Erro fila: %v", err)
			w.WriteHeader(500)
			return
		}
		published++
		middleware.RecordLeadImported()
	}

	log.Printf("📥 Webhook: %d lead(s) publicados para importação", published)
	w.WriteHeader(200)
}
