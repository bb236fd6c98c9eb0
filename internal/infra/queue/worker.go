package queue

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spectix11/ai-sdr/internal/entity"
)

type Worker struct {
	Channel  *amqp.Channel
	LeadRepo entity.LeadRepositoryInterface
}

func NewWorker(ch *amqp.Channel, leadRepo entity.LeadRepositoryInterface) *Worker {
	return &Worker{
		Channel:  ch,
		LeadRepo: leadRepo,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ImportPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem malformada: rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] Erro ao importar lead %s: %s", payload.Email, err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Lead %s importado", payload.Email)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload ImportPayload) error {
	email := strings.TrimSpace(strings.ToLower(payload.Email))
	if email == "" {
		// sem email não tem como deduplicar: descarta com Ack para limpar a fila
		log.Printf("⚠️ [WORKER] Payload sem email, descartando")
		return nil
	}

	lead := &entity.Lead{
		ID:             uuid.New().String(),
		Email:          email,
		FullName:       payload.FullName,
		JobTitle:       payload.JobTitle,
		CompanyName:    payload.CompanyName,
		Industry:       payload.Industry,
		CompanySize:    payload.CompanySize,
		CompanyWebsite: payload.CompanyWebsite,
		LinkedinURL:    payload.LinkedinURL,
		Username:       payload.Username,
		LeadSource:     payload.LeadSource,
		CampaignID:     payload.CampaignID,
	}

	return w.LeadRepo.Upsert(ctx, lead)
}
