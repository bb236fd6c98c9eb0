package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ImportPayload é um lead cru vindo do fluxo de geração, ainda sem ID.
type ImportPayload struct {
	Email          string `json:"email"`
	FullName       string `json:"fullname,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
	CompanyName    string `json:"company_name,omitempty"`
	Industry       string `json:"industry,omitempty"`
	CompanySize    string `json:"company_size,omitempty"`
	CompanyWebsite string `json:"company_website,omitempty"`
	LinkedinURL    string `json:"linkedin_url,omitempty"`
	Username       string `json:"username,omitempty"`
	LeadSource     string `json:"lead_source,omitempty"`
	CampaignID     string `json:"campaign_id,omitempty"`
}

type QueueProducerInterface interface {
	PublishLeadImport(ctx context.Context, payload ImportPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadImport(ctx context.Context, payload ImportPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
