package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-landing/internal/entity"
)

const (
	leadOrigin     = "landing_page"
	publishTimeout = 5 * time.Second
)

// LeadCapturedPayload é o evento publicado depois que o lead foi gravado na planilha.
type LeadCapturedPayload struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Birthdate   string `json:"birthdate"`
	Whatsapp    string `json:"whatsapp"`
	Email       string `json:"email"`
	SubmittedAt string `json:"submitted_at"`
	Origin      string `json:"origin"`
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	ch publisher
}

func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{ch: ch}
}

// NotifyLead publica o lead como evento durável em ex.leads.
func (p *RabbitMQProducer) NotifyLead(lead entity.Lead, submittedAt time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	return p.PublishLeadCaptured(ctx, LeadCapturedPayload{
		Name:        lead.Name,
		Surname:     lead.Surname,
		Birthdate:   lead.Birthdate,
		Whatsapp:    lead.Whatsapp,
		Email:       lead.Email,
		SubmittedAt: submittedAt.UTC().Format(entity.TimestampLayout),
		Origin:      leadOrigin,
	})
}

func (p *RabbitMQProducer) PublishLeadCaptured(ctx context.Context, payload LeadCapturedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Timestamp:    time.Now(),
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}

	return nil
}
