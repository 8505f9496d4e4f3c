package event

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"
)

// EventPublisher pushes exam lifecycle events onto a topic exchange.
// Routing keys: exam.session.started, exam.session.completed,
// exam.session.aborted, exam.result.persisted, notification.created.
type EventPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewEventPublisher(amqpURL, exchange string) (*EventPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &EventPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish is nil-safe so call sites don't need to guard for the
// unconfigured case.
func (p *EventPublisher) Publish(eventType string, payload interface{}) error {
	if p == nil {
		return nil
	}
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	log.Printf("[EVENT] %s", eventType)

	return p.channel.Publish(
		p.exchange,
		eventType, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (p *EventPublisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
