package broadcast

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"dispatch/internal/core/ports"
)

// AMQPPublisher mirrors fleet events to a fanout exchange so out-of-process
// consumers can follow the same stream the websocket hub serves.
type AMQPPublisher struct {
	ch       *amqp.Channel
	exchange string
}

// NewAMQPPublisher declares the fanout exchange and returns a publisher
// bound to it.
func NewAMQPPublisher(ch *amqp.Channel, exchange string) (*AMQPPublisher, error) {
	err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeFanout,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &AMQPPublisher{ch: ch, exchange: exchange}, nil
}

// Publish sends the event to the exchange with the event kind as routing
// key. Fanout exchanges ignore the key, but it lets consumers filter when
// the exchange type is changed to topic.
func (p *AMQPPublisher) Publish(ctx context.Context, kind ports.EventKind, payload any) error {
	body, err := json.Marshal(envelope{Event: string(kind), Data: payload})
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(ctx,
		p.exchange,
		string(kind),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
