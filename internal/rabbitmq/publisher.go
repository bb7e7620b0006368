package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// PublishMessage публикует сообщение в RabbitMQ.
// Сообщение сериализуется в JSON и помечается персистентным.
func PublishMessage(ch *amqp.Channel, exchange string, routingkey string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Publisher связывает канал RabbitMQ с сервисами, которым нужно
// публиковать сообщения, не завися от *amqp.Channel напрямую.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher создает новый экземпляр Publisher.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// Publish публикует сообщение через обёрнутый канал.
func (p *Publisher) Publish(exchange, routingkey string, message any) error {
	return PublishMessage(p.ch, exchange, routingkey, message)
}
