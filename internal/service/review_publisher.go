// Package service holds integrations with external services used by the
// handlers.
package service

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/komi-attractions/internal/queue"
)

// DefaultDialTimeout bounds the TCP connect and AMQP handshake of a publish.
const DefaultDialTimeout = 2 * time.Second

// ReviewPublisher publishes review events to RabbitMQ.  Each call dials,
// declares the queue and publishes; failures are logged and returned so the
// caller can ignore them without breaking the request.
type ReviewPublisher struct {
	URL         string
	DialTimeout time.Duration
}

func NewReviewPublisher(url string) *ReviewPublisher {
	return &ReviewPublisher{URL: url, DialTimeout: DefaultDialTimeout}
}

func (p *ReviewPublisher) dial() (*amqp.Connection, error) {
	timeout := p.DialTimeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	return amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
}

// PublishReviewCreated sends ev to the durable review.created queue as a
// persistent JSON message.
func (p *ReviewPublisher) PublishReviewCreated(ctx context.Context, ev queue.ReviewCreatedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	conn, err := p.dial()
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.ReviewCreatedQueue, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    "review-" + strconv.FormatUint(ev.ReviewID, 10),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.ReviewCreatedQueue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
