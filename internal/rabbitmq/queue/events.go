package queue

import (
	"encoding/json"
	"fmt"

	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/drivedesk/notifier/internal/config"
)

// Event types published by the record-keeping side of the application.
const (
	EventSessionScheduled = "session_scheduled"
	EventExamConfirmed    = "exam_confirmed"
	EventPaymentOverdue   = "payment_overdue"
	EventVehicleService   = "vehicle_service_due"
)

// Event is the envelope for one business event. The payload schema is owned
// by the publisher and decoded by the matching trigger handler.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// EventQueue wires the business-event exchange, main queue, retry queue and
// DLQ, and exposes typed publish/consume over them.
type EventQueue struct {
	Publisher  *rabbitmq.Publisher
	Consumer   *rabbitmq.Consumer
	routingKey string
}

// NewEventQueue declares the topology from configuration and binds the main
// queue to the exchange. Messages that exhaust the broker-side retry flow end
// up in the DLQ for manual inspection.
func NewEventQueue(ch *rabbitmq.Channel, cfg *config.Config) (*EventQueue, error) {
	exchange := rabbitmq.NewExchange(cfg.RabbitMQ.Exchange, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("failed to bind to exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)

	_, err := qm.DeclareQueue(cfg.RabbitMQ.DLQ, rabbitmq.QueueConfig{Durable: true})
	if err != nil {
		return nil, fmt.Errorf("failed to declare DLQ queue: %w", err)
	}

	retryArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": cfg.RabbitMQ.Queue,
		"x-message-ttl":             int32(5000),
	}

	_, err = qm.DeclareQueue(cfg.RabbitMQ.RetryQueue, rabbitmq.QueueConfig{
		Durable: true,
		Args:    retryArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare retry queue: %w", err)
	}

	mainArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": cfg.RabbitMQ.DLQ,
	}

	mainQ, err := qm.DeclareQueue(cfg.RabbitMQ.Queue, rabbitmq.QueueConfig{
		Durable: true,
		Args:    mainArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare main queue: %w", err)
	}

	if err := ch.QueueBind(mainQ.Name, cfg.RabbitMQ.RoutingKey, exchange.Name(), false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind the exchange to the main queue: %w", err)
	}

	pub := rabbitmq.NewPublisher(ch, exchange.Name())
	cons := rabbitmq.NewConsumer(ch, rabbitmq.NewConsumerConfig(mainQ.Name))

	return &EventQueue{Publisher: pub, Consumer: cons, routingKey: cfg.RabbitMQ.RoutingKey}, nil
}

// Publish marshals one business event and publishes it with retries.
func (q *EventQueue) Publish(ev Event, strategy retry.Strategy) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return q.Publisher.PublishWithRetry(body, q.routingKey, "application/json", strategy)
}

// Consume decodes incoming business events onto out until the channel closes.
func (q *EventQueue) Consume(out chan<- Event, strategy retry.Strategy) error {
	msgChan := make(chan []byte)

	go func() {
		for m := range msgChan {
			var ev Event
			if err := json.Unmarshal(m, &ev); err != nil {
				zlog.Logger.Error().Err(err).Msg("failed to unmarshal event")
				continue
			}

			out <- ev
		}
	}()

	return q.Consumer.ConsumeWithRetry(msgChan, strategy)
}
