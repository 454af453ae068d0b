package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"campus-canteen/internal/domain"
)

// StatusSink receives order status signals coming off the change feed.
type StatusSink interface {
	ApplyStatus(orderID int, status domain.OrderStatus, source string)
}

// ChangeConsumer reads the change topic and fans events into the in-process
// broker. Order events are additionally forwarded to the payment watcher so
// a confirmed payment stops the countdown without the watcher polling.
type ChangeConsumer struct {
	Reader  *kafka.Reader
	Broker  *Broker
	Watcher StatusSink
}

func NewChangeConsumer(reader *kafka.Reader, broker *Broker, watcher StatusSink) *ChangeConsumer {
	return &ChangeConsumer{Reader: reader, Broker: broker, Watcher: watcher}
}

func (c *ChangeConsumer) Start(ctx context.Context) {
	log.Println("Starting change feed consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Error reading change message: %v", err)
			continue
		}

		var event domain.ChangeEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling change message: %v", err)
			continue
		}

		c.Process(event)
	}
}

func (c *ChangeConsumer) Process(event domain.ChangeEvent) {
	if c.Broker != nil {
		c.Broker.Publish(event)
	}
	if c.Watcher != nil && event.Table == domain.TableOrders && event.OrderID != 0 && event.Status != "" {
		c.Watcher.ApplyStatus(event.OrderID, event.Status, SourceRealtime)
	}
}
