package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"

	"campus-canteen/internal/domain"
)

// ChangePublisher emits committed mutations onto the change topic. Events are
// keyed by user id so per-user ordering is preserved across partitions.
type ChangePublisher struct {
	Writer *kafka.Writer
}

func NewChangePublisher(writer *kafka.Writer) *ChangePublisher {
	return &ChangePublisher{Writer: writer}
}

func (p *ChangePublisher) Publish(ctx context.Context, event domain.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(event.UserID)),
		Value: payload,
	})
}
