package service

import (
	"context"
	"encoding/json"

	"report-automation-be/internal/dto"
	"report-automation-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService writes every report lifecycle event to the audit log.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	audit      logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	audit logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		audit:      audit,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var event dto.ReportEventMessage
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.audit.Error("AUDIT", "Malformed event", map[string]interface{}{
			"error":      err.Error(),
			"message_id": msg.UUID,
		})
		msg.Ack() // a retry would fail the same way
		return
	}

	cs.audit.Info("AUDIT", event.Type, map[string]interface{}{
		"payload":     event.Payload,
		"occurred_at": event.OccurredAt,
		"message_id":  msg.UUID,
	})
	msg.Ack()
}
