package assistant

import (
	"context"
	"encoding/json"

	"asha-assistant-be/internal/dto"
	"asha-assistant-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

// FeedbackRecorder drains the feedback topic and forwards each record to the
// proxy. Best-effort: a failed forward is logged and dropped, never retried,
// and never affects the transcript.
type FeedbackRecorder struct {
	subscriber message.Subscriber
	client     ProxyClient
	log        logger.ILogger
}

func NewFeedbackRecorder(subscriber message.Subscriber, client ProxyClient, log logger.ILogger) *FeedbackRecorder {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &FeedbackRecorder{
		subscriber: subscriber,
		client:     client,
		log:        log,
	}
}

func (r *FeedbackRecorder) Run(ctx context.Context) error {
	messages, err := r.subscriber.Subscribe(ctx, FeedbackTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			r.process(ctx, msg)
		}
	}()

	return nil
}

func (r *FeedbackRecorder) process(ctx context.Context, msg *message.Message) {
	// Ack everything: invalid or undeliverable records must not loop
	defer msg.Ack()

	var req dto.FeedbackRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		r.log.Warn("feedback", "invalid feedback event payload", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := r.client.RecordFeedback(ctx, &req); err != nil {
		r.log.Warn("feedback", "feedback record dropped", map[string]interface{}{
			"message_id": req.MessageId,
			"error":      err.Error(),
		})
	}
}
