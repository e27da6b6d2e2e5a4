package publishers

import (
	"context"
	"fmt"
)

// queueSender is the provider-specific half of the queue publisher.
type queueSender interface {
	Send(ctx context.Context, evt Event) error
}

// senderBuilders maps queue providers to their sender constructors.
var senderBuilders = map[string]func(context.Context, *QueuePublisherConfig, Logger) (queueSender, error){
	QueueProviderAWSSQS: func(ctx context.Context, qc *QueuePublisherConfig, log Logger) (queueSender, error) {
		return newAWSSQSSender(ctx, qc.SQS, log)
	},
	QueueProviderAWSSNS: func(ctx context.Context, qc *QueuePublisherConfig, log Logger) (queueSender, error) {
		return newAWSSNSSender(ctx, qc.SNS, log)
	},
	QueueProviderGCP: func(ctx context.Context, qc *QueuePublisherConfig, log Logger) (queueSender, error) {
		return newGCPPubSubSender(ctx, qc.GCP, log)
	},
}

// queuePublisher forwards events to a cloud queue or topic.
type queuePublisher struct {
	id       string
	provider string
	sender   queueSender
}

func newQueuePublisher(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	qc := cfg.Queue
	if qc == nil {
		return nil, fmt.Errorf("publisher %q missing queue configuration", cfg.ID)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	build, ok := senderBuilders[qc.Provider]
	if !ok {
		return nil, fmt.Errorf("queue provider %q is not supported", qc.Provider)
	}
	sender, err := build(ctx, qc, log)
	if err != nil {
		return nil, err
	}

	return &queuePublisher{id: cfg.ID, provider: qc.Provider, sender: sender}, nil
}

func (q *queuePublisher) ID() string   { return q.id }
func (q *queuePublisher) Type() string { return TypeQueue }

func (q *queuePublisher) Publish(ctx context.Context, evt Event) error {
	if err := q.sender.Send(ctx, evt); err != nil {
		return fmt.Errorf("queue provider %s: %w", q.provider, err)
	}
	return nil
}
