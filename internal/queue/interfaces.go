package queue

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// QueuePublisher defines the interface for enqueueing raw webhook payloads.
type QueuePublisher interface {
	PublishWebhook(ctx context.Context, platform string, payload []byte) error
}

// QueueConsumer defines the interface for consuming messages from a queue.
type QueueConsumer interface {
	ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error)
	QueueURL() string
}
