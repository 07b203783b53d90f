package sqs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	envconfig "github.com/postpulse/analytics-service/internal/config"
)

// Client wraps the SQS queue carrying raw platform webhook deliveries.
type Client struct {
	client *sqs.Client
	config envconfig.SQS
	log    *zap.Logger
}

// NewClient creates a new SQS client.
func NewClient(ctx context.Context, cfg envconfig.SQS, log *zap.Logger) (*Client, error) {
	configOpts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}

	var clientOpts []func(*sqs.Options)

	// Local development runs against ElasticMQ.
	if cfg.Endpoint != "" {
		log.Info("Configuring SQS for local development",
			zap.String("endpoint", cfg.Endpoint))
		configOpts = append(configOpts,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("dummy", "dummy", "")))

		clientOpts = append(clientOpts, func(o *sqs.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	sqsClient := sqs.NewFromConfig(awsCfg, clientOpts...)

	log.Info("SQS client created",
		zap.String("region", cfg.Region),
		zap.String("queue_url", cfg.QueueURL))

	return &Client{
		client: sqsClient,
		config: cfg,
		log:    log,
	}, nil
}

// ReceiveMessages receives messages from SQS.
func (c *Client) ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error) {
	return c.client.ReceiveMessage(ctx, input)
}

// DeleteMessage deletes a message from SQS.
func (c *Client) DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error) {
	return c.client.DeleteMessage(ctx, input)
}

// QueueURL returns the configured queue URL.
func (c *Client) QueueURL() string {
	return c.config.QueueURL
}

// PublishWebhook enqueues one raw webhook payload for the consumer.
func (c *Client) PublishWebhook(ctx context.Context, platform string, payload []byte) error {
	_, err := c.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(c.config.QueueURL),
		MessageBody: aws.String(string(payload)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"Platform": {
				DataType:    aws.String("String"),
				StringValue: aws.String(platform),
			},
		},
	})
	if err != nil {
		c.log.Error("Failed to send webhook payload to SQS",
			zap.String("platform", platform),
			zap.Error(err))
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	c.log.Info("Webhook payload enqueued",
		zap.String("platform", platform))

	return nil
}
