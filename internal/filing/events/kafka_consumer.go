package events

import (
	"context"
	"encoding/json"
	"fmt"

	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// DecisionMessage is the registry's verdict as it arrives on the decisions
// topic.
type DecisionMessage struct {
	SubmissionID string        `json:"submission_id"`
	Status       string        `json:"status"`
	Rejections   []e.Rejection `json:"rejections,omitempty"`
}

// Decision converts the message into the domain type.
func (m DecisionMessage) Decision() (models.Decision, error) {
	id, err := uuid.Parse(m.SubmissionID)
	if err != nil {
		return models.Decision{}, fmt.Errorf("%w: submission id %q", e.ErrInvalidInput, m.SubmissionID)
	}
	status, ok := models.ParseSubmissionStatus(m.Status)
	if !ok {
		return models.Decision{}, fmt.Errorf("%w: status %q", e.ErrInvalidInput, m.Status)
	}
	return models.Decision{SubmissionID: id, Status: status, Rejections: m.Rejections}, nil
}

type KafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	reader  KafkaReader
	logger  *zap.Logger
	handler func(context.Context, models.Decision) error
}

// NewConsumer reads registry decisions from topic.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return newConsumer(kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   topic,
		Dialer:  kafka.DefaultDialer,
	}), logger)
}

func newConsumer(reader KafkaReader, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader: reader,
		logger: logger.Named("kafka_consumer"),
	}
}

// Start consumes in the background until ctx is done.
func (c *Consumer) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Consumer) run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("Failed to fetch message", zap.Error(err))
			continue
		}

		var body DecisionMessage
		if err := json.Unmarshal(msg.Value, &body); err != nil {
			c.logger.Error("Failed to parse decision",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}
		decision, err := body.Decision()
		if err != nil {
			c.logger.Error("Invalid decision",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if err := c.handler(ctx, decision); err != nil {
			c.logger.Error("Failed to handle decision",
				zap.Error(err),
				zap.String("submission_id", body.SubmissionID),
			)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("Failed to commit message",
				zap.Error(err),
				zap.String("submission_id", body.SubmissionID),
			)
		}
	}
}

func (c *Consumer) RegisterHandler(fn func(context.Context, models.Decision) error) {
	c.handler = fn
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("Failed to close Kafka reader", zap.Error(err))
	}
}
