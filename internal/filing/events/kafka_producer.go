// Package events publishes the submission lifecycle to Kafka and consumes
// the registry's decisions.
package events

import (
	"context"
	"encoding/json"
	"time"

	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

type EventType string

const (
	FilingSubmitted EventType = "filing_submitted"
	FilingAccepted  EventType = "filing_accepted"
	FilingRejected  EventType = "filing_rejected"
)

// Event is the JSON body published for every lifecycle change. The filing
// payload itself is not published.
type Event struct {
	Type          EventType     `json:"type"`
	SubmissionID  string        `json:"submission_id"`
	TransactionID string        `json:"transaction_id"`
	ReferenceID   string        `json:"reference_id"`
	FilingType    string        `json:"filing_type"`
	CompanyNumber string        `json:"company_number,omitempty"`
	CompanyName   string        `json:"company_name"`
	Status        string        `json:"status"`
	Rejections    []e.Rejection `json:"rejections,omitempty"`
	OccurredAt    time.Time     `json:"occurred_at"`
}

// NewEvent describes s as an event of type t.
func NewEvent(t EventType, s *models.Submission) Event {
	occurred := s.UpdatedAt
	if s.DecidedAt != nil {
		occurred = *s.DecidedAt
	}
	return Event{
		Type:          t,
		SubmissionID:  s.ID.String(),
		TransactionID: s.TransactionID,
		ReferenceID:   s.ReferenceID,
		FilingType:    s.FilingType.String(),
		CompanyNumber: s.CompanyNumber,
		CompanyName:   s.CompanyName,
		Status:        s.Status.String(),
		Rejections:    s.Rejections,
		OccurredAt:    occurred,
	}
}

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer    KafkaWriter
	events    chan Event
	logger    *zap.Logger
	closeChan chan struct{}
}

// NewProducer makes sure topic exists and starts publishing to it.
func NewProducer(brokers []string, logger *zap.Logger, topic string) (*Producer, error) {
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     3,
		ReplicationFactor: 1,
	})
	if err != nil {
		logger.Warn("failed to create topic (may already exist)", zap.Error(err))
	}

	return newProducer(&kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.Hash{},
		Topic:    topic,
	}, logger), nil
}

func newProducer(writer KafkaWriter, logger *zap.Logger) *Producer {
	p := &Producer{
		writer:    writer,
		events:    make(chan Event, 1000),
		logger:    logger.Named("kafka_producer"),
		closeChan: make(chan struct{}),
	}
	go p.eventLoop()
	return p
}

// Produce queues an event for s. Events are dropped when the queue is full.
func (p *Producer) Produce(eventType EventType, s *models.Submission) {
	select {
	case p.events <- NewEvent(eventType, s):
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(eventType)),
			zap.String("submission_id", s.ID.String()),
		)
	}
}

func (p *Producer) eventLoop() {
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			return
		}
	}
}

// sendEvent keys messages by submission so one submission's events stay in
// order on a single partition.
func (p *Producer) sendEvent(ctx context.Context, event Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.String("submission_id", event.SubmissionID),
		)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.SubmissionID),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.String("submission_id", event.SubmissionID),
		)
	}
}

func (p *Producer) Close() {
	close(p.closeChan)
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", zap.Error(err))
	}
}
