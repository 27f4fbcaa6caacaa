package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/gartstein/efiling/internal/pkg/utils"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// MockKafkaWriter implements KafkaWriter for testing
type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

var at = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func testSubmission() *models.Submission {
	return &models.Submission{
		ID:            uuid.New(),
		TransactionID: "tx-1",
		ReferenceID:   "ABC123",
		FilingType:    models.FilingTypeChargeRegistration,
		CompanyNumber: "12345678",
		CompanyName:   "Test Limited",
		Status:        models.SubmissionStatusPending,
		Payload:       []byte{0x08, 0x01},
		ReceivedAt:    at,
		UpdatedAt:     at,
	}
}

func TestNewEvent(t *testing.T) {
	s := testSubmission()
	s.Status = models.SubmissionStatusRejected
	s.DecidedAt = utils.Ptr(at.Add(time.Hour))
	s.Rejections = []e.Rejection{{Code: "9001", Message: "name not available"}}

	ev := NewEvent(FilingRejected, s)

	assert.Equal(t, FilingRejected, ev.Type)
	assert.Equal(t, s.ID.String(), ev.SubmissionID)
	assert.Equal(t, "charge_registration", ev.FilingType)
	assert.Equal(t, "rejected", ev.Status)
	assert.Equal(t, at.Add(time.Hour), ev.OccurredAt)
	assert.Equal(t, s.Rejections, ev.Rejections)

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "payload")
}

func TestNewProducer_NamedLogger(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	mockWriter.On("Close").Return(nil)
	producer := newProducer(mockWriter, zaptest.NewLogger(t))
	defer producer.Close()

	assert.NotNil(t, producer.events)
	assert.Equal(t, "kafka_producer", producer.logger.Check(zap.InfoLevel, "").LoggerName)
}

func TestProducer_Produce(t *testing.T) {
	t.Run("queued", func(t *testing.T) {
		producer := &Producer{events: make(chan Event, 1), logger: zaptest.NewLogger(t)}

		producer.Produce(FilingSubmitted, testSubmission())

		assert.Equal(t, 1, len(producer.events))
	})

	t.Run("dropped event when queue full", func(t *testing.T) {
		core, recorded := observer.New(zap.WarnLevel)
		producer := &Producer{events: make(chan Event, 1), logger: zap.New(core)}
		s := testSubmission()

		producer.Produce(FilingSubmitted, s)
		producer.Produce(FilingSubmitted, s)

		assert.Equal(t, 1, recorded.FilterMessage("Kafka producer queue full, dropping event").Len())
		assert.Equal(t, 1, recorded.FilterField(zap.String("submission_id", s.ID.String())).Len())
	})
}

func TestProducer_SendEvent(t *testing.T) {
	s := testSubmission()
	event := NewEvent(FilingSubmitted, s)

	t.Run("successful send", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(nil)
		producer := &Producer{writer: mockWriter, logger: zaptest.NewLogger(t)}

		producer.sendEvent(context.Background(), event)

		value, _ := json.Marshal(event)
		mockWriter.AssertCalled(t, "WriteMessages", mock.Anything, []kafka.Message{
			{Key: []byte(s.ID.String()), Value: value},
		})
	})

	t.Run("serialization error", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		producer := &Producer{writer: new(MockKafkaWriter), logger: zap.New(core)}

		oldMarshal := jsonMarshal
		jsonMarshal = func(_ any) ([]byte, error) {
			return nil, errors.New("mock marshal error")
		}
		defer func() { jsonMarshal = oldMarshal }()

		producer.sendEvent(context.Background(), event)

		assert.Equal(t, 1, recorded.FilterMessage("Failed to serialize event").Len())
	})

	t.Run("write error", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		mockWriter := new(MockKafkaWriter)
		mockWriter.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("kafka error"))
		producer := &Producer{writer: mockWriter, logger: zap.New(core)}

		producer.sendEvent(context.Background(), event)

		assert.Equal(t, 1, recorded.FilterMessage("Failed to produce event").Len())
	})
}

func TestProducer_Close(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	mockWriter.On("Close").Return(nil)

	producer := &Producer{
		writer:    mockWriter,
		closeChan: make(chan struct{}),
		logger:    zaptest.NewLogger(t),
	}

	producer.Close()

	select {
	case <-producer.closeChan:
	default:
		t.Error("closeChan not closed")
	}
	mockWriter.AssertCalled(t, "Close")
}

func TestProducer_EventLoop(t *testing.T) {
	mockWriter := new(MockKafkaWriter)
	written := make(chan struct{}, 1)
	mockWriter.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { written <- struct{}{} }).
		Return(nil)
	mockWriter.On("Close").Return(nil)

	producer := newProducer(mockWriter, zaptest.NewLogger(t))
	defer producer.Close()

	producer.Produce(FilingSubmitted, testSubmission())

	select {
	case <-written:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not written")
	}
}
