package events

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeReader serves queued messages, then blocks until the context ends.
type fakeReader struct {
	mu        sync.Mutex
	messages  []kafka.Message
	committed []kafka.Message
	closed    bool
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	f.mu.Lock()
	if len(f.messages) > 0 {
		msg := f.messages[0]
		f.messages = f.messages[1:]
		f.mu.Unlock()
		return msg, nil
	}
	f.mu.Unlock()
	<-ctx.Done()
	return kafka.Message{}, ctx.Err()
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = append(f.committed, msgs...)
	return nil
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func (f *fakeReader) commits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.committed)
}

func decisionMessage(t *testing.T, m DecisionMessage) kafka.Message {
	b, err := json.Marshal(m)
	require.NoError(t, err)
	return kafka.Message{Value: b}
}

func TestDecisionMessage_Decision(t *testing.T) {
	id := uuid.New()

	d, err := DecisionMessage{
		SubmissionID: id.String(),
		Status:       "rejected",
		Rejections:   []e.Rejection{{Code: "9001", Message: "name not available"}},
	}.Decision()
	require.NoError(t, err)
	assert.Equal(t, id, d.SubmissionID)
	assert.Equal(t, models.SubmissionStatusRejected, d.Status)
	assert.Len(t, d.Rejections, 1)

	_, err = DecisionMessage{SubmissionID: "nope", Status: "accepted"}.Decision()
	assert.ErrorIs(t, err, e.ErrInvalidInput)

	_, err = DecisionMessage{SubmissionID: id.String(), Status: "maybe"}.Decision()
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}

func TestConsumer_HandlesAndCommits(t *testing.T) {
	id := uuid.New()
	reader := &fakeReader{messages: []kafka.Message{
		decisionMessage(t, DecisionMessage{SubmissionID: id.String(), Status: "accepted"}),
	}}
	core, _ := observer.New(zap.InfoLevel)
	consumer := newConsumer(reader, zap.New(core))

	var (
		mu  sync.Mutex
		got []models.Decision
	)
	consumer.RegisterHandler(func(_ context.Context, d models.Decision) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, d)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	consumer.Start(ctx)

	require.Eventually(t, func() bool { return reader.commits() == 1 }, 2*time.Second, 10*time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].SubmissionID)
	assert.Equal(t, models.SubmissionStatusAccepted, got[0].Status)
}

func TestConsumer_SkipsBadMessages(t *testing.T) {
	good := uuid.New()
	reader := &fakeReader{messages: []kafka.Message{
		{Value: []byte("not json")},
		decisionMessage(t, DecisionMessage{SubmissionID: "not-a-uuid", Status: "accepted"}),
		decisionMessage(t, DecisionMessage{SubmissionID: uuid.NewString(), Status: "accepted"}),
		decisionMessage(t, DecisionMessage{SubmissionID: good.String(), Status: "accepted"}),
	}}
	core, recorded := observer.New(zap.ErrorLevel)
	consumer := newConsumer(reader, zap.New(core))

	handled := make(chan uuid.UUID, 4)
	consumer.RegisterHandler(func(_ context.Context, d models.Decision) error {
		handled <- d.SubmissionID
		if d.SubmissionID != good {
			return e.ErrNotFound
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go consumer.run(ctx)

	require.Eventually(t, func() bool { return reader.commits() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Len(t, handled, 2)
	assert.Equal(t, 1, recorded.FilterMessage("Failed to parse decision").Len())
	assert.Equal(t, 1, recorded.FilterMessage("Invalid decision").Len())
	assert.Equal(t, 1, recorded.FilterMessage("Failed to handle decision").Len())
}

func TestConsumer_Close(t *testing.T) {
	reader := &fakeReader{}
	consumer := newConsumer(reader, zap.NewNop())
	consumer.Close()
	assert.True(t, reader.closed)
}

var _ KafkaReader = (*fakeReader)(nil)
