package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gartstein/efiling/internal/filing/codec"
	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/gartstein/efiling/internal/filing/samples"
	"github.com/gartstein/efiling/internal/filing/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// mockTransport records what reached the wire.
type mockTransport struct {
	submit func(ctx context.Context, transactionID string, filingType models.FilingType, payload []byte) (*models.Receipt, error)
	calls  int
}

func (m *mockTransport) Submit(ctx context.Context, transactionID string, filingType models.FilingType, payload []byte) (*models.Receipt, error) {
	m.calls++
	return m.submit(ctx, transactionID, filingType, payload)
}

var signed = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func newSubmitter(t Transport, logger *zap.Logger) *Submitter {
	s := NewSubmitter(t, validator.New(), logger)
	s.now = func() time.Time { return signed.Add(time.Hour) }
	return s
}

func TestSubmitter_Submit(t *testing.T) {
	filing := samples.LLPIncorporation(signed)
	transport := &mockTransport{submit: func(_ context.Context, tx string, ft models.FilingType, payload []byte) (*models.Receipt, error) {
		assert.NotEmpty(t, tx)
		assert.Equal(t, models.FilingTypeCompanyIncorporation, ft)
		decoded, err := codec.Decode(payload)
		require.NoError(t, err)
		assert.Equal(t, filing, decoded)
		return &models.Receipt{SubmissionID: "sub", ReferenceID: "ABC123", Accepted: true}, nil
	}}

	receipt, err := newSubmitter(transport, zaptest.NewLogger(t)).Submit(context.Background(), filing)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", receipt.ReferenceID)
	assert.Equal(t, 1, transport.calls)
}

func TestSubmitter_NeverSendsInvalidFilings(t *testing.T) {
	filing := samples.LLPIncorporation(signed)
	filing.Appointments = filing.Appointments[:0]
	transport := &mockTransport{}

	_, err := newSubmitter(transport, zaptest.NewLogger(t)).Submit(context.Background(), filing)
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrInvalidFiling)

	var invalid *validator.InvalidError
	require.ErrorAs(t, err, &invalid)
	assert.NotEmpty(t, invalid.Violations)
	assert.Zero(t, transport.calls)
}

func TestSubmitter_FutureDateIsInvalid(t *testing.T) {
	transport := &mockTransport{}
	s := newSubmitter(transport, zaptest.NewLogger(t))

	_, err := s.Submit(context.Background(), samples.ChargeRegistration(signed.AddDate(0, 0, 2)))
	assert.ErrorIs(t, err, e.ErrInvalidFiling)
	assert.Zero(t, transport.calls)
}

func TestSubmitter_WarnsOnExtensionMismatch(t *testing.T) {
	filing := samples.ChargeRegistration(signed)
	filing.DeedSupplemental.Filename = "supplemental.txt"
	transport := &mockTransport{submit: func(context.Context, string, models.FilingType, []byte) (*models.Receipt, error) {
		return &models.Receipt{Accepted: true}, nil
	}}
	core, recorded := observer.New(zap.WarnLevel)

	_, err := newSubmitter(transport, zap.New(core)).Submit(context.Background(), filing)
	require.NoError(t, err)

	entries := recorded.FilterMessage("Attachment extension does not match content type").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "deed_supplemental", entries[0].ContextMap()["field"])
}

func TestSubmitter_TransportErrorsPassThrough(t *testing.T) {
	rejection := &e.RejectionError{Rejections: []e.Rejection{{Code: "9001", Message: "name not available"}}}
	transport := &mockTransport{submit: func(context.Context, string, models.FilingType, []byte) (*models.Receipt, error) {
		return nil, rejection
	}}

	_, err := newSubmitter(transport, zaptest.NewLogger(t)).SubmitWithTransaction(context.Background(), "tx-1", samples.ChargeRegistration(signed))
	assert.True(t, errors.Is(err, e.ErrRejected))
}
