// Package controller implements the filing gateway's service layer: it
// decodes and validates submitted filings, stores them, and applies the
// registry's decisions, publishing an event at every step.
package controller

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/gartstein/efiling/internal/filing/auth"
	"github.com/gartstein/efiling/internal/filing/codec"
	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/events"
	"github.com/gartstein/efiling/internal/filing/metrics"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/gartstein/efiling/internal/filing/validator"
	"github.com/gartstein/efiling/internal/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	referenceLength   = 6
	referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// ReferenceWindow is how long a submission reference stays reserved.
	ReferenceWindow   = 30 * 24 * time.Hour
	maxReferenceTries = 20
)

type EventProducer interface {
	Produce(eventType events.EventType, s *models.Submission)
}

// Repository defines the storage interface for submissions.
type Repository interface {
	CreateSubmission(ctx context.Context, s *models.Submission) error
	GetSubmission(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	SubmissionExistsByTransaction(ctx context.Context, transactionID string) (bool, error)
	ReferenceInUse(ctx context.Context, ref string, since time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.SubmissionStatus, rejections []e.Rejection, decidedAt time.Time) error
	Close() error
}

// FilingService accepts filings on behalf of the registry.
type FilingService struct {
	repo      Repository
	producer  EventProducer
	validator *validator.Validator
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
	reference func() (string, error)
}

// NewFilingService constructs a FilingService. m may be nil.
func NewFilingService(
	repo Repository,
	producer EventProducer,
	v *validator.Validator,
	m *metrics.Metrics,
	logger *zap.Logger,
) *FilingService {
	return &FilingService{
		repo:      repo,
		producer:  producer,
		validator: v,
		metrics:   m,
		logger:    logger.Named("filing_service"),
		now:       func() time.Time { return time.Now().UTC() },
		reference: randomReference,
	}
}

// Submit decodes payload, validates the filing as of now and stores it as
// pending. An invalid filing is refused with a *errors.RejectionError
// listing every violation; nothing is stored for it.
func (s *FilingService) Submit(ctx context.Context, transactionID string, filingType models.FilingType, payload []byte) (*models.Receipt, error) {
	start := s.now()
	defer func() { s.metrics.ObserveSubmitLatency(s.now().Sub(start)) }()

	if transactionID == "" || len(transactionID) > 64 {
		return nil, fmt.Errorf("%w: transaction id must be 1 to 64 characters", e.ErrInvalidInput)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", e.ErrInvalidInput)
	}

	filing, err := codec.Decode(payload)
	if err != nil {
		s.metrics.IncrementDecodeFailure()
		return nil, err
	}
	kind := filing.FilingType()
	if filingType != models.FilingTypeUnspecified && filingType != kind {
		return nil, fmt.Errorf("%w: declared %s but payload holds %s", e.ErrInvalidInput, filingType, kind)
	}

	exists, err := s.repo.SubmissionExistsByTransaction(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check transaction: %w", err)
	}
	if exists {
		s.metrics.IncrementSubmission(kind.String(), "duplicate")
		return nil, fmt.Errorf("%w: transaction %s", e.ErrDuplicateSubmission, transactionID)
	}

	if result := s.validator.ValidateAsOf(filing, start); !result.Valid() {
		s.metrics.IncrementSubmission(kind.String(), "invalid")
		for _, v := range result.Violations {
			s.metrics.IncrementViolation(v.Code)
		}
		return nil, &e.RejectionError{Rejections: Rejections(result.Violations)}
	}

	ref, err := s.allocateReference(ctx, start)
	if err != nil {
		return nil, err
	}

	presenter, _ := auth.Subject(ctx)
	header := filing.Header()
	sub := &models.Submission{
		ID:            uuid.New(),
		TransactionID: transactionID,
		ReferenceID:   ref,
		FilingType:    kind,
		CompanyNumber: header.CompanyNumber,
		CompanyName:   header.CompanyName,
		Presenter:     presenter,
		Status:        models.SubmissionStatusPending,
		Payload:       payload,
		ReceivedAt:    start,
		UpdatedAt:     start,
	}
	if err := s.repo.CreateSubmission(ctx, sub); err != nil {
		if errors.Is(err, e.ErrDuplicateSubmission) {
			return nil, err
		}
		s.metrics.IncrementSubmission(kind.String(), "error")
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}
	s.metrics.IncrementSubmission(kind.String(), "pending")
	s.logger.Info("Filing received",
		zap.String("submission_id", sub.ID.String()),
		zap.String("reference_id", ref),
		zap.String("filing_type", kind.String()),
	)

	go func() {
		s.producer.Produce(events.FilingSubmitted, sub)
	}()
	return &models.Receipt{SubmissionID: sub.ID.String(), ReferenceID: ref, Accepted: true}, nil
}

// Validate decodes payload and reports its violations as of now without
// storing anything.
func (s *FilingService) Validate(_ context.Context, payload []byte) (validator.Result, error) {
	filing, err := codec.Decode(payload)
	if err != nil {
		s.metrics.IncrementDecodeFailure()
		return validator.Result{}, err
	}
	return s.validator.ValidateAsOf(filing, s.now()), nil
}

// GetSubmission retrieves a submission by ID. An authenticated caller only
// sees its own submissions; anything else is reported as not found.
func (s *FilingService) GetSubmission(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	sub, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller, ok := auth.Subject(ctx); ok && caller != sub.Presenter {
		return nil, fmt.Errorf("%w: submission %s", e.ErrNotFound, id)
	}
	return sub, nil
}

func (s *FilingService) load(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	sub, err := s.repo.GetSubmission(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return sub, nil
}

// RecordDecision applies the registry's verdict. Accepted and rejected
// submissions are final; later decisions for them are refused.
func (s *FilingService) RecordDecision(ctx context.Context, d models.Decision) (*models.Submission, error) {
	if !d.Status.IsValid() || d.Status == models.SubmissionStatusPending {
		return nil, fmt.Errorf("%w: decision status %s", e.ErrInvalidInput, d.Status)
	}
	if d.Status != models.SubmissionStatusRejected && len(d.Rejections) > 0 {
		return nil, fmt.Errorf("%w: rejections on a %s decision", e.ErrInvalidInput, d.Status)
	}

	sub, err := s.load(ctx, d.SubmissionID)
	if err != nil {
		return nil, err
	}
	if sub.Status.IsFinal() {
		return nil, fmt.Errorf("%w: submission %s is %s", e.ErrAlreadyDecided, sub.ID, sub.Status)
	}

	decided := s.now()
	if err := s.repo.UpdateStatus(ctx, sub.ID, d.Status, d.Rejections, decided); err != nil {
		if errors.Is(err, e.ErrAlreadyDecided) || errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}
	sub.Status = d.Status
	sub.Rejections = d.Rejections
	sub.UpdatedAt = decided
	sub.DecidedAt = utils.Ptr(decided)
	s.metrics.IncrementDecision(d.Status.String())

	var event events.EventType
	switch d.Status {
	case models.SubmissionStatusAccepted:
		event = events.FilingAccepted
	case models.SubmissionStatusRejected:
		event = events.FilingRejected
	default:
		s.logger.Info("Submission held by registry",
			zap.String("submission_id", sub.ID.String()),
			zap.String("status", d.Status.String()),
		)
		return sub, nil
	}
	go func() {
		s.producer.Produce(event, sub)
	}()
	return sub, nil
}

// allocateReference picks a reference not issued within ReferenceWindow.
func (s *FilingService) allocateReference(ctx context.Context, now time.Time) (string, error) {
	since := now.Add(-ReferenceWindow)
	for range maxReferenceTries {
		ref, err := s.reference()
		if err != nil {
			return "", fmt.Errorf("failed to generate reference: %w", err)
		}
		inUse, err := s.repo.ReferenceInUse(ctx, ref, since)
		if err != nil {
			return "", fmt.Errorf("failed to check reference: %w", err)
		}
		if !inUse {
			return ref, nil
		}
	}
	return "", fmt.Errorf("no free reference after %d attempts", maxReferenceTries)
}

func randomReference() (string, error) {
	b := make([]byte, referenceLength)
	limit := big.NewInt(int64(len(referenceAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		b[i] = referenceAlphabet[n.Int64()]
	}
	return string(b), nil
}

// Rejections converts validator violations into the rejections returned to
// the submitter.
func Rejections(vs []validator.Violation) []e.Rejection {
	out := make([]e.Rejection, len(vs))
	for i, v := range vs {
		out[i] = e.Rejection{Code: v.Code, Message: v.Message, FieldPath: v.Path}
	}
	return out
}
