// Package client submits filings on behalf of a presenter: it validates,
// encodes and hands them to a transport.
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/gartstein/efiling/internal/filing/codec"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/gartstein/efiling/internal/filing/validator"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Transport delivers an encoded filing to the gateway.
type Transport interface {
	Submit(ctx context.Context, transactionID string, filingType models.FilingType, payload []byte) (*models.Receipt, error)
}

type Submitter struct {
	transport Transport
	validator *validator.Validator
	logger    *zap.Logger
	now       func() time.Time
}

func NewSubmitter(t Transport, v *validator.Validator, logger *zap.Logger) *Submitter {
	return &Submitter{
		transport: t,
		validator: v,
		logger:    logger.Named("submitter"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit validates f as of now and, only if it is valid, sends it under a
// fresh transaction ID. An invalid filing returns a
// *validator.InvalidError and is never sent.
func (s *Submitter) Submit(ctx context.Context, f models.Filing) (*models.Receipt, error) {
	return s.SubmitWithTransaction(ctx, uuid.NewString(), f)
}

// SubmitWithTransaction is Submit with a caller-chosen transaction ID, so a
// retried submission is recognised as a duplicate.
func (s *Submitter) SubmitWithTransaction(ctx context.Context, transactionID string, f models.Filing) (*models.Receipt, error) {
	if err := s.validator.ValidateAsOf(f, s.now()).Err(); err != nil {
		return nil, err
	}
	s.checkExtensions(f)

	payload, err := codec.Encode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode filing: %w", err)
	}
	receipt, err := s.transport.Submit(ctx, transactionID, f.FilingType(), payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Filing submitted",
		zap.String("transaction_id", transactionID),
		zap.String("submission_id", receipt.SubmissionID),
		zap.String("reference_id", receipt.ReferenceID),
	)
	return receipt, nil
}

// checkExtensions warns about attachments whose filename extension does not
// fit their content type. The registry decides on content, not names.
func (s *Submitter) checkExtensions(f models.Filing) {
	for field, a := range attachments(f) {
		if a != nil && !a.ExtensionMatches() {
			s.logger.Warn("Attachment extension does not match content type",
				zap.String("field", field),
				zap.String("filename", a.Filename),
				zap.Stringer("content_type", a.ContentType),
			)
		}
	}
}

func attachments(f models.Filing) map[string]*models.Attachment {
	switch x := f.(type) {
	case *models.ChargeRegistration:
		return map[string]*models.Attachment{
			"deed":              x.Deed,
			"deed_supplemental": x.DeedSupplemental,
		}
	case *models.CompanyIncorporation:
		return map[string]*models.Attachment{
			"name_authorization": x.NameAuthorization,
			"same_name":          x.SameName,
			"memorandum":         x.Memorandum,
			"articles_document":  x.ArticlesDocument,
		}
	}
	return nil
}
