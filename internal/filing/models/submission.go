package models

import (
	"time"

	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/google/uuid"
)

// Receipt is the filing service's acknowledgement of a submission.
type Receipt struct {
	// SubmissionID identifies the submission at the gateway.
	SubmissionID string
	// ReferenceID is the short submission number quoted to the registry.
	ReferenceID string
	Accepted    bool
}

// Submission is a filing held by the gateway while the registry decides.
type Submission struct {
	ID            uuid.UUID
	TransactionID string
	ReferenceID   string
	FilingType    FilingType
	CompanyNumber string
	CompanyName   string
	// Presenter is the authenticated subject that submitted the filing.
	Presenter string
	Status    SubmissionStatus
	// Payload is the encoded filing exactly as received.
	Payload    []byte
	Rejections []e.Rejection
	ReceivedAt time.Time
	UpdatedAt  time.Time
	// DecidedAt is set once the registry has ruled.
	DecidedAt *time.Time
}

// Decision is the registry's verdict on a submission.
type Decision struct {
	SubmissionID uuid.UUID
	Status       SubmissionStatus
	Rejections   []e.Rejection
}
