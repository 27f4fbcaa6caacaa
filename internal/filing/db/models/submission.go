// Package models contains the persistence records of the filing gateway,
// mapped with GORM.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission is one filing received by the gateway. The payload is stored
// exactly as received so it can be replayed to the registry.
type Submission struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	TransactionID string      `gorm:"size:64;uniqueIndex"`
	ReferenceID   string      `gorm:"size:6;index"`
	FilingType    int32       `gorm:"not null"`
	CompanyNumber string      `gorm:"size:8;index"`
	CompanyName   string      `gorm:"size:160"`
	Presenter     string      `gorm:"size:64;index"`
	Status        int32       `gorm:"index;not null"`
	Payload       []byte      `gorm:"not null"`
	Rejections    []Rejection `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE"`
	DecidedAt     *time.Time
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
}

// Rejection is one registry rejection attached to a submission, kept in the
// order the registry reported it.
type Rejection struct {
	ID           uint      `gorm:"primaryKey"`
	SubmissionID uuid.UUID `gorm:"type:uuid;index"`
	Position     int
	Code         string `gorm:"size:32"`
	Message      string `gorm:"size:1000"`
	FieldPath    string `gorm:"size:255"`
}
