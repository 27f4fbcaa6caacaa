// Package db stores gateway submissions in PostgreSQL through GORM.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbmodels "github.com/gartstein/efiling/internal/filing/db/models"
	e "github.com/gartstein/efiling/internal/filing/errors"
	"github.com/gartstein/efiling/internal/filing/models"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func NewRepository(cfg *Config) (*Repository, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewRepositoryFromDB(db)
}

// NewRepositoryFromDB wraps an open connection and migrates the schema.
func NewRepositoryFromDB(db *gorm.DB) (*Repository, error) {
	if err := db.AutoMigrate(&dbmodels.Submission{}, &dbmodels.Rejection{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Repository{db: db}, nil
}

// CreateSubmission stores s. A second submission with the same transaction
// ID fails with ErrDuplicateSubmission.
func (r *Repository) CreateSubmission(ctx context.Context, s *models.Submission) error {
	rec := toRecord(s)
	result := r.db.WithContext(ctx).Create(rec)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: transaction %s", e.ErrDuplicateSubmission, s.TransactionID)
		}
		return result.Error
	}
	s.ReceivedAt = rec.CreatedAt
	s.UpdatedAt = rec.UpdatedAt
	return nil
}

func (r *Repository) GetSubmission(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	var rec dbmodels.Submission
	result := r.db.WithContext(ctx).
		Preload("Rejections", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&rec, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return toModel(&rec), nil
}

func (r *Repository) SubmissionExistsByTransaction(ctx context.Context, transactionID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&dbmodels.Submission{}).
		Where("transaction_id = ?", transactionID).
		Limit(1).
		Count(&count)
	return count > 0, result.Error
}

// ReferenceInUse reports whether ref was issued to a submission received at
// or after since.
func (r *Repository) ReferenceInUse(ctx context.Context, ref string, since time.Time) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&dbmodels.Submission{}).
		Where("reference_id = ? AND created_at >= ?", ref, since).
		Limit(1).
		Count(&count)
	return count > 0, result.Error
}

// UpdateStatus records a registry decision, replacing any rejections stored
// by an earlier decision. An accepted or rejected submission is left
// untouched and ErrAlreadyDecided returned.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.SubmissionStatus, rejections []e.Rejection, decidedAt time.Time) error {
	final := []int32{int32(models.SubmissionStatusAccepted), int32(models.SubmissionStatusRejected)}
	return r.WithTransaction(ctx, func(tx *Repository) error {
		result := tx.db.WithContext(ctx).Model(&dbmodels.Submission{}).
			Where("id = ? AND status NOT IN ?", id, final).
			Updates(map[string]any{
				"status":     int32(status),
				"decided_at": decidedAt,
				"updated_at": decidedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.db.WithContext(ctx).Model(&dbmodels.Submission{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return e.ErrAlreadyDecided
			}
			return e.ErrNotFound
		}
		if err := tx.db.WithContext(ctx).Where("submission_id = ?", id).Delete(&dbmodels.Rejection{}).Error; err != nil {
			return err
		}
		if len(rejections) == 0 {
			return nil
		}
		return tx.db.WithContext(ctx).Create(toRejectionRecords(id, rejections)).Error
	})
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

func toRecord(s *models.Submission) *dbmodels.Submission {
	return &dbmodels.Submission{
		ID:            s.ID,
		TransactionID: s.TransactionID,
		ReferenceID:   s.ReferenceID,
		FilingType:    int32(s.FilingType),
		CompanyNumber: s.CompanyNumber,
		CompanyName:   s.CompanyName,
		Presenter:     s.Presenter,
		Status:        int32(s.Status),
		Payload:       s.Payload,
		Rejections:    toRejectionRecords(s.ID, s.Rejections),
		DecidedAt:     s.DecidedAt,
		CreatedAt:     s.ReceivedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toRejectionRecords(id uuid.UUID, rejections []e.Rejection) []dbmodels.Rejection {
	if len(rejections) == 0 {
		return nil
	}
	recs := make([]dbmodels.Rejection, len(rejections))
	for i, rj := range rejections {
		recs[i] = dbmodels.Rejection{
			SubmissionID: id,
			Position:     i,
			Code:         rj.Code,
			Message:      rj.Message,
			FieldPath:    rj.FieldPath,
		}
	}
	return recs
}

func toModel(rec *dbmodels.Submission) *models.Submission {
	s := &models.Submission{
		ID:            rec.ID,
		TransactionID: rec.TransactionID,
		ReferenceID:   rec.ReferenceID,
		FilingType:    models.FilingType(rec.FilingType),
		CompanyNumber: rec.CompanyNumber,
		CompanyName:   rec.CompanyName,
		Presenter:     rec.Presenter,
		Status:        models.SubmissionStatus(rec.Status),
		Payload:       rec.Payload,
		ReceivedAt:    rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
		DecidedAt:     rec.DecidedAt,
	}
	for _, rj := range rec.Rejections {
		s.Rejections = append(s.Rejections, e.Rejection{
			Code:      rj.Code,
			Message:   rj.Message,
			FieldPath: rj.FieldPath,
		})
	}
	return s
}
