package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gradebench/webapp/internal/entity"
	"github.com/gradebench/webapp/pkg/apperror"
)

type SubmissionRepository interface {
	CountByAssignment(ctx context.Context, assignmentID uuid.UUID) (int64, error)
	// CreateWithinQuota inserts a submission for the assignment unless the
	// stored count has reached the assignment's attempt limit. The check
	// and the insert run in one transaction holding a row lock on the
	// assignment, so concurrent submits near the limit serialize and the
	// committed count never exceeds num_of_attempts. The returned count is
	// the pre-insert count.
	CreateWithinQuota(ctx context.Context, submission *entity.Submission) (int64, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) CountByAssignment(ctx context.Context, assignmentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Submission{}).
		Where("assignment_id = ?", assignmentID).
		Count(&count).Error
	return count, err
}

func (r *submissionRepository) CreateWithinQuota(ctx context.Context, submission *entity.Submission) (int64, error) {
	var priorCount int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		// SQLite has no SELECT FOR UPDATE; its transactions are
		// single-writer so the quota check is already serialized there.
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var assignment entity.Assignment
		if err := q.First(&assignment, "id = ?", submission.AssignmentID).Error; err != nil {
			return err
		}

		if err := tx.Model(&entity.Submission{}).
			Where("assignment_id = ?", submission.AssignmentID).
			Count(&priorCount).Error; err != nil {
			return err
		}

		if priorCount >= int64(assignment.NumOfAttempts) {
			return apperror.ErrAttemptLimitReached
		}

		return tx.Create(submission).Error
	})

	return priorCount, err
}
