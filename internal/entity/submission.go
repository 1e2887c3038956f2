package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Submission rows are append-only: nothing in the API updates or deletes
// them, and the assignment FK is RESTRICT so an assignment cannot be
// removed while submissions reference it.
type Submission struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AssignmentID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"assignment_id"`
	Assignment    Assignment `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	SubmissionURL string     `gorm:"size:2048;not null" json:"submission_url"`
	CreatedAt     time.Time  `gorm:"column:submission_date;autoCreateTime" json:"submission_date"`
	UpdatedAt     time.Time  `gorm:"column:submission_updated;autoUpdateTime" json:"submission_updated"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
