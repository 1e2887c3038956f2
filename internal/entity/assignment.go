package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Assignment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Points        int       `gorm:"not null;check:points >= 1 AND points <= 100" json:"points"`
	NumOfAttempts int       `gorm:"not null;check:num_of_attempts >= 1 AND num_of_attempts <= 100" json:"num_of_attempts"`
	Deadline      time.Time `gorm:"not null" json:"deadline"`
	AccountID     uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Account       Account   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time `gorm:"column:assignment_created;autoCreateTime" json:"assignment_created"`
	UpdatedAt     time.Time `gorm:"column:assignment_updated;autoUpdateTime" json:"assignment_updated"`
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
