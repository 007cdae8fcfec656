package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvitationToken grants one advertiser access to the submission portal for a
// specific school.
type InvitationToken struct {
	ID             string `gorm:"type:uuid;primaryKey"`
	Token          string `gorm:"uniqueIndex"`
	SchoolID       string
	School         School `gorm:"foreignKey:SchoolID"`
	ExpiresAt      time.Time
	DefaultStartAt *time.Time
	DefaultEndAt   *time.Time
	IsUsed         bool `gorm:"default:false"`
	CreatedAt      time.Time
}

func (t *InvitationToken) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

func (t *InvitationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
