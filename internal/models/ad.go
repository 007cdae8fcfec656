package models

import "time"

type AdStatus string

const (
	AdPending  AdStatus = "pending"
	AdApproved AdStatus = "approved"
	AdRejected AdStatus = "rejected"
)

func (s AdStatus) Valid() bool {
	return s == AdPending || s == AdApproved || s == AdRejected
}

// Ad is a cross-school advertisement submitted through the portal. Only
// approved ads are visible to the display resolver.
type Ad struct {
	ID            uint `gorm:"primaryKey"`
	OwnerID       *uint
	ApplicantName string
	Title         string
	MediaURL      string
	TargetArea    string
	Status        AdStatus `gorm:"size:16;default:pending;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
