package models

import (
	"time"

	"gorm.io/datatypes"
)

// Content is the editable payload attached to a slot. Contents relate to
// slots 1:1 by convention only; lookups take the lowest id when several rows
// exist, so no uniqueness constraint is declared here.
//
// Style is a free-form JSON map. It may carry an ordered "slides" list and a
// "rendered_image_url"; both are optional and resolved by internal/display.
type Content struct {
	ID        uint `gorm:"primaryKey"`
	SlotID    uint `gorm:"index"`
	Body      string
	MediaURL  string
	Style     datatypes.JSON
	Theme     string `gorm:"default:default"`
	StartAt   *time.Time
	EndAt     *time.Time
	IsActive  bool `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
