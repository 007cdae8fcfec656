package models

import (
	"time"

	"gorm.io/datatypes"
)

// ContentType selects what a slot renders. The set is fixed; the display
// resolver switches over it exhaustively.
type ContentType string

const (
	ContentNotice     ContentType = "notice"
	ContentWeather    ContentType = "weather"
	ContentAd         ContentType = "ad"
	ContentBus        ContentType = "bus"
	ContentTrain      ContentType = "train"
	ContentCountdown  ContentType = "countdown"
	ContentWBGT       ContentType = "wbgt"
	ContentEmergency  ContentType = "emergency"
	ContentClubResult ContentType = "club_result"
	ContentLostFound  ContentType = "lost_found"
)

// ContentTypes lists every valid slot content type.
var ContentTypes = []ContentType{
	ContentNotice,
	ContentWeather,
	ContentAd,
	ContentBus,
	ContentTrain,
	ContentCountdown,
	ContentWBGT,
	ContentEmergency,
	ContentClubResult,
	ContentLostFound,
}

func (t ContentType) Valid() bool {
	for _, ct := range ContentTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// School is one physical signage site. LastSeen is written only by the
// display poll handler and read by the status dashboard.
type School struct {
	ID         string `gorm:"primaryKey"`
	Name       string
	LayoutType int        `gorm:"default:4"`
	LastSeen   *time.Time `gorm:"column:last_seen"`
	Slots      []Slot     `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Slot is one positioned display region of a school's layout. Position is
// unique per school and defines left-to-right ordering.
type Slot struct {
	ID          uint        `gorm:"primaryKey"`
	SchoolID    string      `gorm:"uniqueIndex:uniq_school_position,priority:1"`
	Position    int         `gorm:"uniqueIndex:uniq_school_position,priority:2"`
	ContentType ContentType `gorm:"size:32"`
	Config      datatypes.JSON
	Contents    []Content `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
