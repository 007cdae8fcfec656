package models

import "time"

const (
	RoleSuperAdmin  = "super_admin"
	RoleSchoolAdmin = "school_admin"
	RoleAdvertiser  = "advertiser"
)

func IsValidRole(role string) bool {
	return role == RoleSuperAdmin || role == RoleSchoolAdmin || role == RoleAdvertiser
}

type User struct {
	ID             uint   `gorm:"primaryKey"`
	Username       string `gorm:"uniqueIndex"`
	HashedPassword string
	Role           string  `gorm:"size:32"`
	SchoolID       *string `gorm:"index"`
	Active         bool    `gorm:"default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
