package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/rebounder/signage_backend/internal/config"
	"github.com/rebounder/signage_backend/internal/models"
	"github.com/rebounder/signage_backend/internal/utils"
)

func SeedSuperAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleSuperAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := cfg.AdminUsername
	if username == "" {
		username = "admin"
	}
	password := cfg.AdminPassword
	if password == "" {
		password = "admin123"
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:       username,
		HashedPassword: hashed,
		Role:           models.RoleSuperAdmin,
		Active:         true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Seeded initial super admin:", username)
	return nil
}

// SeedDemoSchool provisions one sample site so a freshly-migrated instance
// has something to point a display at.
func SeedDemoSchool(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.School{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	school := models.School{ID: "demo", Name: "デモ中学校", LayoutType: 4}
	if err := db.Create(&school).Error; err != nil {
		return err
	}

	types := []models.ContentType{
		models.ContentNotice,
		models.ContentWeather,
		models.ContentAd,
		models.ContentCountdown,
	}
	for i, ct := range types {
		slot := models.Slot{SchoolID: school.ID, Position: i, ContentType: ct}
		if err := db.Create(&slot).Error; err != nil {
			return err
		}
	}
	log.Println("Seeded demo school with 4 slots")
	return nil
}
