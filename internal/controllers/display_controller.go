package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rebounder/signage_backend/internal/display"
	"github.com/rebounder/signage_backend/internal/metrics"
	"github.com/rebounder/signage_backend/internal/models"
)

type DisplayController struct {
	DB       *gorm.DB
	Resolver *display.Resolver
	Log      *zap.Logger
}

// GetConfig is the poll endpoint consumed by display devices. Each
// successful resolution commits the school's last-seen timestamp in a single
// update after the payload is built.
func (dc *DisplayController) GetConfig(c *gin.Context) {
	schoolID := c.Query("school_id")
	if schoolID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "school_id is required"})
		return
	}

	var school models.School
	err := dc.DB.
		Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Slots.Contents", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&school, "id = ?", schoolID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "school not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load school"})
		return
	}

	var ads []models.Ad
	if err := dc.DB.Where("status = ?", models.AdApproved).Order("id").Find(&ads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ads"})
		return
	}

	now := time.Now()
	timer := prometheus.NewTimer(metrics.ResolveDuration)
	payload := dc.Resolver.Resolve(c.Request.Context(), &school, ads, now)
	timer.ObserveDuration()

	// Heartbeat commit. A failed write degrades the dashboard, not the poll.
	if err := dc.DB.Model(&models.School{}).Where("id = ?", school.ID).Update("last_seen", now).Error; err != nil {
		dc.Log.Warn("heartbeat update failed", zap.String("school_id", school.ID), zap.Error(err))
	}

	c.JSON(http.StatusOK, payload)
}
