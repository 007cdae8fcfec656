package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rebounder/signage_backend/internal/heartbeat"
	"github.com/rebounder/signage_backend/internal/models"
)

type StatusController struct {
	DB      *gorm.DB
	Tracker *heartbeat.Tracker
}

// Dashboard lists every school with its derived online/offline status.
// School admins only see their own site.
func (sc *StatusController) Dashboard(c *gin.Context) {
	query := sc.DB.Model(&models.School{})
	if u, ok := currentUser(c); ok && u.Role == models.RoleSchoolAdmin {
		if u.SchoolID == nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "no school assigned"})
			return
		}
		query = query.Where("id = ?", *u.SchoolID)
	}

	var schools []models.School
	if err := query.Order("id").Find(&schools).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(schools))
	for _, s := range schools {
		out = append(out, gin.H{
			"id":          s.ID,
			"name":        s.Name,
			"layout_type": s.LayoutType,
			"online":      sc.Tracker.Online(s.LastSeen),
			"last_seen":   heartbeat.LastSeenLabel(s.LastSeen),
		})
	}
	c.JSON(http.StatusOK, gin.H{"schools": out})
}
