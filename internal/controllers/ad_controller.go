package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rebounder/signage_backend/internal/models"
	"github.com/rebounder/signage_backend/internal/ws"
)

type AdController struct {
	DB       *gorm.DB
	Registry *ws.Registry
}

type submitAdRequest struct {
	Token         string `json:"token" binding:"required"`
	ApplicantName string `json:"applicant_name" binding:"required"`
	Title         string `json:"title" binding:"required"`
	MediaURL      string `json:"media_url" binding:"required"`
}

type moderateAdRequest struct {
	Status models.AdStatus `json:"status" binding:"required"`
}

// Submit is the advertiser portal entry point. It is gated by an invitation
// token and always creates the ad in pending status; visibility requires an
// explicit moderation decision.
func (ac *AdController) Submit(c *gin.Context) {
	var req submitAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var invitation models.InvitationToken
	err := ac.DB.Preload("School").First(&invitation, "token = ?", req.Token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid invitation token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if invitation.Expired(time.Now()) {
		c.JSON(http.StatusForbidden, gin.H{"error": "invitation token expired"})
		return
	}

	ad := models.Ad{
		ApplicantName: req.ApplicantName,
		Title:         req.Title,
		MediaURL:      req.MediaURL,
		TargetArea:    invitation.School.Name,
		Status:        models.AdPending,
	}
	if err := ac.DB.Create(&ad).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ad)
}

// ListAds returns all ads newest first, optionally filtered by status and a
// target-area substring.
func (ac *AdController) ListAds(c *gin.Context) {
	query := ac.DB.Model(&models.Ad{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if area := c.Query("area"); area != "" {
		query = query.Where("target_area LIKE ?", "%"+area+"%")
	}

	var ads []models.Ad
	if err := query.Order("id DESC").Find(&ads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ads)
}

// UpdateStatus moves an ad between pending/approved/rejected and tells the
// displays to re-poll.
func (ac *AdController) UpdateStatus(c *gin.Context) {
	var req moderateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	var ad models.Ad
	if err := ac.DB.First(&ad, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ad not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ad.Status = req.Status
	if err := ac.DB.Save(&ad).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ac.Registry.NotifyChanged()
	c.JSON(http.StatusOK, ad)
}

func (ac *AdController) DeleteAd(c *gin.Context) {
	res := ac.DB.Delete(&models.Ad{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "ad not found"})
		return
	}

	ac.Registry.NotifyChanged()
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
