package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rebounder/signage_backend/internal/models"
	"github.com/rebounder/signage_backend/internal/utils"
)

type TokenController struct {
	DB *gorm.DB
}

type generateTokenRequest struct {
	SchoolID  string `json:"school_id" binding:"required"`
	DaysValid int    `json:"days_valid"`
}

// Generate issues an advertiser portal invitation token for a school.
func (tc *TokenController) Generate(c *gin.Context) {
	var req generateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DaysValid <= 0 {
		req.DaysValid = 30
	}

	var school models.School
	if err := tc.DB.First(&school, "id = ?", req.SchoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "school not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := utils.GenerateToken(16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	invitation := models.InvitationToken{
		Token:     token,
		SchoolID:  school.ID,
		ExpiresAt: time.Now().AddDate(0, 0, req.DaysValid),
	}
	if err := tc.DB.Create(&invitation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"token":      invitation.Token,
		"school_id":  invitation.SchoolID,
		"expires_at": invitation.ExpiresAt,
	})
}

func (tc *TokenController) List(c *gin.Context) {
	var tokens []models.InvitationToken
	if err := tc.DB.Order("created_at DESC").Find(&tokens).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tokens)
}
