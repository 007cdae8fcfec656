package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rebounder/signage_backend/internal/models"
	"github.com/rebounder/signage_backend/internal/ws"
)

type ContentController struct {
	DB       *gorm.DB
	Registry *ws.Registry
	Log      *zap.Logger
}

// updateContentRequest carries the editable content fields. Pointer fields
// distinguish "not provided" from "clear": nil leaves the stored value
// unchanged, an empty string clears it.
type updateContentRequest struct {
	Body             *string          `json:"body"`
	Theme            *string          `json:"theme"`
	MediaURL         *string          `json:"media_url"`
	StartAt          *string          `json:"start_at"`
	EndAt            *string          `json:"end_at"`
	Slides           []map[string]any `json:"slides"`
	RenderedImageURL *string          `json:"rendered_image_url"`
}

// UpdateContent upserts the content row for a slot and broadcasts RELOAD.
// The style map is loaded once, merged, and persisted as one write.
func (cc *ContentController) UpdateContent(c *gin.Context) {
	slotID, err := strconv.ParseUint(c.Param("slot_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot id"})
		return
	}

	var slot models.Slot
	if err := cc.DB.First(&slot, "id = ?", slotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "slot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// School admins may only edit slots of their own school.
	if u, ok := currentUser(c); ok && u.Role == models.RoleSchoolAdmin {
		if u.SchoolID == nil || *u.SchoolID != slot.SchoolID {
			c.JSON(http.StatusForbidden, gin.H{"error": "slot belongs to another school"})
			return
		}
	}

	var req updateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var content models.Content
	err = cc.DB.Where("slot_id = ?", slot.ID).Order("id").First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		content = models.Content{SlotID: slot.ID, Theme: "default", IsActive: true}
		err = nil
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.Body != nil {
		content.Body = *req.Body
	}
	if req.Theme != nil && *req.Theme != "" {
		content.Theme = *req.Theme
	}
	if req.MediaURL != nil {
		content.MediaURL = *req.MediaURL
	}
	if req.StartAt != nil {
		content.StartAt = parseWindowTime(*req.StartAt, content.StartAt)
	}
	if req.EndAt != nil {
		content.EndAt = parseWindowTime(*req.EndAt, content.EndAt)
	}

	style, err := mergeStyle(content.Style, req.Slides, req.RenderedImageURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid style fields"})
		return
	}
	content.Style = style

	if err := cc.DB.Save(&content).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cc.Registry.NotifyChanged()
	cc.Log.Info("content updated",
		zap.Uint("slot_id", slot.ID),
		zap.String("school_id", slot.SchoolID),
	)
	c.JSON(http.StatusOK, content)
}

// parseWindowTime parses a visibility bound. Empty clears the bound; an
// unparseable value keeps the current one.
func parseWindowTime(v string, current *time.Time) *time.Time {
	if v == "" {
		return nil
	}
	layout := "2006-01-02 15:04"
	if strings.Contains(v, "T") {
		layout = "2006-01-02T15:04"
	}
	t, err := time.Parse(layout, v)
	if err != nil {
		return current
	}
	return &t
}

// mergeStyle applies the optional style merges in a fixed order against the
// stored map and returns a single serialized result. Malformed stored style
// is discarded rather than surfaced.
func mergeStyle(current datatypes.JSON, slides []map[string]any, renderedImageURL *string) (datatypes.JSON, error) {
	style := map[string]any{}
	if len(current) > 0 {
		if err := json.Unmarshal(current, &style); err != nil {
			style = map[string]any{}
		}
	}

	if slides != nil {
		if len(slides) == 0 {
			delete(style, "slides")
		} else {
			style["slides"] = slides
		}
	}
	if renderedImageURL != nil {
		if *renderedImageURL == "" {
			delete(style, "rendered_image_url")
		} else {
			style["rendered_image_url"] = *renderedImageURL
		}
	}

	if len(style) == 0 {
		return nil, nil
	}
	out, err := json.Marshal(style)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(out), nil
}
