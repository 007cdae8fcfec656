package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rebounder/signage_backend/internal/models"
	"github.com/rebounder/signage_backend/internal/ws"
)

type SchoolController struct {
	DB       *gorm.DB
	Registry *ws.Registry
}

type createSchoolRequest struct {
	ID         string `json:"id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	LayoutType int    `json:"layout_type"`
}

type updateSchoolRequest struct {
	Name       string               `json:"name" binding:"required"`
	LayoutType int                  `json:"layout_type" binding:"required"`
	SlotTypes  []models.ContentType `json:"slot_types"`
}

func (sc *SchoolController) ListSchools(c *gin.Context) {
	var schools []models.School
	if err := sc.DB.Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Find(&schools).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, schools)
}

func (sc *SchoolController) GetSchool(c *gin.Context) {
	var school models.School
	err := sc.DB.Preload("Slots", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&school, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "school not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, school)
}

// CreateSchool provisions the school plus one notice slot per position the
// chosen layout needs.
func (sc *SchoolController) CreateSchool(c *gin.Context) {
	var req createSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.LayoutType == 0 {
		req.LayoutType = 4
	}

	var count int64
	if err := sc.DB.Model(&models.School{}).Where("id = ?", req.ID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "school id already exists"})
		return
	}

	school := models.School{ID: req.ID, Name: req.Name, LayoutType: req.LayoutType}
	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&school).Error; err != nil {
			return err
		}
		for i := 0; i < models.SlotCountForLayout(req.LayoutType); i++ {
			slot := models.Slot{SchoolID: school.ID, Position: i, ContentType: models.ContentNotice}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, school)
}

// UpdateSchool renames a school, switches its layout, and reassigns slot
// content types per position. At most one weather slot and one ad slot are
// allowed; that rule lives here at the boundary, not in the resolver.
func (sc *SchoolController) UpdateSchool(c *gin.Context) {
	var req updateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var school models.School
	if err := sc.DB.First(&school, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "school not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	slotCount := models.SlotCountForLayout(req.LayoutType)
	slotTypes := make([]models.ContentType, slotCount)
	weatherCount, adCount := 0, 0
	for i := 0; i < slotCount; i++ {
		t := models.ContentNotice
		if i < len(req.SlotTypes) && req.SlotTypes[i] != "" {
			t = req.SlotTypes[i]
		}
		if !t.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content type: " + string(t)})
			return
		}
		switch t {
		case models.ContentWeather:
			weatherCount++
		case models.ContentAd:
			adCount++
		}
		slotTypes[i] = t
	}
	if weatherCount > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at most one weather slot per school"})
		return
	}
	if adCount > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at most one ad slot per school"})
		return
	}

	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		school.Name = req.Name
		school.LayoutType = req.LayoutType
		if err := tx.Save(&school).Error; err != nil {
			return err
		}

		var existing []models.Slot
		if err := tx.Where("school_id = ?", school.ID).Order("position").Find(&existing).Error; err != nil {
			return err
		}
		byPosition := make(map[int]models.Slot, len(existing))
		for _, s := range existing {
			byPosition[s.Position] = s
		}

		for i, t := range slotTypes {
			if s, ok := byPosition[i]; ok {
				if s.ContentType != t {
					s.ContentType = t
					if err := tx.Save(&s).Error; err != nil {
						return err
					}
				}
				continue
			}
			slot := models.Slot{SchoolID: school.ID, Position: i, ContentType: t}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
		}
		// Layout shrank: drop slots beyond the new count.
		for pos, s := range byPosition {
			if pos >= slotCount {
				if err := tx.Delete(&models.Slot{}, s.ID).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sc.Registry.NotifyChanged()
	c.JSON(http.StatusOK, school)
}

func (sc *SchoolController) DeleteSchool(c *gin.Context) {
	res := sc.DB.Delete(&models.School{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "school not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
