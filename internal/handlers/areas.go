package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petroapi-dev/petroapi/internal/models"
	"github.com/petroapi-dev/petroapi/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateAreaRequest struct {
	Label  string             `json:"label" binding:"required"`
	Weight *float64           `json:"weight"`
	Values map[string]float64 `json:"values" binding:"required"`
}

type UpdateAreaRequest struct {
	Label  *string             `json:"label"`
	Weight *float64            `json:"weight"`
	Values *map[string]float64 `json:"values"`
}

func areaResponse(area *models.Area) types.AreaResponse {
	return types.AreaResponse{
		ID:     area.ID,
		Label:  area.Label,
		Weight: area.Weight,
		Values: area.Values.Data(),
	}
}

func (h *Handler) areaExists(tx *gorm.DB, sampleID uint, label string) (bool, error) {
	var count int64

	err := tx.Model(&models.Area{}).
		Where("sample_id = ? AND label = ?", sampleID, label).
		Count(&count).Error

	return count > 0, err
}

func newArea(sampleID uint, body CreateAreaRequest) models.Area {
	weight := 1.0
	if body.Weight != nil {
		weight = *body.Weight
	}

	return models.Area{
		SampleID: sampleID,
		Label:    body.Label,
		Weight:   weight,
		Values:   datatypes.NewJSONType(body.Values),
	}
}

func (h *Handler) CreateArea(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body CreateAreaRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var area models.Area

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		sample, ok := h.chainSample(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		exists, err := h.areaExists(tx, sample.ID, body.Label)
		if err != nil {
			return err
		}

		if exists {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Area with same label already exists"})
			return errAborted
		}

		area = newArea(sample.ID, body)

		return tx.Create(&area).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "create area", err)
		}
		return
	}

	ctx.JSON(http.StatusCreated, areaResponse(&area))
}

func (h *Handler) CreateAreas(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body []CreateAreaRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	areas := make([]models.Area, 0, len(body))

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		sample, ok := h.chainSample(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		for _, item := range body {
			exists, err := h.areaExists(tx, sample.ID, item.Label)
			if err != nil {
				return err
			}

			if exists {
				ctx.JSON(http.StatusBadRequest, gin.H{
					"error": fmt.Sprintf("Area with label %s already exists", item.Label),
				})
				return errAborted
			}

			area := newArea(sample.ID, item)

			if err := tx.Create(&area).Error; err != nil {
				return err
			}

			areas = append(areas, area)
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "create areas", err)
		}
		return
	}

	response := make([]types.AreaResponse, 0, len(areas))

	for i := range areas {
		response = append(response, areaResponse(&areas[i]))
	}

	ctx.JSON(http.StatusCreated, response)
}

func (h *Handler) ListAreas(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	sample, ok := h.chainSample(ctx, h.DB, user.ID)
	if !ok {
		return
	}

	var areas []models.Area

	if err := h.DB.Where("sample_id = ?", sample.ID).Find(&areas).Error; err != nil {
		h.internalError(ctx, "list areas", err)
		return
	}

	response := make([]types.AreaResponse, 0, len(areas))

	for i := range areas {
		response = append(response, areaResponse(&areas[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) getAreaFromChain(ctx *gin.Context, tx *gorm.DB, userID uint) (*models.Area, bool) {
	sample, ok := h.chainSample(ctx, tx, userID)
	if !ok {
		return nil, false
	}

	areaID, ok := pathID(ctx, "area_id")
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Area not found"})
		return nil, false
	}

	var area models.Area

	err := tx.Where("sample_id = ? AND id = ?", sample.ID, areaID).First(&area).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Area not found"})
		} else {
			h.internalError(ctx, "fetch area", err)
		}
		return nil, false
	}

	return &area, true
}

func (h *Handler) GetArea(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	area, ok := h.getAreaFromChain(ctx, h.DB, user.ID)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, areaResponse(area))
}

func (h *Handler) UpdateArea(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body UpdateAreaRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var area *models.Area

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var ok bool

		area, ok = h.getAreaFromChain(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		updates := make(map[string]interface{})

		if body.Label != nil {
			updates["label"] = *body.Label
		}
		if body.Weight != nil {
			updates["weight"] = *body.Weight
		}
		if body.Values != nil {
			updates["values"] = datatypes.NewJSONType(*body.Values)
		}

		if len(updates) == 0 {
			return nil
		}

		return tx.Model(area).Updates(updates).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "update area", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, areaResponse(area))
}

func (h *Handler) DeleteArea(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		area, ok := h.getAreaFromChain(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		return tx.Delete(area).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "delete area", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Area deleted successfully"})
}
