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

type CreateSpotRequest struct {
	Label   string             `json:"label" binding:"required"`
	Mineral *string            `json:"mineral"`
	Values  map[string]float64 `json:"values" binding:"required"`
}

type UpdateSpotRequest struct {
	Label   *string             `json:"label"`
	Mineral *string             `json:"mineral"`
	Values  *map[string]float64 `json:"values"`
}

func spotResponse(spot *models.Spot) types.SpotResponse {
	return types.SpotResponse{
		ID:      spot.ID,
		Label:   spot.Label,
		Mineral: spot.Mineral,
		Values:  spot.Values.Data(),
	}
}

func (h *Handler) spotExists(tx *gorm.DB, sampleID uint, label string) (bool, error) {
	var count int64

	err := tx.Model(&models.Spot{}).
		Where("sample_id = ? AND label = ?", sampleID, label).
		Count(&count).Error

	return count > 0, err
}

func (h *Handler) CreateSpot(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body CreateSpotRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var spot models.Spot

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		sample, ok := h.chainSample(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		exists, err := h.spotExists(tx, sample.ID, body.Label)
		if err != nil {
			return err
		}

		if exists {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Spot with same label already exists"})
			return errAborted
		}

		spot = models.Spot{
			SampleID: sample.ID,
			Label:    body.Label,
			Mineral:  body.Mineral,
			Values:   datatypes.NewJSONType(body.Values),
		}

		return tx.Create(&spot).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "create spot", err)
		}
		return
	}

	ctx.JSON(http.StatusCreated, spotResponse(&spot))
}

// CreateSpots is the batch variant. The whole batch shares one transaction:
// the first duplicate label, in input order, aborts with nothing persisted.
func (h *Handler) CreateSpots(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body []CreateSpotRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	spots := make([]models.Spot, 0, len(body))

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		sample, ok := h.chainSample(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		for _, item := range body {
			exists, err := h.spotExists(tx, sample.ID, item.Label)
			if err != nil {
				return err
			}

			if exists {
				ctx.JSON(http.StatusBadRequest, gin.H{
					"error": fmt.Sprintf("Spot with label %s already exists", item.Label),
				})
				return errAborted
			}

			spot := models.Spot{
				SampleID: sample.ID,
				Label:    item.Label,
				Mineral:  item.Mineral,
				Values:   datatypes.NewJSONType(item.Values),
			}

			if err := tx.Create(&spot).Error; err != nil {
				return err
			}

			spots = append(spots, spot)
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "create spots", err)
		}
		return
	}

	response := make([]types.SpotResponse, 0, len(spots))

	for i := range spots {
		response = append(response, spotResponse(&spots[i]))
	}

	ctx.JSON(http.StatusCreated, response)
}

func (h *Handler) ListSpots(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	sample, ok := h.chainSample(ctx, h.DB, user.ID)
	if !ok {
		return
	}

	var spots []models.Spot

	if err := h.DB.Where("sample_id = ?", sample.ID).Find(&spots).Error; err != nil {
		h.internalError(ctx, "list spots", err)
		return
	}

	response := make([]types.SpotResponse, 0, len(spots))

	for i := range spots {
		response = append(response, spotResponse(&spots[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) getSpotFromChain(ctx *gin.Context, tx *gorm.DB, userID uint) (*models.Spot, bool) {
	sample, ok := h.chainSample(ctx, tx, userID)
	if !ok {
		return nil, false
	}

	spotID, ok := pathID(ctx, "spot_id")
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Spot not found"})
		return nil, false
	}

	var spot models.Spot

	err := tx.Where("sample_id = ? AND id = ?", sample.ID, spotID).First(&spot).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Spot not found"})
		} else {
			h.internalError(ctx, "fetch spot", err)
		}
		return nil, false
	}

	return &spot, true
}

func (h *Handler) GetSpot(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	spot, ok := h.getSpotFromChain(ctx, h.DB, user.ID)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, spotResponse(spot))
}

func (h *Handler) UpdateSpot(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body UpdateSpotRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var spot *models.Spot

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var ok bool

		spot, ok = h.getSpotFromChain(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		updates := make(map[string]interface{})

		if body.Label != nil {
			updates["label"] = *body.Label
		}
		if body.Mineral != nil {
			updates["mineral"] = *body.Mineral
		}
		if body.Values != nil {
			updates["values"] = datatypes.NewJSONType(*body.Values)
		}

		if len(updates) == 0 {
			return nil
		}

		return tx.Model(spot).Updates(updates).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "update spot", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, spotResponse(spot))
}

func (h *Handler) DeleteSpot(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		spot, ok := h.getSpotFromChain(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		return tx.Delete(spot).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "delete spot", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Spot deleted successfully"})
}
