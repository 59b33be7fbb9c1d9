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

// Index is a pointer so that 0, a legal first index, survives the
// required-field check.
type CreateProfileSpotRequest struct {
	Index  *int               `json:"index" binding:"required"`
	Values map[string]float64 `json:"values" binding:"required"`
}

type UpdateProfileSpotRequest struct {
	Index  *int                `json:"index"`
	Values *map[string]float64 `json:"values"`
}

func profileSpotResponse(spot *models.ProfileSpot) types.ProfileSpotResponse {
	return types.ProfileSpotResponse{
		ID:     spot.ID,
		Index:  spot.Index,
		Values: spot.Values.Data(),
	}
}

func (h *Handler) profileSpotExists(tx *gorm.DB, profileID uint, index int) (bool, error) {
	var count int64

	err := tx.Model(&models.ProfileSpot{}).
		Where("profile_id = ? AND \"index\" = ?", profileID, index).
		Count(&count).Error

	return count > 0, err
}

func (h *Handler) CreateProfileSpot(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body CreateProfileSpotRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var spot models.ProfileSpot

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		profile, ok := h.chainProfile(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		exists, err := h.profileSpotExists(tx, profile.ID, *body.Index)
		if err != nil {
			return err
		}

		if exists {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Profile spot with same index already exists"})
			return errAborted
		}

		spot = models.ProfileSpot{
			ProfileID: profile.ID,
			Index:     *body.Index,
			Values:    datatypes.NewJSONType(body.Values),
		}

		return tx.Create(&spot).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "create profile spot", err)
		}
		return
	}

	ctx.JSON(http.StatusCreated, profileSpotResponse(&spot))
}

func (h *Handler) CreateProfileSpots(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body []CreateProfileSpotRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	spots := make([]models.ProfileSpot, 0, len(body))

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		profile, ok := h.chainProfile(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		for _, item := range body {
			exists, err := h.profileSpotExists(tx, profile.ID, *item.Index)
			if err != nil {
				return err
			}

			if exists {
				ctx.JSON(http.StatusBadRequest, gin.H{
					"error": fmt.Sprintf("Profile spot with index %d already exists", *item.Index),
				})
				return errAborted
			}

			spot := models.ProfileSpot{
				ProfileID: profile.ID,
				Index:     *item.Index,
				Values:    datatypes.NewJSONType(item.Values),
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
			h.internalError(ctx, "create profile spots", err)
		}
		return
	}

	response := make([]types.ProfileSpotResponse, 0, len(spots))

	for i := range spots {
		response = append(response, profileSpotResponse(&spots[i]))
	}

	ctx.JSON(http.StatusCreated, response)
}

// ListProfileSpots returns the spots in ascending index order, the traversal
// order of the transect, regardless of insertion order.
func (h *Handler) ListProfileSpots(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	profile, ok := h.chainProfile(ctx, h.DB, user.ID)
	if !ok {
		return
	}

	var spots []models.ProfileSpot

	err := h.DB.
		Where("profile_id = ?", profile.ID).
		Order("\"index\" ASC").
		Find(&spots).Error

	if err != nil {
		h.internalError(ctx, "list profile spots", err)
		return
	}

	response := make([]types.ProfileSpotResponse, 0, len(spots))

	for i := range spots {
		response = append(response, profileSpotResponse(&spots[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) getProfileSpotFromChain(ctx *gin.Context, tx *gorm.DB, userID uint) (*models.ProfileSpot, bool) {
	profile, ok := h.chainProfile(ctx, tx, userID)
	if !ok {
		return nil, false
	}

	spotID, ok := pathID(ctx, "profilespot_id")
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile spot not found"})
		return nil, false
	}

	var spot models.ProfileSpot

	err := tx.Where("profile_id = ? AND id = ?", profile.ID, spotID).First(&spot).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile spot not found"})
		} else {
			h.internalError(ctx, "fetch profile spot", err)
		}
		return nil, false
	}

	return &spot, true
}

func (h *Handler) GetProfileSpot(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	spot, ok := h.getProfileSpotFromChain(ctx, h.DB, user.ID)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, profileSpotResponse(spot))
}

func (h *Handler) UpdateProfileSpot(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body UpdateProfileSpotRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var spot *models.ProfileSpot

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var ok bool

		spot, ok = h.getProfileSpotFromChain(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		updates := make(map[string]interface{})

		if body.Index != nil {
			updates["index"] = *body.Index
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
			h.internalError(ctx, "update profile spot", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, profileSpotResponse(spot))
}

func (h *Handler) DeleteProfileSpot(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		spot, ok := h.getProfileSpotFromChain(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		return tx.Delete(spot).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "delete profile spot", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile spot deleted successfully"})
}
