package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petroapi-dev/petroapi/internal/models"
	"github.com/petroapi-dev/petroapi/internal/types"
	"gorm.io/gorm"
)

type CreateProfileRequest struct {
	Label   string `json:"label" binding:"required"`
	Mineral string `json:"mineral" binding:"required"`
}

type UpdateProfileRequest struct {
	Label   *string `json:"label"`
	Mineral *string `json:"mineral"`
}

func profileResponse(profile *models.Profile) types.ProfileResponse {
	return types.ProfileResponse{
		ID:      profile.ID,
		Label:   profile.Label,
		Mineral: profile.Mineral,
	}
}

func (h *Handler) profileExists(tx *gorm.DB, sampleID uint, label string) (bool, error) {
	var count int64

	err := tx.Model(&models.Profile{}).
		Where("sample_id = ? AND label = ?", sampleID, label).
		Count(&count).Error

	return count > 0, err
}

func (h *Handler) CreateProfile(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body CreateProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var profile models.Profile

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		sample, ok := h.chainSample(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		exists, err := h.profileExists(tx, sample.ID, body.Label)
		if err != nil {
			return err
		}

		if exists {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Profile with same label already exists"})
			return errAborted
		}

		profile = models.Profile{
			SampleID: sample.ID,
			Label:    body.Label,
			Mineral:  body.Mineral,
		}

		return tx.Create(&profile).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "create profile", err)
		}
		return
	}

	ctx.JSON(http.StatusCreated, profileResponse(&profile))
}

func (h *Handler) CreateProfiles(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body []CreateProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	profiles := make([]models.Profile, 0, len(body))

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		sample, ok := h.chainSample(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		for _, item := range body {
			exists, err := h.profileExists(tx, sample.ID, item.Label)
			if err != nil {
				return err
			}

			if exists {
				ctx.JSON(http.StatusBadRequest, gin.H{
					"error": fmt.Sprintf("Profile with label %s already exists", item.Label),
				})
				return errAborted
			}

			profile := models.Profile{
				SampleID: sample.ID,
				Label:    item.Label,
				Mineral:  item.Mineral,
			}

			if err := tx.Create(&profile).Error; err != nil {
				return err
			}

			profiles = append(profiles, profile)
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "create profiles", err)
		}
		return
	}

	response := make([]types.ProfileResponse, 0, len(profiles))

	for i := range profiles {
		response = append(response, profileResponse(&profiles[i]))
	}

	ctx.JSON(http.StatusCreated, response)
}

func (h *Handler) ListProfiles(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	sample, ok := h.chainSample(ctx, h.DB, user.ID)
	if !ok {
		return
	}

	var profiles []models.Profile

	if err := h.DB.Where("sample_id = ?", sample.ID).Find(&profiles).Error; err != nil {
		h.internalError(ctx, "list profiles", err)
		return
	}

	response := make([]types.ProfileResponse, 0, len(profiles))

	for i := range profiles {
		response = append(response, profileResponse(&profiles[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) GetProfile(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	profile, ok := h.chainProfile(ctx, h.DB, user.ID)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, profileResponse(profile))
}

func (h *Handler) UpdateProfile(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body UpdateProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var profile *models.Profile

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var ok bool

		profile, ok = h.chainProfile(ctx, tx, user.ID)
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

		if len(updates) == 0 {
			return nil
		}

		return tx.Model(profile).Updates(updates).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "update profile", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, profileResponse(profile))
}

func (h *Handler) DeleteProfile(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		profile, ok := h.chainProfile(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		return tx.Delete(profile).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "delete profile", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile deleted successfully"})
}
