package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petroapi-dev/petroapi/internal/models"
	"github.com/petroapi-dev/petroapi/internal/types"
	"gorm.io/gorm"
)

type CreateSampleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateSampleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func sampleResponse(sample *models.Sample) types.SampleResponse {
	return types.SampleResponse{
		ID:          sample.ID,
		Name:        sample.Name,
		Description: sample.Description,
	}
}

func (h *Handler) CreateSample(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body CreateSampleRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	projectID, ok := pathID(ctx, "project_id")
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var sample models.Sample

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		project, ok := h.requireProject(ctx, tx, user.ID, projectID)
		if !ok {
			return errAborted
		}

		var count int64
		err := tx.Model(&models.Sample{}).
			Where("project_id = ? AND name = ?", project.ID, body.Name).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Sample with same name already exists"})
			return errAborted
		}

		sample = models.Sample{
			ProjectID:   project.ID,
			Name:        body.Name,
			Description: body.Description,
		}

		return tx.Create(&sample).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "create sample", err)
		}
		return
	}

	ctx.JSON(http.StatusCreated, sampleResponse(&sample))
}

func (h *Handler) ListSamples(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	projectID, ok := pathID(ctx, "project_id")
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	project, ok := h.requireProject(ctx, h.DB, user.ID, projectID)
	if !ok {
		return
	}

	var samples []models.Sample

	if err := h.DB.Where("project_id = ?", project.ID).Find(&samples).Error; err != nil {
		h.internalError(ctx, "list samples", err)
		return
	}

	response := make([]types.SampleResponse, 0, len(samples))

	for i := range samples {
		response = append(response, sampleResponse(&samples[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) GetSample(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	sample, ok := h.chainSample(ctx, h.DB, user.ID)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, sampleResponse(sample))
}

func (h *Handler) UpdateSample(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body UpdateSampleRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var sample *models.Sample

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var ok bool

		sample, ok = h.chainSample(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		updates := make(map[string]interface{})

		if body.Name != nil {
			updates["name"] = *body.Name
		}
		if body.Description != nil {
			updates["description"] = *body.Description
		}

		if len(updates) == 0 {
			return nil
		}

		return tx.Model(sample).Updates(updates).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "update sample", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, sampleResponse(sample))
}

func (h *Handler) DeleteSample(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		sample, ok := h.chainSample(ctx, tx, user.ID)
		if !ok {
			return errAborted
		}

		return tx.Delete(sample).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "delete sample", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Sample deleted successfully"})
}
