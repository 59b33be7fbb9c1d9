package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petroapi-dev/petroapi/internal/models"
	"github.com/petroapi-dev/petroapi/internal/types"
	"gorm.io/gorm"
)

// Search endpoints look entities up by their human-readable keys instead of
// ids. They are reads only and reuse the same membership gate as everything
// else.

func (h *Handler) SearchProject(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var project models.Project

	err := h.DB.
		Joins("JOIN users_projects ON users_projects.project_id = projects.id").
		Where("users_projects.user_id = ? AND projects.name = ?", user.ID, ctx.Param("project_name")).
		First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			h.internalError(ctx, "search project", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(&project))
}

func (h *Handler) SearchSample(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	projectID, ok := pathID(ctx, "project_id")
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Sample not found"})
		return
	}

	var sample models.Sample

	err := h.DB.
		Joins("JOIN projects ON projects.id = samples.project_id").
		Joins("JOIN users_projects ON users_projects.project_id = projects.id").
		Where("users_projects.user_id = ? AND projects.id = ? AND samples.name = ?",
			user.ID, projectID, ctx.Param("sample_name")).
		First(&sample).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Sample not found"})
		} else {
			h.internalError(ctx, "search sample", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, sampleResponse(&sample))
}

// SearchSpots returns every spot of the sample tagged with the given
// mineral; an empty result is a 404, not an empty list.
func (h *Handler) SearchSpots(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	projectID, ok := pathID(ctx, "project_id")
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Mineral not found"})
		return
	}

	sampleID, ok := pathID(ctx, "sample_id")
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Mineral not found"})
		return
	}

	var spots []models.Spot

	err := h.DB.
		Joins("JOIN samples ON samples.id = spots.sample_id").
		Joins("JOIN users_projects ON users_projects.project_id = samples.project_id").
		Where("users_projects.user_id = ? AND samples.project_id = ? AND samples.id = ? AND spots.mineral = ?",
			user.ID, projectID, sampleID, ctx.Param("mineral")).
		Find(&spots).Error

	if err != nil {
		h.internalError(ctx, "search spots", err)
		return
	}

	if len(spots) == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Mineral not found"})
		return
	}

	response := make([]types.SpotResponse, 0, len(spots))

	for i := range spots {
		response = append(response, spotResponse(&spots[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) SearchProfile(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	projectID, ok := pathID(ctx, "project_id")
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	sampleID, ok := pathID(ctx, "sample_id")
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var profile models.Profile

	err := h.DB.
		Joins("JOIN samples ON samples.id = profiles.sample_id").
		Joins("JOIN users_projects ON users_projects.project_id = samples.project_id").
		Where("users_projects.user_id = ? AND samples.project_id = ? AND samples.id = ? AND profiles.label = ?",
			user.ID, projectID, sampleID, ctx.Param("label")).
		First(&profile).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		} else {
			h.internalError(ctx, "search profile", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, profileResponse(&profile))
}
