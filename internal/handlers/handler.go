package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/petroapi-dev/petroapi/internal/auth"
	"github.com/petroapi-dev/petroapi/internal/middleware"
	"github.com/petroapi-dev/petroapi/internal/models"
	"gorm.io/gorm"
)

// Handler carries the shared dependencies of every route. The database
// handle is injected here once at startup instead of living in a package
// global.
type Handler struct {
	DB     *gorm.DB
	Tokens *auth.TokenService
}

func New(db *gorm.DB, tokens *auth.TokenService) *Handler {
	return &Handler{DB: db, Tokens: tokens}
}

// errAborted signals that a response has already been written inside a
// transaction closure; the transaction rolls back and the caller stays quiet.
var errAborted = errors.New("request aborted")

func (h *Handler) currentUser(ctx *gin.Context) (middleware.AuthenticatedUser, bool) {
	user, err := middleware.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return middleware.AuthenticatedUser{}, false
	}

	return user, true
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// requireProject loads a project only if the caller is one of its members.
// A missing project and an inaccessible one are indistinguishable: both are
// the same 404.
func (h *Handler) requireProject(ctx *gin.Context, tx *gorm.DB, userID, projectID uint) (*models.Project, bool) {
	var project models.Project

	err := tx.
		Joins("JOIN users_projects ON users_projects.project_id = projects.id").
		Where("users_projects.user_id = ? AND projects.id = ?", userID, projectID).
		First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			log.Printf("Failed to load project %d: %v", projectID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return nil, false
	}

	return &project, true
}

// requireSample continues the ownership chain below an already-authorized
// project.
func (h *Handler) requireSample(ctx *gin.Context, tx *gorm.DB, projectID, sampleID uint) (*models.Sample, bool) {
	var sample models.Sample

	err := tx.
		Where("project_id = ? AND id = ?", projectID, sampleID).
		First(&sample).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Sample not found"})
		} else {
			log.Printf("Failed to load sample %d: %v", sampleID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return nil, false
	}

	return &sample, true
}

func (h *Handler) requireProfile(ctx *gin.Context, tx *gorm.DB, sampleID, profileID uint) (*models.Profile, bool) {
	var profile models.Profile

	err := tx.
		Where("sample_id = ? AND id = ?", sampleID, profileID).
		First(&profile).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		} else {
			log.Printf("Failed to load profile %d: %v", profileID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return nil, false
	}

	return &profile, true
}

// chain walks project -> sample for the routes addressed below a sample.
func (h *Handler) chainSample(ctx *gin.Context, tx *gorm.DB, userID uint) (*models.Sample, bool) {
	projectID, ok := pathID(ctx, "project_id")
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return nil, false
	}

	if _, ok := h.requireProject(ctx, tx, userID, projectID); !ok {
		return nil, false
	}

	sampleID, ok := pathID(ctx, "sample_id")
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Sample not found"})
		return nil, false
	}

	return h.requireSample(ctx, tx, projectID, sampleID)
}

// chainProfile walks project -> sample -> profile.
func (h *Handler) chainProfile(ctx *gin.Context, tx *gorm.DB, userID uint) (*models.Profile, bool) {
	sample, ok := h.chainSample(ctx, tx, userID)
	if !ok {
		return nil, false
	}

	profileID, ok := pathID(ctx, "profile_id")
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return nil, false
	}

	return h.requireProfile(ctx, tx, sample.ID, profileID)
}

func (h *Handler) internalError(ctx *gin.Context, action string, err error) {
	log.Printf("Failed to %s: %v", action, err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
