package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petroapi-dev/petroapi/internal/models"
	"github.com/petroapi-dev/petroapi/internal/types"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type MemberRequest struct {
	Username string `json:"username" binding:"required"`
}

func projectResponse(project *models.Project) types.ProjectResponse {
	return types.ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
	}
}

func (h *Handler) CreateProject(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var project models.Project

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		// Name uniqueness is scoped to the caller's own projects; unrelated
		// user groups may reuse the same name.
		var count int64
		err := tx.Model(&models.Project{}).
			Joins("JOIN users_projects ON users_projects.project_id = projects.id").
			Where("users_projects.user_id = ? AND projects.name = ?", user.ID, body.Name).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Project with same name already exists"})
			return errAborted
		}

		project = models.Project{
			Name:        body.Name,
			Description: body.Description,
			Users:       []models.User{{ID: user.ID}},
		}

		return tx.Create(&project).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "create project", err)
		}
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(&project))
}

func (h *Handler) ListProjects(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var projects []models.Project

	err := h.DB.
		Joins("JOIN users_projects ON users_projects.project_id = projects.id").
		Where("users_projects.user_id = ?", user.ID).
		Find(&projects).Error

	if err != nil {
		h.internalError(ctx, "list projects", err)
		return
	}

	response := make([]types.ProjectResponse, 0, len(projects))

	for i := range projects {
		response = append(response, projectResponse(&projects[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) GetProject(ctx *gin.Context) {
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

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func (h *Handler) UpdateProject(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	projectID, ok := pathID(ctx, "project_id")
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var project *models.Project

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		project, ok = h.requireProject(ctx, tx, user.ID, projectID)
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

		return tx.Model(project).Updates(updates).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "update project", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func (h *Handler) DeleteProject(ctx *gin.Context) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	projectID, ok := pathID(ctx, "project_id")
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		project, ok := h.requireProject(ctx, tx, user.ID, projectID)
		if !ok {
			return errAborted
		}

		return tx.Delete(project).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "delete project", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func (h *Handler) AddProjectMember(ctx *gin.Context) {
	h.changeMembership(ctx, true)
}

func (h *Handler) RemoveProjectMember(ctx *gin.Context) {
	h.changeMembership(ctx, false)
}

// changeMembership handles adduser and removeuser. Any current member may
// add or remove any other member; only self-targeting is rejected. There is
// deliberately no floor on membership count.
func (h *Handler) changeMembership(ctx *gin.Context, add bool) {
	user, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	var body MemberRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	projectID, ok := pathID(ctx, "project_id")
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var project *models.Project

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		project, ok = h.requireProject(ctx, tx, user.ID, projectID)
		if !ok {
			return errAborted
		}

		var target models.User

		err := tx.Where("username = ?", body.Username).First(&target).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return errAborted
			}
			return err
		}

		if target.ID == user.ID {
			if add {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "You are already there"})
			} else {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "You cannot remove yourself"})
			}
			return errAborted
		}

		var count int64
		err = tx.Table("users_projects").
			Where("project_id = ? AND user_id = ?", project.ID, target.ID).
			Count(&count).Error
		if err != nil {
			return err
		}

		if add {
			if count > 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username already in project"})
				return errAborted
			}
			return tx.Model(project).Association("Users").Append(&models.User{ID: target.ID})
		}

		if count == 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username not in project"})
			return errAborted
		}
		return tx.Model(project).Association("Users").Delete(&models.User{ID: target.ID})
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "update project members", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}
