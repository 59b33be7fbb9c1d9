package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/petroapi-dev/petroapi/internal/auth"
	"github.com/petroapi-dev/petroapi/internal/models"
	"github.com/petroapi-dev/petroapi/internal/types"
	"gorm.io/gorm"
)

// The bootstrap admin is the first user ever created; there is no role
// table, privileged routes compare against this id literally.
const bootstrapAdminID = 1

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required"`
}

func adminOnly(ctx *gin.Context, detail string) {
	ctx.Header("WWW-Authenticate", "Bearer")
	ctx.JSON(http.StatusUnauthorized, gin.H{"error": detail})
}

func (h *Handler) CreateUser(ctx *gin.Context) {
	caller, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	if caller.ID != bootstrapAdminID {
		adminOnly(ctx, "Only administrator can register new user")
		return
	}

	var body CreateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var user models.User

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("username = ?", body.Username).First(&models.User{}).Error

		if err == nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username already registered"})
			return errAborted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := auth.HashPassword(body.Password)
		if err != nil {
			return err
		}

		user = models.User{
			Username:       body.Username,
			Email:          body.Email,
			HashedPassword: hashed,
		}

		return tx.Create(&user).Error
	})

	if err != nil {
		if !errors.Is(err, errAborted) {
			h.internalError(ctx, "create user", err)
		}
		return
	}

	ctx.JSON(http.StatusCreated, types.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

func (h *Handler) ListUsers(ctx *gin.Context) {
	caller, ok := h.currentUser(ctx)
	if !ok {
		return
	}

	if caller.ID != bootstrapAdminID {
		adminOnly(ctx, "Only administrator can list users")
		return
	}

	var users []models.User

	if err := h.DB.Find(&users).Error; err != nil {
		h.internalError(ctx, "list users", err)
		return
	}

	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, types.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
	}

	ctx.JSON(http.StatusOK, response)
}
