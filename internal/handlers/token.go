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

type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Login exchanges form-encoded credentials for a bearer token.
func (h *Handler) Login(ctx *gin.Context) {
	var form LoginRequest

	if err := ctx.ShouldBind(&form); err != nil {
		badCredentials(ctx)
		return
	}

	var user models.User

	err := h.DB.Where("username = ?", form.Username).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			badCredentials(ctx)
		} else {
			h.internalError(ctx, "fetch user", err)
		}
		return
	}

	if !auth.VerifyPassword(form.Password, user.HashedPassword) {
		badCredentials(ctx)
		return
	}

	token, err := h.Tokens.Issue(user.Username)

	if err != nil {
		h.internalError(ctx, "issue token", err)
		return
	}

	ctx.JSON(http.StatusOK, types.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func badCredentials(ctx *gin.Context) {
	ctx.Header("WWW-Authenticate", "Bearer")
	ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})
}
