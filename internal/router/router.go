package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/petroapi-dev/petroapi/internal/auth"
	"github.com/petroapi-dev/petroapi/internal/handlers"
	"github.com/petroapi-dev/petroapi/internal/middleware"
	"gorm.io/gorm"
)

func New(db *gorm.DB, tokens *auth.TokenService) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := handlers.New(db, tokens)
	authed := middleware.Auth(db, tokens)

	r.POST("/token", h.Login)

	users := r.Group("/users", authed)
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
	}

	projects := r.Group("/projects", authed)
	{
		projects.POST("", h.CreateProject)
		projects.GET("", h.ListProjects)
		projects.GET("/:project_id", h.GetProject)
		projects.PUT("/:project_id", h.UpdateProject)
		projects.DELETE("/:project_id", h.DeleteProject)
		projects.PUT("/:project_id/adduser", h.AddProjectMember)
		projects.PUT("/:project_id/removeuser", h.RemoveProjectMember)
	}

	samples := r.Group("/samples", authed)
	{
		samples.POST("/:project_id", h.CreateSample)
		samples.GET("/:project_id", h.ListSamples)
		samples.GET("/:project_id/:sample_id", h.GetSample)
		samples.PUT("/:project_id/:sample_id", h.UpdateSample)
		samples.DELETE("/:project_id/:sample_id", h.DeleteSample)
	}

	// Singular paths address one item, the plural ones batch-create and list.
	spot := r.Group("/spot", authed)
	{
		spot.POST("/:project_id/:sample_id", h.CreateSpot)
		spot.GET("/:project_id/:sample_id/:spot_id", h.GetSpot)
		spot.PUT("/:project_id/:sample_id/:spot_id", h.UpdateSpot)
		spot.DELETE("/:project_id/:sample_id/:spot_id", h.DeleteSpot)
	}

	spots := r.Group("/spots", authed)
	{
		spots.POST("/:project_id/:sample_id", h.CreateSpots)
		spots.GET("/:project_id/:sample_id", h.ListSpots)
	}

	area := r.Group("/area", authed)
	{
		area.POST("/:project_id/:sample_id", h.CreateArea)
		area.GET("/:project_id/:sample_id/:area_id", h.GetArea)
		area.PUT("/:project_id/:sample_id/:area_id", h.UpdateArea)
		area.DELETE("/:project_id/:sample_id/:area_id", h.DeleteArea)
	}

	areas := r.Group("/areas", authed)
	{
		areas.POST("/:project_id/:sample_id", h.CreateAreas)
		areas.GET("/:project_id/:sample_id", h.ListAreas)
	}

	profile := r.Group("/profile", authed)
	{
		profile.POST("/:project_id/:sample_id", h.CreateProfile)
		profile.GET("/:project_id/:sample_id/:profile_id", h.GetProfile)
		profile.PUT("/:project_id/:sample_id/:profile_id", h.UpdateProfile)
		profile.DELETE("/:project_id/:sample_id/:profile_id", h.DeleteProfile)
	}

	profiles := r.Group("/profiles", authed)
	{
		profiles.POST("/:project_id/:sample_id", h.CreateProfiles)
		profiles.GET("/:project_id/:sample_id", h.ListProfiles)
	}

	profileSpot := r.Group("/profilespot", authed)
	{
		profileSpot.POST("/:project_id/:sample_id/:profile_id", h.CreateProfileSpot)
		profileSpot.GET("/:project_id/:sample_id/:profile_id/:profilespot_id", h.GetProfileSpot)
		profileSpot.PUT("/:project_id/:sample_id/:profile_id/:profilespot_id", h.UpdateProfileSpot)
		profileSpot.DELETE("/:project_id/:sample_id/:profile_id/:profilespot_id", h.DeleteProfileSpot)
	}

	profileSpots := r.Group("/profilespots", authed)
	{
		profileSpots.POST("/:project_id/:sample_id/:profile_id", h.CreateProfileSpots)
		profileSpots.GET("/:project_id/:sample_id/:profile_id", h.ListProfileSpots)
	}

	search := r.Group("/search", authed)
	{
		search.GET("/project/:project_name", h.SearchProject)
		search.GET("/sample/:project_id/:sample_name", h.SearchSample)
		search.GET("/spot/:project_id/:sample_id/:mineral", h.SearchSpots)
		search.GET("/profile/:project_id/:sample_id/:label", h.SearchProfile)
	}

	return r
}
