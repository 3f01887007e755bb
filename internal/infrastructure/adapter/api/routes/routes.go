package routes

import (
	"net/http"

	coreport "github.com/Alex-KostPy/roofnn/internal/domain/port/core"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/api/handler"
	"github.com/Alex-KostPy/roofnn/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	spotHandler *handler.SpotHandler,
	accessHandler *handler.AccessHandler,
	profileHandler *handler.ProfileHandler,
	adminHandler *handler.AdminHandler,
	botToken string,
) {
	api := router.Group("/api")
	{
		// Liveness probe for cold-start hosting
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.GET("/spots", spotHandler.ListSpots)
		api.POST("/me", profileHandler.Me)
		api.POST("/buy_spot", accessHandler.BuySpot)
		api.POST("/add_spot", spotHandler.AddSpot)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(botToken))
	{
		admin.POST("/approve_spot", adminHandler.ApproveSpot)
		admin.POST("/reject_spot", adminHandler.RejectSpot)
		admin.POST("/add_balance", adminHandler.AddBalance)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
