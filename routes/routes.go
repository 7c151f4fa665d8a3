package routes

import (
	"github.com/gin-gonic/gin"
	config "github.com/greenroots/donation-tracker-go/config"
	controllers "github.com/greenroots/donation-tracker-go/controllers"
	middleware "github.com/greenroots/donation-tracker-go/middleware"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	// public
	r.POST("/auth/login", controllers.Login(cfg))
	r.GET("/campaign-data", controllers.GetCampaignData(cfg))
	r.POST("/create-donation", controllers.CreateDonation(cfg))

	// protected
	auth := middleware.AuthMiddleware(cfg)

	admin := r.Group("/")
	admin.Use(auth)
	{
		admin.GET("/all-donations", controllers.ListDonations(cfg))
		admin.POST("/update-donation", controllers.UpdateDonation(cfg))
		admin.POST("/update-settings", controllers.UpdateSettings(cfg))
	}
}
