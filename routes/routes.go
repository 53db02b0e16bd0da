package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/lounyevents/event-calendar-go/config"
	controllers "github.com/lounyevents/event-calendar-go/controllers"
	geocode "github.com/lounyevents/event-calendar-go/geocode"
	middleware "github.com/lounyevents/event-calendar-go/middleware"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	geo := geocode.NewClient(cfg.MapyAPIKey)

	// public
	r.POST("/auth/register", controllers.Register(cfg))
	r.POST("/auth/login", controllers.Login(cfg))
	r.POST("/auth/refresh", controllers.RefreshToken(cfg))

	r.GET("/resolve-link", controllers.ResolveLink())
	r.GET("/suggest", controllers.SuggestLocations(geo))

	auth := middleware.AuthMiddleware(cfg)
	optionalAuth := middleware.OptionalAuthMiddleware(cfg)

	// Events
	events := r.Group("/events")
	{
		events.GET("", controllers.ListCalendar(cfg))
		events.POST("", optionalAuth, controllers.CreateEvent(cfg))
		events.GET("/mine", auth, controllers.ListMyEvents(cfg))
		events.GET("/:id", optionalAuth, controllers.GetEvent(cfg))
		events.PATCH("/:id", auth, controllers.UpdateEvent(cfg))
		events.DELETE("/:id", auth, controllers.DeleteEvent(cfg))
	}

	// Moderation
	moderation := r.Group("/moderation")
	moderation.Use(auth, middleware.AdminOnly())
	{
		moderation.GET("/submissions", controllers.ListSubmissions(cfg))
		moderation.POST("/submissions/:id/approve", controllers.ApproveSubmission(cfg))
		moderation.POST("/submissions/:id/reject", controllers.RejectSubmission(cfg))
	}
}
