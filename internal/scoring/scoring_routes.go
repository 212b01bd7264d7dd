package scoring

import (
	"github.com/gin-gonic/gin"

	mw "github.com/DhavalSuthar-24/crease/internal/middleware"
)

// RegisterRoutes sets up the match, scoring and career routes. Reads are
// public; every write needs the scorer's token.
func RegisterRoutes(router *gin.RouterGroup, service *Service, jwtSecret string) {
	controller := NewScoringController(service)

	matchRoutes := router.Group("/matches")
	{
		matchRoutes.GET("/:id", controller.GetMatch)
		matchRoutes.GET("/:id/scorecard", controller.GetScorecard)
	}

	scoreRoutes := router.Group("/matches")
	scoreRoutes.Use(mw.AuthMiddleware(jwtSecret)) // Require authentication
	{
		scoreRoutes.POST("", controller.CreateMatch)
		scoreRoutes.POST("/:id/start", controller.StartMatch)

		// Deliveries
		scoreRoutes.POST("/:id/runs", controller.RecordRuns)
		scoreRoutes.POST("/:id/wide", controller.RecordWide)
		scoreRoutes.POST("/:id/no-ball", controller.RecordNoBall)
		scoreRoutes.POST("/:id/wicket", controller.RecordWicket)
		scoreRoutes.POST("/:id/retire-hurt", controller.RetireHurt)

		// Crease changes
		scoreRoutes.POST("/:id/batsmen", controller.AddBatsman)
		scoreRoutes.POST("/:id/bowlers", controller.AddBowler)

		scoreRoutes.POST("/:id/undo", controller.Undo)
		scoreRoutes.POST("/:id/end-innings", controller.EndInnings)
		scoreRoutes.POST("/:id/sync", controller.Sync)
	}

	router.GET("/players/:id/career", controller.GetCareer)
}
