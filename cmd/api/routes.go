package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (app *application) routes() http.Handler {
	if app.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	// request logging through zap
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		app.Logger.Sugar().Infow("http",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	})

	r.Use(app.CORSMiddleware())
	if app.Config.Limiter.Enabled {
		r.Use(app.RateLimitMiddleware())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/signup", app.Handler.SignUp)
		v1.POST("/login", app.Handler.Login)
	}

	protected := v1.Group("/")
	protected.Use(app.AuthMiddleware())
	{
		protected.GET("/me", app.Handler.Me)

		// session routes
		protected.POST("/sessions", app.Handler.CreateSession)
		protected.POST("/sessions/import", app.Handler.ImportSession)
		protected.GET("/sessions", app.Handler.ListSessions)
		protected.GET("/sessions/stats", app.Handler.GetSessionStats)
		protected.GET("/sessions/:id", app.Handler.GetSession)
		protected.PATCH("/sessions/:id", app.Handler.PatchSession)
		protected.DELETE("/sessions/:id", app.Handler.DeleteSession)
		protected.POST("/sessions/:id/questions", app.Handler.GenerateMoreQuestions)

		// question routes
		protected.PATCH("/questions/:q_id/pin", app.Handler.TogglePinQuestion)
		protected.PATCH("/questions/:q_id/note", app.Handler.UpdateQuestionNote)
		protected.POST("/questions/:q_id/explain", app.Handler.ExplainQuestion)
		protected.DELETE("/questions/:q_id", app.Handler.DeleteQuestion)
	}

	return r
}
