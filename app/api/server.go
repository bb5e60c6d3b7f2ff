package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP engine with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/health"},
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	r.SetHTMLTemplate(handler.renderer.Template())

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/", handler.GetDashboard)
	r.POST("/refresh", handler.PostRefresh)

	r.GET("/feed.xml", corsMiddleware(), handler.GetFeed)
	r.GET("/health", handler.GetHealth)

	api := r.Group("/api", corsMiddleware())
	{
		api.GET("/briefing", handler.APIGetBriefing)
	}

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

// corsMiddleware opens the read-only endpoints to other origins. The dashboard
// form routes stay same-origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		c.Next()
	}
}
