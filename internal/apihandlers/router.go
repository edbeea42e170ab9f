package apihandlers

import (
	"github.com/gin-gonic/gin"

	"precis/internal/app"
)

// NewRouter builds the gin engine with every route registered.
func NewRouter(a *app.App) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	h := NewAPIHandler(a)

	v1 := router.Group("/api/v1")
	{
		summarizeGroup := v1.Group("/summarize")
		{
			summarizeGroup.POST("", h.SummarizeHandler)
			summarizeGroup.POST("/download", h.DownloadHandler)
		}
		v1.GET("/presets", h.PresetsHandler)
		v1.GET("/usage", h.UsageHandler)
	}

	router.GET("/health", h.HealthHandler)
	router.NoRoute(func(c *gin.Context) {
		NotFound(c, "no route for "+c.Request.Method+" "+c.Request.URL.Path)
	})
	return router
}
