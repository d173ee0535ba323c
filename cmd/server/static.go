package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// setupStaticFiles serves the first existing export directory and answers
// unknown routes with JSON
func setupStaticFiles(router *gin.Engine, dirs []string) {
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			log.Info().Str("dir", dir).Msg("Serving exported datasets under /exports")
			router.Static("/exports", dir)
			break
		}
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{
			"error": "not found",
			"hint":  "see /api/v1/schema, /api/v1/predict and /api/v1/analytics",
		})
	})
}
