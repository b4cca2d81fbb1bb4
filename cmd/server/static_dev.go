//go:build !embed
// +build !embed

package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// setupStaticFiles serves the page scripts and styles from disk (development)
func setupStaticFiles(router *gin.Engine, log logrus.FieldLogger) {
	log.Info("using local filesystem for static assets (development mode)")

	router.Static("/static", "./cmd/server/web/static")
	router.StaticFile("/favicon.ico", "./cmd/server/web/static/favicon.svg")

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.Redirect(http.StatusFound, "/")
	})
}
