//go:build embed
// +build embed

package main

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed web/static
var webStatic embed.FS

// setupStaticFiles serves the page scripts and styles from the binary
func setupStaticFiles(router *gin.Engine, log logrus.FieldLogger) {
	log.Info("using embedded static assets")

	staticFS, err := fs.Sub(webStatic, "web/static")
	if err != nil {
		log.WithError(err).Fatal("Failed to get static subdirectory")
	}
	router.StaticFS("/static", http.FS(staticFS))
	router.GET("/favicon.ico", func(c *gin.Context) {
		c.FileFromFS("favicon.svg", http.FS(staticFS))
	})

	router.NoRoute(notFound)
}

func notFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api") {
		c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
		return
	}
	c.Redirect(http.StatusFound, "/")
}
