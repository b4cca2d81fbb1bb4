package handler

import (
	"net/http"

	"ecoponto/internal/apperr"
	"ecoponto/internal/model"
	"ecoponto/internal/service"
	"ecoponto/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LookupHandler handles the page and its classify/locate actions
type LookupHandler struct {
	sessions *SessionStore
	renderer *view.Renderer
	provider string
	position service.PositionOptions
	log      logrus.FieldLogger
}

// NewLookupHandler creates a new lookup handler
func NewLookupHandler(sessions *SessionStore, renderer *view.Renderer, provider string, position service.PositionOptions, log logrus.FieldLogger) *LookupHandler {
	return &LookupHandler{
		sessions: sessions,
		renderer: renderer,
		provider: provider,
		position: position,
		log:      log,
	}
}

// Page handles GET / and restores the session's panels.
// The association notice is rendered into the page and shown without a request.
func (h *LookupHandler) Page(c *gin.Context) {
	orch := h.sessions.Orchestrator(c)

	c.HTML(http.StatusOK, "index.html", view.PageData{
		Provider:       h.provider,
		Query:          orch.Query(),
		Classification: orch.LastClassification(),
		Location:       orch.LastLocation(),
		Association:    service.AssociationPlaceholder(),
		Geolocation: view.GeolocationOptions{
			HighAccuracy: h.position.HighAccuracy,
			TimeoutMS:    h.position.Timeout.Milliseconds(),
			MaximumAgeMS: h.position.MaximumAge.Milliseconds(),
		},
	})
}

// Classify handles POST /api/v1/classify
func (h *LookupHandler) Classify(c *gin.Context) {
	var req model.ClassifyAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	orch := h.sessions.Orchestrator(c)
	result, err := orch.Classify(c.Request.Context(), req.Item)
	if apperr.Is(err, apperr.KindSuperseded) {
		c.JSON(http.StatusConflict, gin.H{"superseded": true})
		return
	}

	html, rerr := h.renderer.Classification(result)
	if rerr != nil {
		h.log.WithError(rerr).Error("failed to render classification")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render result"})
		return
	}

	c.JSON(statusOf(err), model.ClassifyAPIResponse{ClassificationView: result, HTML: html})
}

// Locate handles POST /api/v1/locate
func (h *LookupHandler) Locate(c *gin.Context) {
	var req model.LocateAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	locate := service.LocateRequest{Mode: req.Mode, Address: req.Address}
	if req.Mode == model.ModeDevice {
		locate.Device = browserPosition(req)
	}

	orch := h.sessions.Orchestrator(c)
	result, err := orch.SearchLocation(c.Request.Context(), locate)
	if apperr.Is(err, apperr.KindSuperseded) {
		c.JSON(http.StatusConflict, gin.H{"superseded": true})
		return
	}

	html, rerr := h.renderer.Location(result)
	if rerr != nil {
		h.log.WithError(rerr).Error("failed to render location")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render result"})
		return
	}

	c.JSON(statusOf(err), model.LocateAPIResponse{LocationView: result, HTML: html})
}

func browserPosition(req model.LocateAPIRequest) service.BrowserPosition {
	pos := service.BrowserPosition{Failure: req.GeolocationError}
	if req.Latitude != nil && req.Longitude != nil {
		pos.Coordinate = &model.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}
	return pos
}

func statusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return apperr.Status(err)
}
