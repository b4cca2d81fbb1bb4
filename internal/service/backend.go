package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ecoponto/internal/apperr"
	"ecoponto/internal/model"

	"github.com/sirupsen/logrus"
)

const (
	classifyPath = "/ask_gemini"
	pointsPath   = "/find_recycling_points"

	// fallbackBackendError is shown when the backend fails without an error text
	fallbackBackendError = "Ocorreu um erro desconhecido."
)

// RecyclingBackend is the remote service that classifies items and lists collection points
type RecyclingBackend interface {
	// Classify asks the backend for the recyclability verdict of an item
	Classify(ctx context.Context, item string) (*model.ClassificationResult, error)

	// FindPoints lists collection points accepting the material near a coordinate
	FindPoints(ctx context.Context, material string, at model.Coordinate) (*model.PointsResult, error)
}

// RecyclingClient talks to the recycling backend over HTTP
type RecyclingClient struct {
	baseURL    string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// Ensure RecyclingClient implements RecyclingBackend
var _ RecyclingBackend = (*RecyclingClient)(nil)

// NewRecyclingClient creates a backend client. A zero timeout leaves calls unbounded.
func NewRecyclingClient(baseURL string, timeout time.Duration, log logrus.FieldLogger) *RecyclingClient {
	return &RecyclingClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Classify performs POST /ask_gemini
func (c *RecyclingClient) Classify(ctx context.Context, item string) (*model.ClassificationResult, error) {
	var result model.ClassificationResult
	status, err := c.postJSON(ctx, classifyPath, model.ClassifyRequest{Item: item}, &result)
	if err != nil {
		return nil, err
	}

	if !isSuccess(status) || result.Error != "" {
		c.log.WithFields(logrus.Fields{
			"endpoint": classifyPath,
			"status":   status,
			"error":    result.Error,
		}).Warn("classification rejected by backend")
		return nil, apperr.Backend(backendMessage(result.Error)).WithOp("classify")
	}

	return &result, nil
}

// FindPoints performs POST /find_recycling_points
func (c *RecyclingClient) FindPoints(ctx context.Context, material string, at model.Coordinate) (*model.PointsResult, error) {
	req := model.PointsRequest{
		Material:  material,
		Latitude:  at.Latitude,
		Longitude: at.Longitude,
	}

	var result model.PointsResult
	status, err := c.postJSON(ctx, pointsPath, req, &result)
	if err != nil {
		return nil, err
	}

	if !isSuccess(status) || result.Error != "" {
		c.log.WithFields(logrus.Fields{
			"endpoint": pointsPath,
			"status":   status,
			"error":    result.Error,
		}).Warn("points query rejected by backend")
		return nil, apperr.Backend(backendMessage(result.Error)).WithOp("find_points")
	}

	return &result, nil
}

// postJSON sends body and decodes the answer into out whatever the status code,
// so the backend's error text survives non-2xx responses.
func (c *RecyclingClient) postJSON(ctx context.Context, path string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("endpoint", path).Error("backend request failed")
		return 0, apperr.Network("request failed", err).WithOp(path)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.WithError(err).WithField("endpoint", path).Error("failed to read backend response")
		return resp.StatusCode, apperr.Network("failed to read response", err).WithOp(path)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"endpoint": path,
			"status":   resp.StatusCode,
		}).Error("failed to decode backend response")
		return resp.StatusCode, apperr.Network("failed to decode response", err).WithOp(path)
	}

	return resp.StatusCode, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func backendMessage(text string) string {
	if strings.TrimSpace(text) == "" {
		return fallbackBackendError
	}
	return text
}
