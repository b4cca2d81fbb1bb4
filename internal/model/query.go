package model

// ClassifyRequest is the body sent to POST /ask_gemini
type ClassifyRequest struct {
	Item string `json:"item"`
}

// PointsRequest is the body sent to POST /find_recycling_points
type PointsRequest struct {
	Material  string  `json:"material"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocateMode selects where the search coordinate comes from
type LocateMode string

const (
	ModeAddress LocateMode = "address"
	ModeDevice  LocateMode = "device"
)

// ClassifyAPIRequest is the page's classify action
type ClassifyAPIRequest struct {
	Item string `json:"item"`
}

// LocateAPIRequest is the page's location search action.
// In device mode the page reports either a position or why it has none.
type LocateAPIRequest struct {
	Mode             LocateMode `json:"mode" binding:"required,oneof=address device"`
	Address          string     `json:"address,omitempty"`
	Latitude         *float64   `json:"latitude,omitempty" binding:"omitempty,latitude"`
	Longitude        *float64   `json:"longitude,omitempty" binding:"omitempty,longitude"`
	GeolocationError string     `json:"geolocation_error,omitempty" binding:"omitempty,oneof=unsupported denied timeout unavailable"`
}

// ClassifyAPIResponse is returned by POST /api/v1/classify
type ClassifyAPIResponse struct {
	*ClassificationView
	HTML string `json:"html"`
}

// LocateAPIResponse is returned by POST /api/v1/locate
type LocateAPIResponse struct {
	*LocationView
	HTML string `json:"html"`
}
