package model

// MessageKind styles a message panel
type MessageKind string

const (
	MessageRecyclable  MessageKind = "recyclable"
	MessageCollection  MessageKind = "collection"
	MessageInstruction MessageKind = "instruction"
	MessageInfo        MessageKind = "info"
	MessageError       MessageKind = "error"
	MessageLoading     MessageKind = "loading"
)

// Message is one rendered panel. Subject, when set, is highlighted between Text and Tail.
type Message struct {
	Kind    MessageKind `json:"kind"`
	Text    string      `json:"text"`
	Subject string      `json:"subject,omitempty"`
	Tail    string      `json:"tail,omitempty"`
}

// String returns the message as plain text
func (m Message) String() string {
	return m.Text + m.Subject + m.Tail
}

// ClassificationView is what the classification panel shows
type ClassificationView struct {
	State         State     `json:"state"`
	Messages      []Message `json:"messages"`
	ResetLocation bool      `json:"reset_location"`
}

// PointView is one rendered collection point
type PointView struct {
	Name          string     `json:"name"`
	DistanceLabel string     `json:"distance_label,omitempty"`
	Address       string     `json:"address"`
	DirectionsURL string     `json:"directions_url"`
	Location      Coordinate `json:"location"`
}

// Title returns the list item heading, e.g. "Coop A (0.5 km)"
func (p PointView) Title() string {
	return p.Name + p.DistanceLabel
}

// MapMarker is a labelled map pin
type MapMarker struct {
	Title    string     `json:"title"`
	Location Coordinate `json:"location"`
}

// MapView is the map-display region centered on the user
type MapView struct {
	Center  Coordinate  `json:"center"`
	Zoom    int         `json:"zoom"`
	Markers []MapMarker `json:"markers"`
}

// LocationView is what the location panel shows
type LocationView struct {
	State  State       `json:"state"`
	Notice *Message    `json:"notice,omitempty"`
	Header *Message    `json:"header,omitempty"`
	Points []PointView `json:"points,omitempty"`
	Map    *MapView    `json:"map,omitempty"`
}

// AssociationNotice answers the association sign-up placeholder
type AssociationNotice struct {
	Message   string `json:"message"`
	ResetForm bool   `json:"reset_form"`
}
