package model

// StatusHasLocal is the classification status that enables the location search
const StatusHasLocal = "tem_local"

// ClassificationResult is the body returned by POST /ask_gemini
type ClassificationResult struct {
	Status    string     `json:"status"`
	Mensagem1 string     `json:"mensagem1,omitempty"` // collection-location message
	Mensagem2 string     `json:"mensagem2,omitempty"` // recyclability message
	Mensagem3 string     `json:"mensagem3,omitempty"` // preparation instructions
	GeminiRaw *GeminiRaw `json:"gemini_raw,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// GeminiRaw carries the raw verdict the backend got from its model
type GeminiRaw struct {
	Material   string `json:"material"`
	Reciclavel any    `json:"reciclavel,omitempty"` // bool or "desconhecido"
	Instrucao  string `json:"instrucao,omitempty"`
}

// MaterialOr returns the classified material, falling back to the given item
func (r *ClassificationResult) MaterialOr(item string) string {
	if r.GeminiRaw != nil && r.GeminiRaw.Material != "" {
		return r.GeminiRaw.Material
	}
	return item
}

// HasLocals reports whether the backend knows collection points for the material
func (r *ClassificationResult) HasLocals() bool {
	return r.Status == StatusHasLocal
}

// QueryState is the page-lifetime state shared by the two lookup steps
type QueryState struct {
	Item            string `json:"item"`
	Material        string `json:"material"`
	LocalsAvailable bool   `json:"locals_available"`
}

// Subject returns the name shown in messages: the material if known, else the item
func (s QueryState) Subject() string {
	if s.Material != "" {
		return s.Material
	}
	return s.Item
}

// ItemOrMaterial prefers the item text, used by the "no cooperatives" notice
func (s QueryState) ItemOrMaterial() string {
	if s.Item != "" {
		return s.Item
	}
	return s.Material
}

// State is a step of the per-query state machine
type State string

const (
	StateIdle                State = "idle"
	StateClassifying         State = "classifying"
	StateClassifiedLocals    State = "classified_with_locals"
	StateClassifiedNoLocals  State = "classified_no_locals"
	StateClassificationError State = "classification_error"
	StateLocating            State = "locating"
	StatePointsFound         State = "points_found"
	StatePointsEmpty         State = "points_empty"
	StateLocationError       State = "location_error"
	StatePointsError         State = "points_error"
)
