// Package view renders lookup view models as auto-escaped HTML fragments and
// as plain text for the terminal client.
package view

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"ecoponto/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData feeds the index page
type PageData struct {
	Provider       string
	Query          model.QueryState
	Classification *model.ClassificationView
	Location       *model.LocationView
	Association    model.AssociationNotice
	Geolocation    GeolocationOptions
}

// GeolocationOptions are passed to the browser's position request
type GeolocationOptions struct {
	HighAccuracy bool
	TimeoutMS    int64
	MaximumAgeMS int64
}

var messageClasses = map[model.MessageKind]string{
	model.MessageRecyclable:  "result-box-reciclavel",
	model.MessageCollection:  "result-box-coleta",
	model.MessageInstruction: "result-box-instrucao",
	model.MessageInfo:        "result-box info",
	model.MessageError:       "result-box error",
	model.MessageLoading:     "result-box loading",
}

// Renderer holds the parsed templates
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates
func New() (*Renderer, error) {
	tmpl, err := template.New("view").Funcs(template.FuncMap{
		"messageClass": messageClass,
		"toJSON":       toJSON,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Template exposes the template set, e.g. for gin's HTML renderer
func (r *Renderer) Template() *template.Template {
	return r.tmpl
}

// Page writes the full index page
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", data)
}

// Classification renders the classification panel content
func (r *Renderer) Classification(v *model.ClassificationView) (string, error) {
	return r.fragment("classification", v)
}

// Location renders the location panel content
func (r *Renderer) Location(v *model.LocationView) (string, error) {
	return r.fragment("location", v)
}

func (r *Renderer) fragment(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func messageClass(kind model.MessageKind) string {
	if class, ok := messageClasses[kind]; ok {
		return class
	}
	return "result-box"
}

func toJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
