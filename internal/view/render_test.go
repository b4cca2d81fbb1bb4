package view

import (
	"bytes"
	"strings"
	"testing"

	"ecoponto/internal/model"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func TestClassification_OrderAndEscaping(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Classification(&model.ClassificationView{
		State: model.StateClassifiedLocals,
		Messages: []model.Message{
			{Kind: model.MessageRecyclable, Text: "Esse material é reciclável."},
			{Kind: model.MessageCollection, Text: "Há cooperativas que recolhem <script>alert(1)</script>"},
			{Kind: model.MessageInstruction, Text: "Lave e seque bem."},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	recyclable := strings.Index(html, "result-box-reciclavel")
	collection := strings.Index(html, "result-box-coleta")
	instruction := strings.Index(html, "result-box-instrucao")
	if recyclable < 0 || !(recyclable < collection && collection < instruction) {
		t.Errorf("fragments out of order: %s", html)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("backend text must be escaped: %s", html)
	}
}

func TestLocation_PointsList(t *testing.T) {
	r := newRenderer(t)

	points := []model.PointView{
		{Name: "Coop A", DistanceLabel: " (0.5 km)", Address: "Rua X", DirectionsURL: "https://www.openstreetmap.org/directions?engine=osrm_car&route=-23.5%2C-46.6%3B1%2C2"},
		{Name: "Coop B", Address: "Rua Y", DirectionsURL: "https://www.openstreetmap.org/directions?engine=osrm_car&route=-23.5%2C-46.6%3B3%2C4"},
	}
	html, err := r.Location(&model.LocationView{
		State:  model.StatePointsFound,
		Header: &model.Message{Kind: model.MessageInfo, Text: "Pontos de coleta próximos que aceitam ", Subject: "plástico", Tail: ":"},
		Points: points,
		Map:    &model.MapView{Center: model.Coordinate{Latitude: -23.5, Longitude: -46.6}, Zoom: 12},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.Count(html, "<li>"); got != len(points) {
		t.Errorf("rendered %d list items, want %d", got, len(points))
	}
	for _, want := range []string{
		"<span>Coop A (0.5 km)</span>",
		"<span>Coop B</span>",
		"route=-23.5%2C-46.6%3B1%2C2",
		`<span class="material-info">plástico</span>`,
		`id="map"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q in %s", want, html)
		}
	}
}

func TestLocation_EmptyNotice(t *testing.T) {
	r := newRenderer(t)

	html, err := r.Location(&model.LocationView{
		State:  model.StatePointsEmpty,
		Notice: &model.Message{Kind: model.MessageInfo, Text: "Nenhum ponto de coleta encontrado para ", Subject: "vidro", Tail: " na sua região em nossa base de dados."},
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<ul") {
		t.Errorf("empty result must not render a list: %s", html)
	}
	if !strings.Contains(html, `class="result-box info"`) || !strings.Contains(html, "Nenhum ponto de coleta") {
		t.Errorf("unexpected notice: %s", html)
	}
}

func TestPage(t *testing.T) {
	r := newRenderer(t)

	var buf bytes.Buffer
	err := r.Page(&buf, PageData{
		Provider: "nominatim",
		Query:    model.QueryState{Item: "Garrafa PET"},
		Classification: &model.ClassificationView{Messages: []model.Message{
			{Kind: model.MessageError, Text: "Por favor, digite um item."},
		}},
		Association: model.AssociationNotice{Message: "Cadastro em desenvolvimento.", ResetForm: true},
		Geolocation: GeolocationOptions{HighAccuracy: true, TimeoutMS: 5000, MaximumAgeMS: 0},
	})
	if err != nil {
		t.Fatal(err)
	}

	html := buf.String()
	for _, id := range []string{`id="itemInput"`, `id="locationInput"`, `id="geminiResult"`, `id="locationResult"`, `id="associationForm"`} {
		if !strings.Contains(html, id) {
			t.Errorf("page lacks %s", id)
		}
	}
	if !strings.Contains(html, `value="Garrafa PET"`) || !strings.Contains(html, "Por favor, digite um item.") {
		t.Error("page should restore the session panels")
	}
	for _, attr := range []string{
		`data-high-accuracy="true"`,
		`data-timeout="5000"`,
		`data-maximum-age="0"`,
		`data-notice="Cadastro em desenvolvimento."`,
		`data-reset="true"`,
	} {
		if !strings.Contains(html, attr) {
			t.Errorf("page lacks %s", attr)
		}
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	_ = WriteClassificationText(&buf, &model.ClassificationView{Messages: []model.Message{{Kind: model.MessageRecyclable, Text: "Sim, reciclável"}}})
	_ = WriteLocationText(&buf, &model.LocationView{
		Header: &model.Message{Text: "Pontos de coleta próximos que aceitam ", Subject: "plástico", Tail: ":"},
		Points: []model.PointView{{Name: "Coop A", DistanceLabel: " (0.5 km)", Address: "Rua X", DirectionsURL: "https://example.org/r"}},
	})

	out := buf.String()
	for _, want := range []string{"Sim, reciclável", "aceitam plástico:", "1. Coop A (0.5 km)", "Rua X"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}
