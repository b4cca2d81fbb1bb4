package service

import (
	"ecoponto/internal/model"
)

// User-facing texts of the lookup flow
const (
	msgEmptyItem          = "Por favor, digite um item."
	msgClassifyNetwork    = "Não foi possível conectar ao servidor. Verifique sua conexão ou tente novamente."
	msgNoItemYet          = "Primeiro, verifique um item para saber o tipo de material!"
	msgEmptyAddress       = "Por favor, digite um endereço para buscar."
	msgAddressNotFound    = "Endereço não encontrado. Tente novamente."
	msgGeocodeFailed      = "Erro ao obter coordenadas do endereço."
	msgNominatimLimitHint = " (Limite de Nominatim atingido?)"
	msgGeoUnsupported     = "Geolocalização não é suportada pelo seu navegador. Por favor, digite um endereço."
	msgGeoFailed          = "Não foi possível obter sua localização atual. Digite um endereço ou verifique as permissões do navegador."
	msgPointsNetwork      = "Não foi possível conectar ao servidor para buscar pontos de coleta."
	msgAssociation        = "Obrigado! A funcionalidade de cadastro de associações está em desenvolvimento. Seus dados não foram enviados. Continue acompanhando!"

	// MapZoom is the zoom level of the map centered on the user
	MapZoom = 12
)

// Presenter shapes backend results into view models
type Presenter struct {
	maps MapsProvider
}

// NewPresenter creates a presenter that builds route links with the given provider
func NewPresenter(maps MapsProvider) *Presenter {
	return &Presenter{maps: maps}
}

// ClassificationMessages returns the fragments in fixed order: recyclability,
// collection location, instructions. Missing fragments are omitted.
func (p *Presenter) ClassificationMessages(r *model.ClassificationResult) []model.Message {
	ordered := []struct {
		kind model.MessageKind
		text string
	}{
		{model.MessageRecyclable, r.Mensagem2},
		{model.MessageCollection, r.Mensagem1},
		{model.MessageInstruction, r.Mensagem3},
	}

	messages := make([]model.Message, 0, len(ordered))
	for _, m := range ordered {
		if m.text == "" {
			continue
		}
		messages = append(messages, model.Message{Kind: m.kind, Text: m.text})
	}
	return messages
}

// NoCooperatives is the notice shown when the gate blocks the location search
func (p *Presenter) NoCooperatives(name string) *model.Message {
	return &model.Message{
		Kind:    model.MessageInfo,
		Text:    "Não temos cooperativas cadastradas que aceitam ",
		Subject: name,
		Tail:    " na nossa base de dados.",
	}
}

// NoPoints is the notice shown for an empty points list
func (p *Presenter) NoPoints(name string) *model.Message {
	return &model.Message{
		Kind:    model.MessageInfo,
		Text:    "Nenhum ponto de coleta encontrado para ",
		Subject: name,
		Tail:    " na sua região em nossa base de dados.",
	}
}

// PointsHeader introduces a non-empty points list
func (p *Presenter) PointsHeader(name string) *model.Message {
	return &model.Message{
		Kind:    model.MessageInfo,
		Text:    "Pontos de coleta próximos que aceitam ",
		Subject: name,
		Tail:    ":",
	}
}

// Points renders one view per collection point, in backend order
func (p *Presenter) Points(origin model.Coordinate, points []model.CollectionPoint) []model.PointView {
	views := make([]model.PointView, 0, len(points))
	for _, pt := range points {
		views = append(views, model.PointView{
			Name:          pt.Nome,
			DistanceLabel: pt.DistanceLabel(),
			Address:       pt.Endereco,
			DirectionsURL: p.maps.DirectionsURL(origin, pt.Coordinate()),
			Location:      pt.Coordinate(),
		})
	}
	return views
}

// Map centers the map region on the user with one marker per point
func (p *Presenter) Map(origin model.Coordinate, points []model.CollectionPoint) *model.MapView {
	markers := make([]model.MapMarker, 0, len(points))
	for _, pt := range points {
		markers = append(markers, model.MapMarker{Title: pt.Nome, Location: pt.Coordinate()})
	}
	return &model.MapView{Center: origin, Zoom: MapZoom, Markers: markers}
}

// GeocodeFailure returns the geocoding error text, with the usage-limit hint for Nominatim
func (p *Presenter) GeocodeFailure() string {
	if p.maps.Name() == ProviderNominatim {
		return msgGeocodeFailed + msgNominatimLimitHint
	}
	return msgGeocodeFailed
}

func errorMessage(text string) *model.Message {
	return &model.Message{Kind: model.MessageError, Text: text}
}
