package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"ecoponto/internal/apperr"
	"ecoponto/internal/model"

	"github.com/sirupsen/logrus"
)

const (
	msgClassifying = "Verificando com o Gemini..."
	msgSearching   = "Buscando pontos de coleta..."
)

// LocateRequest selects how the location search resolves its coordinate
type LocateRequest struct {
	Mode    model.LocateMode
	Address string
	Device  PositionSource // nil means the client cannot report a position
}

// Orchestrator drives the classify -> locate flow for one page session.
// The mutex is never held across a network call; every classification bumps a
// sequence number and responses from an older sequence are dropped.
type Orchestrator struct {
	backend   RecyclingBackend
	maps      MapsProvider
	presenter *Presenter
	position  PositionOptions
	log       logrus.FieldLogger

	mu             sync.Mutex
	seq            uint64
	locateSeq      uint64
	state          model.State
	query          model.QueryState
	classification *model.ClassificationView
	location       *model.LocationView
}

// NewOrchestrator creates an idle orchestrator
func NewOrchestrator(backend RecyclingBackend, maps MapsProvider, position PositionOptions, log logrus.FieldLogger) *Orchestrator {
	return &Orchestrator{
		backend:   backend,
		maps:      maps,
		presenter: NewPresenter(maps),
		position:  position,
		log:       log,
		state:     model.StateIdle,
	}
}

// State returns the current step of the state machine
func (o *Orchestrator) State() model.State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Query returns a copy of the query state
func (o *Orchestrator) Query() model.QueryState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.query
}

// LastClassification returns the classification panel as last rendered, or nil
func (o *Orchestrator) LastClassification() *model.ClassificationView {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.classification
}

// LastLocation returns the location panel as last rendered, or nil
func (o *Orchestrator) LastLocation() *model.LocationView {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.location
}

// Classify submits an item to the classification endpoint and updates the query state.
// The returned view is non-nil unless the response was superseded.
func (o *Orchestrator) Classify(ctx context.Context, input string) (*model.ClassificationView, error) {
	item := strings.TrimSpace(input)

	o.mu.Lock()
	if item == "" {
		view := &model.ClassificationView{
			State:    o.state,
			Messages: []model.Message{*errorMessage(msgEmptyItem)},
		}
		o.classification = view
		o.mu.Unlock()
		return view, apperr.Validation(msgEmptyItem).WithOp("classify")
	}

	o.seq++
	seq := o.seq
	o.query = model.QueryState{Item: item}
	o.state = model.StateClassifying
	o.location = nil
	o.classification = &model.ClassificationView{
		State:         model.StateClassifying,
		Messages:      []model.Message{{Kind: model.MessageLoading, Text: msgClassifying}},
		ResetLocation: true,
	}
	o.mu.Unlock()

	log := o.log.WithFields(logrus.Fields{"item": item, "seq": seq})
	result, err := o.backend.Classify(ctx, item)

	o.mu.Lock()
	defer o.mu.Unlock()

	if seq != o.seq {
		log.Debug("dropping superseded classification response")
		return nil, apperr.ErrSuperseded
	}

	if err != nil {
		log.WithError(err).Warn("classification failed")
		view := &model.ClassificationView{
			State:         model.StateClassificationError,
			Messages:      []model.Message{*errorMessage(classificationFailure(err))},
			ResetLocation: true,
		}
		o.state = view.State
		o.classification = view
		return view, err
	}

	o.query.Material = result.MaterialOr(item)
	o.query.LocalsAvailable = result.HasLocals()

	state := model.StateClassifiedNoLocals
	if o.query.LocalsAvailable {
		state = model.StateClassifiedLocals
	}

	view := &model.ClassificationView{
		State:         state,
		Messages:      o.presenter.ClassificationMessages(result),
		ResetLocation: true,
	}
	o.state = state
	o.classification = view

	log.WithFields(logrus.Fields{
		"material":         o.query.Material,
		"locals_available": o.query.LocalsAvailable,
	}).Info("item classified")

	return view, nil
}

// SearchLocation resolves a coordinate and lists nearby collection points for the
// current material. Without available locals it returns an informational notice
// and makes no network call.
func (o *Orchestrator) SearchLocation(ctx context.Context, req LocateRequest) (*model.LocationView, error) {
	o.mu.Lock()
	query := o.query
	current := o.state
	seq := o.seq
	o.locateSeq++
	locateSeq := o.locateSeq
	o.mu.Unlock()

	if query.Item == "" && query.Material == "" {
		view := &model.LocationView{State: current, Notice: errorMessage(msgNoItemYet)}
		return o.finishLocation(seq, locateSeq, view, apperr.Validation(msgNoItemYet).WithOp("locate"))
	}

	if !query.LocalsAvailable {
		view := &model.LocationView{State: current, Notice: o.presenter.NoCooperatives(query.ItemOrMaterial())}
		return o.finishLocation(seq, locateSeq, view, nil)
	}

	if !o.begin(seq, locateSeq) {
		return nil, apperr.ErrSuperseded
	}

	log := o.log.WithFields(logrus.Fields{"material": query.Material, "mode": req.Mode, "seq": seq})

	origin, text, err := o.resolve(ctx, req)
	if err != nil {
		log.WithError(err).Warn("location resolution failed")
		view := &model.LocationView{State: model.StateLocationError, Notice: errorMessage(text)}
		return o.finishLocation(seq, locateSeq, view, err)
	}

	result, err := o.backend.FindPoints(ctx, query.Material, origin)
	if err != nil {
		log.WithError(err).Warn("points query failed")
		view := &model.LocationView{State: model.StatePointsError, Notice: errorMessage(pointsFailure(err))}
		return o.finishLocation(seq, locateSeq, view, err)
	}

	name := query.Subject()
	if len(result.Pontos) == 0 {
		view := &model.LocationView{State: model.StatePointsEmpty, Notice: o.presenter.NoPoints(name)}
		return o.finishLocation(seq, locateSeq, view, nil)
	}

	log.WithField("points", len(result.Pontos)).Info("collection points found")

	view := &model.LocationView{
		State:  model.StatePointsFound,
		Header: o.presenter.PointsHeader(name),
		Points: o.presenter.Points(origin, result.Pontos),
		Map:    o.presenter.Map(origin, result.Pontos),
	}
	return o.finishLocation(seq, locateSeq, view, nil)
}

// begin moves to the locating state unless a newer query or search started
func (o *Orchestrator) begin(seq, locateSeq uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if seq != o.seq || locateSeq != o.locateSeq {
		return false
	}
	o.state = model.StateLocating
	o.location = &model.LocationView{
		State:  model.StateLocating,
		Notice: &model.Message{Kind: model.MessageLoading, Text: msgSearching},
	}
	return true
}

// finishLocation applies a location outcome if it still belongs to the latest search
func (o *Orchestrator) finishLocation(seq, locateSeq uint64, view *model.LocationView, err error) (*model.LocationView, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if seq != o.seq || locateSeq != o.locateSeq {
		return nil, apperr.ErrSuperseded
	}
	o.state = view.State
	o.location = view
	return view, err
}

// resolve returns the search origin, or the user-facing text and error on failure
func (o *Orchestrator) resolve(ctx context.Context, req LocateRequest) (model.Coordinate, string, error) {
	if req.Mode == model.ModeAddress {
		address := strings.TrimSpace(req.Address)
		if address == "" {
			return model.Coordinate{}, msgEmptyAddress, apperr.Validation(msgEmptyAddress).WithOp("geocode")
		}

		coord, err := o.maps.Geocode(ctx, address)
		switch {
		case errors.Is(err, ErrAddressNotFound):
			return model.Coordinate{}, msgAddressNotFound, apperr.NotFound(msgAddressNotFound).WithOp("geocode")
		case err != nil:
			text := o.presenter.GeocodeFailure()
			return model.Coordinate{}, text, apperr.Network(text, err).WithOp("geocode")
		}
		return coord, "", nil
	}

	coord, err := currentPosition(ctx, req.Device, o.position)
	switch {
	case errors.Is(err, ErrPositionUnsupported):
		return model.Coordinate{}, msgGeoUnsupported, apperr.Network(msgGeoUnsupported, err).WithOp("geolocation")
	case err != nil:
		return model.Coordinate{}, msgGeoFailed, apperr.Network(msgGeoFailed, err).WithOp("geolocation")
	}
	return coord, "", nil
}

// SubmitAssociation accepts and discards an association sign-up
func (o *Orchestrator) SubmitAssociation() model.AssociationNotice {
	o.log.Info("association sign-up discarded")
	return AssociationPlaceholder()
}

// AssociationPlaceholder is the notice shown for any association sign-up.
// Pages show it locally, the form data never leaves the client.
func AssociationPlaceholder() model.AssociationNotice {
	return model.AssociationNotice{Message: msgAssociation, ResetForm: true}
}

func classificationFailure(err error) string {
	if text, ok := backendText(err); ok {
		return "Erro: " + text
	}
	return msgClassifyNetwork
}

func pointsFailure(err error) string {
	if text, ok := backendText(err); ok {
		return "Erro ao buscar pontos: " + text
	}
	return msgPointsNetwork
}

func backendText(err error) (string, bool) {
	var e *apperr.Error
	if errors.As(err, &e) && e.Kind == apperr.KindBackend {
		return e.Message, true
	}
	return "", false
}
