// Package http exposes the troubleshooting engine as a REST API:
// step graph administration, validation, tree rendering, guide lookup
// and the interactive walkthrough sessions.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/KelvinH2322/coffeehelper"
	"github.com/KelvinH2322/coffeehelper/internal/logging"
	"github.com/KelvinH2322/coffeehelper/internal/validator"
	"github.com/KelvinH2322/coffeehelper/pkg/assist"
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
	"github.com/KelvinH2322/coffeehelper/pkg/guides"
	"github.com/KelvinH2322/coffeehelper/pkg/ports"
	"github.com/KelvinH2322/coffeehelper/pkg/session"
	"github.com/KelvinH2322/coffeehelper/pkg/smartplug"
	"github.com/KelvinH2322/coffeehelper/pkg/tree"
)

// Server wires the engine's ports into HTTP handlers.
type Server struct {
	steps    ports.StepStore
	catalog  ports.GuideCatalog
	machines ports.MachineRegistry
	sessions *session.Manager

	assistant *assist.Assistant
	plugs     smartplug.Client

	logger  *slog.Logger
	metrics *metrics
}

// Option configures a Server.
type Option func(*Server)

// WithMachines enables the machine registry endpoints and machine_id
// resolution on session start.
func WithMachines(registry ports.MachineRegistry) Option {
	return func(s *Server) { s.machines = registry }
}

// WithAssistant enables POST /assist.
func WithAssistant(a *assist.Assistant) Option {
	return func(s *Server) { s.assistant = a }
}

// WithSmartPlugs enables the smart plug endpoints.
func WithSmartPlugs(c smartplug.Client) Option {
	return func(s *Server) { s.plugs = c }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer builds a Server over the given ports.
func NewServer(steps ports.StepStore, catalog ports.GuideCatalog, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		steps:    steps,
		catalog:  catalog,
		sessions: sessions,
		logger:   logging.NewNop(),
		metrics:  newMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the chi router for the full API surface.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.metrics.instrument)

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/steps", func(r chi.Router) {
		r.Get("/", s.listSteps)
		r.Get("/{id}", s.getStep)
		r.Put("/{id}", s.putStep)
		r.Delete("/{id}", s.deleteStep)
	})

	r.Get("/validate", s.getValidate)
	r.Get("/tree", s.getTree)

	r.Route("/guides", func(r chi.Router) {
		r.Get("/", s.listGuides)
		r.Get("/{id}", s.getGuide)
		r.Get("/{id}/resolve", s.resolveGuide)
	})

	if s.machines != nil {
		r.Get("/machines", s.listMachines)
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.startSession)
		r.Get("/{id}", s.getSession)
		r.Post("/{id}/answer", s.answerSession)
		r.Post("/{id}/back", s.backSession)
		r.Post("/{id}/restart", s.restartSession)
		r.Delete("/{id}", s.deleteSession)
	})

	if s.assistant != nil {
		r.Post("/assist", s.postAssist)
	}
	if s.plugs != nil {
		r.Get("/plugs/{deviceID}", s.getPlugStatus)
		r.Post("/plugs/{deviceID}/power", s.setPlugPower)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// -- wire types --

// stepPayload is the wire form of the Step union, discriminated by kind.
type stepPayload struct {
	Kind domain.StepKind `json:"kind"`
	ID   string          `json:"id"`

	// Question fields.
	Text    string          `json:"text,omitempty"`
	Options []domain.Option `json:"options,omitempty"`

	// Solution fields.
	Title            string `json:"title,omitempty"`
	Description      string `json:"description,omitempty"`
	GuideID          string `json:"guide_id,omitempty"`
	ProfessionalHelp bool   `json:"professional_help,omitempty"`
}

func payloadFromStep(step domain.Step) stepPayload {
	switch st := step.(type) {
	case domain.Question:
		return stepPayload{Kind: domain.KindQuestion, ID: st.ID, Text: st.Text, Options: st.Options}
	case domain.Solution:
		return stepPayload{
			Kind:             domain.KindSolution,
			ID:               st.ID,
			Title:            st.Title,
			Description:      st.Description,
			GuideID:          st.GuideID,
			ProfessionalHelp: st.ProfessionalHelp,
		}
	}
	return stepPayload{}
}

func (p stepPayload) toStep() (domain.Step, error) {
	switch p.Kind {
	case domain.KindQuestion:
		return domain.Question{ID: p.ID, Text: p.Text, Options: p.Options}, nil
	case domain.KindSolution:
		return domain.Solution{
			ID:               p.ID,
			Title:            p.Title,
			Description:      p.Description,
			GuideID:          p.GuideID,
			ProfessionalHelp: p.ProfessionalHelp,
		}, nil
	}
	return nil, fmt.Errorf("unknown step kind %q", p.Kind)
}

// sessionView is the wire form of a walkthrough session.
type sessionView struct {
	SessionID string          `json:"session_id"`
	Current   *stepPayload    `json:"current,omitempty"`
	CurrentID string          `json:"current_id"`
	History   []string        `json:"history,omitempty"`
	Machine   *domain.Machine `json:"machine,omitempty"`
	CanGoBack bool            `json:"can_go_back"`
}

func (s *Server) viewOf(sessionID string, state *domain.State) sessionView {
	view := sessionView{
		SessionID: sessionID,
		CurrentID: state.Current,
		History:   state.History,
		Machine:   state.Machine,
		CanGoBack: len(state.History) > 0,
	}
	if step, err := s.steps.Get(state.Current); err == nil {
		p := payloadFromStep(step)
		view.Current = &p
	}
	return view
}

// -- handlers --

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "coffeehelper-http",
		"version": strings.TrimSpace(coffeehelper.Version),
	})
}

func (s *Server) listSteps(w http.ResponseWriter, r *http.Request) {
	steps := s.steps.ListAll()
	payloads := make([]stepPayload, 0, len(steps))
	for _, step := range steps {
		payloads = append(payloads, payloadFromStep(step))
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"entry_point": s.steps.EntryPointID(),
		"steps":       payloads,
	})
}

func (s *Server) getStep(w http.ResponseWriter, r *http.Request) {
	step, err := s.steps.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeJSON(w, http.StatusOK, payloadFromStep(step))
}

func (s *Server) putStep(w http.ResponseWriter, r *http.Request) {
	var payload stepPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	payload.ID = chi.URLParam(r, "id")

	step, err := payload.toStep()
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.steps.Upsert(step); err != nil {
		var immutable *domain.ImmutableFieldError
		if errors.As(err, &immutable) {
			s.writeError(w, http.StatusConflict, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("step upserted", "step_id", step.StepID(), "kind", step.Kind())
	s.writeJSON(w, http.StatusOK, payloadFromStep(step))
}

func (s *Server) deleteStep(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.steps.Delete(id); err != nil {
		var dependency *domain.DependencyError
		var entryPoint *domain.EntryPointError
		switch {
		case errors.Is(err, domain.ErrStepNotFound):
			s.writeError(w, http.StatusNotFound, err)
		case errors.As(err, &dependency), errors.As(err, &entryPoint):
			s.writeError(w, http.StatusConflict, err)
		default:
			s.writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	s.logger.Info("step deleted", "step_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getValidate(w http.ResponseWriter, r *http.Request) {
	report := validator.Validate(s.steps, s.catalog)
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) getTree(w http.ResponseWriter, r *http.Request) {
	rootID := r.URL.Query().Get("root")
	if rootID == "" {
		rootID = s.steps.EntryPointID()
	}
	machine := s.machineFromQuery(r)
	s.writeJSON(w, http.StatusOK, tree.Render(s.steps, s.catalog, rootID, machine))
}

func (s *Server) machineFromQuery(r *http.Request) *domain.Machine {
	brand := r.URL.Query().Get("brand")
	model := r.URL.Query().Get("model")
	if brand == "" && model == "" {
		return nil
	}
	return &domain.Machine{Brand: brand, Model: model}
}

func (s *Server) listGuides(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.GuideFilter{
		Category: domain.GuideCategory(q.Get("category")),
		Brand:    q.Get("brand"),
		Model:    q.Get("model"),
	}
	s.writeJSON(w, http.StatusOK, s.catalog.List(filter))
}

func (s *Server) getGuide(w http.ResponseWriter, r *http.Request) {
	guide, err := s.catalog.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeJSON(w, http.StatusOK, guide)
}

func (s *Server) resolveGuide(w http.ResponseWriter, r *http.Request) {
	guide, ok := guides.Resolve(s.catalog, chi.URLParam(r, "id"), s.machineFromQuery(r))
	if !ok {
		s.writeError(w, http.StatusNotFound, domain.ErrGuideNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, guide)
}

func (s *Server) listMachines(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.machines.Machines())
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		MachineID string `json:"machine_id"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		}
	}

	var machine *domain.Machine
	if body.MachineID != "" {
		if s.machines == nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("machine selection is not available"))
			return
		}
		m, ok := s.machines.Machine(body.MachineID)
		if !ok {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown machine %q", body.MachineID))
			return
		}
		machine = &m
	}

	sessionID, state, err := s.sessions.Start(r.Context(), machine)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.metrics.sessions.Inc()
	s.logger.Info("session started", "session_id", sessionID)
	s.writeJSON(w, http.StatusCreated, s.viewOf(sessionID, state))
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	state, err := s.sessions.Load(r.Context(), sessionID)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.viewOf(sessionID, state))
}

func (s *Server) answerSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Option int `json:"option"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	s.updateSession(w, r, func(sess *session.Session) { sess.Answer(body.Option) })
}

func (s *Server) backSession(w http.ResponseWriter, r *http.Request) {
	s.updateSession(w, r, func(sess *session.Session) { sess.Back() })
}

func (s *Server) restartSession(w http.ResponseWriter, r *http.Request) {
	s.updateSession(w, r, func(sess *session.Session) { sess.Restart() })
}

func (s *Server) updateSession(w http.ResponseWriter, r *http.Request, fn func(*session.Session)) {
	sessionID := chi.URLParam(r, "id")
	state, err := s.sessions.Update(r.Context(), sessionID, fn)
	if err != nil {
		s.writeSessionError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.viewOf(sessionID, state))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) postAssist(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message   string        `json:"message"`
		ImageURI  string        `json:"image_uri,omitempty"`
		History   []assist.Turn `json:"history,omitempty"`
		MachineID string        `json:"machine_id,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	var machine *domain.Machine
	if body.MachineID != "" && s.machines != nil {
		if m, ok := s.machines.Machine(body.MachineID); ok {
			machine = &m
		}
	}

	resp, err := s.assistant.Troubleshoot(r.Context(), assist.Request{
		Message:  body.Message,
		ImageURI: body.ImageURI,
		History:  body.History,
		Machine:  machine,
	})
	if err != nil {
		s.logger.Error("assist failed", "err", err)
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"response":            resp.Text,
		"suggested_guide_ids": resp.SuggestedGuideIDs,
	})
}

func (s *Server) getPlugStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.plugs.Status(r.Context(), chi.URLParam(r, "deviceID"))
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"is_on":           status.IsOn,
		"on_time_seconds": status.OnTimeSeconds,
		"on_time":         smartplug.FormatOnTime(status.OnTime()),
	})
}

func (s *Server) setPlugPower(w http.ResponseWriter, r *http.Request) {
	var body struct {
		On bool `json:"on"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := s.plugs.SetPower(r.Context(), chi.URLParam(r, "deviceID"), body.On); err != nil {
		s.writeError(w, http.StatusBadGateway, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- helpers --

func (s *Server) writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.writeError(w, http.StatusInternalServerError, err)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
