package httpserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appmentor "github.com/codementorhq/code-mentor/internal/application/mentor"
	domai "github.com/codementorhq/code-mentor/internal/domain/ai"
	mw "github.com/codementorhq/code-mentor/internal/middleware"
)

type Router struct {
	mentorSvc *appmentor.Service
}

// NewRouter wires the mentor endpoints. The session id travels in the
// X-Session-ID header (generated server-side on first contact); the browser
// client is on another origin, so CORS is part of the surface.
func NewRouter(svc *appmentor.Service, providerName string, allowedOrigins []string) http.Handler {
	r := &Router{mentorSvc: svc}
	mux := chi.NewRouter()

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", mw.SessionHeader},
		ExposedHeaders:   []string{mw.SessionHeader},
		AllowCredentials: false,
	}))
	mux.Use(mw.Session)
	mux.Use(mw.Logging)
	mux.Use(mw.CountRequests)

	mux.Get("/health", mw.HealthHandler(providerName, svc.Configured()))
	mux.Get("/metrics", mw.MetricsHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Post("/chat", r.wrap(r.handleChat))
		rt.Get("/conversation", r.wrap(r.handleConversation))
		rt.Post("/conversation/reset", r.wrap(r.handleReset))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (rt *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			writeError(w, err)
		}
	}
}

// inputError marks a validation failure so it maps to 400 instead of 500.
type inputError struct{ err error }

func (e inputError) Error() string { return e.err.Error() }

// writeError maps the error taxonomy onto HTTP statuses. Responses carry a
// short human-readable message; the full chain goes to the log only.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	var in inputError
	switch {
	case errors.As(err, &in), errors.Is(err, appmentor.ErrInputEmpty):
		status = http.StatusBadRequest
		msg = err.Error()
	default:
		switch domai.KindOf(err) {
		case domai.KindConfigurationMissing:
			status = http.StatusServiceUnavailable
			msg = errMessage(err)
		case domai.KindUnauthorized, domai.KindNotFound, domai.KindMalformedUpstream:
			status = http.StatusBadGateway
			msg = errMessage(err)
			mw.IncrementUpstreamErrors()
		case domai.KindRateLimited:
			status = http.StatusTooManyRequests
			msg = "the AI provider is busy or unreachable; try again in a moment"
			mw.IncrementUpstreamErrors()
		}
		log.Printf("request failed: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// errMessage surfaces the classified message without the wrapped cause.
func errMessage(err error) string {
	var ae *domai.Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}

// POST /v1/analyze
// Body: {"code": "<snippet>"}
func (rt *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return inputError{err}
	}
	if err := mw.ValidateSnippet(body.Code); err != nil {
		return inputError{err}
	}

	a, err := rt.mentorSvc.RequestFullAnalysis(req.Context(), mw.SessionID(req.Context()), body.Code)
	if err != nil {
		return err
	}
	mw.IncrementAnalyses()

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(a)
}

// POST /v1/chat
// Body: {"message": "<question>"}
func (rt *Router) handleChat(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return inputError{err}
	}
	if err := mw.ValidateMessage(body.Message); err != nil {
		return inputError{err}
	}

	reply, err := rt.mentorSvc.SendChatMessage(req.Context(), mw.SessionID(req.Context()), body.Message)
	if err != nil {
		return err
	}
	mw.IncrementChatTurns()

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]string{"reply": reply})
}

// GET /v1/conversation
func (rt *Router) handleConversation(w http.ResponseWriter, req *http.Request) error {
	turns := rt.mentorSvc.Conversation(mw.SessionID(req.Context()))
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(turns)
}

// POST /v1/conversation/reset
func (rt *Router) handleReset(w http.ResponseWriter, req *http.Request) error {
	rt.mentorSvc.ResetConversation(mw.SessionID(req.Context()))
	w.WriteHeader(http.StatusNoContent)
	return nil
}
