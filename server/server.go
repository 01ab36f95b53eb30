// Package server exposes solar event queries over HTTP
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/subtlepseudonym/suntimes/solar"
)

// EventsResponse is the body of GET /events. Sunrise and sunset are
// null on polar days and nights.
type EventsResponse struct {
	Date      string     `json:"date"`
	Sunrise   *time.Time `json:"sunrise"`
	Noon      time.Time  `json:"noon"`
	Sunset    *time.Time `json:"sunset"`
	DayLength string     `json:"day_length"`
	Polar     string     `json:"polar,omitempty"`
}

// EventResponse is the body of GET /events/{event}
type EventResponse struct {
	Date  string    `json:"date"`
	Event string    `json:"event"`
	Time  time.Time `json:"time"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server answers event queries for a single observer
type Server struct {
	observer solar.Observer
	logger   zerolog.Logger
	now      func() time.Time
}

func New(observer solar.Observer, logger zerolog.Logger) *Server {
	return &Server{
		observer: observer,
		logger:   logger,
		now:      time.Now,
	}
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.HealthHandler)
	r.Get("/events", s.EventsHandler)
	r.Get("/events/{event}", s.EventHandler)

	return r
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// EventsHandler returns sunrise, noon and sunset for ?date= or today
func (s *Server) EventsHandler(w http.ResponseWriter, r *http.Request) {
	d, err := s.date(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	events, err := s.observer.Events(d)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res := EventsResponse{
		Date:      d.String(),
		Noon:      events.Noon,
		DayLength: events.DayLength().String(),
	}
	if events.Polar == solar.PolarNone {
		res.Sunrise = &events.Sunrise
		res.Sunset = &events.Sunset
	} else {
		res.Polar = events.Polar.String()
	}

	writeJSON(w, http.StatusOK, res)
}

// EventHandler returns a single event for ?date= or today
func (s *Server) EventHandler(w http.ResponseWriter, r *http.Request) {
	event, err := solar.ParseEvent(chi.URLParam(r, "event"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{err.Error()})
		return
	}

	d, err := s.date(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	t, err := s.observer.At(event, d)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, EventResponse{
		Date:  d.String(),
		Event: event.String(),
		Time:  t,
	})
}

func (s *Server) date(r *http.Request) (solar.Date, error) {
	value := r.URL.Query().Get("date")
	if value == "" {
		return solar.DateOf(s.now().In(s.observer.Location())), nil
	}
	return solar.ParseDate(value)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, solar.ErrInvalidDate):
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
	case errors.Is(err, solar.ErrNoEvent):
		writeJSON(w, http.StatusNotFound, errorResponse{err.Error()})
	default:
		s.logger.Error().Err(err).Msg("compute events")
		writeJSON(w, http.StatusInternalServerError, errorResponse{"internal error"})
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
