package app

import (
	"encoding/json"
	"io/fs"
	"log"
	"net/http"
	"time"
)

// Server wires the HTTP handlers to their collaborators. The store and
// secret gate are injected; handlers share no global state.
type Server struct {
	cfg   *Config
	grid  Grid
	store EventStore
	gate  *SecretGate
	mux   *http.ServeMux

	static fs.FS
	index  []byte

	// now is swapped in tests to pin derived values.
	now func() time.Time
}

// NewServer constructs the server and registers its routes.
func NewServer(cfg *Config, store EventStore, gate *SecretGate, static fs.FS, index []byte) *Server {
	s := &Server{
		cfg:    cfg,
		grid:   NewGrid(cfg.Year, cfg.Columns),
		store:  store,
		gate:   gate,
		mux:    http.NewServeMux(),
		static: static,
		index:  index,
		now:    time.Now,
	}
	s.routes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.ServeIndex)
	s.mux.HandleFunc("/api/init", s.HandleInit)
	s.mux.HandleFunc("/api/events", s.HandleEvents)
	s.mux.HandleFunc("/api/events/add", s.gate.RequireSecret(s.HandleAddEvent))
	s.mux.HandleFunc("/api/grid", s.HandleGrid)
	s.mux.HandleFunc("/api/download", s.HandleDownload)
	s.mux.HandleFunc("/api/subscribe", s.HandleSubscribe)
	if s.static != nil {
		s.mux.Handle("/static/", http.FileServer(http.FS(s.static)))
	}
}

// ServeIndex serves the grid UI HTML
func (s *Server) ServeIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(s.index); err != nil {
		log.Printf("Error writing index HTML: %v", err)
	}
}

// HandleInit idempotently ensures the events table exists
func (s *Server) HandleInit(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if err := s.store.Init(r.Context()); err != nil {
		log.Printf("Error initializing table: %v", err)
		writeError(w, http.StatusInternalServerError, ErrFailedToInit)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": MsgTableInitialized})
}

// HandleEvents returns all events ordered ascending by date
func (s *Server) HandleEvents(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	events, err := s.store.List(r.Context())
	if err != nil {
		log.Printf("Error listing events: %v", err)
		writeError(w, http.StatusInternalServerError, ErrFailedToFetch)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// HandleAddEvent inserts one event with caller-supplied fields. The
// shared secret has already been checked by RequireSecret; beyond the
// date format nothing is validated, matching the list/add contract.
func (s *Server) HandleAddEvent(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var event Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := time.Parse(DateLayout, event.Date); err != nil {
		http.Error(w, ErrInvalidDateFormat, http.StatusBadRequest)
		return
	}

	if err := s.store.Add(r.Context(), event); err != nil {
		log.Printf("Error adding event: %v", err)
		writeError(w, http.StatusInternalServerError, ErrFailedToAdd)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": MsgEventAdded})
}

// HandleGrid returns the view model for the browser grid: day cells with
// event markers, the countdown and the upcoming events, all derived fresh
// per request.
func (s *Server) HandleGrid(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	events, err := s.store.List(r.Context())
	if err != nil {
		log.Printf("Error listing events: %v", err)
		writeError(w, http.StatusInternalServerError, ErrFailedToFetch)
		return
	}

	now := s.now()
	view := GridView{
		Year:         s.grid.Start.Year(),
		Columns:      s.grid.Columns,
		TotalDays:    s.grid.Days,
		StartDate:    s.grid.Start.Format(DateLayout),
		DaysLeft:     DaysLeft(s.grid.End(), now),
		Now:          FormatNow(now),
		Cells:        s.grid.Cells(events),
		Upcoming:     UpcomingEvents(events, now, UpcomingCount),
		ClientSecret: s.cfg.ClientSecret,
	}

	writeJSON(w, http.StatusOK, view)
}

// HandleDownload exports all events in ICS, CSV or JSON format
func (s *Server) HandleDownload(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	events, err := s.store.List(r.Context())
	if err != nil {
		log.Printf("Error listing events: %v", err)
		writeError(w, http.StatusInternalServerError, ErrFailedToFetch)
		return
	}

	switch r.URL.Query().Get("format") {
	case "ics":
		s.GenerateICS(w, events)
	case "csv":
		s.GenerateCSV(w, events)
	case "json":
		s.GenerateJSON(w, events)
	default:
		http.Error(w, ErrInvalidFormat, http.StatusBadRequest)
	}
}

// HandleSubscribe serves the ICS subscription feed of all events
func (s *Server) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	events, err := s.store.List(r.Context())
	if err != nil {
		log.Printf("Error listing events: %v", err)
		writeError(w, http.StatusInternalServerError, ErrFailedToFetch)
		return
	}

	s.GenerateSubscriptionICS(w, events)
}
