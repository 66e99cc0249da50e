// ABOUTME: Read-only web dashboard and JSON API with embedded templates
// ABOUTME: gorilla/mux routes, CORS for GET, request ids and a Prometheus endpoint
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/insights"
	"github.com/harperreed/revenueos/team"
	"github.com/harperreed/revenueos/views"
)

//go:embed templates/*
var templatesFS embed.FS

const requestIDHeader = "X-Request-ID"

type Server struct {
	app       *controllers.AppController
	metrics   http.Handler
	logger    *log.Logger
	templates *template.Template
}

// NewServer parses the templates. metrics may be nil, which leaves /metrics unrouted.
func NewServer(app *controllers.AppController, metrics http.Handler, logger *log.Logger) (*Server, error) {
	funcMap := template.FuncMap{
		"money": func(v float64) string { return "$" + views.FormatMoney(v) },
		"pct": func(v float64) string { return fmt.Sprintf("%.0f%%", v) },
		"progress": func(value, goal float64) float64 {
			if goal <= 0 {
				return 0
			}
			p := value / goal * 100
			if p > 100 {
				p = 100
			}
			return p
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{app: app, metrics: metrics, logger: logger, templates: tmpl}, nil
}

// Handler builds the router with its middleware.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestID)

	r.HandleFunc("/", s.handleDashboard).Methods("GET")
	r.HandleFunc("/pipeline", s.handlePipeline).Methods("GET")
	r.HandleFunc("/today", s.handleToday).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/leads", s.handleLeads).Methods("GET")
	api.HandleFunc("/deals", s.handleDeals).Methods("GET")
	api.HandleFunc("/proposals", s.handleProposals).Methods("GET")
	api.HandleFunc("/contracts", s.handleContracts).Methods("GET")
	api.HandleFunc("/dashboard", s.handleDashboardJSON).Methods("GET")
	api.HandleFunc("/funnel", s.handleFunnel).Methods("GET")
	api.HandleFunc("/today", s.handleTodayJSON).Methods("GET")
	api.HandleFunc("/team", s.handleTeam).Methods("GET")

	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics).Methods("GET")
	}

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
		ExposedHeaders: []string{requestIDHeader},
	})
	return c.Handler(r)
}

// Start serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "url", fmt.Sprintf("http://localhost:%d", port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

// Pages

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.renderTemplate(w, "layout.html", map[string]any{
		"Title":           "Dashboard",
		"ContentTemplate": "dashboard-content",
		"Dashboard":       d,
	})
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, "layout.html", map[string]any{
		"Title":           "Pipeline",
		"ContentTemplate": "pipeline-content",
		"Pipeline":        s.app.Pipeline.View(),
	})
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, "layout.html", map[string]any{
		"Title":           "Today",
		"ContentTemplate": "today-content",
		"Today":           s.app.Today(),
	})
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template error", "template", name, "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// JSON API

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// handleLeads takes ?filter= without changing the saved filter.
func (s *Server) handleLeads(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = s.app.Leads.Filter()
	}
	if !views.ValidLeadFilter(filter) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid filter: %s", filter))
		return
	}
	st := s.app.Store()
	writeJSON(w, http.StatusOK, views.BuildLeads(st.Get(), filter, st.Now()))
}

func (s *Server) handleDeals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Pipeline.View())
}

func (s *Server) handleProposals(w http.ResponseWriter, r *http.Request) {
	f := s.app.Proposals.Filters()
	q := r.URL.Query()
	if v := q.Get("status"); v != "" {
		f.Status = v
	}
	if v := q.Get("quick"); v != "" {
		f.Quick = v
	}
	f.Search = q.Get("search")
	if !views.ValidProposalStatusFilter(f.Status) || !views.ValidQuickFilter(f.Quick) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid filter: status=%s quick=%s", f.Status, f.Quick))
		return
	}
	st := s.app.Store()
	writeJSON(w, http.StatusOK, views.BuildProposals(st.Get(), f, st.Now()))
}

func (s *Server) handleContracts(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("status")
	if filter == "" {
		filter = s.app.Contracts.Filter()
	}
	if !views.ValidContractFilter(filter) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid status: %s", filter))
		return
	}
	st := s.app.Store()
	writeJSON(w, http.StatusOK, views.BuildContracts(st.Get(), filter, st.Now()))
}

func (s *Server) dashboard(r *http.Request) (views.Dashboard, error) {
	scenario := views.ScenarioHealthy
	if v := r.URL.Query().Get("scenario"); v != "" {
		sc, err := views.ParseScenario(v)
		if err != nil {
			return views.Dashboard{}, err
		}
		scenario = sc
	}
	st := s.app.Store()
	return views.BuildDashboard(st.Get().MonthlyGoal, scenario, views.SimulationInput{}, s.app.Dashboard.Layout(), st.Now()), nil
}

func (s *Server) handleDashboardJSON(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleFunnel(w http.ResponseWriter, r *http.Request) {
	st := s.app.Store().Get()
	writeJSON(w, http.StatusOK, map[string]any{
		"funnel":   insights.Funnel(st.Deals),
		"channels": insights.ChannelPerformance(st.Leads, st.Deals),
	})
}

func (s *Server) handleTodayJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Today())
}

type teamResponse struct {
	Leaderboard []team.Rep    `json:"leaderboard"`
	Momentum    team.Momentum `json:"momentum"`
	Signals     []team.Rep    `json:"coachingSignals"`
	Copilot     team.Copilot  `json:"managerCopilot"`
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	roster := s.app.Roster()
	if roster == nil {
		writeError(w, http.StatusNotFound, errors.New("team roster is not loaded"))
		return
	}
	tab := team.TabImprovement
	if v := r.URL.Query().Get("tab"); v != "" {
		t, err := team.ParseLeaderboardTab(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		tab = t
	}
	writeJSON(w, http.StatusOK, teamResponse{
		Leaderboard: roster.Leaderboard(tab),
		Momentum:    roster.Momentum(),
		Signals:     roster.CoachingSignals(),
		Copilot:     roster.ManagerCopilot(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.app.Store().LoadReport()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "source": report.Source})
}
