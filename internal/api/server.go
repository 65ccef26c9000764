// Package api exposes the tenant registry over HTTP and provides the matching
// client used by the console in http backend mode.
package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/jask/tenantadmin/internal/management"
)

// ServerConfig tunes the HTTP surface.
type ServerConfig struct {
	Token        string
	RegisterRate int
	Timeout      time.Duration
}

// Server serves the registry endpoints.
type Server struct {
	backend management.Backend
	log     *slog.Logger
	cfg     ServerConfig
}

func NewServer(backend management.Backend, log *slog.Logger, cfg ServerConfig) *Server {
	if log == nil {
		log = slog.Default()
	}
	if cfg.RegisterRate <= 0 {
		cfg.RegisterRate = 30
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Server{backend: backend, log: log, cfg: cfg}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	headers := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "no-referrer",
	})

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Timeout))
	r.Use(headers.Handler)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/companies", s.listCompanies)
		r.Get("/plans/active", s.listPlans)
		r.With(httprate.Limit(s.cfg.RegisterRate, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))).
			Post("/companies", s.registerCompany)
	})
	return r
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	if s.cfg.Token == "" {
		return next
	}
	want := []byte(s.cfg.Token)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			s.log.Warn("rejected request", slog.String("path", r.URL.Path), slog.String("remote", r.RemoteAddr))
			Message(w, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.backend.FetchCompanies(r.Context())
	if err != nil {
		s.log.Error("list companies", slog.Any("error", err))
		RespondError(w, err)
		return
	}
	if companies == nil {
		companies = []management.Company{}
	}
	JSON(w, http.StatusOK, companies)
}

func (s *Server) listPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.backend.FetchActivePlans(r.Context())
	if err != nil {
		s.log.Error("list plans", slog.Any("error", err))
		RespondError(w, err)
		return
	}
	if plans == nil {
		plans = []management.SubscriptionPlan{}
	}
	JSON(w, http.StatusOK, plans)
}

func (s *Server) registerCompany(w http.ResponseWriter, r *http.Request) {
	var form management.FormState
	if err := DecodeJSON(r, &form); err != nil {
		Message(w, http.StatusBadRequest, "Malformed request body")
		return
	}
	res, err := s.backend.RegisterCompany(r.Context(), form)
	if err != nil {
		s.log.Error("register company", slog.String("email", form.Email), slog.Any("error", err))
		RespondError(w, err)
		return
	}
	s.log.Info("company registered", slog.String("company", form.CompanyName), slog.String("email", form.Email))
	JSON(w, http.StatusCreated, res)
}
