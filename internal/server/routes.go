package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/marketscope/niss/internal/common"
	"github.com/marketscope/niss/internal/niss"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Scoring
	mux.HandleFunc("/api/score", s.handleScore)
	mux.HandleFunc("/api/score/", s.handleScoreSymbol)
	mux.HandleFunc("/api/setup", s.handleSetup)
	mux.HandleFunc("/api/signal", s.handleSignal)

	// Screening
	mux.HandleFunc("/api/screen", s.handleScreen)
	mux.HandleFunc("/api/screen/chart/", s.handleScreenChart)
	mux.HandleFunc("/api/screens", s.handleScreenList)
	mux.HandleFunc("/api/screens/", s.routeScreens)
}

// routeScreens dispatches /api/screens/{id} by method.
func (s *Server) routeScreens(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/screens/", "")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleScreenGet(w, r, id)
	case http.MethodDelete:
		s.handleScreenDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
		"engine":  niss.EngineVersion,
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uptime := time.Since(s.app.StartupTime).Round(time.Second)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":      s.app.Config.Environment,
		"gateway_url":      s.app.Config.Gateway.BaseURL,
		"gateway_key_set":  s.app.Config.Gateway.APIKey != "",
		"storage_path":     s.app.Config.Storage.Path,
		"screener_workers": s.app.Config.Screener.Workers,
		"logging_level":    s.app.Config.Logging.Level,
		"weights":          s.app.Engine.Weights().Map(),
		"uptime":           uptime.String(),
		"started_at":       s.app.StartupTime,
	})
}
