package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/marketscope/niss/internal/interfaces"
	"github.com/marketscope/niss/internal/models"
	"github.com/marketscope/niss/internal/niss"
)

// ScoreRequest carries the full input set for an ad-hoc scoring call.
type ScoreRequest struct {
	Stock      *models.StockSnapshot       `json:"stock"`
	News       []models.NewsItem           `json:"news,omitempty"`
	Technicals *models.TechnicalIndicators `json:"technicals,omitempty"`
	Options    *models.OptionsMetrics      `json:"options,omitempty"`
	Market     *models.MarketContext       `json:"market,omitempty"`
}

// handleScore handles POST /api/score: score caller-supplied inputs.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req ScoreRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result := s.app.Engine.Score(req.Stock, req.News, req.Technicals, req.Options, req.Market)

	var setup *models.TradeSetup
	if req.Stock != nil {
		setup = niss.GenerateTradeSetup(req.Stock.Price, result)
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"result": result,
		"setup":  setup,
	})
}

// handleScoreSymbol handles GET /api/score/{symbol}: fetch market data
// through the gateway and score it.
func (s *Server) handleScoreSymbol(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := PathParam(r, "/api/score/", "")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	result, setup, err := s.app.Screener.ScoreSymbol(r.Context(), symbol)
	if err != nil {
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("Scoring failed: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"result": result,
		"setup":  setup,
	})
}

// SetupRequest carries a previously computed result for setup generation.
type SetupRequest struct {
	CurrentPrice float64            `json:"currentPrice"`
	Result       *models.NISSResult `json:"result"`
}

// handleSetup handles POST /api/setup: derive a trade setup from a result.
func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req SetupRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Result == nil {
		WriteError(w, http.StatusBadRequest, "Result is required")
		return
	}
	if req.CurrentPrice <= 0 {
		WriteError(w, http.StatusBadRequest, "currentPrice must be positive")
		return
	}

	WriteJSON(w, http.StatusOK, niss.GenerateTradeSetup(req.CurrentPrice, req.Result))
}

// handleSignal handles GET /api/signal?score=&change=: the quick classifier.
func (s *Server) handleSignal(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	score, err := strconv.ParseFloat(r.URL.Query().Get("score"), 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid score parameter")
		return
	}
	change, err := strconv.ParseFloat(r.URL.Query().Get("change"), 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid change parameter")
		return
	}

	WriteJSON(w, http.StatusOK, niss.DetermineSignal(score, change))
}

// ScreenRequest configures a batch screening run.
type ScreenRequest struct {
	Symbols   []string `json:"symbols"`
	Limit     int      `json:"limit,omitempty"`
	MinScore  float64  `json:"minScore,omitempty"`
	NewsLimit int      `json:"newsLimit,omitempty"`
}

// handleScreen handles POST /api/screen: score and rank a symbol batch.
func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req ScreenRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if len(req.Symbols) == 0 {
		WriteError(w, http.StatusBadRequest, "At least one symbol is required")
		return
	}

	record, err := s.app.Screener.ScreenSymbols(r.Context(), req.Symbols, interfaces.ScreenOptions{
		Limit:     req.Limit,
		MinScore:  req.MinScore,
		NewsLimit: req.NewsLimit,
	})
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Screen error: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, record)
}

// handleScreenList handles GET /api/screens: screening run history.
func (s *Server) handleScreenList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	records, err := s.app.Storage.ScreenStore().ListScreens(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Error listing screens: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"screens": records,
	})
}

func (s *Server) handleScreenGet(w http.ResponseWriter, r *http.Request, id string) {
	record, err := s.app.Storage.ScreenStore().GetScreen(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Screen not found: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, record)
}

func (s *Server) handleScreenDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.app.Storage.ScreenStore().DeleteScreen(r.Context(), id); err != nil {
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Delete error: %v", err))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
