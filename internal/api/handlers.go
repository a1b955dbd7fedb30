package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/caiovicentino/whalescope/internal/domain/entity"
	"github.com/caiovicentino/whalescope/internal/domain/repository"
	domain_service "github.com/caiovicentino/whalescope/internal/domain/service"
	"github.com/caiovicentino/whalescope/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// Pagination bounds for list endpoints
const (
	defaultPageLimit = 50
	maxPageLimit     = 200
	defaultWindow    = 24 * time.Hour
)

// Handler serves the whale tracking JSON API
type Handler struct {
	tracking  domain_service.WhaleTrackingService
	movements repository.MovementRepository
	prices    domain_service.PriceService
	logger    *logger.Logger
}

// HandleHealth responds to health probes
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleGetWhales returns the tracked whales for a token
func (h *Handler) HandleGetWhales(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "token query parameter is required")
		return
	}

	whales, err := h.tracking.GetTrackedWhales(r.Context(), token)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	limit, offset := pagination(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"whales": paginate(whales, limit, offset),
		"total":  len(whales),
	})
}

// HandleGetWhaleProfile returns a single whale profile
func (h *Handler) HandleGetWhaleProfile(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	address := r.PathValue("address")
	if token == "" {
		writeError(w, http.StatusBadRequest, "token query parameter is required")
		return
	}

	profile, err := h.tracking.GetWhaleProfile(r.Context(), token, address)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "whale not found")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// HandleGetWhaleSummary returns the activity summary for a token
func (h *Handler) HandleGetWhaleSummary(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "token query parameter is required")
		return
	}

	summary, err := h.tracking.GetWhaleActivitySummary(r.Context(), token)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleGetMovements returns recent movements filtered by token, type or
// minimum USD value
func (h *Handler) HandleGetMovements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, offset := pagination(r)
	fetch := limit + offset

	var movements []*entity.WhaleMovement
	switch {
	case q.Get("type") != "":
		movements = h.movements.GetByType(entity.TransactionType(q.Get("type")), fetch)
	case q.Get("minValue") != "":
		minValue, err := strconv.ParseFloat(q.Get("minValue"), 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "minValue must be a number")
			return
		}
		movements = h.movements.GetLarge(minValue, fetch)
	case q.Get("token") != "":
		movements = h.movements.GetByToken(q.Get("token"), fetch)
	default:
		movements = h.movements.GetAllRecent(fetch)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"movements": paginate(movements, limit, offset),
		"total":     len(movements),
	})
}

// HandleGetMovementsByWhale returns recent movements for a wallet
func (h *Handler) HandleGetMovementsByWhale(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("address")
	limit, _ := pagination(r)

	movements := h.movements.GetByWhale(address, limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"movements": movements,
		"total":     len(movements),
	})
}

// HandleGetMovementStats returns aggregate movement statistics for a token
func (h *Handler) HandleGetMovementStats(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "token query parameter is required")
		return
	}

	writeJSON(w, http.StatusOK, h.movements.GetStats(token, windowParam(r)))
}

// HandleGetNetFlow returns the net flow and sentiment for a token
func (h *Handler) HandleGetNetFlow(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "token query parameter is required")
		return
	}

	writeJSON(w, http.StatusOK, h.movements.GetNetFlow(token, windowParam(r)))
}

// HandleDiscoverWhales runs whale discovery for a token
func (h *Handler) HandleDiscoverWhales(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "token query parameter is required")
		return
	}

	whales, err := h.tracking.DiscoverWhales(r.Context(), token, h.prices.GetTokenPrice(token))
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"whales": whales,
		"total":  len(whales),
	})
}

// HandleAnalyzeWhale runs behavioral analysis for a wallet against a token
func (h *Handler) HandleAnalyzeWhale(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	token := q.Get("token")
	wallet := q.Get("wallet")
	if token == "" || wallet == "" {
		writeError(w, http.StatusBadRequest, "token and wallet query parameters are required")
		return
	}

	analysis, err := h.tracking.AnalyzeWhale(r.Context(), wallet, token, h.prices.GetTokenPrice(token))
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// serverError maps upstream failures to a 500 response
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("Request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// pagination extracts limit and offset query parameters, clamping out of
// range values instead of erroring
func pagination(r *http.Request) (limit, offset int) {
	limit = defaultPageLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// windowParam reads the trailing window in hours, defaulting to 24h
func windowParam(r *http.Request) time.Duration {
	if v, err := strconv.Atoi(r.URL.Query().Get("window")); err == nil && v > 0 {
		return time.Duration(v) * time.Hour
	}
	return defaultWindow
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
