// Package api exposes the HTTP surface: locality reference data, on-demand
// digests, weather and subscription management.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/citydigest/citydigest/internal/aggregator"
	"github.com/citydigest/citydigest/internal/apperrors"
	"github.com/citydigest/citydigest/internal/cities"
	"github.com/citydigest/citydigest/internal/logger"
	"github.com/citydigest/citydigest/internal/models"
	"github.com/citydigest/citydigest/internal/store"
	"github.com/citydigest/citydigest/internal/weather"
	"github.com/citydigest/citydigest/pkg/utils"
)

// Digester resolves a locality to an aggregated digest
type Digester interface {
	Digest(ctx context.Context, localityID string, limit int) (*aggregator.Result, error)
}

// Handler handles HTTP requests for the API
type Handler struct {
	store     store.Store
	registry  *cities.Registry
	digests   Digester
	weather   weather.Provider
	version   string
	buildTime string
	gitCommit string
	startTime time.Time
}

// NewHandler creates a new API handler. weatherProvider may be nil; the
// weather endpoint then answers 503.
func NewHandler(st store.Store, registry *cities.Registry, digests Digester, weatherProvider weather.Provider, version, buildTime, gitCommit string) *Handler {
	return &Handler{
		store:     st,
		registry:  registry,
		digests:   digests,
		weather:   weatherProvider,
		version:   version,
		buildTime: buildTime,
		gitCommit: gitCommit,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {
		// Health check endpoints
		r.Get("/health", h.healthHandler)
		r.Get("/health/ready", h.readinessHandler)
		r.Get("/health/live", h.livenessHandler)

		// Reference data
		r.Get("/localities", h.listLocalitiesHandler)
		r.Get("/localities/search", h.searchLocalitiesHandler)
		r.Get("/localities/{id}", h.getLocalityHandler)
		r.Get("/localities/{id}/nearest", h.nearestLocalitiesHandler)
		r.Get("/timezones", h.listTimezonesHandler)

		// Digest endpoints
		r.Get("/news/{locality}", h.getNewsHandler)
		r.Get("/weather/{locality}", h.getWeatherHandler)

		// Subscription management
		r.Get("/subscriptions", h.listSubscriptionsHandler)
		r.Put("/subscriptions", h.putSubscriptionHandler)
		r.Delete("/subscriptions/{locality}", h.deleteSubscriptionHandler)

		// System info
		r.Get("/version", h.versionHandler)
	})

	// Root health check
	r.Get("/health", h.healthHandler)
}

// healthHandler provides basic health check
func (h *Handler) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"version":   h.version,
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// readinessHandler checks if the application is ready to serve traffic
func (h *Handler) readinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]string{
		"store": "ok",
	}

	statusCode := http.StatusOK

	if err := h.store.Health(ctx); err != nil {
		checks["store"] = "error: " + err.Error()
		statusCode = http.StatusServiceUnavailable
	}

	response := map[string]interface{}{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
		"checks":    checks,
	}

	h.writeJSONResponse(w, statusCode, response)
}

// livenessHandler checks if the application is alive
func (h *Handler) livenessHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.startTime).String(),
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// versionHandler returns version information
func (h *Handler) versionHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"version":    h.version,
		"build_time": h.buildTime,
		"git_commit": h.gitCommit,
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// listLocalitiesHandler handles GET /localities
func (h *Handler) listLocalitiesHandler(w http.ResponseWriter, r *http.Request) {
	locs := h.registry.All()
	response := map[string]interface{}{
		"data":  locs,
		"count": len(locs),
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	h.writeJSONResponse(w, http.StatusOK, response)
}

// searchLocalitiesHandler handles GET /localities/search?q=
func (h *Handler) searchLocalitiesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "query parameter q is required")
		return
	}

	locs := h.registry.Search(q, 10)
	response := map[string]interface{}{
		"data":  locs,
		"count": len(locs),
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// getLocalityHandler handles GET /localities/{id}
func (h *Handler) getLocalityHandler(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.registry.Get(chi.URLParam(r, "id"))
	if !ok {
		h.writeErrorResponse(w, r, http.StatusNotFound, "Locality not found")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	h.writeJSONResponse(w, http.StatusOK, loc)
}

// nearestLocalitiesHandler handles GET /localities/{id}/nearest?n=
func (h *Handler) nearestLocalitiesHandler(w http.ResponseWriter, r *http.Request) {
	loc, ok := h.registry.Get(chi.URLParam(r, "id"))
	if !ok {
		h.writeErrorResponse(w, r, http.StatusNotFound, "Locality not found")
		return
	}

	n := 5
	if nStr := r.URL.Query().Get("n"); nStr != "" {
		parsed, err := strconv.Atoi(nStr)
		if err != nil || parsed < 1 || parsed > 20 {
			h.writeErrorResponse(w, r, http.StatusBadRequest, "n must be between 1 and 20")
			return
		}
		n = parsed
	}

	nearest := h.registry.Nearest(loc, n)
	response := map[string]interface{}{
		"data":  nearest,
		"count": len(nearest),
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// listTimezonesHandler handles GET /timezones
func (h *Handler) listTimezonesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	h.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"data": cities.ReminderTimezones,
	})
}

// getNewsHandler handles GET /news/{locality}
func (h *Handler) getNewsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 50 {
			h.writeErrorResponse(w, r, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		limit = parsed
	}

	res, err := h.digests.Digest(ctx, chi.URLParam(r, "locality"), limit)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnknownLocality):
			h.writeErrorResponse(w, r, http.StatusNotFound, "Locality not found")
		case errors.Is(err, apperrors.ErrContentUnavailable):
			h.writeErrorResponse(w, r, http.StatusServiceUnavailable, "No sources are currently reachable")
		default:
			logger.WithContext(ctx).Error("digest failed", "error", err)
			h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	headlines := make([]models.Headline, 0, len(res.Items))
	for _, item := range res.Items {
		id := item.Link
		if id == "" {
			id = item.Title
		}
		headlines = append(headlines, models.Headline{
			ID:    utils.HashString(id),
			Title: item.Title,
			Link:  item.Link,
		})
	}

	response := map[string]interface{}{
		"locality":  res.Locality.ID,
		"scope":     res.Scope,
		"data":      headlines,
		"count":     len(headlines),
		"timestamp": time.Now().UTC(),
	}

	w.Header().Set("Cache-Control", "public, max-age=60")
	h.writeJSONResponse(w, http.StatusOK, response)
}

// getWeatherHandler handles GET /weather/{locality}
func (h *Handler) getWeatherHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	loc, ok := h.registry.Get(chi.URLParam(r, "locality"))
	if !ok {
		h.writeErrorResponse(w, r, http.StatusNotFound, "Locality not found")
		return
	}

	if h.weather == nil {
		h.writeErrorResponse(w, r, http.StatusServiceUnavailable, "Weather is not configured")
		return
	}

	f, err := h.weather.Forecast(ctx, loc)
	if err != nil {
		logger.WithContext(ctx).Warn("weather lookup failed", "locality", loc.ID, "error", err)
		h.writeErrorResponse(w, r, http.StatusServiceUnavailable, "Weather is temporarily unavailable, try again later")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=600")
	h.writeJSONResponse(w, http.StatusOK, f)
}

// listSubscriptionsHandler handles GET /subscriptions?chat_id=
func (h *Handler) listSubscriptionsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chatID, err := parseChatID(r)
	if err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	subs, err := h.store.ListForSubscriber(ctx, chatID)
	if err != nil {
		logger.WithContext(ctx).Error("list subscriptions failed", "error", err)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	if subs == nil {
		subs = []models.Subscription{}
	}

	response := map[string]interface{}{
		"data":  subs,
		"count": len(subs),
	}

	h.writeJSONResponse(w, http.StatusOK, response)
}

// putSubscriptionHandler handles PUT /subscriptions. Writing an existing
// (chat, locality) key replaces the stored record.
func (h *Handler) putSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.Subscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ChatID == 0 {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "chat_id is required")
		return
	}
	if _, ok := h.registry.Get(req.LocalityID); !ok {
		h.writeErrorResponse(w, r, http.StatusNotFound, "Locality not found")
		return
	}
	if req.TimezoneID != "" && !cities.AllowedTimezone(req.TimezoneID) {
		h.writeErrorResponse(w, r, http.StatusBadRequest, apperrors.ErrTimezoneNotAllowed.Error())
		return
	}

	req.TimeOfDay = models.NormalizeTimeOfDay(req.TimeOfDay)
	if req.SubscriberID == 0 {
		req.SubscriberID = req.ChatID
	}

	if err := h.store.Put(ctx, req); err != nil {
		logger.WithContext(ctx).Error("store subscription failed", "error", err)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, req)
}

// deleteSubscriptionHandler handles DELETE /subscriptions/{locality}?chat_id=
func (h *Handler) deleteSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chatID, err := parseChatID(r)
	if err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	localityID := chi.URLParam(r, "locality")
	removed, err := h.store.Remove(ctx, chatID, localityID)
	if err != nil {
		logger.WithContext(ctx).Error("remove subscription failed", "error", err)
		h.writeErrorResponse(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !removed {
		h.writeErrorResponse(w, r, http.StatusNotFound, "Subscription not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseChatID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("chat_id")
	if raw == "" {
		return 0, fmt.Errorf("chat_id is required")
	}
	chatID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || chatID == 0 {
		return 0, fmt.Errorf("invalid chat_id: %s", raw)
	}
	return chatID, nil
}

// writeJSONResponse writes a JSON response
func (h *Handler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeErrorResponse writes a standardized error response
func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	response := ErrorResponse{
		Error:     http.StatusText(statusCode),
		Message:   message,
		Timestamp: time.Now().UTC(),
		RequestID: r.Header.Get("X-Request-ID"),
	}

	h.writeJSONResponse(w, statusCode, response)
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}
