package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"votepulse/internal/domain"
	"votepulse/internal/service"
	"votepulse/pkg/clientip"
	"votepulse/pkg/logger"
)

// EngagementHandler handles visit tracking and voting requests
type EngagementHandler struct {
	engagementService service.EngagementService
	logger            *logger.Logger
}

// NewEngagementHandler creates a new engagement handler
func NewEngagementHandler(engagementService service.EngagementService, logger *logger.Logger) *EngagementHandler {
	return &EngagementHandler{
		engagementService: engagementService,
		logger:            logger,
	}
}

// TrackVisit handles POST /api/visitors/track. The body is optional.
func (h *EngagementHandler) TrackVisit(w http.ResponseWriter, r *http.Request) {
	var req domain.TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userAgent := req.UserAgent
	if userAgent == "" {
		userAgent = r.Header.Get("User-Agent")
	}

	origin := clientip.FromRequest(r)
	counts, err := h.engagementService.TrackVisit(r.Context(), origin, userAgent)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, counts)
}

// Counts handles GET /api/users/count
func (h *EngagementHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.engagementService.Counts(r.Context())
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, counts)
}

// CastVote handles POST /vote
func (h *EngagementHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req domain.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	origin := clientip.FromRequest(r)
	if err := h.engagementService.CastVote(r.Context(), origin, req.Vote); err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, domain.VoteResponse{Success: true})
}

// Results handles GET /results
func (h *EngagementHandler) Results(w http.ResponseWriter, r *http.Request) {
	origin := clientip.FromRequest(r)
	results, err := h.engagementService.Results(r.Context(), origin)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, results)
}
