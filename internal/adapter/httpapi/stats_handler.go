package httpapi

import (
	"net/http"

	"github.com/Fatima-ez-zahraa/rappelv2/internal/usecase"
	"go.uber.org/zap"
)

type StatsHandler struct {
	stats  *usecase.StatsUsecase
	logger *zap.Logger
}

func NewStatsHandler(stats *usecase.StatsUsecase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		stats:  stats,
		logger: logger.Named("StatsHandler"),
	}
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	providerID, ok := accountIDFromRequest(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, jsonBody{"error": "Non autorisé"})
		return
	}

	stats, err := h.stats.GetStats(r.Context(), providerID)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	providerID, ok := accountIDFromRequest(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, jsonBody{"error": "Non autorisé"})
		return
	}

	feed, err := h.stats.GetActivity(r.Context(), providerID)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, feed)
}
