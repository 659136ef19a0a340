package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Fatima-ez-zahraa/rappelv2/internal/platform/metrics"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type QuoteHandler struct {
	quotes  *usecase.QuoteUsecase
	metrics *metrics.Manager
	logger  *zap.Logger
}

func NewQuoteHandler(quotes *usecase.QuoteUsecase, m *metrics.Manager, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quotes:  quotes,
		metrics: m,
		logger:  logger.Named("QuoteHandler"),
	}
}

func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	providerID, ok := accountIDFromRequest(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, jsonBody{"error": "Non autorisé"})
		return
	}

	quotes, err := h.quotes.ListByProvider(r.Context(), providerID)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, quotes)
}

type createQuoteRequest struct {
	ClientName  string  `json:"client_name"`
	ProjectName string  `json:"project_name"`
	Amount      float64 `json:"amount"`
	ItemsCount  int     `json:"items_count"`
}

func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	providerID, ok := accountIDFromRequest(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, jsonBody{"error": "Non autorisé"})
		return
	}

	var req createQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ClientName == "" || req.Amount == 0 {
		respondJSON(w, http.StatusBadRequest, jsonBody{"error": "Données incomplètes"})
		return
	}

	quote, err := h.quotes.Create(r.Context(), providerID, usecase.CreateQuoteInput{
		ClientName:  req.ClientName,
		ProjectName: req.ProjectName,
		Amount:      req.Amount,
		ItemsCount:  req.ItemsCount,
	})
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	h.metrics.QuotesCreatedTotal.Inc()
	respondJSON(w, http.StatusCreated, jsonBody{"message": "Devis créé", "id": quote.ID})
}

type updateQuoteRequest struct {
	ClientName  *string  `json:"client_name"`
	ProjectName *string  `json:"project_name"`
	Amount      *float64 `json:"amount"`
	ItemsCount  *int     `json:"items_count"`
	Status      *string  `json:"status"`
}

func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	providerID, ok := accountIDFromRequest(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, jsonBody{"error": "Non autorisé"})
		return
	}

	var req updateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, jsonBody{"error": "Données manquantes"})
		return
	}

	_, err := h.quotes.Update(r.Context(), providerID, chi.URLParam(r, "id"), usecase.UpdateQuoteInput{
		ClientName:  req.ClientName,
		ProjectName: req.ProjectName,
		Amount:      req.Amount,
		ItemsCount:  req.ItemsCount,
		Status:      req.Status,
	})
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, jsonBody{"message": "Devis mis à jour"})
}

func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	providerID, ok := accountIDFromRequest(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, jsonBody{"error": "Non autorisé"})
		return
	}

	if err := h.quotes.Delete(r.Context(), providerID, chi.URLParam(r, "id")); err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, jsonBody{"message": "Devis supprimé"})
}
