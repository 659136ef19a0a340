package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Fatima-ez-zahraa/rappelv2/internal/platform/metrics"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type LeadHandler struct {
	leads   *usecase.LeadUsecase
	metrics *metrics.Manager
	logger  *zap.Logger
}

func NewLeadHandler(leads *usecase.LeadUsecase, m *metrics.Manager, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		leads:   leads,
		metrics: m,
		logger:  logger.Named("LeadHandler"),
	}
}

type createLeadRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Address  string  `json:"address"`
	Sector   string  `json:"sector"`
	Need     string  `json:"need"`
	TimeSlot string  `json:"time_slot"`
	Budget   float64 `json:"budget"`
}

func (req createLeadRequest) toInput() usecase.CreateLeadInput {
	return usecase.CreateLeadInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Sector:   req.Sector,
		Need:     req.Need,
		TimeSlot: req.TimeSlot,
		Budget:   req.Budget,
	}
}

// Create is the public intake endpoint for the frontend callback form.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Phone == "" {
		respondJSON(w, http.StatusBadRequest, jsonBody{"error": "Données incomplètes (nom et téléphone requis)."})
		return
	}

	result, err := h.leads.Create(r.Context(), req.toInput())
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	h.metrics.LeadsCreatedTotal.Inc()

	body := jsonBody{"message": "Lead créé.", "id": result.Lead.ID}
	if !result.EmailSent {
		body["emailError"] = true
	}
	respondJSON(w, http.StatusCreated, body)
}

// CreateManual records a lead on behalf of the calling provider and assigns
// it to them in the same request.
func (h *LeadHandler) CreateManual(w http.ResponseWriter, r *http.Request) {
	providerID, ok := accountIDFromRequest(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, jsonBody{"error": "Non autorisé"})
		return
	}

	var req createLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Phone == "" {
		respondJSON(w, http.StatusBadRequest, jsonBody{"error": "Données incomplètes (nom et téléphone requis)."})
		return
	}

	result, err := h.leads.CreateManual(r.Context(), providerID, req.toInput())
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	h.metrics.LeadsCreatedTotal.Inc()

	if !result.Assigned {
		respondJSON(w, http.StatusInternalServerError, jsonBody{"error": "Lead créé mais échec de l'assignation."})
		return
	}
	respondJSON(w, http.StatusCreated, jsonBody{"message": "Lead manuel créé et assigné.", "id": result.Lead.ID})
}

// List returns the calling provider's assigned leads, newest-first.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	providerID, ok := accountIDFromRequest(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, jsonBody{"error": "Non autorisé"})
		return
	}

	leads, err := h.leads.ListByProvider(r.Context(), providerID)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.leads.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondJSON(w, http.StatusBadRequest, jsonBody{"error": "Données manquantes."})
		return
	}

	if err := h.leads.Update(r.Context(), chi.URLParam(r, "id"), fields); err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, jsonBody{"message": "Lead mis à jour."})
}

func (h *LeadHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leads.AdminListAll(r.Context(), accountRoleFromRequest(r))
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, leads)
}
