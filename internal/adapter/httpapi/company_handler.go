package httpapi

import (
	"net/http"

	"github.com/Fatima-ez-zahraa/rappelv2/internal/registry"
	"go.uber.org/zap"
)

type CompanyHandler struct {
	registry *registry.Client
	logger   *zap.Logger
}

func NewCompanyHandler(client *registry.Client, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		registry: client,
		logger:   logger.Named("CompanyHandler"),
	}
}

// Lookup resolves ?siret= (or ?siren=) to the registry identity.
func (h *CompanyHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("siret")
	if input == "" {
		input = r.URL.Query().Get("siren")
	}

	company, err := h.registry.Lookup(r.Context(), input)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, company)
}

func (h *CompanyHandler) LegalForms(w http.ResponseWriter, r *http.Request) {
	forms, err := h.registry.LegalForms(r.Context())
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, jsonBody{"cj": forms})
}
