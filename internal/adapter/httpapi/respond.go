package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Fatima-ez-zahraa/rappelv2/internal/registry"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/repository"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/token"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/usecase"
	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

type jsonBody map[string]interface{}

// respondError maps domain sentinels onto HTTP statuses. Anything unmapped is
// a 500 with a generic body; the cause only reaches the log.
func respondError(logger *zap.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		respondJSON(w, http.StatusConflict, jsonBody{"error": "Email déjà utilisé."})
	case errors.Is(err, repository.ErrAccountNotFound):
		respondJSON(w, http.StatusNotFound, jsonBody{"error": "Email introuvable."})
	case errors.Is(err, repository.ErrLeadNotFound):
		respondJSON(w, http.StatusNotFound, jsonBody{"error": "Lead non trouvé."})
	case errors.Is(err, repository.ErrQuoteNotFound):
		respondJSON(w, http.StatusNotFound, jsonBody{"error": "Devis non trouvé ou non autorisé"})
	case errors.Is(err, usecase.ErrAccountNotVerified):
		respondJSON(w, http.StatusForbidden, jsonBody{
			"error":                "Compte non vérifié. Veuillez vérifier votre email.",
			"requiresVerification": true,
		})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, jsonBody{"error": "Mot de passe incorrect."})
	case errors.Is(err, token.ErrInvalidToken):
		respondJSON(w, http.StatusUnauthorized, jsonBody{"error": "Non autorisé"})
	case errors.Is(err, usecase.ErrInvalidCode):
		respondJSON(w, http.StatusBadRequest, jsonBody{"error": "Code de vérification invalide."})
	case errors.Is(err, usecase.ErrAlreadyVerified):
		respondJSON(w, http.StatusBadRequest, jsonBody{"error": "Compte déjà activé."})
	case errors.Is(err, usecase.ErrNoValidFields):
		respondJSON(w, http.StatusBadRequest, jsonBody{"error": "Aucun champ valide à mettre à jour."})
	case errors.Is(err, usecase.ErrAdminRequired):
		respondJSON(w, http.StatusForbidden, jsonBody{"error": "Accès refusé"})
	case errors.Is(err, registry.ErrInvalidSiren):
		respondJSON(w, http.StatusBadRequest, jsonBody{"error": "Format SIREN (9 chiffres) ou SIRET (14 chiffres) invalide"})
	case errors.Is(err, registry.ErrCompanyNotFound):
		respondJSON(w, http.StatusNotFound, jsonBody{"error": "Entreprise non trouvée"})
	default:
		logger.Error("Unhandled API error", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, jsonBody{"error": "Erreur interne du serveur."})
	}
}
