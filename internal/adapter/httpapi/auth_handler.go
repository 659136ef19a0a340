package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/Fatima-ez-zahraa/rappelv2/internal/entity"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/platform/metrics"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth    *usecase.AuthUsecase
	metrics *metrics.Manager
	logger  *zap.Logger
}

func NewAuthHandler(auth *usecase.AuthUsecase, m *metrics.Manager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		metrics: m,
		logger:  logger.Named("AuthHandler"),
	}
}

type signupRequest struct {
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Siret        string   `json:"siret"`
	CompanyName  string   `json:"company_name"`
	CreationYear string   `json:"creation_year"`
	Address      string   `json:"address"`
	Zip          string   `json:"zip"`
	City         string   `json:"city"`
	Phone        string   `json:"phone"`
	LegalForm    string   `json:"legal_form"`
	Sectors      []string `json:"sectors"`
}

type sessionBody struct {
	AccessToken string `json:"access_token"`
}

type authResponse struct {
	Message string          `json:"message,omitempty"`
	User    *entity.Account `json:"user"`
	Session sessionBody     `json:"session"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, jsonBody{"error": "Données incomplètes."})
		return
	}
	// Only the credentials are mandatory; name and company fields default
	// to empty and can be filled in later via the profile.
	if req.Email == "" || req.Password == "" {
		respondJSON(w, http.StatusBadRequest, jsonBody{"error": "Données incomplètes."})
		return
	}

	result, err := h.auth.Signup(r.Context(), usecase.SignupInput{
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Siret:        req.Siret,
		CompanyName:  req.CompanyName,
		CreationYear: req.CreationYear,
		Address:      req.Address,
		Zip:          req.Zip,
		City:         req.City,
		Phone:        req.Phone,
		LegalForm:    req.LegalForm,
		Sectors:      req.Sectors,
	})
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	h.metrics.AccountsCreatedTotal.Inc()

	if !result.EmailSent {
		respondJSON(w, http.StatusCreated, jsonBody{
			"message":    "Utilisateur créé, mais l'envoi de l'email d'activation a échoué. Veuillez contacter le support ou demander un renvoi de code.",
			"emailError": true,
			"user":       result.Account,
			"session":    sessionBody{AccessToken: result.Token},
		})
		return
	}
	respondJSON(w, http.StatusCreated, authResponse{
		Message: "Utilisateur créé. Un email d'activation a été envoyé.",
		User:    result.Account,
		Session: sessionBody{AccessToken: result.Token},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		respondJSON(w, http.StatusBadRequest, jsonBody{"error": "Données incomplètes."})
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, authResponse{
		User:    result.Account,
		Session: sessionBody{AccessToken: result.Token},
	})
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Code == "" {
		respondJSON(w, http.StatusBadRequest, jsonBody{"error": "Email et code requis."})
		return
	}

	result, err := h.auth.Verify(r.Context(), req.Email, req.Code)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, authResponse{
		Message: "Votre compte a été activé avec succès.",
		User:    result.Account,
		Session: sessionBody{AccessToken: result.Token},
	})
}

type resendRequest struct {
	Email string `json:"email"`
}

func (h *AuthHandler) ResendActivation(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		respondJSON(w, http.StatusBadRequest, jsonBody{"error": "Email requis."})
		return
	}

	sent, err := h.auth.ResendActivation(r.Context(), req.Email)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	if !sent {
		respondJSON(w, http.StatusInternalServerError, jsonBody{"error": "Erreur lors de l'envoi de l'email."})
		return
	}
	respondJSON(w, http.StatusOK, jsonBody{"message": "Email de vérification renvoyé."})
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromRequest(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, jsonBody{"error": "Non autorisé"})
		return
	}

	account, err := h.auth.GetProfile(r.Context(), accountID)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, jsonBody{"user": account})
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDFromRequest(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, jsonBody{"error": "Non autorisé"})
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondJSON(w, http.StatusBadRequest, jsonBody{"error": "Données manquantes"})
		return
	}

	account, err := h.auth.UpdateProfile(r.Context(), accountID, fields)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, jsonBody{"message": "Profil mis à jour.", "user": account})
}

func (h *AuthHandler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.auth.AdminListAccounts(r.Context(), accountRoleFromRequest(r))
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (h *AuthHandler) AdminUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Role == "" {
		respondJSON(w, http.StatusBadRequest, jsonBody{"error": "Rôle manquant"})
		return
	}

	accountID := chi.URLParam(r, "id")
	if err := h.auth.AdminUpdateRole(r.Context(), accountRoleFromRequest(r), accountID, req.Role); err != nil {
		respondError(h.logger, w, err)
		return
	}
	respondJSON(w, http.StatusOK, jsonBody{"message": "Rôle mis à jour"})
}
