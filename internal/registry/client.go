package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrInvalidSiren rejects input that does not contain a 9-digit SIREN
	// (or a 14-digit SIRET it can be extracted from).
	ErrInvalidSiren = errors.New("invalid SIREN or SIRET format")
	// ErrCompanyNotFound is returned when the registry has no identity for
	// the SIREN.
	ErrCompanyNotFound = errors.New("company not found")
)

var sirenPattern = regexp.MustCompile(`^\d{9}$`)

const (
	legalFormsCacheKey = "registry:legal_forms"
	legalFormsCacheTTL = 24 * time.Hour
	lookupTimeout      = 10 * time.Second
)

// Company is the mapped identity payload returned to the frontend.
type Company struct {
	Name          string `json:"nomen_long"`
	CreationYear  string `json:"dcren"`
	Zip           string `json:"codpos"`
	Address       string `json:"geo_adresse"`
	City          string `json:"ville"`
	LegalFormCode string `json:"cj"`
	Siret         string `json:"siret"`
	Siren         string `json:"siren"`
}

// LegalForm is one entry of the registry's legal-form nomenclature.
type LegalForm struct {
	Code  string `json:"code"`
	Label string `json:"libelle"`
}

// fallbackLegalForms is served when the upstream registry is unreachable.
var fallbackLegalForms = []LegalForm{
	{Code: "5710", Label: "SAS"},
	{Code: "5720", Label: "SASU"},
	{Code: "5499", Label: "SARL"},
	{Code: "1000", Label: "EI"},
}

// Client looks companies up in the national registry. This is pure
// enrichment for the signup form: it carries no pipeline invariants and its
// failures never touch pipeline state.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      Cache
	logger     *zap.Logger
}

func NewClient(baseURL, apiKey string, cache Cache, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: lookupTimeout},
		cache:      cache,
		logger:     logger.Named("RegistryClient"),
	}
}

type identityEnvelope struct {
	Success bool `json:"success"`
	Result  struct {
		Identite struct {
			NomenLong  string `json:"nomen_long"`
			Dcren      string `json:"dcren"`
			Codpos     string `json:"codpos"`
			GeoAdresse string `json:"geo_adresse"`
			Libcom     string `json:"libcom"`
			Cj         string `json:"cj"`
			Siret      string `json:"siret"`
			Siren      string `json:"siren"`
		} `json:"identite"`
	} `json:"result"`
}

// Lookup resolves a SIRET or SIREN to the company identity. Only the first
// nine digits (the SIREN) are sent upstream.
func (c *Client) Lookup(ctx context.Context, siretOrSiren string) (*Company, error) {
	input := strings.ReplaceAll(strings.TrimSpace(siretOrSiren), " ", "")
	if len(input) < 9 {
		return nil, ErrInvalidSiren
	}
	siren := input[:9]
	if !sirenPattern.MatchString(siren) {
		return nil, ErrInvalidSiren
	}

	endpoint := fmt.Sprintf("%s/identite?siren=%s&api_key=%s",
		c.baseURL, url.QueryEscape(siren), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Registry identity call failed", zap.String("siren", siren), zap.Error(err))
		return nil, ErrCompanyNotFound
	}
	defer resp.Body.Close()

	var envelope identityEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.logger.Warn("Registry identity payload unreadable", zap.String("siren", siren), zap.Error(err))
		return nil, ErrCompanyNotFound
	}
	identite := envelope.Result.Identite
	if !envelope.Success || identite.NomenLong == "" {
		return nil, ErrCompanyNotFound
	}

	creationYear := ""
	if len(identite.Dcren) >= 4 {
		creationYear = identite.Dcren[:4]
	}

	company := &Company{
		Name:          identite.NomenLong,
		CreationYear:  creationYear,
		Zip:           identite.Codpos,
		Address:       identite.GeoAdresse,
		City:          identite.Libcom,
		LegalFormCode: identite.Cj,
		Siret:         identite.Siret,
		Siren:         identite.Siren,
	}
	if company.Siret == "" {
		company.Siret = input
	}
	if company.Siren == "" {
		company.Siren = siren
	}
	return company, nil
}

type legalFormsEnvelope struct {
	Cj []LegalForm `json:"cj"`
}

// LegalForms returns the legal-form nomenclature, cached for 24h. When the
// upstream is unreachable a minimal hardcoded list is served instead.
func (c *Client) LegalForms(ctx context.Context) ([]LegalForm, error) {
	if cached, err := c.cache.Get(ctx, legalFormsCacheKey); err == nil && cached != nil {
		var forms []LegalForm
		if err := json.Unmarshal(cached, &forms); err == nil {
			return forms, nil
		}
		c.logger.Warn("Discarding unreadable legal-forms cache entry", zap.Error(err))
	}

	endpoint := fmt.Sprintf("%s/listeEven?api_key=%s", c.baseURL, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Registry legal-forms call failed, serving fallback", zap.Error(err))
		return fallbackLegalForms, nil
	}
	defer resp.Body.Close()

	var envelope legalFormsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		c.logger.Warn("Registry legal-forms payload unreadable, serving fallback", zap.Error(err))
		return fallbackLegalForms, nil
	}
	forms := envelope.Cj
	if forms == nil {
		forms = []LegalForm{}
	}

	if payload, err := json.Marshal(forms); err == nil {
		if err := c.cache.Set(ctx, legalFormsCacheKey, payload, legalFormsCacheTTL); err != nil {
			c.logger.Warn("Failed to cache legal forms", zap.Error(err))
		}
	}
	return forms, nil
}
