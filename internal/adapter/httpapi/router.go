package httpapi

import (
	"github.com/Fatima-ez-zahraa/rappelv2/internal/platform/metrics"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/registry"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/token"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Deps carries everything the router wires together.
type Deps struct {
	Auth        *usecase.AuthUsecase
	Leads       *usecase.LeadUsecase
	Quotes      *usecase.QuoteUsecase
	Stats       *usecase.StatsUsecase
	Registry    *registry.Client
	Tokens      *token.Service
	Metrics     *metrics.Manager
	Logger      *zap.Logger
	AllowOrigin string
}

// NewRouter assembles the full API surface. Admin routes sit behind the same
// JWT middleware; the usecases perform the role check.
func NewRouter(d Deps) *chi.Mux {
	authHandler := NewAuthHandler(d.Auth, d.Metrics, d.Logger)
	leadHandler := NewLeadHandler(d.Leads, d.Metrics, d.Logger)
	quoteHandler := NewQuoteHandler(d.Quotes, d.Metrics, d.Logger)
	statsHandler := NewStatsHandler(d.Stats, d.Logger)
	companyHandler := NewCompanyHandler(d.Registry, d.Logger)

	r := chi.NewRouter()
	r.Use(CORS(d.AllowOrigin))
	r.Use(RequestLogger(d.Logger))
	r.Use(Metrics(d.Metrics))

	// Public routes
	r.Post("/api/auth/signup", authHandler.Signup)
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/verify-email", authHandler.VerifyEmail)
	r.Post("/api/auth/resend-activation", authHandler.ResendActivation)
	r.Post("/api/leads", leadHandler.Create)
	r.Get("/api/company/lookup", companyHandler.Lookup)
	r.Get("/api/company/legal-forms", companyHandler.LegalForms)

	// Protected routes (require JWT authentication)
	r.Group(func(authRouter chi.Router) {
		authRouter.Use(JWTAuth(d.Tokens, d.Logger))

		authRouter.Get("/api/profile", authHandler.GetProfile)
		authRouter.Patch("/api/profile", authHandler.UpdateProfile)

		authRouter.Get("/api/leads", leadHandler.List)
		authRouter.Get("/api/leads/{id}", leadHandler.Get)
		authRouter.Post("/api/leads/manual", leadHandler.CreateManual)
		authRouter.Patch("/api/leads/{id}", leadHandler.Update)

		authRouter.Get("/api/quotes", quoteHandler.List)
		authRouter.Post("/api/quotes", quoteHandler.Create)
		authRouter.Patch("/api/quotes/{id}", quoteHandler.Update)
		authRouter.Delete("/api/quotes/{id}", quoteHandler.Delete)

		authRouter.Get("/api/stats", statsHandler.GetStats)
		authRouter.Get("/api/activity", statsHandler.GetActivity)

		// Admin routes; the handlers/usecases perform further role checks.
		authRouter.Get("/api/admin/leads", leadHandler.AdminList)
		authRouter.Get("/api/admin/users", authHandler.AdminListUsers)
		authRouter.Post("/api/admin/users/{id}/role", authHandler.AdminUpdateRole)
	})

	return r
}
