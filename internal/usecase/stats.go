package usecase

import (
	"context"
	"math"
	"sort"
	"strconv"

	"github.com/Fatima-ez-zahraa/rappelv2/internal/entity"
	"go.uber.org/zap"
)

const (
	recentFeedPerSource = 5
	activityFeedMax     = 10
)

// StatsUsecase derives dashboard numbers from the current lead and quote
// collections. Nothing is cached or materialized: every call recomputes from
// the store.
type StatsUsecase struct {
	leads  LeadRepository
	quotes QuoteRepository
	logger *zap.Logger
}

func NewStatsUsecase(leads LeadRepository, quotes QuoteRepository, logger *zap.Logger) *StatsUsecase {
	return &StatsUsecase{
		leads:  leads,
		quotes: quotes,
		logger: logger.Named("StatsUsecase"),
	}
}

// GetStats computes a provider's dashboard aggregate. totalAmount sums every
// quote regardless of status; conversionRate is quotes over leads as a
// percentage, one decimal, and 0 when there are no leads.
func (u *StatsUsecase) GetStats(ctx context.Context, providerID string) (*entity.ProviderStats, error) {
	leads, err := u.leads.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	quotes, err := u.quotes.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	pending := 0
	for _, l := range leads {
		if l.Status == entity.LeadStatusPending {
			pending++
		}
	}

	totalAmount := 0.0
	for _, q := range quotes {
		totalAmount += q.Amount
	}

	conversionRate := 0.0
	if len(leads) > 0 {
		conversionRate = math.Round(float64(len(quotes))/float64(len(leads))*1000) / 10
	}

	return &entity.ProviderStats{
		TotalLeads:     len(leads),
		TotalQuotes:    len(quotes),
		TotalAmount:    totalAmount,
		TotalRevenue:   totalAmount,
		PendingLeads:   pending,
		RevenueGrowth:  0,
		ConversionRate: conversionRate,
		WeeklyData:     []float64{},
		MonthlyData:    []float64{},
		AnnualData:     []float64{},
	}, nil
}

// GetActivity merges the five most recent leads and quotes into one feed,
// newest-first, capped at ten entries.
func (u *StatsUsecase) GetActivity(ctx context.Context, providerID string) ([]entity.ActivityItem, error) {
	leads, err := u.leads.RecentByProvider(ctx, providerID, recentFeedPerSource)
	if err != nil {
		return nil, err
	}
	quotes, err := u.quotes.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if len(quotes) > recentFeedPerSource {
		quotes = quotes[:recentFeedPerSource]
	}

	feed := make([]entity.ActivityItem, 0, len(leads)+len(quotes))
	for _, l := range leads {
		feed = append(feed, entity.ActivityItem{
			ID:       l.ID,
			Type:     "lead",
			Title:    "Nouveau Lead: " + l.Name,
			Subtitle: "Secteur: " + l.Sector,
			Date:     l.CreatedAt,
		})
	}
	for _, q := range quotes {
		feed = append(feed, entity.ActivityItem{
			ID:       q.ID,
			Type:     "quote",
			Title:    "Devis créé pour " + q.ClientName,
			Subtitle: "Montant: " + strconv.FormatFloat(q.Amount, 'f', -1, 64) + "€ (" + q.Status + ")",
			Date:     q.CreatedAt,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date.After(feed[j].Date)
	})
	if len(feed) > activityFeedMax {
		feed = feed[:activityFeedMax]
	}
	return feed, nil
}
