package services

import (
	"context"
	"fmt"

	"tradebook-backend/internal/models"
	"tradebook-backend/internal/repositories"

	"github.com/google/uuid"
)

// StatsService computes aggregate statistics over a user's filtered trades
type StatsService struct {
	repos *repositories.Repositories
}

// NewStatsService creates a new stats service
func NewStatsService(repos *repositories.Repositories) *StatsService {
	return &StatsService{repos: repos}
}

// fetchFiltered loads the full filtered set for one user, bounded by the
// export cap. Stats always run over the whole filtered set, never a page.
func (s *StatsService) fetchFiltered(ctx context.Context, userID uuid.UUID, filters models.TradeFilters) ([]*models.Trade, error) {
	normalized := models.NormalizeDataTableRequest(models.DataTableRequest{Filters: filters})
	trades, err := s.repos.Trade.Export(ctx, userID, normalized.Filters, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trades for stats: %w", err)
	}
	return trades, nil
}

// Summary computes the aggregate block over the filtered set
func (s *StatsService) Summary(ctx context.Context, userID uuid.UUID, filters models.TradeFilters) (TradeStats, error) {
	trades, err := s.fetchFiltered(ctx, userID, filters)
	if err != nil {
		return TradeStats{}, err
	}
	return CalculateStats(trades), nil
}

// dimensionOptionKind maps id-keyed dimensions to their option kind; label
// dimensions (position, winLoss, tradingSession) have none
var dimensionOptionKind = map[string]models.OptionKind{
	DimensionCommodity:     models.OptionKindCommodity,
	DimensionTimeframe:     models.OptionKindTimeframe,
	DimensionTradeType:     models.OptionKindTradeType,
	DimensionTrendlineType: models.OptionKindTrendlineType,
	DimensionEntryType:     models.OptionKindEntryType,
	DimensionTag:           models.OptionKindTag,
}

// ByDimension buckets the filtered set along one dimension. Id-keyed
// buckets are resolved to option names; a bucket whose id no longer
// resolves keeps the raw id.
func (s *StatsService) ByDimension(ctx context.Context, userID uuid.UUID, dimension string, filters models.TradeFilters) ([]DimensionStats, error) {
	if !IsValidDimension(dimension) {
		return nil, fmt.Errorf("%w: %s", repositories.ErrInvalidInput, dimension)
	}

	trades, err := s.fetchFiltered(ctx, userID, filters)
	if err != nil {
		return nil, err
	}

	idToName := map[string]string{}
	if kind, ok := dimensionOptionKind[dimension]; ok {
		items, err := s.repos.Option.List(ctx, kind, &userID, false)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s names: %w", dimension, err)
		}
		for _, item := range items {
			idToName[item.ID.String()] = item.Name
		}
	}

	return GroupStatsByDimension(trades, dimension, idToName), nil
}

// Daily buckets the filtered set by UTC calendar day of the chosen date
// field
func (s *StatsService) Daily(ctx context.Context, userID uuid.UUID, dateField string, filters models.TradeFilters) ([]DailyStats, error) {
	switch dateField {
	case "", DateFieldTradeDate:
		dateField = DateFieldTradeDate
	case DateFieldOrderDate, DateFieldCreatedAt:
	default:
		return nil, fmt.Errorf("%w: %s", repositories.ErrInvalidInput, dateField)
	}

	trades, err := s.fetchFiltered(ctx, userID, filters)
	if err != nil {
		return nil, err
	}
	return GroupTradesByDate(trades, dateField), nil
}
