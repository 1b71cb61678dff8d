package services

import (
	"sort"
	"time"

	"tradebook-backend/internal/models"

	"github.com/shopspring/decimal"
)

// TradeStats is the aggregate block computed over one set of trades
type TradeStats struct {
	TotalTrades       int     `json:"totalTrades"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	Breakevens        int     `json:"breakevens"`
	WinRate           float64 `json:"winRate"`
	TotalProfitLoss   float64 `json:"totalProfitLoss"`
	TotalRMultiple    float64 `json:"totalRMultiple"`
	AvgRMultiple      float64 `json:"avgRMultiple"`
	LongestWinStreak  int     `json:"longestWinStreak"`
	LongestLossStreak int     `json:"longestLossStreak"`
	BestTrade         float64 `json:"bestTrade"`
	WorstTrade        float64 `json:"worstTrade"`
}

// DimensionStats is one bucket of a by-dimension breakdown
type DimensionStats struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	AvgTargetR float64    `json:"avgTargetR"`
	Stats      TradeStats `json:"stats"`
}

// DailyStats is one calendar-day bucket
type DailyStats struct {
	Date            string          `json:"date"`
	Count           int             `json:"count"`
	TotalProfitLoss float64         `json:"totalProfitLoss"`
	TotalRMultiple  float64         `json:"totalRMultiple"`
	Trades          []*models.Trade `json:"-"`
}

// CalculateStats aggregates one pass over the trades. Win/loss counts come
// from the stored label, never recomputed from the R value. Breakeven
// resets both streak counters.
func CalculateStats(trades []*models.Trade) TradeStats {
	stats := TradeStats{TotalTrades: len(trades)}
	if len(trades) == 0 {
		return stats
	}

	totalPL := decimal.Zero
	totalR := decimal.Zero
	best := trades[0].ActualExitR
	worst := trades[0].ActualExitR

	winStreak, lossStreak := 0, 0
	for _, trade := range trades {
		switch trade.WinLoss {
		case models.WinLossWin:
			stats.Wins++
			winStreak++
			lossStreak = 0
		case models.WinLossLoss:
			stats.Losses++
			lossStreak++
			winStreak = 0
		default:
			stats.Breakevens++
			winStreak = 0
			lossStreak = 0
		}
		if winStreak > stats.LongestWinStreak {
			stats.LongestWinStreak = winStreak
		}
		if lossStreak > stats.LongestLossStreak {
			stats.LongestLossStreak = lossStreak
		}

		totalPL = totalPL.Add(trade.ProfitLoss)
		totalR = totalR.Add(trade.ActualExitR)
		if trade.ActualExitR.GreaterThan(best) {
			best = trade.ActualExitR
		}
		if trade.ActualExitR.LessThan(worst) {
			worst = trade.ActualExitR
		}
	}

	stats.WinRate = float64(stats.Wins) / float64(stats.TotalTrades) * 100
	stats.TotalProfitLoss = totalPL.InexactFloat64()
	stats.TotalRMultiple = totalR.InexactFloat64()
	stats.AvgRMultiple = totalR.Div(decimal.NewFromInt(int64(stats.TotalTrades))).InexactFloat64()
	stats.BestTrade = best.InexactFloat64()
	stats.WorstTrade = worst.InexactFloat64()
	return stats
}

// Breakdown dimensions
const (
	DimensionCommodity      = "commodity"
	DimensionTimeframe      = "timeframe"
	DimensionTradeType      = "tradeType"
	DimensionTrendlineType  = "trendlineType"
	DimensionEntryType      = "entryType"
	DimensionTag            = "tag"
	DimensionPosition       = "position"
	DimensionWinLoss        = "winLoss"
	DimensionTradingSession = "tradingSession"
)

// ValidDimensions lists the supported by-dimension breakdown keys
var ValidDimensions = []string{
	DimensionCommodity,
	DimensionTimeframe,
	DimensionTradeType,
	DimensionTrendlineType,
	DimensionEntryType,
	DimensionTag,
	DimensionPosition,
	DimensionWinLoss,
	DimensionTradingSession,
}

// IsValidDimension reports whether the dimension key is supported
func IsValidDimension(dimension string) bool {
	for _, d := range ValidDimensions {
		if d == dimension {
			return true
		}
	}
	return false
}

// dimensionKeys returns the bucket keys one trade contributes to. A trade
// with no value for the dimension contributes nothing; entry types and tags
// fan the trade out into every bucket it belongs to.
func dimensionKeys(trade *models.Trade, dimension string) []string {
	switch dimension {
	case DimensionCommodity:
		if trade.CommodityID != nil {
			return []string{trade.CommodityID.String()}
		}
	case DimensionTimeframe:
		if trade.TimeframeID != nil {
			return []string{trade.TimeframeID.String()}
		}
	case DimensionTradeType:
		return []string{trade.TradeTypeID.String()}
	case DimensionTrendlineType:
		if trade.TrendlineTypeID != nil {
			return []string{trade.TrendlineTypeID.String()}
		}
	case DimensionEntryType:
		keys := make([]string, 0, len(trade.EntryTypes))
		for _, et := range trade.EntryTypes {
			keys = append(keys, et.ID.String())
		}
		return keys
	case DimensionTag:
		keys := make([]string, 0, len(trade.Tags))
		for _, tag := range trade.Tags {
			keys = append(keys, tag.ID.String())
		}
		return keys
	case DimensionPosition:
		return []string{trade.Position}
	case DimensionWinLoss:
		return []string{trade.WinLoss}
	case DimensionTradingSession:
		return []string{trade.TradingSession}
	}
	return nil
}

// GroupStatsByDimension buckets the trades by the given dimension and
// aggregates each bucket. idToName resolves id-keyed buckets to display
// names; an unresolvable id keeps the raw id as its name. Buckets with no
// trades never appear.
func GroupStatsByDimension(trades []*models.Trade, dimension string, idToName map[string]string) []DimensionStats {
	buckets := make(map[string][]*models.Trade)
	for _, trade := range trades {
		for _, key := range dimensionKeys(trade, dimension) {
			buckets[key] = append(buckets[key], trade)
		}
	}

	results := make([]DimensionStats, 0, len(buckets))
	for key, bucketTrades := range buckets {
		name := key
		if resolved, ok := idToName[key]; ok {
			name = resolved
		}

		totalTargetR := decimal.Zero
		for _, trade := range bucketTrades {
			totalTargetR = totalTargetR.Add(trade.TargetR)
		}
		avgTargetR := totalTargetR.Div(decimal.NewFromInt(int64(len(bucketTrades)))).InexactFloat64()

		results = append(results, DimensionStats{
			ID:         key,
			Name:       name,
			AvgTargetR: avgTargetR,
			Stats:      CalculateStats(bucketTrades),
		})
	}
	return results
}

// Date fields usable for daily grouping
const (
	DateFieldTradeDate = "tradeDate"
	DateFieldOrderDate = "orderDate"
	DateFieldCreatedAt = "createdAt"
)

func dailyBucketDate(trade *models.Trade, dateField string) time.Time {
	switch dateField {
	case DateFieldOrderDate:
		return trade.OrderDate
	case DateFieldCreatedAt:
		return trade.CreatedAt
	default:
		return trade.TradeDate
	}
}

// GroupTradesByDate buckets the trades by UTC calendar day of the chosen
// date field, ascending
func GroupTradesByDate(trades []*models.Trade, dateField string) []DailyStats {
	buckets := make(map[string]*DailyStats)
	for _, trade := range trades {
		day := dailyBucketDate(trade, dateField).UTC().Format("2006-01-02")
		bucket, ok := buckets[day]
		if !ok {
			bucket = &DailyStats{Date: day}
			buckets[day] = bucket
		}
		bucket.Count++
		bucket.Trades = append(bucket.Trades, trade)
	}

	results := make([]DailyStats, 0, len(buckets))
	for _, bucket := range buckets {
		totalPL := decimal.Zero
		totalR := decimal.Zero
		for _, trade := range bucket.Trades {
			totalPL = totalPL.Add(trade.ProfitLoss)
			totalR = totalR.Add(trade.ActualExitR)
		}
		bucket.TotalProfitLoss = totalPL.InexactFloat64()
		bucket.TotalRMultiple = totalR.InexactFloat64()
		results = append(results, *bucket)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Date < results[j].Date })
	return results
}
