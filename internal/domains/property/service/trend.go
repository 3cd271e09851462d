package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"estate/internal/domains/property/model"
	"estate/internal/domains/property/model/dto"
	"estate/shared"
	"estate/shared/constant"
	gDto "estate/shared/dto"
	"estate/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	trendWeeks = 9

	trendBasePrice       = 15000.0
	trendBasePerPrefix   = 50.0
	trendFallbackPrefix  = 100
	trendSeasonAmplitude = 0.05
	trendSeasonFrequency = 0.5
	trendSynthAmplitude  = 0.08
	trendSynthFrequency  = 0.7
	trendSynthGrowth     = 0.01

	trendLabelFormat = "Jan 2"
)

// EstimateTrend synthesizes a weekly price series for an area code. Weeks
// with matching listings average their prices; empty weeks fall back to a
// deterministic synthetic curve seeded by the numeric zip prefix. A display
// heuristic, not a pricing model.
func (s *serviceImpl) EstimateTrend(ctx context.Context, zipPrefix string) (res dto.TrendResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EstimateTrend")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheTrendProperty, zipPrefix)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for price trend")

		return res, nil
	}

	properties, err := s.repo.GetAll(ctx, gDto.QueryParams{}, trendFilter(zipPrefix))
	if err != nil {
		log.Error().Err(err).Msg("failed to get properties for trend")

		return res, fmt.Errorf("failed to get properties for trend: %w", err)
	}

	res = buildTrend(properties, zipPrefix, timezone.Now())

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save price trend to cache")
		}
	}()

	return res, nil
}

func trendFilter(zipPrefix string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{ArgName: "trend_approved", Field: model.FieldIsApproved, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{ArgName: "trend_location", Field: model.FieldLocation, Value: zipPrefix, Operator: gDto.FilterOperatorLike, Table: model.TableName},
					gDto.Filter{ArgName: "trend_address", Field: model.FieldAddress, Value: zipPrefix, Operator: gDto.FilterOperatorLike, Table: model.TableName},
					gDto.Filter{ArgName: "trend_city", Field: model.FieldCity, Value: zipPrefix, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				},
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func buildTrend(properties []model.Property, zipPrefix string, now time.Time) dto.TrendResponse {
	res := dto.TrendResponse{
		ZipCode:    zipPrefix,
		Labels:     make([]string, 0, trendWeeks),
		Prices:     make([]float64, 0, trendWeeks),
		SampleSize: len(properties),
	}

	prefix := numericPrefix(zipPrefix)

	for i := trendWeeks - 1; i >= 0; i-- {
		weekDate := now.AddDate(0, 0, -7*i)
		res.Labels = append(res.Labels, weekDate.Format(trendLabelFormat))

		sum := 0.0
		count := 0
		for _, prop := range properties {
			if !prop.CreatedAt.After(weekDate) {
				sum += prop.Price
				count++
			}
		}

		week := float64(i)

		var price float64
		if count > 0 {
			price = (sum / float64(count)) * (1 + math.Sin(week*trendSeasonFrequency)*trendSeasonAmplitude)
		} else {
			base := trendBasePrice + trendBasePerPrefix*float64(prefix)
			price = base * (1 + math.Sin(week*trendSynthFrequency)*trendSynthAmplitude) * (1 + trendSynthGrowth*week)
		}

		res.Prices = append(res.Prices, math.Round(price))
	}

	res.Statistics = trendStatistics(res.Prices)

	return res
}

func trendStatistics(prices []float64) dto.TrendStatistics {
	stats := dto.TrendStatistics{Trend: "increasing"}
	if len(prices) == 0 {
		return stats
	}

	sum := 0.0
	stats.Min = prices[0]
	stats.Max = prices[0]

	for _, p := range prices {
		sum += p
		stats.Min = math.Min(stats.Min, p)
		stats.Max = math.Max(stats.Max, p)
	}

	stats.Average = math.Round(sum / float64(len(prices)))

	first := prices[0]
	last := prices[len(prices)-1]
	stats.PriceChange = last - first

	if first != 0 {
		stats.PercentChange = math.Round(stats.PriceChange/first*1000) / 10
	}

	if stats.PriceChange < 0 {
		stats.Trend = "decreasing"
	}

	return stats
}

// numericPrefix reads the leading digits of an area code, at most three.
// Area codes without a usable numeric prefix fall back to 100.
func numericPrefix(zip string) int {
	digits := zip
	if len(digits) > 3 {
		digits = digits[:3]
	}

	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}

	n, err := strconv.Atoi(digits[:end])
	if err != nil || n <= 0 {
		return trendFallbackPrefix
	}

	return n
}
