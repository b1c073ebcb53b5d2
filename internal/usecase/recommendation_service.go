package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/greenlens/backend/internal/domain"
	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Patterns for pulling the leading quantity out of impact display strings
var (
	carbonAmountRegex  = regexp.MustCompile(`(\d+\.?\d*)`)
	waterAmountRegex   = regexp.MustCompile(`(\d+,?\d*)`)
	plasticAmountRegex = regexp.MustCompile(`(\d+)`)
)

var displayPrinter = message.NewPrinter(language.English)

// RecommendationService samples alternatives and rewards from the fixed catalogs
type RecommendationService struct {
	catalog domain.CatalogRepository
}

// NewRecommendationService creates a recommendation service over a catalog
func NewRecommendationService(catalog domain.CatalogRepository) *RecommendationService {
	return &RecommendationService{catalog: catalog}
}

// Alternatives returns up to count distinct alternatives in random order.
// A count larger than the catalog returns the whole catalog, shuffled.
func (s *RecommendationService) Alternatives(count int) ([]domain.AlternativeProduct, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: alternative count must not be negative, got %d", domain.ErrInvalidRequest, count)
	}
	if count == 0 {
		return []domain.AlternativeProduct{}, nil
	}
	return lo.Samples(s.catalog.Alternatives(), count), nil
}

// Reward returns one reward offer picked at random
func (s *RecommendationService) Reward() (*domain.RewardOffer, error) {
	rewards := s.catalog.Rewards()
	if len(rewards) == 0 {
		return nil, domain.ErrCatalogEmpty
	}
	reward := lo.Sample(rewards)
	return &reward, nil
}

// SummarizeImpact totals the impact metrics of the given alternatives.
// Metrics without a leading number contribute zero.
func SummarizeImpact(alternatives []domain.AlternativeProduct) domain.ImpactSummary {
	carbon := lo.SumBy(alternatives, func(alt domain.AlternativeProduct) float64 {
		return parseCarbon(alt.ImpactMetrics.CarbonFootprint)
	})
	water := lo.SumBy(alternatives, func(alt domain.AlternativeProduct) int {
		return parseWater(alt.ImpactMetrics.WaterSaved)
	})
	plastic := lo.SumBy(alternatives, func(alt domain.AlternativeProduct) int {
		return parsePlastic(alt.ImpactMetrics.PlasticReduced)
	})

	return domain.ImpactSummary{
		CarbonSavedKg:       carbon,
		WaterSavedLiters:    water,
		PlasticReducedGrams: plastic,
		CarbonDisplay:       fmt.Sprintf("%.1f kg", carbon),
		WaterDisplay:        displayPrinter.Sprintf("%d L", water),
		PlasticDisplay:      fmt.Sprintf("%d g", plastic),
	}
}

func parseCarbon(s string) float64 {
	m := carbonAmountRegex.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(m, "."), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseWater reads "2,700L saved" as 2700. Only the first thousands separator is kept.
func parseWater(s string) int {
	m := waterAmountRegex.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.Atoi(strings.Replace(m, ",", "", 1))
	if err != nil {
		return 0
	}
	return v
}

func parsePlastic(s string) int {
	m := plasticAmountRegex.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return v
}
