package catalog

import "github.com/greenlens/backend/internal/domain"

// StaticCatalog serves the built-in alternative and reward catalogs.
// Callers receive copies; the backing data is never mutated.
type StaticCatalog struct {
	alternatives []domain.AlternativeProduct
	rewards      []domain.RewardOffer
}

// NewStaticCatalog creates a catalog over the built-in data
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{
		alternatives: builtinAlternatives,
		rewards:      builtinRewards,
	}
}

// NewCatalog creates a catalog over the given data (copied)
func NewCatalog(alternatives []domain.AlternativeProduct, rewards []domain.RewardOffer) *StaticCatalog {
	return &StaticCatalog{
		alternatives: copyAlternatives(alternatives),
		rewards:      append([]domain.RewardOffer(nil), rewards...),
	}
}

// Alternatives returns a copy of the alternative products
func (c *StaticCatalog) Alternatives() []domain.AlternativeProduct {
	return copyAlternatives(c.alternatives)
}

// Rewards returns a copy of the reward offers
func (c *StaticCatalog) Rewards() []domain.RewardOffer {
	return append([]domain.RewardOffer(nil), c.rewards...)
}

func copyAlternatives(in []domain.AlternativeProduct) []domain.AlternativeProduct {
	out := make([]domain.AlternativeProduct, len(in))
	for i, alt := range in {
		out[i] = copyAlternative(alt)
	}
	return out
}

func copyAlternative(alt domain.AlternativeProduct) domain.AlternativeProduct {
	alt.Certifications = append([]string(nil), alt.Certifications...)
	return alt
}

var builtinAlternatives = []domain.AlternativeProduct{
	{
		ID:            "alt-1",
		Name:          "Organic Cotton Basic T-Shirt",
		Brand:         "EcoWear",
		Price:         899,
		OriginalPrice: 1299,
		Discount:      31,
		SustainabilityScore: domain.SustainabilityScore{
			Overall:   domain.TierGreen,
			Score:     92,
			Factors:   domain.Factors{Environmental: 95, Social: 90, Governance: 91},
			Reasoning: "Made from 100% organic cotton with fair trade certification. Zero-waste manufacturing process.",
		},
		ImageURL:       "https://placehold.co/300x300?text=Organic+Cotton+T-Shirt",
		ProductURL:     "https://ecowear.com/organic-tshirt",
		Certifications: []string{"GOTS Certified", "Fair Trade", "Carbon Neutral"},
		ImpactMetrics: domain.ImpactMetrics{
			CarbonFootprint: "2.1 kg CO₂ saved",
			WaterSaved:      "2,700L saved",
			PlasticReduced:  "15g plastic avoided",
		},
	},
	{
		ID:            "alt-2",
		Name:          "Recycled Polyester Sneakers",
		Brand:         "GreenStep",
		Price:         2499,
		OriginalPrice: 3499,
		Discount:      29,
		SustainabilityScore: domain.SustainabilityScore{
			Overall:   domain.TierGreen,
			Score:     88,
			Factors:   domain.Factors{Environmental: 92, Social: 85, Governance: 87},
			Reasoning: "Made from 85% recycled ocean plastic. Ethical manufacturing with living wage guarantee.",
		},
		ImageURL:       "https://placehold.co/300x300?text=Recycled+Sneakers",
		ProductURL:     "https://greenstep.com/recycled-sneakers",
		Certifications: []string{"Ocean Positive", "B-Corp Certified", "Vegan"},
		ImpactMetrics: domain.ImpactMetrics{
			CarbonFootprint: "5.2 kg CO₂ saved",
			WaterSaved:      "1,200L saved",
			PlasticReduced:  "12 bottles recycled",
		},
	},
	{
		ID:            "alt-3",
		Name:          "Bamboo Fiber Activewear Set",
		Brand:         "NatureFit",
		Price:         1799,
		OriginalPrice: 2299,
		Discount:      22,
		SustainabilityScore: domain.SustainabilityScore{
			Overall:   domain.TierGreen,
			Score:     90,
			Factors:   domain.Factors{Environmental: 94, Social: 88, Governance: 88},
			Reasoning: "Bamboo fiber is naturally antibacterial and biodegradable. Sustainable farming practices.",
		},
		ImageURL:       "https://placehold.co/300x300?text=Bamboo+Activewear",
		ProductURL:     "https://naturefit.com/bamboo-set",
		Certifications: []string{"FSC Certified", "OEKO-TEX", "Climate Neutral"},
		ImpactMetrics: domain.ImpactMetrics{
			CarbonFootprint: "3.8 kg CO₂ saved",
			WaterSaved:      "4,500L saved",
			PlasticReduced:  "25g microplastic avoided",
		},
	},
}

var builtinRewards = []domain.RewardOffer{
	{
		ID:              "reward-1",
		Title:           "20% Off Sustainable Fashion",
		Description:     "Get 20% off your first purchase from verified sustainable fashion brands",
		DiscountCode:    "SUSTAIN20",
		DiscountPercent: 20,
		ValidUntil:      "2024-12-31",
		Brand:           "EcoWear",
	},
	{
		ID:              "reward-2",
		Title:           "Free Shipping on Eco Products",
		Description:     "Free shipping on all eco-friendly products over ₹999",
		DiscountCode:    "ECOFREE",
		DiscountPercent: 0,
		ValidUntil:      "2024-12-31",
		Brand:           "GreenStep",
	},
	{
		ID:              "reward-3",
		Title:           "₹500 Cashback",
		Description:     "Get ₹500 cashback when you switch to sustainable alternatives",
		DiscountCode:    "SWITCH500",
		DiscountPercent: 0,
		ValidUntil:      "2024-12-31",
		Brand:           "NatureFit",
	},
}
