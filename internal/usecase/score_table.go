package usecase

import "github.com/greenlens/backend/internal/domain"

// Reasoning shared by both Amazon storefronts
const amazonReasoning = "Mixed sustainability practices. Some eco-friendly initiatives but room for improvement in packaging and supply chain transparency."

// defaultDomainScores is checked in order against the lowercased hostname; first match wins.
// A broader key (e.g. "amazon") would shadow the entries after it, so order is significant.
var defaultDomainScores = []domain.DomainScore{
	{
		Key: "amazon.com",
		Score: domain.SustainabilityScore{
			Overall:   domain.TierYellow,
			Score:     65,
			Factors:   domain.Factors{Environmental: 60, Social: 70, Governance: 65},
			Reasoning: amazonReasoning,
		},
	},
	{
		Key: "amazon.in",
		Score: domain.SustainabilityScore{
			Overall:   domain.TierYellow,
			Score:     65,
			Factors:   domain.Factors{Environmental: 60, Social: 70, Governance: 65},
			Reasoning: amazonReasoning,
		},
	},
	{
		Key: "flipkart.com",
		Score: domain.SustainabilityScore{
			Overall:   domain.TierYellow,
			Score:     58,
			Factors:   domain.Factors{Environmental: 55, Social: 65, Governance: 55},
			Reasoning: "Moderate sustainability efforts. Working on reducing packaging waste but needs better supplier sustainability standards.",
		},
	},
	{
		Key: "myntra.com",
		Score: domain.SustainabilityScore{
			Overall:   domain.TierRed,
			Score:     45,
			Factors:   domain.Factors{Environmental: 40, Social: 50, Governance: 45},
			Reasoning: "Limited sustainability initiatives in fast fashion. High environmental impact from frequent trend cycles and packaging.",
		},
	},
	{
		Key: "ajio.com",
		Score: domain.SustainabilityScore{
			Overall:   domain.TierRed,
			Score:     42,
			Factors:   domain.Factors{Environmental: 38, Social: 48, Governance: 40},
			Reasoning: "Fast fashion model with significant environmental concerns. Limited transparency in supply chain practices.",
		},
	},
	{
		Key: "nykaa.com",
		Score: domain.SustainabilityScore{
			Overall:   domain.TierYellow,
			Score:     62,
			Factors:   domain.Factors{Environmental: 58, Social: 68, Governance: 60},
			Reasoning: "Growing focus on sustainable beauty products but packaging and ingredient sourcing need improvement.",
		},
	},
}

// unknownRetailerScore is returned when no table key matches the hostname
var unknownRetailerScore = domain.SustainabilityScore{
	Overall:   domain.TierYellow,
	Score:     50,
	Factors:   domain.Factors{Environmental: 50, Social: 50, Governance: 50},
	Reasoning: "Limited sustainability information available for this retailer.",
}

// DefaultDomainScores returns a copy of the built-in domain score table
func DefaultDomainScores() []domain.DomainScore {
	return append([]domain.DomainScore(nil), defaultDomainScores...)
}

// DefaultScore returns the score used for retailers missing from the table
func DefaultScore() domain.SustainabilityScore {
	return unknownRetailerScore
}
