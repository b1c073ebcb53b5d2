package domain

import (
	"regexp"
	"strings"
)

// Tier is the qualitative sustainability rating shown on the badge
type Tier string

const (
	TierGreen  Tier = "green"
	TierYellow Tier = "yellow"
	TierRed    Tier = "red"
)

// Label returns the tier capitalized for display (e.g. "Yellow")
func (t Tier) Label() string {
	if t == "" {
		return ""
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Valid reports whether t is one of the known tiers
func (t Tier) Valid() bool {
	switch t {
	case TierGreen, TierYellow, TierRed:
		return true
	}
	return false
}

// SustainabilityScore is an immutable composite rating for a retailer or product
type SustainabilityScore struct {
	Overall   Tier    `json:"overall"`
	Score     int     `json:"score"` // 0-100
	Factors   Factors `json:"factors"`
	Reasoning string  `json:"reasoning"`
}

// Factors holds the environmental, social and governance sub-scores (0-100 each)
type Factors struct {
	Environmental int `json:"environmental"`
	Social        int `json:"social"`
	Governance    int `json:"governance"`
}

// DomainScore is one row of the domain score table.
// Key is compared by substring containment against a lowercased hostname.
type DomainScore struct {
	Key   string
	Score SustainabilityScore
}

// ProductPagePattern recognises single-item listing URLs for one retailer
type ProductPagePattern struct {
	Retailer string
	Pattern  *regexp.Regexp
}

// Annotation is what the page overlay renders for a URL
type Annotation struct {
	URL            string               `json:"url"`
	ProductPage    bool                 `json:"productPage"`
	Retailer       string               `json:"retailer,omitempty"`
	RetailerDomain string               `json:"retailerDomain,omitempty"`
	Score          *SustainabilityScore `json:"score,omitempty"`
	Badge          string               `json:"badge,omitempty"`
}

// PageSnapshot is the last classification written for the popup to pick up
type PageSnapshot struct {
	CurrentScore SustainabilityScore `json:"currentScore"`
	CurrentURL   string              `json:"currentUrl"`
	Timestamp    int64               `json:"timestamp"` // Unix milliseconds
}
