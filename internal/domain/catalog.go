package domain

// AlternativeProduct is a more sustainable product suggested in the popup
type AlternativeProduct struct {
	ID                  string              `json:"id"`
	Name                string              `json:"name"`
	Brand               string              `json:"brand"`
	Price               int                 `json:"price"`
	OriginalPrice       int                 `json:"originalPrice"`
	Discount            int                 `json:"discount"` // percent
	SustainabilityScore SustainabilityScore `json:"sustainabilityScore"`
	ImageURL            string              `json:"imageUrl"`
	ProductURL          string              `json:"productUrl"`
	Certifications      []string            `json:"certifications"`
	ImpactMetrics       ImpactMetrics       `json:"impactMetrics"`
}

// ImpactMetrics are display strings such as "2.1 kg CO₂ saved"
type ImpactMetrics struct {
	CarbonFootprint string `json:"carbonFootprint"`
	WaterSaved      string `json:"waterSaved"`
	PlasticReduced  string `json:"plasticReduced"`
}

// RewardOffer is a coupon offered for switching to a sustainable alternative
type RewardOffer struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DiscountCode    string `json:"discountCode"`
	DiscountPercent int    `json:"discountPercent"`
	ValidUntil      string `json:"validUntil"`
	Brand           string `json:"brand"`
}

// ImpactSummary totals the impact metrics of a set of alternatives
type ImpactSummary struct {
	CarbonSavedKg       float64 `json:"carbonSavedKg"`
	WaterSavedLiters    int     `json:"waterSavedLiters"`
	PlasticReducedGrams int     `json:"plasticReducedGrams"`
	CarbonDisplay       string  `json:"carbonDisplay"`
	WaterDisplay        string  `json:"waterDisplay"`
	PlasticDisplay      string  `json:"plasticDisplay"`
}

// PopupView is everything the popup window renders
type PopupView struct {
	URL          string               `json:"url"`
	Score        SustainabilityScore  `json:"score"`
	ScoreLabel   string               `json:"scoreLabel"`
	Alternatives []AlternativeProduct `json:"alternatives"`
	Reward       *RewardOffer         `json:"reward,omitempty"`
	Impact       ImpactSummary        `json:"impact"`
}

// Message is a request sent over the extension message channel
type Message struct {
	Action string `json:"action" binding:"required"`
}

// ActionOpenPopup asks the extension to open its popup window
const ActionOpenPopup = "openPopup"
