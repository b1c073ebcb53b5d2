package usecase

import (
	"regexp"

	"github.com/greenlens/backend/internal/domain"
)

// Product page patterns, tested in order against the raw URL.
// Supporting a new retailer means appending its patterns here.
var productPagePatterns = []domain.ProductPagePattern{
	// Amazon
	{Retailer: "amazon", Pattern: regexp.MustCompile(`amazon\.(com|in).*/dp/`)},
	{Retailer: "amazon", Pattern: regexp.MustCompile(`amazon\.(com|in).*/gp/product/`)},
	{Retailer: "amazon", Pattern: regexp.MustCompile(`amazon\.(com|in).*/product/`)},

	// Flipkart
	{Retailer: "flipkart", Pattern: regexp.MustCompile(`flipkart\.com.*/p/`)},
	{Retailer: "flipkart", Pattern: regexp.MustCompile(`flipkart\.com.*/product/`)},

	// Myntra
	{Retailer: "myntra", Pattern: regexp.MustCompile(`myntra\.com.*/\d+/buy`)},
	{Retailer: "myntra", Pattern: regexp.MustCompile(`myntra\.com.*/product/`)},

	// Ajio
	{Retailer: "ajio", Pattern: regexp.MustCompile(`ajio\.com.*/p/`)},

	// Nykaa
	{Retailer: "nykaa", Pattern: regexp.MustCompile(`nykaa\.com.*/p/`)},
	{Retailer: "nykaa", Pattern: regexp.MustCompile(`nykaa\.com.*/product/`)},
}

// PageDetector decides whether a URL is a single-item product listing
type PageDetector struct {
	patterns []domain.ProductPagePattern
}

var defaultDetector = NewPageDetector(productPagePatterns)

// NewPageDetector creates a detector over a copy of the given pattern set
func NewPageDetector(patterns []domain.ProductPagePattern) *PageDetector {
	return &PageDetector{
		patterns: append([]domain.ProductPagePattern(nil), patterns...),
	}
}

// IsProductPage reports whether rawURL matches the built-in product page patterns
func IsProductPage(rawURL string) bool {
	return defaultDetector.IsProductPage(rawURL)
}

// DefaultProductPagePatterns returns a copy of the built-in pattern set
func DefaultProductPagePatterns() []domain.ProductPagePattern {
	return append([]domain.ProductPagePattern(nil), productPagePatterns...)
}

// IsProductPage reports whether any pattern matches rawURL
func (d *PageDetector) IsProductPage(rawURL string) bool {
	_, ok := d.Detect(rawURL)
	return ok
}

// Detect returns the retailer of the first pattern matching rawURL
func (d *PageDetector) Detect(rawURL string) (string, bool) {
	for _, p := range d.patterns {
		if p.Pattern.MatchString(rawURL) {
			return p.Retailer, true
		}
	}
	return "", false
}
