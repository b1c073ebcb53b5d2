package usecase

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/greenlens/backend/internal/domain"
	"github.com/weppos/publicsuffix-go/publicsuffix"
)

// Classifier maps URLs to sustainability scores using an ordered domain table
type Classifier struct {
	table []domain.DomainScore
}

// defaultClassifier backs the package-level Classify
var defaultClassifier = NewClassifier(defaultDomainScores)

// NewClassifier creates a classifier over a copy of the given table.
// Table order is preserved: the first key contained in the hostname wins.
func NewClassifier(table []domain.DomainScore) *Classifier {
	return &Classifier{
		table: append([]domain.DomainScore(nil), table...),
	}
}

// Classify returns the sustainability score for an absolute URL using the built-in table
func Classify(rawURL string) (domain.SustainabilityScore, error) {
	return defaultClassifier.Classify(rawURL)
}

// Classify extracts the hostname of rawURL and looks it up in the table.
// Returns domain.ErrMalformedURL if rawURL is not an absolute URL.
func (c *Classifier) Classify(rawURL string) (domain.SustainabilityScore, error) {
	host, err := Hostname(rawURL)
	if err != nil {
		return domain.SustainabilityScore{}, err
	}
	return c.Lookup(host), nil
}

// Lookup returns the score of the first table key contained in hostname,
// or the default score when none matches.
func (c *Classifier) Lookup(hostname string) domain.SustainabilityScore {
	hostname = strings.ToLower(hostname)
	for _, entry := range c.table {
		if strings.Contains(hostname, entry.Key) {
			return entry.Score
		}
	}
	return unknownRetailerScore
}

// hostSchemes must carry a host; "https:amazon.com" is read as "https://amazon.com"
var hostSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
	"ftp":   true,
}

// Hostname parses rawURL and returns its lowercased hostname (no port, no userinfo)
func Hostname(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedURL, err)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("%w: %q is not an absolute URL", domain.ErrMalformedURL, rawURL)
	}
	if !hostSchemes[u.Scheme] {
		return strings.ToLower(u.Hostname()), nil
	}

	if u.Opaque != "" {
		u, err = url.Parse(u.Scheme + "://" + trimmed[len(u.Scheme)+1:])
		if err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrMalformedURL, err)
		}
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q has no host", domain.ErrMalformedURL, rawURL)
	}
	return strings.ToLower(u.Hostname()), nil
}

// RegistrableDomain returns the eTLD+1 of host (e.g. "amazon.co.uk"), or "" if it has none
func RegistrableDomain(host string) string {
	if host == "" || !strings.Contains(host, ".") || net.ParseIP(host) != nil {
		return ""
	}
	d, err := publicsuffix.Domain(host)
	if err != nil {
		return ""
	}
	return d
}
