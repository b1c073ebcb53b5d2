package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/greenlens/backend/internal/domain"
	"github.com/greenlens/backend/internal/logger"
	"github.com/sirupsen/logrus"
)

// DefaultPopupURL is classified when the popup has no page URL to work with
const DefaultPopupURL = "https://amazon.com/product/example"

// SustainabilityServiceConfig holds configuration for the sustainability service
type SustainabilityServiceConfig struct {
	PopupAlternatives int
	DefaultPopupURL   string
	Classifier        *Classifier
	Detector          *PageDetector
}

// SustainabilityService ties the classifier and detector to the snapshot store,
// the catalogs and the extension message channel.
type SustainabilityService struct {
	classifier        *Classifier
	detector          *PageDetector
	recommendations   *RecommendationService
	snapshots         domain.SnapshotStore
	messenger         domain.Messenger
	popupAlternatives int
	defaultPopupURL   string
	now               func() time.Time
	log               *logrus.Entry
}

// NewSustainabilityService creates a new sustainability service with dependencies.
// snapshots and messenger may be nil.
func NewSustainabilityService(
	snapshots domain.SnapshotStore,
	messenger domain.Messenger,
	catalog domain.CatalogRepository,
	config SustainabilityServiceConfig,
) *SustainabilityService {
	classifier := config.Classifier
	if classifier == nil {
		classifier = defaultClassifier
	}

	detector := config.Detector
	if detector == nil {
		detector = defaultDetector
	}

	popupAlternatives := config.PopupAlternatives
	if popupAlternatives <= 0 {
		popupAlternatives = 2
	}

	defaultURL := config.DefaultPopupURL
	if defaultURL == "" {
		defaultURL = DefaultPopupURL
	}

	return &SustainabilityService{
		classifier:        classifier,
		detector:          detector,
		recommendations:   NewRecommendationService(catalog),
		snapshots:         snapshots,
		messenger:         messenger,
		popupAlternatives: popupAlternatives,
		defaultPopupURL:   defaultURL,
		now:               time.Now,
		log:               logger.WithComponent("sustainability"),
	}
}

// Annotate decides whether rawURL is a product page and, if so, classifies it
// and records the result as the current page snapshot.
// Flow: detect -> classify -> store snapshot -> return badge annotation
func (s *SustainabilityService) Annotate(ctx context.Context, rawURL string) (*domain.Annotation, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, domain.ErrInvalidRequest
	}

	annotation := &domain.Annotation{URL: rawURL}

	retailer, ok := s.detector.Detect(rawURL)
	if !ok {
		s.log.WithField("url", rawURL).Debug("Not a product page, skipping annotation")
		return annotation, nil
	}

	host, err := Hostname(rawURL)
	if err != nil {
		return nil, err
	}
	score := s.classifier.Lookup(host)

	annotation.ProductPage = true
	annotation.Retailer = retailer
	annotation.RetailerDomain = RegistrableDomain(host)
	annotation.Score = &score
	annotation.Badge = "Sustainability: " + score.Overall.Label()

	s.log.WithFields(logrus.Fields{
		"url":      rawURL,
		"retailer": retailer,
		"overall":  score.Overall,
		"score":    score.Score,
	}).Debug("Annotated product page")

	s.saveSnapshot(ctx, rawURL, score)

	return annotation, nil
}

// Classify returns the score for rawURL without the product page check
func (s *SustainabilityService) Classify(ctx context.Context, rawURL string) (domain.SustainabilityScore, error) {
	if strings.TrimSpace(rawURL) == "" {
		return domain.SustainabilityScore{}, domain.ErrInvalidRequest
	}
	return s.classifier.Classify(rawURL)
}

// Detect reports whether rawURL is a product page and for which retailer
func (s *SustainabilityService) Detect(ctx context.Context, rawURL string) (string, bool) {
	return s.detector.Detect(rawURL)
}

// Popup builds the popup view for rawURL.
// An empty rawURL falls back to the last stored snapshot, then to the default URL.
// alternatives <= 0 uses the configured count.
func (s *SustainabilityService) Popup(ctx context.Context, rawURL string, alternatives int) (*domain.PopupView, error) {
	if alternatives <= 0 {
		alternatives = s.popupAlternatives
	}

	pageURL := s.resolvePopupURL(ctx, rawURL)

	score, err := s.classifier.Classify(pageURL)
	if err != nil {
		return nil, err
	}

	alts, err := s.recommendations.Alternatives(alternatives)
	if err != nil {
		return nil, err
	}

	reward, err := s.recommendations.Reward()
	if err != nil {
		// Popup still renders without a reward
		s.log.WithError(err).Warn("No reward offer available")
		reward = nil
	}

	return &domain.PopupView{
		URL:          pageURL,
		Score:        score,
		ScoreLabel:   fmt.Sprintf("%s (%d/100)", score.Overall.Label(), score.Score),
		Alternatives: alts,
		Reward:       reward,
		Impact:       SummarizeImpact(alts),
	}, nil
}

// CurrentSnapshot returns the most recently stored page snapshot
func (s *SustainabilityService) CurrentSnapshot(ctx context.Context) (*domain.PageSnapshot, error) {
	if s.snapshots == nil {
		return nil, domain.ErrSnapshotNotFound
	}
	return s.snapshots.Latest(ctx)
}

// OpenPopup asks the extension to open its popup window
func (s *SustainabilityService) OpenPopup(ctx context.Context) error {
	return s.Dispatch(ctx, domain.Message{Action: domain.ActionOpenPopup})
}

// Dispatch forwards a message to the extension message channel
func (s *SustainabilityService) Dispatch(ctx context.Context, msg domain.Message) error {
	if msg.Action != domain.ActionOpenPopup {
		return fmt.Errorf("%w: %q", domain.ErrUnknownAction, msg.Action)
	}
	if s.messenger == nil {
		return domain.ErrMessagingUnavailable
	}
	if err := s.messenger.Send(ctx, msg); err != nil {
		if errors.Is(err, domain.ErrMessagingUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrMessagingUnavailable, err)
	}
	return nil
}

func (s *SustainabilityService) resolvePopupURL(ctx context.Context, rawURL string) string {
	if u := strings.TrimSpace(rawURL); u != "" {
		return u
	}

	snapshot, err := s.CurrentSnapshot(ctx)
	if err == nil && snapshot != nil && snapshot.CurrentURL != "" {
		return snapshot.CurrentURL
	}
	if err != nil && !errors.Is(err, domain.ErrSnapshotNotFound) {
		s.log.WithError(err).Warn("Could not read current page snapshot, using default URL")
	}

	return s.defaultPopupURL
}

// saveSnapshot stores the classification for the popup.
// Failures are logged and never surface to the caller.
func (s *SustainabilityService) saveSnapshot(ctx context.Context, rawURL string, score domain.SustainabilityScore) {
	if s.snapshots == nil {
		return
	}

	snapshot := &domain.PageSnapshot{
		CurrentScore: score,
		CurrentURL:   rawURL,
		Timestamp:    s.now().UnixMilli(),
	}

	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		s.log.WithError(err).WithField("url", rawURL).Warn("Failed to store page snapshot")
	}
}
