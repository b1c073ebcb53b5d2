package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/greenlens/backend/internal/domain"
	"github.com/greenlens/backend/internal/logger"
	"github.com/greenlens/backend/internal/usecase"
	"github.com/sirupsen/logrus"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	sustainability *usecase.SustainabilityService
	log            *logrus.Entry
}

// NewHandler creates a new HTTP handler. A nil service makes the
// sustainability endpoints answer 501.
func NewHandler(sustainability *usecase.SustainabilityService) *Handler {
	return &Handler{
		sustainability: sustainability,
		log:            logger.WithComponent("http"),
	}
}

// URLRequest is the body accepted by the URL based endpoints
type URLRequest struct {
	URL string `json:"url" binding:"required"`
}

// ProductPageResponse is returned by the product page check
type ProductPageResponse struct {
	URL         string `json:"url"`
	ProductPage bool   `json:"productPage"`
	Retailer    string `json:"retailer,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "greenlens-backend",
		"version": "1.0.0",
	})
}

// Annotate handles product page annotation requests
func (h *Handler) Annotate(c *gin.Context) {
	req, ok := h.bindURL(c)
	if !ok {
		return
	}

	annotation, err := h.sustainability.Annotate(c.Request.Context(), req.URL)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, annotation)
}

// Classify handles sustainability classification requests
func (h *Handler) Classify(c *gin.Context) {
	req, ok := h.bindURL(c)
	if !ok {
		return
	}

	score, err := h.sustainability.Classify(c.Request.Context(), req.URL)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}

// ProductPage reports whether a URL is a supported product page
func (h *Handler) ProductPage(c *gin.Context) {
	req, ok := h.bindURL(c)
	if !ok {
		return
	}

	retailer, isProduct := h.sustainability.Detect(c.Request.Context(), req.URL)
	c.JSON(http.StatusOK, ProductPageResponse{
		URL:         req.URL,
		ProductPage: isProduct,
		Retailer:    retailer,
	})
}

// Popup renders the popup view: score, alternatives, reward and impact totals
func (h *Handler) Popup(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	alternatives := 0
	if raw := c.Query("alternatives"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "alternatives must be a non-negative integer",
			})
			return
		}
		alternatives = n
	}

	view, err := h.sustainability.Popup(c.Request.Context(), c.Query("url"), alternatives)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// CurrentSnapshot returns the last annotated product page
func (h *Handler) CurrentSnapshot(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	snapshot, err := h.sustainability.CurrentSnapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// SendMessage forwards an extension message such as openPopup
func (h *Handler) SendMessage(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var msg domain.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.sustainability.Dispatch(c.Request.Context(), msg); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status": "accepted",
		"action": msg.Action,
	})
}

// bindURL checks the service is wired and decodes a URLRequest body
func (h *Handler) bindURL(c *gin.Context) (*URLRequest, bool) {
	if !h.configured(c) {
		return nil, false
	}

	var req URLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return nil, false
	}

	return &req, true
}

func (h *Handler) configured(c *gin.Context) bool {
	if h.sustainability != nil {
		return true
	}
	c.JSON(http.StatusNotImplemented, gin.H{
		"error": "Sustainability service not configured",
	})
	return false
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrMalformedURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed URL", "details": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
	case errors.Is(err, domain.ErrUnknownAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action", "details": err.Error()})
	case errors.Is(err, domain.ErrSnapshotNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No product page has been annotated yet"})
	case errors.Is(err, domain.ErrMessagingUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Extension messaging unavailable"})
	default:
		h.log.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
