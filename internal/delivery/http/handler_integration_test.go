package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/greenlens/backend/config"
	"github.com/greenlens/backend/internal/domain"
	"github.com/greenlens/backend/internal/infrastructure/cache"
	"github.com/greenlens/backend/internal/infrastructure/catalog"
	"github.com/greenlens/backend/internal/infrastructure/store"
	"github.com/greenlens/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"chrome-extension://*", "http://localhost:3000"},
		},
		Store: config.StoreConfig{
			Type: "memory",
		},
	}
}

// setupTestRouter creates a router whose handler has no service wired
func setupTestRouter() *gin.Engine {
	handler := NewHandler(nil)
	if handler == nil {
		panic("setupTestRouter: NewHandler returned nil")
	}

	router := SetupRouter(testConfig(), handler)
	if router == nil {
		panic("setupTestRouter: SetupRouter returned nil *gin.Engine")
	}

	return router
}

// mockMessenger records messages sent to the extension
type mockMessenger struct {
	sent    []domain.Message
	sendErr error
}

func (m *mockMessenger) Send(ctx context.Context, msg domain.Message) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

// setupTestRouterWithService wires a real service over the in-memory store
func setupTestRouterWithService(t *testing.T, messenger domain.Messenger) *gin.Engine {
	t.Helper()

	memory := cache.NewMemoryCache()
	t.Cleanup(func() { memory.Close() })

	svc := usecase.NewSustainabilityService(
		store.NewSnapshotStore(memory, time.Hour),
		messenger,
		catalog.NewStaticCatalog(),
		usecase.SustainabilityServiceConfig{PopupAlternatives: 2},
	)

	return SetupRouter(testConfig(), NewHandler(svc))
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to unmarshal response %q: %v", w.Body.String(), err)
	}
}

// TestHealthCheckEndpoint tests the health check endpoint
func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		router := setupTestRouter()

		w := doJSON(router, "GET", "/health", "")

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var response map[string]interface{}
		decodeBody(t, w, &response)

		if response["status"] != "healthy" {
			t.Errorf("status = %v, want healthy", response["status"])
		}
		if response["service"] != "greenlens-backend" {
			t.Errorf("service = %v, want greenlens-backend", response["service"])
		}
		version, ok := response["version"].(string)
		if !ok || strings.TrimSpace(version) == "" {
			t.Errorf("version = %v, want non-empty string", response["version"])
		}
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router := setupTestRouter()

		for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
			w := doJSON(router, method, "/health", "")
			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})

	t.Run("sets a request ID", func(t *testing.T) {
		router := setupTestRouter()

		w := doJSON(router, "GET", "/health", "")
		if w.Header().Get(RequestIDHeader) == "" {
			t.Errorf("%s header missing", RequestIDHeader)
		}
	})
}

// TestUnconfiguredService checks every sustainability endpoint answers 501 without a service
func TestUnconfiguredService(t *testing.T) {
	endpoints := []struct {
		method string
		path   string
		body   string
	}{
		{"POST", "/api/v1/sustainability/annotate", `{"url":"https://www.amazon.com/dp/B01"}`},
		{"POST", "/api/v1/sustainability/classify", `{"url":"https://www.amazon.com/"}`},
		{"POST", "/api/v1/sustainability/product-page", `{"url":"https://www.amazon.com/dp/B01"}`},
		{"GET", "/api/v1/sustainability/popup", ""},
		{"GET", "/api/v1/sustainability/current", ""},
		{"POST", "/api/v1/messages", `{"action":"openPopup"}`},
	}

	for _, endpoint := range endpoints {
		t.Run(endpoint.method+" "+endpoint.path, func(t *testing.T) {
			router := setupTestRouter()

			w := doJSON(router, endpoint.method, endpoint.path, endpoint.body)

			if w.Code != http.StatusNotImplemented {
				t.Errorf("Status = %d, want %d", w.Code, http.StatusNotImplemented)
			}

			var response map[string]interface{}
			decodeBody(t, w, &response)
			errorMsg, _ := response["error"].(string)
			if !strings.Contains(errorMsg, "not configured") {
				t.Errorf("error = %q, want to contain 'not configured'", errorMsg)
			}
		})
	}
}

func TestClassifyEndpoint(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantOverall domain.Tier
		wantScore   int
	}{
		{
			name:        "known retailer",
			body:        `{"url":"https://www.amazon.com/dp/B000123"}`,
			wantStatus:  http.StatusOK,
			wantOverall: domain.TierYellow,
			wantScore:   65,
		},
		{
			name:        "red retailer",
			body:        `{"url":"https://www.myntra.com/shirts/brand/123/buy"}`,
			wantStatus:  http.StatusOK,
			wantOverall: domain.TierRed,
			wantScore:   45,
		},
		{
			name:        "unknown retailer gets default",
			body:        `{"url":"https://www.example.com/item/1"}`,
			wantStatus:  http.StatusOK,
			wantOverall: domain.TierYellow,
			wantScore:   50,
		},
		{
			name:       "malformed URL",
			body:       `{"url":"not a url"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing url field",
			body:       `{"link":"https://www.amazon.com/"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid JSON",
			body:       `{invalid json}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouterWithService(t, nil)

			w := doJSON(router, "POST", "/api/v1/sustainability/classify", tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("Status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}

			if tt.wantStatus != http.StatusOK {
				var response map[string]interface{}
				decodeBody(t, w, &response)
				if response["error"] == nil {
					t.Error("expected error field in response")
				}
				return
			}

			var score domain.SustainabilityScore
			decodeBody(t, w, &score)
			if score.Overall != tt.wantOverall {
				t.Errorf("overall = %s, want %s", score.Overall, tt.wantOverall)
			}
			if score.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", score.Score, tt.wantScore)
			}
		})
	}
}

func TestProductPageEndpoint(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantProduct  bool
		wantRetailer string
	}{
		{"amazon dp", "https://www.amazon.com/Some-Item/dp/B08N5WRWNW", true, "amazon"},
		{"flipkart p", "https://www.flipkart.com/item-name/p/itm123abc", true, "flipkart"},
		{"nykaa p", "https://www.nykaa.com/lipstick/p/12345", true, "nykaa"},
		{"amazon search", "https://www.amazon.com/s?k=shoes", false, ""},
		{"unsupported site", "https://www.example.com/dp/B000", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouterWithService(t, nil)

			w := doJSON(router, "POST", "/api/v1/sustainability/product-page", `{"url":"`+tt.url+`"}`)
			if w.Code != http.StatusOK {
				t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
			}

			var response ProductPageResponse
			decodeBody(t, w, &response)
			if response.URL != tt.url {
				t.Errorf("url = %q, want %q", response.URL, tt.url)
			}
			if response.ProductPage != tt.wantProduct {
				t.Errorf("productPage = %v, want %v", response.ProductPage, tt.wantProduct)
			}
			if response.Retailer != tt.wantRetailer {
				t.Errorf("retailer = %q, want %q", response.Retailer, tt.wantRetailer)
			}
		})
	}
}

func TestAnnotateAndCurrentSnapshot(t *testing.T) {
	router := setupTestRouterWithService(t, nil)

	t.Run("no snapshot before any annotation", func(t *testing.T) {
		w := doJSON(router, "GET", "/api/v1/sustainability/current", "")
		if w.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("non product page is not annotated", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/v1/sustainability/annotate", `{"url":"https://www.amazon.com/gp/cart"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var annotation domain.Annotation
		decodeBody(t, w, &annotation)
		if annotation.ProductPage {
			t.Error("productPage = true, want false")
		}
		if annotation.Score != nil {
			t.Errorf("score = %+v, want nil", annotation.Score)
		}

		w = doJSON(router, "GET", "/api/v1/sustainability/current", "")
		if w.Code != http.StatusNotFound {
			t.Errorf("current Status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})

	t.Run("product page is annotated and stored", func(t *testing.T) {
		pageURL := "https://www.ajio.com/men-shirts/p/469012345_blue"

		w := doJSON(router, "POST", "/api/v1/sustainability/annotate", `{"url":"`+pageURL+`"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var annotation domain.Annotation
		decodeBody(t, w, &annotation)
		if !annotation.ProductPage {
			t.Fatal("productPage = false, want true")
		}
		if annotation.Retailer != "ajio" {
			t.Errorf("retailer = %q, want ajio", annotation.Retailer)
		}
		if annotation.RetailerDomain != "ajio.com" {
			t.Errorf("retailerDomain = %q, want ajio.com", annotation.RetailerDomain)
		}
		if annotation.Badge != "Sustainability: Red" {
			t.Errorf("badge = %q, want %q", annotation.Badge, "Sustainability: Red")
		}

		w = doJSON(router, "GET", "/api/v1/sustainability/current", "")
		if w.Code != http.StatusOK {
			t.Fatalf("current Status = %d, want %d", w.Code, http.StatusOK)
		}

		var snapshot domain.PageSnapshot
		decodeBody(t, w, &snapshot)
		if snapshot.CurrentURL != pageURL {
			t.Errorf("currentUrl = %q, want %q", snapshot.CurrentURL, pageURL)
		}
		if snapshot.CurrentScore.Score != 42 {
			t.Errorf("currentScore.score = %d, want 42", snapshot.CurrentScore.Score)
		}
		if snapshot.Timestamp <= 0 {
			t.Errorf("timestamp = %d, want positive", snapshot.Timestamp)
		}
	})

	t.Run("empty url is rejected", func(t *testing.T) {
		w := doJSON(router, "POST", "/api/v1/sustainability/annotate", `{"url":""}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestPopupEndpoint(t *testing.T) {
	t.Run("defaults to example page and configured alternatives", func(t *testing.T) {
		router := setupTestRouterWithService(t, nil)

		w := doJSON(router, "GET", "/api/v1/sustainability/popup", "")
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var view domain.PopupView
		decodeBody(t, w, &view)
		if view.URL != usecase.DefaultPopupURL {
			t.Errorf("url = %q, want %q", view.URL, usecase.DefaultPopupURL)
		}
		if view.ScoreLabel != "Yellow (65/100)" {
			t.Errorf("scoreLabel = %q, want %q", view.ScoreLabel, "Yellow (65/100)")
		}
		if len(view.Alternatives) != 2 {
			t.Errorf("len(alternatives) = %d, want 2", len(view.Alternatives))
		}
		if view.Reward == nil {
			t.Error("reward = nil, want an offer")
		}
		if !strings.HasSuffix(view.Impact.WaterDisplay, " L") {
			t.Errorf("impact.waterDisplay = %q, want liters", view.Impact.WaterDisplay)
		}
	})

	t.Run("explicit url and count", func(t *testing.T) {
		router := setupTestRouterWithService(t, nil)

		w := doJSON(router, "GET", "/api/v1/sustainability/popup?url=https://www.flipkart.com/x/p/itm1&alternatives=3", "")
		if w.Code != http.StatusOK {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusOK)
		}

		var view domain.PopupView
		decodeBody(t, w, &view)
		if view.Score.Score != 58 {
			t.Errorf("score = %d, want 58", view.Score.Score)
		}
		if len(view.Alternatives) != 3 {
			t.Errorf("len(alternatives) = %d, want 3", len(view.Alternatives))
		}
	})

	t.Run("uses last annotated page", func(t *testing.T) {
		router := setupTestRouterWithService(t, nil)

		pageURL := "https://www.nykaa.com/serum/p/555"
		if w := doJSON(router, "POST", "/api/v1/sustainability/annotate", `{"url":"`+pageURL+`"}`); w.Code != http.StatusOK {
			t.Fatalf("annotate Status = %d", w.Code)
		}

		w := doJSON(router, "GET", "/api/v1/sustainability/popup", "")
		var view domain.PopupView
		decodeBody(t, w, &view)
		if view.URL != pageURL {
			t.Errorf("url = %q, want %q", view.URL, pageURL)
		}
	})

	t.Run("rejects bad alternatives", func(t *testing.T) {
		router := setupTestRouterWithService(t, nil)

		for _, q := range []string{"abc", "-1"} {
			w := doJSON(router, "GET", "/api/v1/sustainability/popup?alternatives="+q, "")
			if w.Code != http.StatusBadRequest {
				t.Errorf("alternatives=%s: Status = %d, want %d", q, w.Code, http.StatusBadRequest)
			}
		}
	})

	t.Run("rejects malformed url", func(t *testing.T) {
		router := setupTestRouterWithService(t, nil)

		w := doJSON(router, "GET", "/api/v1/sustainability/popup?url=nope", "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestMessagesEndpoint(t *testing.T) {
	t.Run("openPopup is forwarded", func(t *testing.T) {
		messenger := &mockMessenger{}
		router := setupTestRouterWithService(t, messenger)

		w := doJSON(router, "POST", "/api/v1/messages", `{"action":"openPopup"}`)
		if w.Code != http.StatusAccepted {
			t.Fatalf("Status = %d, want %d", w.Code, http.StatusAccepted)
		}
		if len(messenger.sent) != 1 || messenger.sent[0].Action != domain.ActionOpenPopup {
			t.Errorf("sent = %+v, want one openPopup", messenger.sent)
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		messenger := &mockMessenger{}
		router := setupTestRouterWithService(t, messenger)

		w := doJSON(router, "POST", "/api/v1/messages", `{"action":"closeTab"}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
		if len(messenger.sent) != 0 {
			t.Errorf("sent = %+v, want nothing", messenger.sent)
		}
	})

	t.Run("missing action", func(t *testing.T) {
		router := setupTestRouterWithService(t, &mockMessenger{})

		w := doJSON(router, "POST", "/api/v1/messages", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("channel down", func(t *testing.T) {
		router := setupTestRouterWithService(t, &mockMessenger{sendErr: errors.New("connection refused")})

		w := doJSON(router, "POST", "/api/v1/messages", `{"action":"openPopup"}`)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
	})

	t.Run("no messenger wired", func(t *testing.T) {
		router := setupTestRouterWithService(t, nil)

		w := doJSON(router, "POST", "/api/v1/messages", `{"action":"openPopup"}`)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
	})
}

// TestCORSIntegration tests CORS headers work end-to-end with full router
func TestCORSIntegration(t *testing.T) {
	t.Run("health endpoint has CORS for Chrome extension", func(t *testing.T) {
		router := setupTestRouter()

		req, _ := http.NewRequest("GET", "/health", nil)
		req.Header.Set("Origin", "chrome-extension://abcdefghijklmnop")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusOK)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "chrome-extension://abcdefghijklmnop" {
			t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "chrome-extension://abcdefghijklmnop")
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("Access-Control-Allow-Credentials = %q, want %q", got, "true")
		}
	})

	t.Run("annotate endpoint preflight from extension", func(t *testing.T) {
		router := setupTestRouterWithService(t, nil)

		req, _ := http.NewRequest("OPTIONS", "/api/v1/sustainability/annotate", nil)
		req.Header.Set("Origin", "chrome-extension://abcdefghijklmnop")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Status = %d, want %d", w.Code, http.StatusNoContent)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "chrome-extension://abcdefghijklmnop" {
			t.Errorf("Access-Control-Allow-Origin = %q", got)
		}
	})
}

// TestRecoveryMiddleware tests panic recovery
func TestRecoveryMiddleware(t *testing.T) {
	router := setupTestRouter()

	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := doJSON(router, "GET", "/panic", "")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

// TestRateLimitIntegration checks the v1 group is limited and health is not
func TestRateLimitIntegration(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{PerIP: 1, Burst: 2}
	router := SetupRouter(cfg, NewHandler(nil))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, doJSON(router, "GET", "/api/v1/sustainability/current", "").Code)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request Status = %d, want %d (codes %v)", codes[2], http.StatusTooManyRequests, codes)
	}

	for i := 0; i < 5; i++ {
		if w := doJSON(router, "GET", "/health", ""); w.Code != http.StatusOK {
			t.Errorf("health Status = %d, want %d", w.Code, http.StatusOK)
		}
	}
}

// TestJSONResponses tests that all responses are valid JSON
func TestJSONResponses(t *testing.T) {
	endpoints := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"POST", "/api/v1/sustainability/classify"},
		{"GET", "/api/v1/sustainability/popup"},
	}

	for _, endpoint := range endpoints {
		t.Run(endpoint.method+" "+endpoint.path, func(t *testing.T) {
			router := setupTestRouterWithService(t, nil)

			req, _ := http.NewRequest(endpoint.method, endpoint.path, nil)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			gotContentType := w.Header().Get("Content-Type")
			wantContentType := "application/json; charset=utf-8"
			if gotContentType != wantContentType {
				t.Errorf("Content-Type = %q, want %q", gotContentType, wantContentType)
			}

			var response map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Errorf("Response should be valid JSON, got error: %v", err)
			}
		})
	}
}
