package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/wanderly/trailhead/internal/auth"
	"github.com/wanderly/trailhead/internal/handlers"
	"github.com/wanderly/trailhead/internal/middleware"
	"github.com/wanderly/trailhead/internal/repositories"
	"github.com/wanderly/trailhead/internal/routes"
	"github.com/wanderly/trailhead/internal/services"
	pkghttp "github.com/wanderly/trailhead/pkg/http"
	pkglogger "github.com/wanderly/trailhead/pkg/logger"
)

// CapturingMailer records reset emails instead of sending them
type CapturingMailer struct {
	mu       sync.Mutex
	SentTo   []string
	SentURLs []string
}

func (m *CapturingMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentTo = append(m.SentTo, to)
	m.SentURLs = append(m.SentURLs, resetURL)
	return nil
}

// LastResetURL returns the most recently captured reset URL
func (m *CapturingMailer) LastResetURL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentURLs) == 0 {
		return ""
	}
	return m.SentURLs[len(m.SentURLs)-1]
}

// TestServer wires the full application stack against the test database
type TestServer struct {
	Server *httptest.Server
	Mailer *CapturingMailer
	Client *http.Client
}

// NewTestServer builds the API the same way main does, swapping SES for the
// capturing mailer.
func NewTestServer(db *TestDB) *TestServer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mailer := &CapturingMailer{}

	userRepo := repositories.NewUserRepository(db.DB)
	tourRepo := repositories.NewTourRepository(db.DB)

	tokenManager := auth.NewTokenManager("integration-test-secret-key-long-enough", 1*time.Hour)
	auditLogger := pkglogger.NewAuditLogger(logger)

	authService := services.NewAuthService(userRepo, tokenManager, mailer, logger, auditLogger, 10*time.Minute)
	userService := services.NewUserService(userRepo, logger)
	tourService := services.NewTourService(tourRepo, logger)

	cookieConfig := auth.CookieConfig{ExpiresDays: 90}
	authHandler := handlers.NewAuthHandler(authService, cookieConfig, "development")
	userHandler := handlers.NewUserHandler(userService, "development")
	tourHandler := handlers.NewTourHandler(tourService, "development")

	router := chi.NewRouter()
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Recoverer)

	// Relaxed budget: lifecycle tests fire many credential requests from one
	// address, which a production-sized limit would trip.
	rateLimit := middleware.RateLimitByIP(middleware.RateLimitConfig{RequestsPerMinute: 1000})
	routes.RegisterRoutes(router, authHandler, userHandler, tourHandler, tokenManager, userRepo, rateLimit)

	server := httptest.NewServer(router)

	return &TestServer{
		Server: server,
		Mailer: mailer,
		Client: server.Client(),
	}
}

// Close shuts down the test server
func (ts *TestServer) Close() {
	ts.Server.Close()
}

// PostJSON sends a JSON POST and decodes the envelope
func (ts *TestServer) PostJSON(path string, body any, token string) (int, pkghttp.Envelope, error) {
	return ts.doJSON(http.MethodPost, path, body, token)
}

// PatchJSON sends a JSON PATCH and decodes the envelope
func (ts *TestServer) PatchJSON(path string, body any, token string) (int, pkghttp.Envelope, error) {
	return ts.doJSON(http.MethodPatch, path, body, token)
}

// Get sends a GET and decodes the envelope
func (ts *TestServer) Get(path, token string) (int, pkghttp.Envelope, error) {
	return ts.doJSON(http.MethodGet, path, nil, token)
}

// Delete sends a DELETE; the envelope is empty for 204 responses
func (ts *TestServer) Delete(path, token string) (int, pkghttp.Envelope, error) {
	return ts.doJSON(http.MethodDelete, path, nil, token)
}

func (ts *TestServer) doJSON(method, path string, body any, token string) (int, pkghttp.Envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, pkghttp.Envelope{}, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reader)
	if err != nil {
		return 0, pkghttp.Envelope{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	if err != nil {
		return 0, pkghttp.Envelope{}, err
	}
	defer resp.Body.Close()

	var env pkghttp.Envelope
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return resp.StatusCode, pkghttp.Envelope{}, fmt.Errorf("decoding envelope: %w", err)
		}
	}

	return resp.StatusCode, env, nil
}
