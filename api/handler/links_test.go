package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/shrinx/shrinx/database"
	"github.com/shrinx/shrinx/database/mock"
	"github.com/shrinx/shrinx/resolver"
	"github.com/shrinx/shrinx/turnstile"
)

// stubVerifier lets tests drive the CAPTCHA outcome without network calls.
type stubVerifier struct {
	err    error
	called bool
}

func (s *stubVerifier) Verify(_ context.Context, secret, token string) error {
	s.called = true
	if token == "" {
		return turnstile.ErrMissingToken
	}
	if secret == "" {
		return turnstile.ErrMissingSecret
	}
	return s.err
}

type LinksTestSuite struct {
	suite.Suite
	router   *gin.Engine
	store    *mock.MockStore
	verifier *stubVerifier
}

func (s *LinksTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.store = mock.NewMockStore()
	s.verifier = &stubVerifier{}

	h := New(s.store, resolver.New(s.store), s.verifier)
	s.router = gin.New()
	s.router.POST("/api/save", h.SaveLink)
	s.router.GET("/api/domains", h.Domains)
	s.router.NoRoute(h.Resolve)
}

func (s *LinksTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *LinksTestSuite) TestSaveLink() {
	w := s.postJSON("/api/save", gin.H{
		"path":        "docs",
		"domain":      "example.com",
		"redirectUrl": "https://docs.example.com",
	})

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"ok": true}`, w.Body.String())
	s.False(s.verifier.called)

	link, err := s.store.GetLink(context.Background(), "docs", "example.com")
	s.Require().NoError(err)
	s.Equal("https://docs.example.com", link.RedirectURL)
}

func (s *LinksTestSuite) TestSaveLinkTrimsFields() {
	w := s.postJSON("/api/save", gin.H{
		"path":        "  docs  ",
		"domain":      "example.com",
		"redirectUrl": " https://docs.example.com ",
	})

	s.Equal(http.StatusOK, w.Code)

	link, err := s.store.GetLink(context.Background(), "docs", "example.com")
	s.Require().NoError(err)
	s.Equal("https://docs.example.com", link.RedirectURL)
}

func (s *LinksTestSuite) TestSaveLinkMissingFields() {
	for _, body := range []gin.H{
		{"domain": "example.com", "redirectUrl": "https://x.example"},
		{"path": "docs", "redirectUrl": "https://x.example"},
		{"path": "docs", "domain": "example.com"},
		{"path": "   ", "domain": "example.com", "redirectUrl": "https://x.example"},
	} {
		w := s.postJSON("/api/save", body)
		s.Equal(http.StatusBadRequest, w.Code)
	}
}

func (s *LinksTestSuite) TestSaveLinkConflict() {
	w := s.postJSON("/api/save", gin.H{
		"path":        "docs",
		"domain":      "example.com",
		"redirectUrl": "https://docs.example.com",
	})
	s.Equal(http.StatusOK, w.Code)

	w = s.postJSON("/api/save", gin.H{
		"path":        "docs",
		"domain":      "example.com",
		"redirectUrl": "https://elsewhere.example.com",
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "already taken")

	// The original link is unchanged.
	link, err := s.store.GetLink(context.Background(), "docs", "example.com")
	s.Require().NoError(err)
	s.Equal("https://docs.example.com", link.RedirectURL)
}

func (s *LinksTestSuite) TestSaveLinkTurnstileDisabled() {
	// turnstile_enabled defaults to unset, which behaves as disabled.
	w := s.postJSON("/api/save", gin.H{
		"path":        "free",
		"domain":      "example.com",
		"redirectUrl": "https://free.example.com",
	})

	s.Equal(http.StatusOK, w.Code)
	s.False(s.verifier.called)
}

func (s *LinksTestSuite) TestSaveLinkTurnstileMissingToken() {
	require.NoError(s.T(), s.store.SetSetting(context.Background(), database.SettingTurnstileEnabled, "true"))

	w := s.postJSON("/api/save", gin.H{
		"path":        "docs",
		"domain":      "example.com",
		"redirectUrl": "https://docs.example.com",
	})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "Missing Turnstile token")
	s.False(s.verifier.called)
}

func (s *LinksTestSuite) TestSaveLinkTurnstileMissingSecret() {
	ctx := context.Background()
	require.NoError(s.T(), s.store.SetSetting(ctx, database.SettingTurnstileEnabled, "true"))

	w := s.postJSON("/api/save", gin.H{
		"path":              "docs",
		"domain":            "example.com",
		"redirectUrl":       "https://docs.example.com",
		"turnstileResponse": "token",
	})

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Contains(w.Body.String(), "Server configuration error")
}

func (s *LinksTestSuite) TestSaveLinkTurnstileRejected() {
	ctx := context.Background()
	require.NoError(s.T(), s.store.SetSetting(ctx, database.SettingTurnstileEnabled, "true"))
	require.NoError(s.T(), s.store.SetSetting(ctx, database.SettingTurnstileSecretKey, "secret"))
	s.verifier.err = turnstile.ErrVerificationFailed

	w := s.postJSON("/api/save", gin.H{
		"path":              "docs",
		"domain":            "example.com",
		"redirectUrl":       "https://docs.example.com",
		"turnstileResponse": "bad-token",
	})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "Captcha verification failed")
}

func (s *LinksTestSuite) TestSaveLinkTurnstileValid() {
	ctx := context.Background()
	require.NoError(s.T(), s.store.SetSetting(ctx, database.SettingTurnstileEnabled, "true"))
	require.NoError(s.T(), s.store.SetSetting(ctx, database.SettingTurnstileSecretKey, "secret"))

	w := s.postJSON("/api/save", gin.H{
		"path":              "docs",
		"domain":            "example.com",
		"redirectUrl":       "https://docs.example.com",
		"turnstileResponse": "good-token",
	})

	s.Equal(http.StatusOK, w.Code)
	s.True(s.verifier.called)
}

func (s *LinksTestSuite) TestDomains() {
	ctx := context.Background()
	_, err := s.store.CreateDomain(ctx, "example.com")
	require.NoError(s.T(), err)
	_, err = s.store.CreateDomain(ctx, "short.io")
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodGet, "/api/domains", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"domains": ["example.com", "short.io"]}`, w.Body.String())
}

func (s *LinksTestSuite) TestResolveRedirects() {
	ctx := context.Background()
	_, err := s.store.CreateDomain(ctx, "example.com")
	require.NoError(s.T(), err)
	_, err = s.store.CreateLink(ctx, "docs", "example.com", "https://docs.example.com")
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	req.Host = "example.com"
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusFound, w.Code)
	s.Equal("https://docs.example.com", w.Header().Get("Location"))
}

func (s *LinksTestSuite) TestResolveUnknownHost() {
	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	req.Host = "unknown.com"
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusNotFound, w.Code)
	s.Empty(w.Body.String())
}

func (s *LinksTestSuite) TestResolveUnknownPath() {
	_, err := s.store.CreateDomain(context.Background(), "example.com")
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Host = "example.com"
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusFound, w.Code)
	s.Equal("/error", w.Header().Get("Location"))
}

func (s *LinksTestSuite) TestResolvePrimaryDomainEnforced() {
	ctx := context.Background()
	require.NoError(s.T(), s.store.SetSetting(ctx, database.SettingPrimaryDomain, "example.com"))

	req := httptest.NewRequest(http.MethodGet, "/docs?ref=1", nil)
	req.Host = "other.com"
	req.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusMovedPermanently, w.Code)
	s.Equal("https://example.com/docs?ref=1", w.Header().Get("Location"))
}

func TestLinksTestSuite(t *testing.T) {
	suite.Run(t, new(LinksTestSuite))
}
