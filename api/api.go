// Package api wires the gin server: sessions, routes and the redirect
// fallback for everything no explicit route claims.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/shrinx/shrinx/api/auth"
	"github.com/shrinx/shrinx/api/handler"
	"github.com/shrinx/shrinx/config"
	"github.com/shrinx/shrinx/database"
	"github.com/shrinx/shrinx/resolver"
	"github.com/shrinx/shrinx/turnstile"
)

// SessionCookieName is the name of the admin session cookie.
const SessionCookieName = "shrinx_session"

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	store     database.Store
}

func New(cfg *config.Config, store database.Store) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.Default(),
		store:     store,
	}
	s.setupSession()
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions(SessionCookieName, store))
}

func (s *Server) setupRoutes() {
	verifier := turnstile.NewClient(time.Duration(s.cfg.TurnstileTimeout) * time.Second)
	h := handler.New(s.store, resolver.New(s.store), verifier)
	authHandler := auth.NewHandler(s.store)

	s.ginEngine.GET(resolver.ErrorPagePath, h.ErrorPage)

	api := s.ginEngine.Group("/api")
	api.POST("/save", h.SaveLink)
	api.GET("/domains", h.Domains)
	api.POST("/admin/login", authHandler.Login)
	api.POST("/admin/logout", authHandler.Logout)

	admin := api.Group("/admin")
	admin.Use(auth.RequireAuth())
	admin.GET("/settings", h.GetSettings)
	admin.PUT("/settings", h.PutSettings)
	admin.GET("/domains", h.AdminDomains)
	admin.POST("/domains", h.AddDomain)
	admin.DELETE("/domains", h.DeleteDomain)
	admin.GET("/links", h.ListLinks)
	admin.POST("/links", h.CreateLink)
	admin.DELETE("/links", h.DeleteLink)
	admin.POST("/change-password", h.ChangeCredentials)

	// Everything else is a short link.
	s.ginEngine.NoRoute(h.Resolve)
}

// Handler exposes the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}
