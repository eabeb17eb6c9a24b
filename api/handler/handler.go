// Package handler implements the HTTP handlers for link resolution, public
// link creation and the admin API.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shrinx/shrinx/database"
	"github.com/shrinx/shrinx/resolver"
	"github.com/shrinx/shrinx/turnstile"
)

// Verifier checks CAPTCHA tokens. Implemented by the turnstile client.
type Verifier interface {
	Verify(ctx context.Context, secret, token string) error
}

type Handler struct {
	store     database.Store
	resolver  *resolver.Resolver
	turnstile Verifier
}

func New(store database.Store, res *resolver.Resolver, verifier Verifier) *Handler {
	return &Handler{
		store:     store,
		resolver:  res,
		turnstile: verifier,
	}
}

// Resolve serves every request no explicit route matched: it runs the
// redirect resolution and answers with a redirect, a bare 404 for unknown
// hosts, or a 500 if the store failed.
func (h *Handler) Resolve(c *gin.Context) {
	decision := h.resolver.Resolve(c.Request.Context(), resolver.Request{
		Host:           c.Request.Host,
		Path:           c.Request.URL.Path,
		RequestURI:     c.Request.URL.RequestURI(),
		ForwardedProto: c.GetHeader("X-Forwarded-Proto"),
	})

	switch decision.Outcome {
	case resolver.OutcomeNotFound:
		c.Status(http.StatusNotFound)
	case resolver.OutcomeServerError:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error resolving URL."})
	default:
		c.Redirect(decision.Status(), decision.Location)
	}
}

const errorPage = `<!DOCTYPE html>
<html>
<head><title>Not found</title></head>
<body>
<h1>Short link not found</h1>
<p>The short link you followed does not exist or has been removed.</p>
</body>
</html>`

// ErrorPage is the friendly page unresolved short links redirect to.
func (h *Handler) ErrorPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(errorPage))
}

var _ Verifier = (*turnstile.Client)(nil)
