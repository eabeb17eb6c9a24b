// Package resolver implements the redirect resolution for incoming
// short-link requests: primary-domain enforcement, host validation against
// the domain registry and the link lookup itself.
package resolver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/shrinx/shrinx/database"
)

// Outcome classifies the resolution result.
type Outcome int

const (
	// OutcomeRedirect is a temporary redirect, either to the destination
	// URL of a link or to the local not-found page.
	OutcomeRedirect Outcome = iota
	// OutcomePermanentRedirect sends the client to the primary domain.
	OutcomePermanentRedirect
	// OutcomeNotFound means the request host is not a registered domain.
	// The caller responds 404 with an empty body.
	OutcomeNotFound
	// OutcomeServerError means the store failed; the caller responds 500.
	OutcomeServerError
)

// ErrorPagePath is where unresolved short links are sent.
const ErrorPagePath = "/error"

// Request carries the parts of an incoming request the resolver needs.
type Request struct {
	// Host is the request host, possibly including a port.
	Host string
	// Path is the URL path of the request.
	Path string
	// RequestURI is the original path including the query string, used to
	// rebuild the URL on the primary domain.
	RequestURI string
	// ForwardedProto is the value of the X-Forwarded-Proto header, if any.
	ForwardedProto string
}

// Decision is the outcome of resolving a request.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Status returns the HTTP status code for the decision.
func (d Decision) Status() int {
	switch d.Outcome {
	case OutcomePermanentRedirect:
		return http.StatusMovedPermanently
	case OutcomeNotFound:
		return http.StatusNotFound
	case OutcomeServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusFound
	}
}

// Resolver resolves short-link requests against the store.
type Resolver struct {
	store database.Store
}

// New creates a new Resolver.
func New(store database.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve applies, in order: primary-domain enforcement, the domain registry
// check and the link lookup. It short-circuits on the first applicable
// outcome. Host and path matching is exact and case-sensitive.
func (r *Resolver) Resolve(ctx context.Context, req Request) Decision {
	primary, err := r.store.GetSetting(ctx, database.SettingPrimaryDomain)
	if err != nil {
		return Decision{Outcome: OutcomeServerError}
	}
	if primary != "" && !matchesPrimary(req.Host, primary) {
		proto := req.ForwardedProto
		if proto == "" {
			proto = "http"
		}
		return Decision{
			Outcome:  OutcomePermanentRedirect,
			Location: proto + "://" + primary + req.RequestURI,
		}
	}

	host := stripPort(req.Host)
	registered, err := r.store.DomainExists(ctx, host)
	if err != nil {
		return Decision{Outcome: OutcomeServerError}
	}
	if !registered {
		log.Debug("request for unregistered domain", "host", host)
		return Decision{Outcome: OutcomeNotFound}
	}

	path := strings.TrimSpace(strings.TrimPrefix(req.Path, "/"))
	link, err := r.store.GetLink(ctx, path, host)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Decision{Outcome: OutcomeRedirect, Location: ErrorPagePath}
		}
		return Decision{Outcome: OutcomeServerError}
	}

	return Decision{Outcome: OutcomeRedirect, Location: link.RedirectURL}
}

// matchesPrimary reports whether the request host is the primary domain,
// ignoring any port suffix on the request side.
func matchesPrimary(host, primary string) bool {
	return host == primary || strings.HasPrefix(host, primary+":")
}

// stripPort removes a trailing ":port" from a host.
func stripPort(host string) string {
	if i := strings.IndexByte(host, ':'); i >= 0 {
		return host[:i]
	}
	return host
}
