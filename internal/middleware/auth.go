package middleware

import (
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/liftlog/internal/auth"
	"github.com/2beens/liftlog/internal/records"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
)

type AuthMiddlewareHandler struct {
	loginChecker auth.Checker
	// paths under these prefixes require a signed-in session
	protectedPrefixes []string
	// paths under these prefixes additionally require an admin session
	adminPrefixes []string
}

func NewAuthMiddlewareHandler(loginChecker auth.Checker) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		loginChecker: loginChecker,
		protectedPrefixes: []string{
			"/sync",
		},
		adminPrefixes: []string{
			"/admin/",
		},
	}
}

func (h *AuthMiddlewareHandler) pathNeedsSession(path string) bool {
	for _, prefix := range h.protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return h.pathNeedsAdmin(path)
}

func (h *AuthMiddlewareHandler) pathNeedsAdmin(path string) bool {
	for _, prefix := range h.adminPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// AuthCheck resolves the session token into the active partition. Requests
// without a valid session still go through, scoped to the anonymous
// partition, except for the protected path prefixes.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			// a non-standard req. header is set, and thus - browser makes a preflight/OPTIONS request:
			//	https://developer.mozilla.org/en-US/docs/Web/HTTP/CORS#preflighted_requests
			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, PUT, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			authToken := r.Header.Get(auth.TokenHeader)

			var session *auth.Session
			if authToken != "" {
				var err error
				session, err = h.loginChecker.Session(ctx, authToken)
				if err != nil && !errors.Is(err, auth.ErrNotLoggedIn) {
					log.Errorf("[failed login check] => %s: %s", r.URL.Path, err)
					http.Error(w, "no can do", http.StatusUnauthorized)
					span.SetStatus(codes.Error, "check-logged-err")
					span.RecordError(err)
					return
				}
			}

			if session == nil {
				if h.pathNeedsSession(r.URL.Path) {
					log.Tracef("[missing session] [auth middleware] unauthorized => %s", r.URL.Path)
					http.Error(w, "no can do", http.StatusUnauthorized)
					span.SetStatus(codes.Error, "not-logged")
					return
				}

				span.SetStatus(codes.Ok, "anonymous-ok")
				next.ServeHTTP(w, r.WithContext(
					records.ContextWithPartition(ctx, records.Anonymous),
				))
				return
			}

			if h.pathNeedsAdmin(r.URL.Path) && !session.IsAdmin {
				log.Tracef("[not admin] [auth middleware] forbidden => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusForbidden)
				span.SetStatus(codes.Error, "not-admin")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(
				records.ContextWithPartition(ctx, records.PartitionFor(session.UserID)),
			))
		})
	}
}
