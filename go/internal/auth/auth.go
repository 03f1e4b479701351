// Package auth resolves bearer session tokens to users. Sessions are issued
// elsewhere; this package only reads them.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/apperr"
)

type contextKey struct{}

// SessionStore looks up the user behind a live session token
type SessionStore interface {
	GetSessionUser(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticator authenticates requests against the session store
type Authenticator struct {
	sessions SessionStore
}

// New creates a new Authenticator
func New(sessions SessionStore) *Authenticator {
	return &Authenticator{sessions: sessions}
}

// Authenticate returns the user for the request's bearer token
func (a *Authenticator) Authenticate(r *http.Request) (uuid.UUID, error) {
	token, ok := BearerToken(r.Header.Get("Authorization"))
	if !ok {
		return uuid.Nil, apperr.Unauthorized("missing bearer token")
	}

	userID, err := a.sessions.GetSessionUser(r.Context(), token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, apperr.Unauthorized("session expired or unknown")
		}
		return uuid.Nil, fmt.Errorf("failed to look up session: %w", err)
	}
	return userID, nil
}

// Middleware rejects unauthenticated requests through onError and stores the
// user on the request context otherwise
func (a *Authenticator) Middleware(onError func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := a.Authenticate(r)
			if err != nil {
				onError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID)))
		})
	}
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// WithUser returns a context carrying the authenticated user
func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserFrom returns the authenticated user stored on the context
func UserFrom(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(contextKey{}).(uuid.UUID)
	return userID, ok
}

// RequireUser is UserFrom that fails with Unauthorized
func RequireUser(ctx context.Context) (uuid.UUID, error) {
	userID, ok := UserFrom(ctx)
	if !ok {
		return uuid.Nil, apperr.Unauthorized("not signed in")
	}
	return userID, nil
}
