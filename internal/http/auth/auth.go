// Package auth verifies the bearer tokens issued by the identity provider in front of the API.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/roastery/internal/api"
	"github.com/MrJamesThe3rd/roastery/internal/http/respond"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

// Claims is what the API reads from a token. Subject and Name only feed the request log.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
	parser *jwt.Parser
}

// New returns an authenticator for HS256 tokens signed with secret. issuer and audience are
// enforced when non-empty.
func New(secret, issuer, audience string) *Authenticator {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}

	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}

	return &Authenticator{secret: []byte(secret), parser: jwt.NewParser(opts...)}
}

// Handler rejects requests without a valid token with 401 before they reach next.
func (a *Authenticator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := a.authenticate(r)
		if err != nil {
			slog.Warn("authentication failed",
				"path", r.URL.Path,
				"request_id", middleware.GetReqID(r.Context()),
				"error", err,
			)
			respond.Error(w, r, api.Route{}, schema.ErrUnauthorized)

			return
		}

		slog.Debug("request authenticated",
			"subject", claims.Subject,
			"name", claims.Name,
			"request_id", middleware.GetReqID(r.Context()),
		)

		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) authenticate(r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, errors.New("missing Authorization header")
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return nil, errors.New("malformed Authorization header")
	}

	var claims Claims

	_, err := a.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	return &claims, nil
}

// Sign issues an HS256 token carrying claims.
func (a *Authenticator) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}
