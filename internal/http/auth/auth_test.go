package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/roastery/internal/http/auth"
)

func TestAuthenticator_Handler(t *testing.T) {
	a := auth.New("s3cret", "roastery-idp", "")
	other := auth.New("other-secret", "", "")

	valid := auth.Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    "roastery-idp",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}

	sign := func(a *auth.Authenticator, c auth.Claims) string {
		tok, err := a.Sign(c)
		require.NoError(t, err)

		return tok
	}

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongIssuer := valid
	wrongIssuer.Issuer = "someone-else"

	noExpiry := valid
	noExpiry.ExpiresAt = nil

	type testCase struct {
		name       string
		header     string
		wantStatus int
	}

	tests := []testCase{
		{name: "Valid", header: "Bearer " + sign(a, valid), wantStatus: http.StatusOK},
		{name: "LowercaseScheme", header: "bearer " + sign(a, valid), wantStatus: http.StatusOK},
		{name: "Missing", wantStatus: http.StatusUnauthorized},
		{name: "NotBearer", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{name: "WrongSecret", header: "Bearer " + sign(other, valid), wantStatus: http.StatusUnauthorized},
		{name: "Expired", header: "Bearer " + sign(a, expired), wantStatus: http.StatusUnauthorized},
		{name: "WrongIssuer", header: "Bearer " + sign(a, wrongIssuer), wantStatus: http.StatusUnauthorized},
		{name: "NoExpiry", header: "Bearer " + sign(a, noExpiry), wantStatus: http.StatusUnauthorized},
		{name: "Garbage", header: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool

			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				reached = true
			})

			req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			a.Handler(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				assert.True(t, reached)
				return
			}

			assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
			assert.False(t, reached)
		})
	}
}
