package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/roastery/internal/apiclient"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

func TestClient_SendsRouteContract(t *testing.T) {
	var got struct {
		method, path, auth, requestID, contentType string

		body map[string]any
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.auth = r.Header.Get("Authorization")
		got.requestID = r.Header.Get("X-Request-Id")
		got.contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got.body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":7,"clientId":1,"invoiceNumber":"INV-7","amount":"150.00","date":"2024-03-01",`+
			`"status":"paid","createdAt":"2024-03-01T09:30:00Z"}`)
	}))
	defer srv.Close()

	c := apiclient.New(srv.URL+"/", "tok")

	paid := schema.InvoiceStatusPaid
	inv, err := c.UpdateInvoice(context.Background(), 7, schema.UpdateInvoice{Status: &paid})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/api/invoices/7", got.path)
	assert.Equal(t, "Bearer tok", got.auth)
	assert.Equal(t, "application/json", got.contentType)
	assert.Equal(t, map[string]any{"status": "paid"}, got.body)

	_, err = uuid.Parse(got.requestID)
	assert.NoError(t, err)

	assert.Equal(t, "150.00", inv.Amount.String())
	assert.Equal(t, "2024-03-01", inv.Date.String())
}

func TestClient_Errors(t *testing.T) {
	type testCase struct {
		name   string
		status int
		body   string
		call   func(c *apiclient.Client) error
		check  func(t *testing.T, err error)
	}

	tests := []testCase{
		{
			name:   "NotFound",
			status: http.StatusNotFound,
			body:   `{"message":"Client not found"}`,
			call: func(c *apiclient.Client) error {
				_, err := c.GetClient(context.Background(), 9)
				return err
			},
			check: func(t *testing.T, err error) {
				assert.True(t, apiclient.IsNotFound(err))

				var apiErr *apiclient.Error
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "Client not found", apiErr.Message)
			},
		},
		{
			name:   "Conflict",
			status: http.StatusConflict,
			body:   `{"message":"Client has invoices and cannot be deleted"}`,
			call: func(c *apiclient.Client) error {
				return c.DeleteClient(context.Background(), 1)
			},
			check: func(t *testing.T, err error) {
				assert.True(t, apiclient.IsConflict(err))
			},
		},
		{
			name:   "ValidationCarriesField",
			status: http.StatusBadRequest,
			body:   `{"message":"name is required","field":"name"}`,
			call: func(c *apiclient.Client) error {
				_, err := c.CreateClient(context.Background(), schema.InsertClient{})
				return err
			},
			check: func(t *testing.T, err error) {
				var apiErr *apiclient.Error
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "name", apiErr.Field)
				assert.True(t, apiclient.IsValidation(err))
			},
		},
		{
			// Creating a client never answers 404.
			name:   "UndeclaredStatus",
			status: http.StatusNotFound,
			body:   `{"message":"nope"}`,
			call: func(c *apiclient.Client) error {
				_, err := c.CreateClient(context.Background(), schema.InsertClient{Name: "Ana"})
				return err
			},
			check: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.False(t, apiclient.IsNotFound(err))
				assert.Contains(t, err.Error(), "undeclared response status 404")
			},
		},
		{
			name:   "Unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"message":"Unauthorized"}`,
			call: func(c *apiclient.Client) error {
				_, err := c.Stats(context.Background())
				return err
			},
			check: func(t *testing.T, err error) {
				assert.True(t, apiclient.IsUnauthorized(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			tt.check(t, tt.call(apiclient.New(srv.URL, "")))
		})
	}
}

func TestClient_DeleteNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/invoices/3", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, apiclient.New(srv.URL, "").DeleteInvoice(context.Background(), 3))
}

func TestClient_ImportClients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/clients/import", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()

		data, _ := io.ReadAll(f)
		assert.Equal(t, "clients.csv", hdr.Filename)
		assert.Equal(t, "name\nAna\n", string(data))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `[{"id":1,"name":"Ana","cafeName":null,"address":null,"phone":null,"email":null,`+
			`"createdAt":"2024-03-01T09:30:00Z"}]`)
	}))
	defer srv.Close()

	got, err := apiclient.New(srv.URL, "").ImportClients(context.Background(), "clients.csv", strings.NewReader("name\nAna\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].Name)
}

func TestClient_WithTimeout(t *testing.T) {
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := apiclient.New(srv.URL, "", apiclient.WithTimeout(50*time.Millisecond)).Stats(context.Background())
	require.Error(t, err)

	var apiErr *apiclient.Error
	assert.False(t, errors.As(err, &apiErr), "a timeout is a transport failure, not an API error")
}
