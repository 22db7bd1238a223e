package api_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/roastery/internal/api"
)

func TestBuildURL(t *testing.T) {
	type testCase struct {
		name   string
		path   string
		params api.Params
		want   string
	}

	tests := []testCase{
		{name: "NoPlaceholder", path: "/api/clients", want: "/api/clients"},
		{name: "Substitutes", path: "/api/clients/:id", params: api.Params{"id": "42"}, want: "/api/clients/42"},
		{name: "Escapes", path: "/api/clients/:id", params: api.Params{"id": "a/b"}, want: "/api/clients/a%2Fb"},
		{name: "MissingParamKept", path: "/api/clients/:id", params: api.Params{"other": "1"}, want: "/api/clients/:id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, api.BuildURL(tt.path, tt.params))
		})
	}
}

func TestRoute_Pattern(t *testing.T) {
	assert.Equal(t, "/api/invoices/{id}", api.Invoices.Update.Pattern())
	assert.Equal(t, "/api/stats", api.Stats.Get.Pattern())
}

func TestRoute_Declares(t *testing.T) {
	assert.True(t, api.Clients.Create.Declares(http.StatusCreated))
	assert.True(t, api.Clients.Create.Declares(http.StatusBadRequest))
	assert.True(t, api.Clients.Create.Declares(http.StatusUnauthorized))
	assert.False(t, api.Clients.Create.Declares(http.StatusNotFound))
	assert.True(t, api.Clients.Delete.Declares(http.StatusConflict))
}

func TestAll_Contract(t *testing.T) {
	seen := make(map[string]string)

	for _, r := range api.All() {
		key := r.Method + " " + r.Path
		if prev, dup := seen[key]; dup {
			t.Errorf("%s and %s share %s", prev, r.Name, key)
		}

		seen[key] = r.Name

		assert.True(t, strings.HasPrefix(r.Path, "/api/"), r.Name)
		assert.NotEmpty(t, r.Resource, r.Name)
		assert.NotEmpty(t, r.Responses, r.Name)

		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			if r.Name != api.Clients.Import.Name {
				assert.NotNil(t, r.Input, "%s takes a JSON body", r.Name)
			}
		}

		if r.Method == http.MethodDelete {
			body, ok := r.Responses[http.StatusNoContent]
			assert.True(t, ok, r.Name)
			assert.Nil(t, body, r.Name)
		}
	}

	assert.Len(t, seen, 15)
}
