// Package api is the route contract shared by the HTTP server and the API client: for every
// operation it fixes the method, the path template, the input shape and the response shape of
// each status code the operation may produce.
package api

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

// ErrorBody is the JSON body of every non-2xx response.
type ErrorBody struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Route is one operation of the contract.
type Route struct {
	Name     string
	Resource string
	Method   string
	// Path is a template; segments starting with ':' are placeholders filled by BuildURL.
	Path string
	// Input is the zero value of the request body shape, nil when the route takes no body.
	Input any
	// Responses maps each declared status to the zero value of its body shape.
	// A nil body means the response is empty.
	Responses map[int]any
}

// CommonResponses may be produced by any route regardless of its own declaration.
var CommonResponses = map[int]any{
	http.StatusUnauthorized:        ErrorBody{},
	http.StatusInternalServerError: ErrorBody{},
}

// Declares reports whether status is part of the route's contract.
func (r Route) Declares(status int) bool {
	if _, ok := r.Responses[status]; ok {
		return true
	}

	_, ok := CommonResponses[status]

	return ok
}

var placeholder = regexp.MustCompile(`:([A-Za-z][A-Za-z0-9_]*)`)

// Pattern renders the path template in chi's {name} syntax.
func (r Route) Pattern() string {
	return placeholder.ReplaceAllString(r.Path, "{$1}")
}

// Params are the literal values substituted into a path template.
type Params map[string]string

// BuildURL replaces every ":key" placeholder in path with the escaped value of params[key].
// Placeholders without a value are left as they are.
func BuildURL(path string, params Params) string {
	return placeholder.ReplaceAllStringFunc(path, func(m string) string {
		v, ok := params[strings.TrimPrefix(m, ":")]
		if !ok {
			return m
		}

		return url.PathEscape(v)
	})
}

type StatsRoutes struct {
	Get Route
}

type ClientRoutes struct {
	List   Route
	Get    Route
	Create Route
	Update Route
	Delete Route
	Import Route
}

type InvoiceRoutes struct {
	List   Route
	Get    Route
	Create Route
	Update Route
	Delete Route
}

type DeliveryRoutes struct {
	List   Route
	Create Route
	Update Route
}

var Stats = StatsRoutes{
	Get: Route{
		Name:     "stats.get",
		Resource: "Stats",
		Method:   http.MethodGet,
		Path:     "/api/stats",
		Responses: map[int]any{
			http.StatusOK: schema.Stats{},
		},
	},
}

var Clients = ClientRoutes{
	List: Route{
		Name:     "clients.list",
		Resource: "Client",
		Method:   http.MethodGet,
		Path:     "/api/clients",
		Responses: map[int]any{
			http.StatusOK: []schema.Client{},
		},
	},
	Get: Route{
		Name:     "clients.get",
		Resource: "Client",
		Method:   http.MethodGet,
		Path:     "/api/clients/:id",
		Responses: map[int]any{
			http.StatusOK:         schema.Client{},
			http.StatusBadRequest: ErrorBody{},
			http.StatusNotFound:   ErrorBody{},
		},
	},
	Create: Route{
		Name:     "clients.create",
		Resource: "Client",
		Method:   http.MethodPost,
		Path:     "/api/clients",
		Input:    schema.InsertClient{},
		Responses: map[int]any{
			http.StatusCreated:    schema.Client{},
			http.StatusBadRequest: ErrorBody{},
		},
	},
	Update: Route{
		Name:     "clients.update",
		Resource: "Client",
		Method:   http.MethodPut,
		Path:     "/api/clients/:id",
		Input:    schema.UpdateClient{},
		Responses: map[int]any{
			http.StatusOK:         schema.Client{},
			http.StatusBadRequest: ErrorBody{},
			http.StatusNotFound:   ErrorBody{},
		},
	},
	Delete: Route{
		Name:     "clients.delete",
		Resource: "Client",
		Method:   http.MethodDelete,
		Path:     "/api/clients/:id",
		Responses: map[int]any{
			http.StatusNoContent:  nil,
			http.StatusBadRequest: ErrorBody{},
			http.StatusNotFound:   ErrorBody{},
			http.StatusConflict:   ErrorBody{},
		},
	},
	Import: Route{
		Name:     "clients.import",
		Resource: "Client",
		Method:   http.MethodPost,
		Path:     "/api/clients/import",
		Responses: map[int]any{
			http.StatusCreated:    []schema.Client{},
			http.StatusBadRequest: ErrorBody{},
		},
	},
}

var Invoices = InvoiceRoutes{
	List: Route{
		Name:     "invoices.list",
		Resource: "Invoice",
		Method:   http.MethodGet,
		Path:     "/api/invoices",
		Responses: map[int]any{
			http.StatusOK: []schema.InvoiceWithClient{},
		},
	},
	Get: Route{
		Name:     "invoices.get",
		Resource: "Invoice",
		Method:   http.MethodGet,
		Path:     "/api/invoices/:id",
		Responses: map[int]any{
			http.StatusOK:         schema.Invoice{},
			http.StatusBadRequest: ErrorBody{},
			http.StatusNotFound:   ErrorBody{},
		},
	},
	Create: Route{
		Name:     "invoices.create",
		Resource: "Invoice",
		Method:   http.MethodPost,
		Path:     "/api/invoices",
		Input:    schema.InsertInvoice{},
		Responses: map[int]any{
			http.StatusCreated:    schema.Invoice{},
			http.StatusBadRequest: ErrorBody{},
		},
	},
	Update: Route{
		Name:     "invoices.update",
		Resource: "Invoice",
		Method:   http.MethodPut,
		Path:     "/api/invoices/:id",
		Input:    schema.UpdateInvoice{},
		Responses: map[int]any{
			http.StatusOK:         schema.Invoice{},
			http.StatusBadRequest: ErrorBody{},
			http.StatusNotFound:   ErrorBody{},
		},
	},
	Delete: Route{
		Name:     "invoices.delete",
		Resource: "Invoice",
		Method:   http.MethodDelete,
		Path:     "/api/invoices/:id",
		Responses: map[int]any{
			http.StatusNoContent:  nil,
			http.StatusBadRequest: ErrorBody{},
			http.StatusNotFound:   ErrorBody{},
			http.StatusConflict:   ErrorBody{},
		},
	},
}

var Deliveries = DeliveryRoutes{
	List: Route{
		Name:     "deliveries.list",
		Resource: "Delivery",
		Method:   http.MethodGet,
		Path:     "/api/deliveries",
		Responses: map[int]any{
			http.StatusOK: []schema.DeliveryWithInvoice{},
		},
	},
	Create: Route{
		Name:     "deliveries.create",
		Resource: "Delivery",
		Method:   http.MethodPost,
		Path:     "/api/deliveries",
		Input:    schema.InsertDelivery{},
		Responses: map[int]any{
			http.StatusCreated:    schema.Delivery{},
			http.StatusBadRequest: ErrorBody{},
		},
	},
	Update: Route{
		Name:     "deliveries.update",
		Resource: "Delivery",
		Method:   http.MethodPut,
		Path:     "/api/deliveries/:id",
		Input:    schema.UpdateDelivery{},
		Responses: map[int]any{
			http.StatusOK:         schema.Delivery{},
			http.StatusBadRequest: ErrorBody{},
			http.StatusNotFound:   ErrorBody{},
		},
	},
}

// All lists every route of the contract.
func All() []Route {
	return []Route{
		Stats.Get,
		Clients.List, Clients.Get, Clients.Create, Clients.Update, Clients.Delete, Clients.Import,
		Invoices.List, Invoices.Get, Invoices.Create, Invoices.Update, Invoices.Delete,
		Deliveries.List, Deliveries.Create, Deliveries.Update,
	}
}
