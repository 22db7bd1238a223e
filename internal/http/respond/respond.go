// Package respond writes JSON responses and maps domain errors onto the status codes and
// bodies declared by the route contract.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/roastery/internal/api"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

// MaxBodySize bounds JSON request bodies.
const MaxBodySize = 1 << 20

// referencedMessages explains a rejected delete per resource.
var referencedMessages = map[string]string{
	"Client":  "Client has invoices and cannot be deleted",
	"Invoice": "Invoice has deliveries and cannot be deleted",
}

func JSON(w http.ResponseWriter, r *http.Request, route api.Route, status int, body any) {
	checkDeclared(r, route, status)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "route", route.Name, "error", err)
	}
}

func NoContent(w http.ResponseWriter, r *http.Request, route api.Route) {
	checkDeclared(r, route, http.StatusNoContent)
	w.WriteHeader(http.StatusNoContent)
}

// Error maps err to its response. Unrecognised errors are logged and answered with a bare 500.
func Error(w http.ResponseWriter, r *http.Request, route api.Route, err error) {
	status, body := classify(route, err)

	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			"route", route.Name,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
	}

	JSON(w, r, route, status, body)
}

func classify(route api.Route, err error) (int, api.ErrorBody) {
	if ve, ok := schema.AsValidation(err); ok {
		return http.StatusBadRequest, api.ErrorBody{Message: ve.Message, Field: ve.Field}
	}

	switch {
	case errors.Is(err, schema.ErrNotFound):
		return http.StatusNotFound, api.ErrorBody{Message: resource(route) + " not found"}
	case errors.Is(err, schema.ErrReferenced):
		msg, ok := referencedMessages[route.Resource]
		if !ok {
			msg = resource(route) + " is still referenced and cannot be deleted"
		}

		return http.StatusConflict, api.ErrorBody{Message: msg}
	case errors.Is(err, schema.ErrUnauthorized):
		return http.StatusUnauthorized, api.ErrorBody{Message: "Unauthorized"}
	}

	return http.StatusInternalServerError, api.ErrorBody{Message: "Internal Server Error"}
}

func resource(route api.Route) string {
	if route.Resource == "" {
		return "Resource"
	}

	return route.Resource
}

func checkDeclared(r *http.Request, route api.Route, status int) {
	if route.Name == "" || route.Declares(status) {
		return
	}

	slog.Warn("response status not declared by route",
		"route", route.Name,
		"status", status,
		"request_id", middleware.GetReqID(r.Context()),
	)
}

// Decode reads and validates the JSON body of r into dst.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	return schema.Decode(http.MaxBytesReader(w, r.Body, MaxBodySize), dst)
}

// PathID parses the {id} URL parameter as a positive integer.
func PathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, schema.Invalid("id", "id must be a positive integer, got %q", raw)
	}

	return id, nil
}
