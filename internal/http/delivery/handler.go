package delivery

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/roastery/internal/api"
	"github.com/MrJamesThe3rd/roastery/internal/delivery"
	"github.com/MrJamesThe3rd/roastery/internal/http/respond"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

type Handler struct {
	svc *delivery.Service
}

func NewHandler(svc *delivery.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	routes := api.Deliveries

	r.Method(routes.List.Method, routes.List.Pattern(), http.HandlerFunc(h.list))
	r.Method(routes.Create.Method, routes.Create.Pattern(), http.HandlerFunc(h.create))
	r.Method(routes.Update.Method, routes.Update.Pattern(), http.HandlerFunc(h.update))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	deliveries, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, api.Deliveries.List, err)
		return
	}

	respond.JSON(w, r, api.Deliveries.List, http.StatusOK, deliveries)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	route := api.Deliveries.Create

	var in schema.InsertDelivery
	if err := respond.Decode(w, r, &in); err != nil {
		respond.Error(w, r, route, err)
		return
	}

	d, err := h.svc.Create(r.Context(), in)
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	respond.JSON(w, r, route, http.StatusCreated, d)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	route := api.Deliveries.Update

	id, err := respond.PathID(r)
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	var in schema.UpdateDelivery
	if err := respond.Decode(w, r, &in); err != nil {
		respond.Error(w, r, route, err)
		return
	}

	d, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	respond.JSON(w, r, route, http.StatusOK, d)
}
