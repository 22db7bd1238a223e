package invoice

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/roastery/internal/api"
	"github.com/MrJamesThe3rd/roastery/internal/http/respond"
	"github.com/MrJamesThe3rd/roastery/internal/invoice"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	routes := api.Invoices

	r.Method(routes.List.Method, routes.List.Pattern(), http.HandlerFunc(h.list))
	r.Method(routes.Get.Method, routes.Get.Pattern(), http.HandlerFunc(h.get))
	r.Method(routes.Create.Method, routes.Create.Pattern(), http.HandlerFunc(h.create))
	r.Method(routes.Update.Method, routes.Update.Pattern(), http.HandlerFunc(h.update))
	r.Method(routes.Delete.Method, routes.Delete.Pattern(), http.HandlerFunc(h.delete))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, api.Invoices.List, err)
		return
	}

	respond.JSON(w, r, api.Invoices.List, http.StatusOK, invoices)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	route := api.Invoices.Get

	id, err := respond.PathID(r)
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	respond.JSON(w, r, route, http.StatusOK, inv)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	route := api.Invoices.Create

	var in schema.InsertInvoice
	if err := respond.Decode(w, r, &in); err != nil {
		respond.Error(w, r, route, err)
		return
	}

	inv, err := h.svc.Create(r.Context(), in)
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	respond.JSON(w, r, route, http.StatusCreated, inv)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	route := api.Invoices.Update

	id, err := respond.PathID(r)
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	var in schema.UpdateInvoice
	if err := respond.Decode(w, r, &in); err != nil {
		respond.Error(w, r, route, err)
		return
	}

	inv, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	respond.JSON(w, r, route, http.StatusOK, inv)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	route := api.Invoices.Delete

	id, err := respond.PathID(r)
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, route, err)
		return
	}

	respond.NoContent(w, r, route)
}
