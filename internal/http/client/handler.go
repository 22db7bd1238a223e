package client

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/roastery/internal/api"
	"github.com/MrJamesThe3rd/roastery/internal/client"
	"github.com/MrJamesThe3rd/roastery/internal/http/respond"
	"github.com/MrJamesThe3rd/roastery/internal/importer"
	"github.com/MrJamesThe3rd/roastery/internal/schema"
)

type Handler struct {
	svc *client.Service
}

func NewHandler(svc *client.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the JSON routes.
func (h *Handler) Routes(r chi.Router) {
	routes := api.Clients

	r.Method(routes.List.Method, routes.List.Pattern(), http.HandlerFunc(h.list))
	r.Method(routes.Get.Method, routes.Get.Pattern(), http.HandlerFunc(h.get))
	r.Method(routes.Create.Method, routes.Create.Pattern(), http.HandlerFunc(h.create))
	r.Method(routes.Update.Method, routes.Update.Pattern(), http.HandlerFunc(h.update))
	r.Method(routes.Delete.Method, routes.Delete.Pattern(), http.HandlerFunc(h.delete))
}

// ImportRoutes mounts the multipart upload route.
func (h *Handler) ImportRoutes(r chi.Router) {
	r.Method(api.Clients.Import.Method, api.Clients.Import.Pattern(), http.HandlerFunc(h.importCSV))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	route := api.Clients.List

	clients, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	respond.JSON(w, r, route, http.StatusOK, clients)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	route := api.Clients.Get

	id, err := respond.PathID(r)
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	respond.JSON(w, r, route, http.StatusOK, c)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	route := api.Clients.Create

	var in schema.InsertClient
	if err := respond.Decode(w, r, &in); err != nil {
		respond.Error(w, r, route, err)
		return
	}

	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	respond.JSON(w, r, route, http.StatusCreated, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	route := api.Clients.Update

	id, err := respond.PathID(r)
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	var in schema.UpdateClient
	if err := respond.Decode(w, r, &in); err != nil {
		respond.Error(w, r, route, err)
		return
	}

	c, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	respond.JSON(w, r, route, http.StatusOK, c)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	route := api.Clients.Delete

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

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	route := api.Clients.Import

	r.Body = http.MaxBytesReader(w, r.Body, importer.MaxFileSize+1<<20)

	if err := r.ParseMultipartForm(importer.MaxFileSize); err != nil {
		respond.Error(w, r, route, schema.Invalid("file", "failed to parse form: %v", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, r, route, schema.Invalid("file", "file field is required"))
		return
	}
	defer file.Close()

	in, err := importer.ParseClients(file)
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	created, err := h.svc.Import(r.Context(), in)
	if err != nil {
		respond.Error(w, r, route, err)
		return
	}

	respond.JSON(w, r, route, http.StatusCreated, created)
}
