package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/roastery/internal/api"
	"github.com/MrJamesThe3rd/roastery/internal/http/respond"
	"github.com/MrJamesThe3rd/roastery/internal/stats"
)

type Handler struct {
	svc *stats.Service
}

func NewHandler(svc *stats.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Method(api.Stats.Get.Method, api.Stats.Get.Pattern(), http.HandlerFunc(h.get))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Snapshot(r.Context())
	if err != nil {
		respond.Error(w, r, api.Stats.Get, err)
		return
	}

	respond.JSON(w, r, api.Stats.Get, http.StatusOK, snap.Contract())
}
