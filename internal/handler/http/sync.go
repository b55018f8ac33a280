package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-study-keeper/internal/logger"
	"github.com/MKhiriev/go-study-keeper/internal/utils"
	"github.com/MKhiriev/go-study-keeper/models"
)

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	engineStatus, err := h.services.Engine.Status(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.status").Msg("error collecting engine status")
		http.Error(w, "error collecting engine status", statusFromError(err))
		return
	}

	utils.WriteJSON(w, engineStatus, http.StatusOK)
}

func (h *Handler) listQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	items, err := h.services.Engine.ListQueue(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listQueue").Msg("error listing queue items")
		http.Error(w, "error listing queue items", statusFromError(err))
		return
	}

	response := models.QueueListResponse{
		Items:  items,
		Length: len(items),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) listConflicts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	conflicts, err := h.services.Engine.ListConflicts(ctx)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listConflicts").Msg("error listing open conflicts")
		http.Error(w, "error listing open conflicts", statusFromError(err))
		return
	}

	response := models.ConflictListResponse{
		Conflicts: conflicts,
		Length:    len(conflicts),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) resolveConflict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	itemID := chi.URLParam(r, "itemID")
	if itemID == "" {
		log.Error().Str("func", "*Handler.resolveConflict").Msg("no item ID was given")
		http.Error(w, "no item ID was given", http.StatusBadRequest)
		return
	}

	var resolveRequest models.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&resolveRequest); err != nil {
		log.Err(err).Str("func", "*Handler.resolveConflict").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.Engine.ResolveManually(ctx, itemID, resolveRequest.Decision); err != nil {
		log.Err(err).
			Str("func", "*Handler.resolveConflict").
			Str("item_id", itemID).
			Str("decision", string(resolveRequest.Decision)).
			Msg("error resolving conflict")
		http.Error(w, "error resolving conflict", statusFromError(err))
		return
	}

	utils.WriteJSON(w, map[string]string{"item_id": itemID, "status": "resolved"}, http.StatusOK)
}

// runCycle asks the background job for an immediate cycle instead of running
// one inline, so an operator request cannot pile a second cycle on top of a
// running one.
func (h *Handler) runCycle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	h.services.Job.Kick()
	log.Info().Str("func", "*Handler.runCycle").Msg("sync cycle requested")

	utils.WriteJSON(w, map[string]string{"status": "scheduled"}, http.StatusAccepted)
}
