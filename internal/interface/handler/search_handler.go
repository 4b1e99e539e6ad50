package handler

import (
	"net/http"

	"airtrip-service/internal/domain/entity"
	"airtrip-service/internal/usecase"
	"airtrip-service/pkg/tripfilter"
)

// FilterRequest is the filter payload; Stops accepts the all/none/one/two presets
// and is ignored when MaxStops is set
type FilterRequest struct {
	entity.FilterCriteria
	Stops string `json:"stops,omitempty"`
}

// Search handles POST /search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var params entity.SearchParams
	if err := decode(r, &params); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid search request body")
		return
	}

	result, err := h.search.Search(r.Context(), SessionID(r.Context()), params)
	if err != nil {
		h.writeUsecaseError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// Filter handles POST /results/filter
func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid filter request body")
		return
	}

	criteria := req.FilterCriteria
	if criteria.MaxStops == nil && req.Stops != "" {
		stops, err := tripfilter.StopPreset(req.Stops)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		criteria.MaxStops = stops
	}

	page, err := h.search.Filter(r.Context(), SessionID(r.Context()), criteria)
	h.writePage(w, r, page, err)
}

// ResetFilter handles POST /results/reset
func (h *Handler) ResetFilter(w http.ResponseWriter, r *http.Request) {
	page, err := h.search.ResetFilter(r.Context(), SessionID(r.Context()))
	h.writePage(w, r, page, err)
}

// LoadMore handles POST /results/more
func (h *Handler) LoadMore(w http.ResponseWriter, r *http.Request) {
	page, err := h.search.LoadMore(r.Context(), SessionID(r.Context()))
	h.writePage(w, r, page, err)
}

func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, page *usecase.ResultsPage, err error) {
	if err != nil {
		h.writeUsecaseError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}
