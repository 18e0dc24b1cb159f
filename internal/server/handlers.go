package server

import (
	"encoding/json"
	"net/http"

	"github.com/grovetools/atlas/errors"
	"github.com/grovetools/atlas/pkg/models"
)

type searchRequest struct {
	Search string `json:"search"`
}

type regionRequest struct {
	Region string `json:"region"`
}

func (s *Server) handleGetControls(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Controls.Snapshot())
}

func (s *Server) handleClearControls(w http.ResponseWriter, r *http.Request) {
	s.app.Controls.ClearControls()
	writeJSON(w, http.StatusOK, s.app.Controls.Snapshot())
}

func (s *Server) handleSetSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "invalid request body: "+err.Error())
		return
	}
	s.app.Controls.SetSearch(req.Search)
	writeJSON(w, http.StatusOK, s.app.Controls.Snapshot())
}

func (s *Server) handleSetRegion(w http.ResponseWriter, r *http.Request) {
	var req regionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "invalid request body: "+err.Error())
		return
	}
	region, ok := models.ParseRegion(req.Region)
	if !ok {
		writeAtlasError(w, http.StatusBadRequest, errors.InvalidRegion(req.Region))
		return
	}
	s.app.Controls.SetRegion(region)
	writeJSON(w, http.StatusOK, s.app.Controls.Snapshot())
}

// handleLoad starts a load in the background. A load already in flight
// absorbs the request, so the response is 202 either way.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	s.app.StartLoad(s.base)
	writeJSON(w, http.StatusAccepted, s.app.Countries.SelectDatasetSummary())
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Countries.SelectDatasetSummary())
}

func (s *Server) handleAllCountries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Countries.SelectAllCountries())
}

// handleVisibleCountries filters with the query parameters, falling back to
// the current controls for any parameter that is absent.
func (s *Server) handleVisibleCountries(w http.ResponseWriter, r *http.Request) {
	st := s.app.Controls.Snapshot()
	query := r.URL.Query()

	search := st.Search
	if query.Has("search") {
		search = query.Get("search")
	}

	region := st.Region
	if query.Has("region") {
		parsed, ok := models.ParseRegion(query.Get("region"))
		if !ok {
			writeAtlasError(w, http.StatusBadRequest, errors.InvalidRegion(query.Get("region")))
			return
		}
		region = parsed
	}

	writeJSON(w, http.StatusOK, s.app.Countries.SelectVisibleCountries(search, region))
}

func writeAtlasError(w http.ResponseWriter, status int, err *errors.AtlasError) {
	writeError(w, status, string(err.Code), err.Message)
}
