package rest

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const defaultExecutionLimit int64 = 50

func (s *Server) HandleGetExecutionsByRule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	records, err := s.executionService.GetExecutionsByRule(id, limitParam(r))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, records)
}

func (s *Server) HandleGetRecentExecutions(w http.ResponseWriter, r *http.Request) {
	records, err := s.executionService.GetRecentExecutions(limitParam(r))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, records)
}

func limitParam(r *http.Request) int64 {
	limit, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if err != nil || limit <= 0 {
		return defaultExecutionLimit
	}
	return limit
}
