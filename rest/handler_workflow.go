package rest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/arkcrm/automation/logger"
	"github.com/arkcrm/automation/model"
	"github.com/arkcrm/automation/persistence"
)

func (s *Server) HandleSaveRule(w http.ResponseWriter, r *http.Request) {
	var rule model.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid rule payload")
		return
	}
	defer r.Body.Close()
	saved, err := s.metadataService.SaveRule(rule)
	if err != nil {
		logger.Error("error saving rule", zap.String("rule", rule.Name), zap.Error(err))
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, saved)
}

func (s *Server) HandleGetRule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rule, err := s.metadataService.GetRule(id)
	if err != nil {
		if _, ok := err.(persistence.NotFoundError); ok {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, rule)
}

func (s *Server) HandleDeleteRule(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.metadataService.DeleteRule(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) HandleGetRuleVariables(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	variables, err := s.metadataService.GetRuleVariables(id)
	if err != nil {
		if _, ok := err.(persistence.NotFoundError); ok {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"variables": variables})
}

func (s *Server) HandleListRules(w http.ResponseWriter, r *http.Request) {
	objectId := mux.Vars(r)["objectId"]
	trigger, err := model.ToTriggerType(r.URL.Query().Get("trigger"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	rules, err := s.metadataService.GetActiveRules(objectId, trigger)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, rules)
}
