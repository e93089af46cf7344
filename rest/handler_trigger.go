package rest

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/arkcrm/automation/logger"
	"github.com/arkcrm/automation/model"
)

func (s *Server) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	var ctx model.TriggerContext
	if err := json.NewDecoder(r.Body).Decode(&ctx); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid trigger payload")
		return
	}
	defer r.Body.Close()
	records, err := s.executionService.ExecuteTrigger(&ctx)
	if err != nil {
		logger.Error("error executing trigger",
			zap.String("trigger", string(ctx.Trigger)), zap.String("record", ctx.Record.Id), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{"executions": records})
}
