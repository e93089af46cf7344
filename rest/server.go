package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/arkcrm/automation/logger"
	"github.com/arkcrm/automation/metadata"
	"github.com/arkcrm/automation/service"
)

type Server struct {
	http.Server
	Port             int
	metadataService  metadata.MetadataService
	executionService *service.ExecutionService
}

func NewServer(httpPort int, metadataService metadata.MetadataService, executionService *service.ExecutionService) (*Server, error) {
	s := &Server{
		Server: http.Server{
			Addr:        fmt.Sprintf(":%d", httpPort),
			IdleTimeout: 2 * time.Second,
		},
		metadataService:  metadataService,
		executionService: executionService,
		Port:             httpPort,
	}

	router := mux.NewRouter()
	router.HandleFunc("/metadata/workflow", s.HandleSaveRule).Methods(http.MethodPost)
	router.HandleFunc("/metadata/workflow/{id}", s.HandleGetRule).Methods(http.MethodGet)
	router.HandleFunc("/metadata/workflow/{id}", s.HandleDeleteRule).Methods(http.MethodDelete)
	router.HandleFunc("/metadata/workflow/{id}/variables", s.HandleGetRuleVariables).Methods(http.MethodGet)
	router.HandleFunc("/metadata/object/{objectId}/workflows", s.HandleListRules).Methods(http.MethodGet)

	router.HandleFunc("/trigger", s.HandleTrigger).Methods(http.MethodPost)

	router.HandleFunc("/execution/workflow/{id}", s.HandleGetExecutionsByRule).Methods(http.MethodGet)
	router.HandleFunc("/execution/recent", s.HandleGetRecentExecutions).Methods(http.MethodGet)

	router.Use(loggingMiddleware)
	s.Handler = router
	return s, nil
}

func (s *Server) Start() error {
	logger.Info("starting http server on", zap.Int("port", s.Port))
	if err := s.ListenAndServe(); err != nil {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	logger.Info("stopping http server")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := s.Shutdown(ctx)
	if err != nil {
		logger.Error("error shutting down http server")
	}
	return nil
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info(r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
