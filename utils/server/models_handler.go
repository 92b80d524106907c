package server

import (
	"net/http"

	"github.com/kris-hansen/hwflow/utils/config"
	"github.com/kris-hansen/hwflow/utils/logger"
	"github.com/kris-hansen/hwflow/utils/models"
)

// handleListModels probes the configured models and reports the first that answers
func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	if err := models.CheckCredentials(s.envConfig, s.envConfig.Models.Probe); err != nil {
		logger.Error("Model listing is not configured", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	result := models.Probe(r.Context(), s.envConfig.Models.Probe, s.resolve)
	if err := r.Context().Err(); err != nil {
		logger.Error("Failed to list models", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to list models",
			Details: err.Error(),
		})
		return
	}

	config.VerboseLog("Model probe: available=%v recommended=%s", result.AvailableModels, result.Recommended)
	writeJSON(w, http.StatusOK, ListModelsResponse{
		AvailableModels: result.AvailableModels,
		Recommended:     result.Recommended,
	})
}
