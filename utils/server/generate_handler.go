package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kris-hansen/hwflow/utils/config"
	"github.com/kris-hansen/hwflow/utils/document"
	"github.com/kris-hansen/hwflow/utils/logger"
	"github.com/kris-hansen/hwflow/utils/models"
	"github.com/kris-hansen/hwflow/utils/workflow"
)

const (
	chatTextField = "chatText"
	documentField = "document"
)

var errMissingChatText = errors.New("chat text is required")

const missingChatTextMessage = "Chat text is required"

// handleGenerateWorkflow serves the status check (GET) and generation (POST)
func (s *Server) handleGenerateWorkflow(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleGenerateStatus(w, r)
	case http.MethodPost:
		s.handleGenerate(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleGenerateStatus(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Logger.Errorw("GET handler panicked", "panic", rec)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:   "GET handler error",
				Details: fmt.Sprint(rec),
				Path:    requestURL(r),
			})
		}
	}()

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Message:   "Workflow generation API is running",
		HasAPIKey: s.envConfig.HasGeminiKey(),
		Path:      requestURL(r),
		Timestamp: s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

// handleGenerate turns a description and optional document into steps
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	maxMemory := s.config.MaxUploadMB << 20
	if err := r.ParseMultipartForm(maxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.sendGenerateFailure(w, fmt.Errorf("failed to parse form: %w", err))
		return
	}

	chatText := r.PostFormValue(chatTextField)
	if chatText == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: missingChatTextMessage})
		config.DebugLog("Rejected generate request: %v", errMissingChatText)
		return
	}

	if err := models.CheckCredentials(s.envConfig, s.envConfig.Models.Fallback); err != nil {
		logger.Error("Generation is not configured", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	documentText, err := s.uploadedDocument(r)
	if err != nil {
		s.sendGenerateFailure(w, err)
		return
	}

	builder := workflow.PromptBuilder{MaxDocumentChars: s.envConfig.Document.MaxPromptChars}
	prompt := builder.Build(chatText, documentText)
	config.DebugLog("Generate request: description_length=%d, prompt_length=%d", len(chatText), len(prompt))

	invoker := models.NewFallbackInvoker(s.envConfig.Models.Fallback, s.resolve)
	generation, err := invoker.Invoke(r.Context(), prompt)
	if err != nil {
		s.sendGenerateFailure(w, err)
		return
	}

	steps, err := workflow.Normalize(generation.Text)
	if err != nil {
		s.sendGenerateFailure(w, fmt.Errorf("model %s: %w", generation.Model, err))
		return
	}

	config.VerboseLog("Generated %d steps with %s", len(steps), generation.Model)
	writeJSON(w, http.StatusOK, GenerateResponse{Steps: steps})
}

// uploadedDocument returns the text of the optional document field, or nil
func (s *Server) uploadedDocument(r *http.Request) (*string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	files := r.MultipartForm.File[documentField]
	if len(files) == 0 {
		return nil, nil
	}

	doc, err := document.FromFileHeader(files[0])
	if err != nil {
		return nil, err
	}
	logger.Info("Document uploaded",
		"name", doc.Name,
		"contentType", doc.ContentType,
		"size", doc.Size,
		"hash", doc.Hash,
		"extracted", !doc.Placeholder,
	)
	return &doc.Text, nil
}

func (s *Server) sendGenerateFailure(w http.ResponseWriter, err error) {
	logger.Error("Failed to generate workflow", err)

	resp := ErrorResponse{
		Error:   "Failed to generate workflow",
		Details: err.Error(),
	}
	if s.envConfig.IsDevelopment() {
		resp.Stack = errorChain(err)
	}
	writeJSON(w, http.StatusInternalServerError, resp)
}
