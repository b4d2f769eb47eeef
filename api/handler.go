package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/yourusername/guardrail/pkg/throttlelog"
	"github.com/yourusername/guardrail/pkg/uploadguard"
)

const (
	// maxValidateBodyBytes bounds a POST /validate request
	maxValidateBodyBytes = 16 << 10

	// maxLogBodyBytes bounds a single relayed client log entry
	maxLogBodyBytes = 64 << 10
)

// Handler serves upload pre-validation and client log relay requests
type Handler struct {
	policy  uploadguard.Policy
	logger  ClientLogger
	metrics UploadRecorder
}

// ClientLogger is the leveled logger client log entries are relayed to
type ClientLogger interface {
	Log(category, message string, data any)
	Warn(category, message string, data any)
	Error(category, message string, err error)
}

// UploadRecorder defines the interface for recording validation outcomes
type UploadRecorder interface {
	RecordUpload(accepted bool, reason string)
}

// NewHandler creates a new API handler
func NewHandler(policy uploadguard.Policy, logger ClientLogger, metrics UploadRecorder) *Handler {
	return &Handler{
		policy:  policy,
		logger:  logger,
		metrics: metrics,
	}
}

// UploadRequest is the JSON body sent by clients to POST /validate
type UploadRequest struct {
	FileName      string `json:"fileName"`
	FileSizeBytes int64  `json:"fileSizeBytes"`
	ContentType   string `json:"contentType"`
}

// UploadResponse is returned when a file passes validation
type UploadResponse struct {
	Valid    bool   `json:"valid"`
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
}

// ClientLog is one log entry relayed from the browser
type ClientLog struct {
	Level    string          `json:"level"` // "log", "warn" or "error"
	Category string          `json:"category"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// ErrorResponse is returned for any failed API request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ValidateUpload handles POST /validate requests
func (h *Handler) ValidateUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.sendError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST requests are allowed")
		return
	}

	var req UploadRequest
	if !h.decodeJSON(w, r, maxValidateBodyBytes, &req) {
		return
	}

	file := uploadguard.File{
		Name:        req.FileName,
		ContentType: req.ContentType,
		Size:        req.FileSizeBytes,
	}

	err := uploadguard.Check(file, h.policy)
	if h.metrics != nil {
		h.metrics.RecordUpload(err == nil, uploadguard.Reason(err))
	}
	if err != nil {
		if h.logger != nil {
			h.logger.Log("upload", "rejected file", map[string]any{
				"fileName": req.FileName,
				"reason":   uploadguard.Reason(err),
			})
		}
		h.sendError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}

	name := req.FileName
	if h.policy.SanitizeFilename {
		name = uploadguard.SanitizeFilename(name)
	}

	h.sendJSON(w, http.StatusOK, UploadResponse{
		Valid:    true,
		FileID:   uuid.NewString(),
		FileName: name,
	})
}

// UploadResult lists the files accepted from a multipart upload
type UploadResult struct {
	Files []UploadResponse `json:"files"`
}

// AcceptUpload handles POST /upload requests that have already passed the
// upload guard middleware. It assigns an ID to every file part.
func (h *Handler) AcceptUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.sendError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST requests are allowed")
		return
	}

	if r.MultipartForm == nil {
		h.sendError(w, http.StatusBadRequest, "INVALID_REQUEST", "Expected a multipart form")
		return
	}

	result := UploadResult{Files: []UploadResponse{}}
	for _, headers := range r.MultipartForm.File {
		for _, header := range headers {
			name := header.Filename
			if h.policy.SanitizeFilename {
				name = uploadguard.SanitizeFilename(name)
			}
			result.Files = append(result.Files, UploadResponse{
				Valid:    true,
				FileID:   uuid.NewString(),
				FileName: name,
			})
		}
	}

	if h.logger != nil {
		h.logger.Log("upload", "accepted files", map[string]int{"count": len(result.Files)})
	}

	h.sendJSON(w, http.StatusCreated, result)
}

// RelayLog handles POST /logs requests
func (h *Handler) RelayLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.sendError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only POST requests are allowed")
		return
	}

	var entry ClientLog
	if !h.decodeJSON(w, r, maxLogBodyBytes, &entry) {
		return
	}

	if entry.Category == "" || entry.Message == "" {
		h.sendError(w, http.StatusBadRequest, "INVALID_REQUEST", "category and message are required")
		return
	}

	if h.logger == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	data := payload(entry.Data)

	switch strings.ToLower(entry.Level) {
	case "", "log", "info", "debug":
		h.logger.Log(entry.Category, entry.Message, data)
	case "warn", "warning":
		h.logger.Warn(entry.Category, entry.Message, data)
	case "error":
		var err error
		if data != nil {
			err = errors.New(throttlelog.RenderData(data))
		}
		h.logger.Error(entry.Category, entry.Message, err)
	default:
		h.sendError(w, http.StatusBadRequest, "INVALID_LEVEL", "level must be one of log, warn, error")
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// payload returns nil for an absent or JSON null payload
func payload(raw json.RawMessage) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return json.RawMessage(trimmed)
}

// decodeJSON reads at most limit bytes of JSON into v, answering 413 or 400
// itself when it returns false.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit)).Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.sendError(w, http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE", "Request body too large")
		return false
	}
	h.sendError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body")
	return false
}

func (h *Handler) sendJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

func (h *Handler) sendError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	h.sendJSON(w, statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}
