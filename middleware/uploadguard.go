package middleware

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/yourusername/guardrail/pkg/uploadguard"
)

// DefaultFormOverhead is the room left for multipart boundaries and
// non-file fields on top of the policy's size cap.
const DefaultFormOverhead int64 = 1 << 20

// DefaultMaxMemory is the part of a multipart form kept in memory before
// spilling to temporary files.
const DefaultMaxMemory int64 = 32 << 20

// Recorder receives the outcome of every file checked by the guard
type Recorder interface {
	RecordUpload(accepted bool, reason string)
}

// UploadGuard provides HTTP middleware that rejects disallowed uploads
// before they reach the wrapped handler
type UploadGuard struct {
	policy       uploadguard.Policy
	maxBodyBytes int64
	maxMemory    int64
	recorder     Recorder
}

// Config for creating an upload guard
type Config struct {
	Policy       uploadguard.Policy // Allow-list and size cap applied to each file part
	MaxBodyBytes int64              // Optional: whole request cap (defaults to MaxSizeBytes + DefaultFormOverhead)
	MaxMemory    int64              // Optional: defaults to DefaultMaxMemory
	Recorder     Recorder           // Optional: metrics recorder
}

// NewUploadGuard creates a new upload guarding middleware
func NewUploadGuard(config Config) *UploadGuard {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = config.Policy.MaxSizeBytes + DefaultFormOverhead
	}

	if config.MaxMemory <= 0 {
		config.MaxMemory = DefaultMaxMemory
	}

	return &UploadGuard{
		policy:       config.Policy,
		maxBodyBytes: config.MaxBodyBytes,
		maxMemory:    config.MaxMemory,
		recorder:     config.Recorder,
	}
}

// Middleware wraps an http.Handler with upload validation. Requests that
// are not multipart forms pass through untouched; for multipart requests
// the parsed form is left on r.MultipartForm for the next handler.
func (g *UploadGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-Upload-Max-Bytes", strconv.FormatInt(g.policy.MaxSizeBytes, 10))

		r.Body = http.MaxBytesReader(w, r.Body, g.maxBodyBytes)
		if err := r.ParseMultipartForm(g.maxMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				g.record(false, "size")
				writeError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Request body exceeds the upload size limit")
				return
			}
			writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Malformed multipart form")
			return
		}

		for _, headers := range r.MultipartForm.File {
			for _, header := range headers {
				err := uploadguard.Check(uploadguard.FileFromHeader(header), g.policy)
				g.record(err == nil, uploadguard.Reason(err))
				if err == nil {
					continue
				}

				if errors.Is(err, uploadguard.ErrMimeTypeNotAllowed) {
					writeError(w, http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", err.Error())
				} else {
					writeError(w, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
				}
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (g *UploadGuard) record(accepted bool, reason string) {
	if g.recorder != nil {
		g.recorder.RecordUpload(accepted, reason)
	}
}

func writeError(w http.ResponseWriter, statusCode int, errorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}
