package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// ErrorHandler translates application errors into HTTP responses.
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// errorResponse is the JSON envelope written for every failed request.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Handle writes an error response with a status code derived from the error type.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"
	errType := ErrorTypeInternal

	var appErr *AppError
	if errors.As(err, &appErr) {
		errType = appErr.Type
		message = appErr.Message
		switch appErr.Type {
		case ErrorTypeValidation:
			status = http.StatusBadRequest
		case ErrorTypeNotFound:
			status = http.StatusNotFound
		}
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	} else {
		h.logger.Debug("request rejected",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(errorResponse{
		Error: errorBody{Type: string(errType), Message: message},
	}); encErr != nil {
		h.logger.Error("failed to encode error response", zap.Error(encErr))
	}
}
