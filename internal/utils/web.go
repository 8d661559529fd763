package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pinboard-dev/pinboard/internal/errors"
	"github.com/pinboard-dev/pinboard/internal/logger"
)

// Response is the envelope every endpoint answers with. Endpoints that
// return extra data embed it in a wider struct.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Result  bool   `json:"result"`
}

// WriteJSON writes payload with the given HTTP status code.
func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// WriteMessage writes a bare envelope response.
func WriteMessage(w http.ResponseWriter, statusCode int, message string, result bool) {
	WriteJSON(w, statusCode, Response{Status: statusCode, Message: message, Result: result})
}

// WriteErrorAndStatusCode maps business-rule errors to their status code
// and everything else to a generic 500 without leaking internals.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	if e, ok := err.(*errors.ErrorWithStatusCode); ok {
		WriteMessage(w, e.StatusCode, e.Message, false)
		return
	}
	logger.Log.Error("internal error", "error", err)
	WriteMessage(w, http.StatusInternalServerError, "Internal server error", false)
}

// DecodeValidate decodes a JSON body into a typed request struct and
// validates it against its struct tags.
func DecodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(body); err != nil {
		return &errors.ErrorWithStatusCode{Message: "Required fields missing or invalid", StatusCode: http.StatusBadRequest}
	}
	return nil
}
