package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"fjacquet/credit-report/internal/parsererror"
	"fjacquet/credit-report/internal/store"
)

// envelope is the body of every API response.
type envelope struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
}

type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type healthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, envelope{Success: false, Error: msg})
}

// statusFor maps an error onto the HTTP status reported to the client.
func statusFor(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	switch parsererror.KindOf(err) {
	case parsererror.KindMalformedInput, parsererror.KindFieldExtraction, parsererror.KindValidation:
		return http.StatusBadRequest
	case parsererror.KindInputTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage is the error text shown to the client. Internal failures are
// not described.
func clientMessage(err error) string {
	var validation *parsererror.ValidationError
	if errors.As(err, &validation) {
		return validation.Reason
	}
	if statusFor(err) == http.StatusInternalServerError {
		return "Internal Server Error"
	}
	return err.Error()
}
