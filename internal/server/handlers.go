package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fjacquet/credit-report/internal/config"
	"fjacquet/credit-report/internal/logging"
	"fjacquet/credit-report/internal/parser"
	"fjacquet/credit-report/internal/parsererror"
	"fjacquet/credit-report/internal/store"
	"fjacquet/credit-report/internal/validation"

	"github.com/go-chi/chi/v5"
)

// multipartOverhead is allowed on top of the file limit for part headers and
// boundaries.
const multipartOverhead = 64 << 10

type handlers struct {
	logger  logging.Logger
	parser  parser.Parser
	store   store.Repository
	upload  config.UploadConfig
	version string
	now     func() time.Time
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Success:   true,
		Message:   "Credit Report Processor API is running",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Version:   h.version,
	})
}

func (h *handlers) notFound(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusNotFound, envelope{
		Error:   "Not Found",
		Message: fmt.Sprintf("Route %s not found", r.URL.RequestURI()),
	})
}

func (h *handlers) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// fail logs err and writes the matching error envelope.
func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	log := h.logger.WithError(err).WithFields(
		logging.F(logging.FieldMethod, r.Method),
		logging.F(logging.FieldPath, r.URL.Path),
		logging.F(logging.FieldStatus, status),
	)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed")
	} else {
		log.Warn("Request rejected")
	}
	writeError(w, status, clientMessage(err))
}

func (h *handlers) uploadReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.upload.MaxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.upload.MaxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(w, r, &parsererror.InputTooLargeError{Limit: h.upload.MaxBytes})
			return
		}
		h.fail(w, r, &parsererror.ValidationError{Reason: "No file uploaded. Please upload an XML file"})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(h.upload.Field)
	if err != nil {
		h.fail(w, r, &parsererror.ValidationError{Reason: "No file uploaded. Please upload an XML file"})
		return
	}
	defer file.Close()

	if err := validation.IsXMLUpload(header.Filename, header.Header.Get("Content-Type")); err != nil {
		h.fail(w, r, err)
		return
	}
	if header.Size > h.upload.MaxBytes {
		h.fail(w, r, &parsererror.InputTooLargeError{Limit: h.upload.MaxBytes})
		return
	}

	h.logger.Info("Processing uploaded file", logging.F(logging.FieldFile, header.Filename))
	extracted, err := h.parser.Parse(file)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	report, err := h.store.Insert(r.Context(), extracted)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Info("Credit report saved successfully", logging.F(logging.FieldReportID, report.ID))

	respondJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Credit report processed successfully",
		Data:    report,
	})
}

func (h *handlers) listReports(w http.ResponseWriter, r *http.Request) {
	opts, err := validation.ParseListQuery(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.store.List(r.Context(), opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    result.Reports,
		Pagination: &pagination{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages(),
		},
	})
}

func (h *handlers) getReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := validation.IsValidReportID(id); err != nil {
		h.fail(w, r, err)
		return
	}

	report, err := h.store.FindByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Credit report with ID %s not found", id))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, envelope{Success: true, Data: report})
}

func (h *handlers) deleteReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := validation.IsValidReportID(id); err != nil {
		h.fail(w, r, err)
		return
	}

	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Credit report with ID %s not found", id))
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Info("Credit report deleted", logging.F(logging.FieldReportID, id))

	respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Credit report deleted successfully"})
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, envelope{Success: true, Data: stats})
}
