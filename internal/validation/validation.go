// Package validation checks user-supplied input (uploads, list queries, ids,
// CLI paths) before it reaches the extractor or the store.
package validation

import (
	"fmt"
	"math"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"fjacquet/credit-report/internal/models"
	"fjacquet/credit-report/internal/parsererror"
	"fjacquet/credit-report/internal/store"

	"github.com/google/uuid"
)

// MaxLimit is the largest page size a list query may request.
const MaxLimit = 100

// Output formats understood by the report renderer.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

var xmlMimeTypes = map[string]bool{
	"text/xml":        true,
	"application/xml": true,
}

func invalid(reason string) error {
	return &parsererror.ValidationError{Reason: reason}
}

// IsXMLUpload accepts a file whose name ends in .xml or whose declared
// content type is an XML mime type.
func IsXMLUpload(filename, contentType string) error {
	if strings.EqualFold(filepath.Ext(filename), ".xml") {
		return nil
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && xmlMimeTypes[strings.ToLower(mediaType)] {
		return nil
	}
	return &parsererror.ValidationError{FilePath: filename, Reason: "Only XML files are allowed"}
}

// IsValidReportID rejects ids that are not UUIDs.
func IsValidReportID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return invalid("Invalid report ID format")
	}
	return nil
}

// ParseListQuery turns list query parameters into store options. Absent
// parameters take the store defaults; present but malformed ones are errors.
func ParseListQuery(q url.Values) (store.ListOptions, error) {
	var opts store.ListOptions
	var err error

	if opts.Page, err = positiveInt(q, "page", store.DefaultPage); err != nil {
		return opts, err
	}
	if opts.Limit, err = positiveInt(q, "limit", store.DefaultLimit); err != nil {
		return opts, err
	}
	if opts.Limit > MaxLimit {
		return opts, invalid(fmt.Sprintf("limit must not exceed %d", MaxLimit))
	}
	if opts.Page-1 > math.MaxInt/opts.Limit {
		return opts, invalid("page is too large")
	}

	opts.SortBy = q.Get("sortBy")
	switch opts.SortBy {
	case "":
		opts.SortBy = models.SortByUploadedAt
	case models.SortByUploadedAt, models.SortByCreditScore, models.SortByReportDate:
	default:
		return opts, invalid(fmt.Sprintf("sortBy must be one of %s, %s, %s",
			models.SortByUploadedAt, models.SortByCreditScore, models.SortByReportDate))
	}

	opts.SortOrder = q.Get("sortOrder")
	switch opts.SortOrder {
	case "":
		opts.SortOrder = models.SortDesc
	case models.SortAsc, models.SortDesc:
	default:
		return opts, invalid("sortOrder must be asc or desc")
	}

	if opts.MinScore, err = optionalInt(q, "minScore"); err != nil {
		return opts, err
	}
	if opts.MaxScore, err = optionalInt(q, "maxScore"); err != nil {
		return opts, err
	}
	if opts.MinScore != nil && opts.MaxScore != nil && *opts.MinScore > *opts.MaxScore {
		return opts, invalid("minScore must not exceed maxScore")
	}

	opts.PAN = strings.TrimSpace(q.Get("pan"))
	return opts, nil
}

func positiveInt(q url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, invalid(key + " must be a positive integer")
	}
	return n, nil
}

func optionalInt(q url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, invalid(key + " must be an integer")
	}
	return &n, nil
}

// IsValidInputFile checks that path names an existing regular file.
func IsValidInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case FormatJSON, FormatYAML, FormatCSV:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are '%s', '%s', '%s'",
			format, FormatJSON, FormatYAML, FormatCSV)
	}
}
