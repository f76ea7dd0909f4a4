package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/credit-report/internal/fileutils"
	"fjacquet/credit-report/internal/logging"
	"fjacquet/credit-report/internal/models"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLStore keeps reports in a SQLite database. Filterable and sortable
// fields are stored in indexed columns next to the full JSON document.
type SQLStore struct {
	db     *sqlx.DB
	now    func() time.Time
	logger logging.Logger
}

var schemaStatements = []string{
	`PRAGMA journal_mode = WAL;`,
	`CREATE TABLE IF NOT EXISTS credit_reports (
		id TEXT PRIMARY KEY,
		pan TEXT,
		credit_score INTEGER,
		report_number TEXT NOT NULL DEFAULT '',
		report_date TEXT NOT NULL DEFAULT '',
		total_accounts INTEGER NOT NULL DEFAULT 0,
		active_accounts INTEGER NOT NULL DEFAULT 0,
		current_balance INTEGER NOT NULL DEFAULT 0,
		uploaded_at INTEGER NOT NULL,
		document TEXT NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_credit_reports_pan ON credit_reports(pan);`,
	`CREATE INDEX IF NOT EXISTS idx_credit_reports_credit_score ON credit_reports(credit_score);`,
	`CREATE INDEX IF NOT EXISTS idx_credit_reports_uploaded_at ON credit_reports(uploaded_at);`,
	`CREATE INDEX IF NOT EXISTS idx_credit_reports_report_date ON credit_reports(report_date);`,
	`CREATE INDEX IF NOT EXISTS idx_credit_reports_report_number ON credit_reports(report_number);`,
}

var sortColumns = map[string]string{
	models.SortByUploadedAt:  "uploaded_at",
	models.SortByCreditScore: "credit_score",
	models.SortByReportDate:  "report_date",
}

type reportRow struct {
	ID       string `db:"id"`
	Document string `db:"document"`
}

type statsRow struct {
	Reports  int64         `db:"reports"`
	Scored   int64         `db:"scored"`
	ScoreSum sql.NullInt64 `db:"score_sum"`
	MinScore sql.NullInt64 `db:"min_score"`
	MaxScore sql.NullInt64 `db:"max_score"`
	Total    sql.NullInt64 `db:"total_sum"`
	Active   sql.NullInt64 `db:"active_sum"`
	Balance  sql.NullInt64 `db:"balance_sum"`
}

// OpenSQLStore opens (creating if needed) the database at path and migrates
// its schema. ":memory:" opens a private in-memory database.
func OpenSQLStore(path string, logger logging.Logger) (*SQLStore, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite path required")
	}

	dsn := ":memory:"
	if path != ":memory:" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve sqlite path: %w", err)
		}
		if err := fileutils.EnsureDirectoryExists(filepath.Dir(abs)); err != nil {
			return nil, err
		}
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", abs)
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &SQLStore{db: db, now: time.Now, logger: logger}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("Opened SQLite report store", logging.F(logging.FieldFile, path))
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context) error {
	for i, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

// Insert implements Repository.
func (s *SQLStore) Insert(ctx context.Context, extracted *models.ExtractedReport) (*models.CreditReport, error) {
	if extracted == nil {
		return nil, errNilReport
	}
	report := models.NewCreditReport(*extracted, s.now())
	doc, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	var score sql.NullInt64
	if report.BasicDetails.CreditScore != nil {
		score = sql.NullInt64{Int64: int64(*report.BasicDetails.CreditScore), Valid: true}
	}
	var pan sql.NullString
	if report.BasicDetails.PAN != nil {
		pan = sql.NullString{String: *report.BasicDetails.PAN, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO credit_reports
		(id, pan, credit_score, report_number, report_date, total_accounts, active_accounts, current_balance, uploaded_at, document)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID, pan, score, report.ReportNumber, reportDateKey(report.ReportDate),
		report.ReportSummary.TotalAccounts, report.ReportSummary.ActiveAccounts, report.ReportSummary.CurrentBalance,
		report.UploadedAt.UnixNano(), string(doc))
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}

	s.logger.Debug("Stored credit report", logging.F(logging.FieldReportID, report.ID))
	return report, nil
}

// FindByID implements Repository.
func (s *SQLStore) FindByID(ctx context.Context, id string) (*models.CreditReport, error) {
	var row reportRow
	err := s.db.GetContext(ctx, &row, `SELECT id, document FROM credit_reports WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select report: %w", err)
	}
	return decodeRow(row)
}

// List implements Repository.
func (s *SQLStore) List(ctx context.Context, opts ListOptions) (ListResult, error) {
	opts = opts.Normalized()

	var where []string
	var args []interface{}
	if opts.MinScore != nil {
		where = append(where, "credit_score >= ?")
		args = append(args, *opts.MinScore)
	}
	if opts.MaxScore != nil {
		where = append(where, "credit_score <= ?")
		args = append(args, *opts.MaxScore)
	}
	if opts.PAN != "" {
		where = append(where, "pan = ?")
		args = append(args, opts.PAN)
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	result := ListResult{Page: opts.Page, Limit: opts.Limit, Reports: []*models.CreditReport{}}
	if err := s.db.GetContext(ctx, &result.Total, `SELECT COUNT(*) FROM credit_reports`+clause, args...); err != nil {
		return ListResult{}, fmt.Errorf("count reports: %w", err)
	}

	direction := "DESC"
	if opts.SortOrder == models.SortAsc {
		direction = "ASC"
	}
	// SQLite orders NULL below every value, matching the in-memory store.
	query := fmt.Sprintf(`SELECT id, document FROM credit_reports%s ORDER BY %s %s, rowid ASC LIMIT ? OFFSET ?`,
		clause, sortColumns[opts.SortBy], direction)

	var rows []reportRow
	if err := s.db.SelectContext(ctx, &rows, query, append(args, opts.Limit, opts.Skip())...); err != nil {
		return ListResult{}, fmt.Errorf("select reports: %w", err)
	}
	for _, row := range rows {
		report, err := decodeRow(row)
		if err != nil {
			return ListResult{}, err
		}
		result.Reports = append(result.Reports, report)
	}
	return result, nil
}

// Delete implements Repository.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM credit_reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.logger.Debug("Deleted credit report", logging.F(logging.FieldReportID, id))
	return nil
}

// Stats implements Repository.
func (s *SQLStore) Stats(ctx context.Context) (models.ReportStats, error) {
	var row statsRow
	err := s.db.GetContext(ctx, &row, `SELECT
		COUNT(*) AS reports,
		COUNT(credit_score) AS scored,
		SUM(credit_score) AS score_sum,
		MIN(credit_score) AS min_score,
		MAX(credit_score) AS max_score,
		SUM(total_accounts) AS total_sum,
		SUM(active_accounts) AS active_sum,
		SUM(current_balance) AS balance_sum
		FROM credit_reports`)
	if err != nil {
		return models.ReportStats{}, fmt.Errorf("aggregate reports: %w", err)
	}

	return models.ReportStats{
		TotalReports:            row.Reports,
		AvgCreditScore:          models.Average(row.ScoreSum.Int64, row.Scored),
		MinCreditScore:          int(row.MinScore.Int64),
		MaxCreditScore:          int(row.MaxScore.Int64),
		AvgTotalAccounts:        models.Average(row.Total.Int64, row.Reports),
		AvgActiveAccounts:       models.Average(row.Active.Int64, row.Reports),
		TotalOutstandingBalance: row.Balance.Int64,
	}, nil
}

// Close implements Repository.
func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func decodeRow(row reportRow) (*models.CreditReport, error) {
	var report models.CreditReport
	if err := json.Unmarshal([]byte(row.Document), &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", row.ID, err)
	}
	return &report, nil
}
