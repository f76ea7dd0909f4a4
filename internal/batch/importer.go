// Package batch imports many bureau report files into the store.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"fjacquet/credit-report/internal/fileutils"
	"fjacquet/credit-report/internal/logging"
	"fjacquet/credit-report/internal/parser"
	"fjacquet/credit-report/internal/parsererror"
	"fjacquet/credit-report/internal/store"
)

// ReportExtension selects the files ImportDir picks up.
const ReportExtension = ".xml"

// FileResult is the outcome of importing one file.
type FileResult struct {
	Path         string
	ReportID     string
	ReportNumber string
	CreditScore  *int
	Err          error
	Kind         parsererror.Kind
}

// OK reports whether the file was stored.
func (r FileResult) OK() bool {
	return r.Err == nil
}

// Summary collects the results of one import run in input order.
type Summary struct {
	Results  []FileResult
	Imported int
	Failed   int
	Duration time.Duration
}

// Importer parses files with a bounded pool of workers and stores each
// report. A failing file never stops the others.
type Importer struct {
	parser  parser.Parser
	store   store.Repository
	logger  logging.Logger
	workers int
}

// NewImporter creates an Importer. workers < 1 means one per CPU.
func NewImporter(p parser.Parser, repo store.Repository, logger logging.Logger, workers int) *Importer {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Importer{
		parser:  p,
		store:   repo,
		logger:  logger,
		workers: workers,
	}
}

// Workers returns the size of the worker pool.
func (im *Importer) Workers() int {
	return im.workers
}

// ImportDir imports every report file below dir.
func (im *Importer) ImportDir(ctx context.Context, dir string) (Summary, error) {
	files, err := fileutils.ListFilesWithExtension(dir, ReportExtension)
	if err != nil {
		return Summary{}, err
	}
	im.logger.Info("Found report files",
		logging.F(logging.FieldFile, dir),
		logging.F(logging.FieldCount, len(files)))
	return im.ImportFiles(ctx, files), nil
}

type indexedPath struct {
	index int
	path  string
}

type indexedResult struct {
	index  int
	result FileResult
}

// ImportFiles imports paths concurrently. Results keep the order of paths.
// Files not started before ctx is done fail with the context error.
func (im *Importer) ImportFiles(ctx context.Context, paths []string) Summary {
	start := time.Now()
	workers := im.workers
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan indexedPath, workers)
	resultChan := make(chan indexedResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go im.worker(ctx, &wg, jobs, resultChan)
	}

	go func() {
		defer close(jobs)
		for i, path := range paths {
			select {
			case jobs <- indexedPath{index: i, path: path}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	summary := Summary{Results: make([]FileResult, len(paths))}
	done := make([]bool, len(paths))
	for r := range resultChan {
		summary.Results[r.index] = r.result
		done[r.index] = true
	}
	for i, ok := range done {
		if !ok {
			summary.Results[i] = failed(paths[i], ctx.Err())
		}
	}

	for _, r := range summary.Results {
		if r.OK() {
			summary.Imported++
		} else {
			summary.Failed++
		}
	}
	summary.Duration = time.Since(start)

	im.logger.Info("Import completed",
		logging.F(logging.FieldCount, len(paths)),
		logging.F(logging.FieldWorkers, workers),
		logging.F(logging.FieldImported, summary.Imported),
		logging.F(logging.FieldFailed, summary.Failed),
		logging.F(logging.FieldDuration, summary.Duration.Milliseconds()))
	return summary
}

func (im *Importer) worker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan indexedPath, results chan<- indexedResult) {
	defer wg.Done()
	for job := range jobs {
		var res FileResult
		if err := ctx.Err(); err != nil {
			res = failed(job.path, err)
		} else {
			res = im.ImportFile(ctx, job.path)
		}
		results <- indexedResult{index: job.index, result: res}
	}
}

// ImportFile parses and stores a single file.
func (im *Importer) ImportFile(ctx context.Context, path string) FileResult {
	log := im.logger.WithField(logging.FieldFile, path)

	f, err := fileutils.OpenFile(path)
	if err != nil {
		log.WithError(err).Warn("Skipping unreadable file")
		return failed(path, err)
	}
	defer f.Close()

	extracted, err := im.parser.Parse(f)
	if err != nil {
		log.WithError(err).Warn("Failed to extract report")
		return failed(path, err)
	}

	report, err := im.store.Insert(ctx, extracted)
	if err != nil {
		log.WithError(err).Error("Failed to store report")
		return failed(path, fmt.Errorf("store report: %w", err))
	}

	log.Debug("Imported report", logging.F(logging.FieldReportID, report.ID))
	return FileResult{
		Path:         path,
		ReportID:     report.ID,
		ReportNumber: report.ReportNumber,
		CreditScore:  report.BasicDetails.CreditScore,
	}
}

func failed(path string, err error) FileResult {
	return FileResult{Path: path, Err: err, Kind: parsererror.KindOf(err)}
}
