// Package container wires the application's dependencies from a Config.
package container

import (
	"fmt"
	"io"
	"net/http"

	"fjacquet/credit-report/internal/batch"
	"fjacquet/credit-report/internal/bureauparser"
	"fjacquet/credit-report/internal/config"
	"fjacquet/credit-report/internal/logging"
	"fjacquet/credit-report/internal/parser"
	"fjacquet/credit-report/internal/report"
	"fjacquet/credit-report/internal/server"
	"fjacquet/credit-report/internal/store"
)

// Container holds all application dependencies. It is immutable after
// creation; use the getters.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	extractor *bureauparser.Extractor
	store     store.Repository
	importer  *batch.Importer
	generator *report.Generator
}

// NewContainer creates and wires all application dependencies, logging to
// stderr with the configured level and format.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogOutput is NewContainer with logs written to out.
func NewContainerWithLogOutput(cfg *config.Config, out io.Writer) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapterWithOutput(cfg.Log.Level, cfg.Log.Format, out))
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	extractor := bureauparser.NewExtractor(logger)
	extractor.SetMaxBytes(cfg.Upload.MaxBytes)

	repo, err := store.Open(cfg.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}

	importer := batch.NewImporter(extractor, repo, logger, cfg.Import.Workers)

	logger.Info("Container initialized successfully",
		logging.F(logging.FieldStoreDriver, cfg.Store.Driver),
		logging.F(logging.FieldWorkers, importer.Workers()))

	return &Container{
		logger:    logger,
		config:    cfg,
		extractor: extractor,
		store:     repo,
		importer:  importer,
		generator: report.NewGenerator(logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the configuration the container was built from.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetParser returns the bureau report extractor.
func (c *Container) GetParser() parser.FullParser {
	return c.extractor
}

// GetStore returns the report repository.
func (c *Container) GetStore() store.Repository {
	return c.store
}

// GetImporter returns the bulk importer.
func (c *Container) GetImporter() *batch.Importer {
	return c.importer
}

// GetGenerator returns the report renderer.
func (c *Container) GetGenerator() *report.Generator {
	return c.generator
}

// NewRouter builds the HTTP handler over the container's parser and store.
func (c *Container) NewRouter(version string) http.Handler {
	return server.NewRouter(c.logger, server.RouterDependencies{
		Parser:         c.extractor,
		Store:          c.store,
		Upload:         c.config.Upload,
		RateLimit:      c.config.RateLimit,
		AllowedOrigins: c.config.Server.AllowedOrigins,
		Version:        version,
	})
}

// NewServer builds an HTTP server for the configured address.
func (c *Container) NewServer(version string) *server.Server {
	return server.New(c.logger, c.config.Server, c.NewRouter(version))
}

// Close releases the store.
func (c *Container) Close() error {
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	c.logger.Info("Container closed")
	return nil
}
