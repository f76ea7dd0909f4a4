// Package root contains the root command for the application
package root

import (
	"fjacquet/credit-report/internal/config"
	"fjacquet/credit-report/internal/container"
	"fjacquet/credit-report/internal/logging"

	"github.com/spf13/cobra"
)

// Version is reported by the health endpoint and --version. Set at build
// time with -ldflags "-X fjacquet/credit-report/cmd/root.Version=...".
var Version = "dev"

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded by PersistentPreRunE
	AppConfig *config.Config

	// AppContainer holds the dependencies built from AppConfig
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "credit-report",
		Short: "Extract, store and serve credit bureau XML reports.",
		Long: `credit-report reads INProfileResponse credit bureau XML reports and turns
them into normalized records: identity details, account summary, tradelines
and addresses. Reports can be rendered on the command line, bulk imported
into a store, or uploaded and queried through an HTTP API.`,
		Version:            Version,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  initialize,
		PersistentPostRunE: cleanup,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to credit-report!")
			Log.Info("Use --help to see available commands")
		},
	}

	// SharedFlags holds the persistent flags of every command
	SharedFlags = CommonFlags{}
)

// Init registers the persistent flags. Call it once before Execute.
func Init() {
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches ./config.yaml, .credit-report/ and $HOME/.credit-report/)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text or json)")
}

// initialize loads .env, the configuration and the container.
func initialize(cmd *cobra.Command, args []string) error {
	envFile, err := config.LoadEnv()
	if err != nil {
		return err
	}

	cfg, err := config.Load(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = SharedFlags.LogFormat
	}

	c, err := container.NewContainerWithLogOutput(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	if envFile != "" {
		Log.Debug("Loaded environment file", logging.F(logging.FieldFile, envFile))
	}
	return nil
}

func cleanup(cmd *cobra.Command, args []string) error {
	if AppContainer == nil {
		return nil
	}
	err := AppContainer.Close()
	AppContainer = nil
	return err
}

// GetContainer returns the container built for the running command, or nil
// before PersistentPreRunE ran.
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the loaded configuration, or nil before
// PersistentPreRunE ran.
func GetConfig() *config.Config {
	return AppConfig
}

// GetLogger returns the logger commands should use.
func GetLogger() logging.Logger {
	return Log
}
