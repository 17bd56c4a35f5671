package cmd

import (
	"fmt"
	"os"

	"ee-export/domain/export"
	"ee-export/infrastructure/cloudapi"
	"ee-export/infrastructure/config"
	"ee-export/infrastructure/googleauth"
	"ee-export/infrastructure/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	cfg      *config.Config
	logLevel string
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ee-export",
	Short: "Convert and submit legacy Earth Engine export tasks",
	Long: `ee-export turns legacy export task parameters (the JSON or YAML bag the
old batch API accepted) into Cloud API export requests:

  - Convert a task file into an image, table, video, map, video map or classifier request
  - Check output buckets and Drive folders before submitting
  - Submit the export to a cloud project

Example:
  ee-export convert --kind image task.json
  ee-export submit --project my-project task.yaml`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logLevel
		if level == "" && cfg != nil {
			level = cfg.Logging.Level
		}
		var err error
		logger, err = logging.New(level, os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultPath
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		// Config file is optional; commands fall back to defaults
		cfg = nil
	}
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

// GetLogger returns the command logger, or a no-op logger before it is built
func GetLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

// newConverter wires the converter with the Cloud API collaborators
func newConverter() *export.Converter {
	return export.NewConverter(
		cloudapi.NewExpressionEncoder(),
		cloudapi.NewAssetNamer(),
		cloudapi.NewFormatMapper(),
	)
}

// credentials returns the Google credentials selected by the config
func credentials(c *config.Config) googleauth.Credentials {
	if c == nil {
		return googleauth.Credentials{}
	}
	return googleauth.Credentials{
		ServiceAccountFile: c.Google.ServiceAccountFile,
		CredentialsFile:    c.Google.CredentialsFile,
		TokenFile:          c.Google.TokenFile,
	}
}
