package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	envFile    string

	// Command flags, applied over the loaded config when set.
	flagFields      []string
	flagStrict      bool
	flagWorkers     int
	flagSkipInvalid bool

	cfg    = DefaultConfig()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "tweetparse",
	Short: "Normalize tweet payloads in the original and activity-streams formats",
	Long: `tweetparse reads JSON-lines tweet dumps in either the Twitter API "original"
format or the Gnip "activity streams" format and extracts normalized fields.

Input files may be gzip-compressed. With no files, stdin is read.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l

		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		c, err := Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.ApplyEnv(os.Getenv); err != nil {
			return err
		}
		applyFlags(cmd, &c)
		c.Normalize()
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c
		logger.Debug("configuration loaded", zap.Any("config", cfg))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func applyFlags(cmd *cobra.Command, c *Config) {
	fl := cmd.Flags()
	if fl.Changed("fields") {
		c.Fields = flagFields
	}
	if fl.Changed("strict") {
		c.Strict = flagStrict
	}
	if fl.Changed("workers") {
		c.Workers = flagWorkers
	}
	if fl.Changed("skip-invalid") {
		c.SkipInvalid = flagSkipInvalid
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "tweetparse.yaml", "Config file (YAML); ignored when missing")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with TWEETPARSE_* settings; ignored when missing")

	fieldsCmd.Flags().StringSliceVarP(&flagFields, "fields", "f", nil, "Comma-separated fields to emit (see 'fields --list')")
	fieldsCmd.Flags().BoolVar(&listFields, "list", false, "List the available field names and exit")
	fieldsCmd.Flags().BoolVar(&flagSkipInvalid, "skip-invalid", false, "Log and skip lines that are not tweets")
	for _, c := range []*cobra.Command{fieldsCmd, validateCmd} {
		c.Flags().BoolVar(&flagStrict, "strict", false, "Reject payloads whose top-level keys drift from the expected sets")
		c.Flags().IntVarP(&flagWorkers, "workers", "w", 0, "Parallel parse workers (default: number of CPUs)")
	}

	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
