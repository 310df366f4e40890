package cmd

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aikiriao/BitStream/bitstream"
	"github.com/aikiriao/BitStream/config"
)

var (
	// Version is the version of the binary.
	Version string

	// Commit is the commit hash of the binary.
	Commit string

	cfg         = config.DefaultConfig()
	configFile  string
	printConfig bool

	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bitcli",
	Short: "Read and write bit fields of binary files",
	Long: `bitcli reads and writes individual bits and unsigned fields of 1 to 64 bits
in binary files, most-significant bit first and regardless of byte boundaries.
The files carry no header: the sequence of field widths must be known out of band.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd, cfg); err != nil {
			return err
		}
		if printConfig {
			spew.Fdump(cmd.ErrOrStderr(), cfg)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		var err error
		logger, err = buildLogger(cfg.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&configFile, "config",
		config.DefaultConfigFile, "Path to configuration file")

	flags.BoolVar(&printConfig, "print-config",
		false, "Print the used config")

	flags.String("log-level",
		cfg.LogLevel, "Log level (debug, info, warn, error)")

	flags.Bool("workspace",
		cfg.Workspace, "Supply caller-owned workspace memory to every stream instead of allocating")
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(lvl),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize zap logger: %w", err)
	}
	return logger, nil
}

// streamOptions returns the options every stream opened by the CLI uses.
func streamOptions() []bitstream.OptionFunc {
	opts := []bitstream.OptionFunc{bitstream.WithLogger(logger)}
	if cfg.Workspace {
		opts = append(opts, bitstream.WithWorkspace(make([]byte, bitstream.WorkspaceSize())))
	}
	return opts
}
