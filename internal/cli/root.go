// Package cli implements the parrot command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tessro/parrot/internal/config"
	apperrors "github.com/tessro/parrot/internal/errors"
	"github.com/tessro/parrot/internal/logging"
	"go.uber.org/zap"
)

// annotationFullscreen marks commands that own the terminal. Their logs go
// to log.file only.
const annotationFullscreen = "parrot/fullscreen"

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg      *config.Config
	logger   = zap.NewNop().Sugar()
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "parrot",
	Short: "Practice a language one subtitle line at a time",
	Long: `Parrot plays a video in mpv and keeps its subtitles in step with playback.

Step through lines with the arrow keys, loop the current line, and slow down
or speed up playback while you shadow the dialogue.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return initLogger(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.parrotrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

func initLogger(cmd *cobra.Command) error {
	opts := logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Verbose: verbose,
	}
	if _, fullscreen := cmd.Annotations[annotationFullscreen]; !fullscreen {
		opts.Fallback = os.Stderr
	}

	l, closeFn, err := logging.New(opts)
	if err != nil {
		return err
	}
	logger, closeLog = l, closeFn
	logger.Debugw("Loaded config", "path", configPath(), "command", cmd.Name())
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_ = closeLog()
		fmt.Fprintln(os.Stderr, apperrors.Format(err))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// Logger returns the command logger.
func Logger() *zap.SugaredLogger {
	return logger
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.Path()
}
