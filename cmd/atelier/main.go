// Command atelier is the creative-coding toolkit CLI: render graphs,
// compose scores from text, run generative sketches, and browse the
// gallery of results.
package main

import (
	"fmt"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"

	"github.com/etudelab/atelier"
	"github.com/etudelab/atelier/studio"
)

var (
	flagConfig  string
	flagVerbose bool
	flagLogFile string

	cfg     studio.Config
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:           "atelier",
	Short:         "Creative-coding toolkit: canvases, graphs, and scores",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}

		handlers := []slog.Handler{
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
		}
		if flagLogFile != "" {
			f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			logFile = f
			handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		}
		atelier.SetLogger(slog.New(slogmulti.Fanout(handlers...)))

		var err error
		cfg, err = studio.LoadConfig(flagConfig)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "atelier.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "also log JSON to this file")
}

// newStudio builds a Studio from the loaded config, attaching the
// gallery when one is configured.
func newStudio() (*studio.Studio, func(), error) {
	var opts []studio.Option
	cleanup := func() {}
	if cfg.GalleryPath != "" {
		gal, err := openGallery()
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, studio.WithGallery(gal))
		cleanup = func() { gal.Close() }
	}
	s, err := studio.New(cfg, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	registerSketches(s)
	return s, cleanup, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "atelier:", err)
		os.Exit(1)
	}
}
