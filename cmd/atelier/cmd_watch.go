package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/etudelab/atelier"
)

var watchCmd = &cobra.Command{
	Use:   "watch [DIR]",
	Short: "Re-render sources whenever they change",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		s, cleanup, err := newStudio()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		err = s.Watch(ctx, dir, func(path string) {
			jobs := s.JobsFromSources([]string{path})
			if len(jobs) == 0 {
				return
			}
			out, err := s.Render(ctx, jobs[0])
			if err != nil {
				atelier.Logger().Warn("render failed", "path", path, "err", err)
				return
			}
			cmd.Println(out)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
