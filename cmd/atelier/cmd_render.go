package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [SOURCES...]",
	Short: "Batch-render sources (falls back to config sources)",
	RunE: func(cmd *cobra.Command, args []string) error {
		sources := args
		if len(sources) == 0 {
			sources = cfg.Sources
		}
		if len(sources) == 0 {
			return fmt.Errorf("no sources given and none configured")
		}

		s, cleanup, err := newStudio()
		if err != nil {
			return err
		}
		defer cleanup()

		jobs := s.JobsFromSources(sources)
		if len(jobs) == 0 {
			return fmt.Errorf("no renderable sources in %v", sources)
		}
		results, err := s.RenderAll(cmd.Context(), jobs)
		for _, r := range results {
			if r.Err != nil {
				cmd.PrintErrf("%s: %v\n", r.Job.Input, r.Err)
			} else if r.Path != "" {
				cmd.Println(r.Path)
			}
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
