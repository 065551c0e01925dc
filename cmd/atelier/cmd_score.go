package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/etudelab/atelier/compose"
	"github.com/etudelab/atelier/score"
)

var (
	flagScoreText     string
	flagScoreOut      string
	flagScoreRoll     string
	flagScoreMeasures int
	flagScoreSeed     int64
	flagScoreTitle    string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compose and write musical scores",
}

var scoreComposeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose the 26-voice piece from a text file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagScoreText == "" {
			return fmt.Errorf("--text is required")
		}
		data, err := os.ReadFile(flagScoreText)
		if err != nil {
			return err
		}

		ccfg := compose.DefaultConfig()
		ccfg.Measures = flagScoreMeasures
		ccfg.Seed = flagScoreSeed
		ccfg.Title = flagScoreTitle
		if ccfg.Title == "" {
			base := filepath.Base(flagScoreText)
			ccfg.Title = strings.TrimSuffix(base, filepath.Ext(base))
		}

		piece, err := compose.BuildScore(string(data), ccfg)
		if err != nil {
			return err
		}

		out := flagScoreOut
		if out == "" {
			out = strings.TrimSuffix(flagScoreText, filepath.Ext(flagScoreText)) + ".ly"
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := score.WriteLilyPond(f, piece); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		cmd.Println(out)

		if flagScoreRoll != "" {
			roll := compose.RenderRoll(piece, compose.RollOptions{})
			defer roll.Close()
			if err := roll.SavePNG(flagScoreRoll); err != nil {
				return fmt.Errorf("save roll: %w", err)
			}
			cmd.Println(flagScoreRoll)
		}
		return nil
	},
}

func init() {
	scoreComposeCmd.Flags().StringVar(&flagScoreText, "text", "", "input text file")
	scoreComposeCmd.Flags().StringVarP(&flagScoreOut, "output", "o", "", "output .ly path")
	scoreComposeCmd.Flags().StringVar(&flagScoreRoll, "roll", "", "also write a piano-roll PNG here")
	scoreComposeCmd.Flags().IntVar(&flagScoreMeasures, "measures", 8, "measures per voice")
	scoreComposeCmd.Flags().Int64Var(&flagScoreSeed, "seed", 0, "placement seed")
	scoreComposeCmd.Flags().StringVar(&flagScoreTitle, "title", "", "score title")
	scoreCmd.AddCommand(scoreComposeCmd)
	rootCmd.AddCommand(scoreCmd)
}
