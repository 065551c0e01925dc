package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/etudelab/atelier/dot"
)

var (
	flagGraphOut     string
	flagGraphRankdir string
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Work with DOT graphs",
}

var graphRenderCmd = &cobra.Command{
	Use:   "render IN.dot",
	Short: "Render a DOT file to PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := parseDOTFile(args[0])
		if err != nil {
			return err
		}

		opts := dot.RenderOptions{}
		rankdir := flagGraphRankdir
		if rankdir == "" {
			rankdir, _ = g.Attr("rankdir")
		}
		if strings.EqualFold(rankdir, "LR") {
			opts.Layout.Rankdir = dot.RankLR
		}

		c := dot.Render(g, opts)
		defer c.Close()

		out := flagGraphOut
		if out == "" {
			out = strings.TrimSuffix(args[0], ".dot") + ".png"
		}
		if err := c.SavePNG(out); err != nil {
			return fmt.Errorf("save %s: %w", out, err)
		}
		cmd.Println(out)
		return nil
	},
}

var graphEchoCmd = &cobra.Command{
	Use:   "echo IN.dot",
	Short: "Parse a DOT file and pretty-print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := parseDOTFile(args[0])
		if err != nil {
			return err
		}
		cmd.Print(g.String())
		return nil
	},
}

func parseDOTFile(path string) (*dot.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return dot.Parse(f)
}

func init() {
	graphRenderCmd.Flags().StringVarP(&flagGraphOut, "output", "o", "", "output PNG path")
	graphRenderCmd.Flags().StringVar(&flagGraphRankdir, "rankdir", "", "layout direction (TB or LR)")
	graphCmd.AddCommand(graphRenderCmd, graphEchoCmd)
	rootCmd.AddCommand(graphCmd)
}
