package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/etudelab/atelier/gallery"
)

var (
	flagGalleryKind  string
	flagGalleryLimit int
	flagThumbMaxEdge int
)

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Browse the catalog of rendered pieces",
}

func openGallery() (*gallery.Store, error) {
	path := cfg.GalleryPath
	if path == "" {
		path = "gallery.db"
	}
	return gallery.Open(path)
}

var galleryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pieces, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		gal, err := openGallery()
		if err != nil {
			return err
		}
		defer gal.Close()

		pieces, err := gal.List(cmd.Context(), gallery.Filter{
			Kind:  flagGalleryKind,
			Limit: flagGalleryLimit,
		})
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tKIND\tTITLE\tFORMAT\tCREATED\tPATH")
		for _, p := range pieces {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				p.ID, p.Kind, p.Title, p.Format,
				p.CreatedAt.Format("2006-01-02 15:04"), p.Path)
		}
		return w.Flush()
	},
}

var galleryThumbCmd = &cobra.Command{
	Use:   "thumb ID",
	Short: "Write a thumbnail for a PNG piece",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gal, err := openGallery()
		if err != nil {
			return err
		}
		defer gal.Close()

		path, err := gal.Thumbnail(cmd.Context(), args[0], flagThumbMaxEdge)
		if err != nil {
			return err
		}
		cmd.Println(path)
		return nil
	},
}

func init() {
	galleryListCmd.Flags().StringVar(&flagGalleryKind, "kind", "", "filter by kind (graph, score, sketch)")
	galleryListCmd.Flags().IntVar(&flagGalleryLimit, "limit", 0, "max entries (0 = all)")
	galleryThumbCmd.Flags().IntVar(&flagThumbMaxEdge, "max-edge", 256, "longest thumbnail edge in pixels")
	galleryCmd.AddCommand(galleryListCmd, galleryThumbCmd)
	rootCmd.AddCommand(galleryCmd)
}
