package main

import (
	"math"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/etudelab/atelier"
	"github.com/etudelab/atelier/studio"
)

var (
	flagDemoOut  string
	flagDemoSeed int64
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Render the generative canvas demo",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := atelier.NewContext(cfg.Width, cfg.Height)
		defer c.Close()
		if err := drawDemo(c, flagDemoSeed); err != nil {
			return err
		}
		if err := c.SavePNG(flagDemoOut); err != nil {
			return err
		}
		cmd.Println(flagDemoOut)
		return nil
	},
}

// registerSketches wires the built-in sketches into a studio so
// `atelier render` and watch mode can run them by name.
func registerSketches(s *studio.Studio) {
	s.RegisterSketch("demo", drawDemo)
}

// drawDemo exercises the canvas: gradient fill, dashed strokes,
// transforms, clipping, and text.
func drawDemo(c *atelier.Context, seed int64) error {
	w := float64(c.Width())
	h := float64(c.Height())
	rng := rand.New(rand.NewSource(seed))

	grad := atelier.NewLinearGradient(0, 0, 0, h)
	grad.AddColorStop(0, atelier.RGB(0.07, 0.09, 0.16))
	grad.AddColorStop(1, atelier.RGB(0.23, 0.16, 0.35))
	c.SetFillPattern(grad)
	c.DrawRectangle(0, 0, w, h)
	if err := c.Fill(); err != nil {
		return err
	}

	// Scattered translucent circles.
	for i := 0; i < 60; i++ {
		x := rng.Float64() * w
		y := rng.Float64() * h
		r := 4 + rng.Float64()*28
		hue := rng.Float64() * 360
		col := atelier.HSL(hue, 0.7, 0.6)
		c.SetRGBA(col.R, col.G, col.B, 0.35)
		c.DrawCircle(x, y, r)
		if err := c.Fill(); err != nil {
			return err
		}
	}

	// Ring of rotated polygons around the center.
	cx, cy := w/2, h/2
	for i := 0; i < 8; i++ {
		c.Push()
		c.RotateAbout(float64(i)*math.Pi/4, cx, cy)
		ring := atelier.HSL(float64(i)*45, 0.8, 0.65)
		c.SetRGBA(ring.R, ring.G, ring.B, 0.8)
		c.SetLineWidth(3)
		c.DrawRegularPolygon(6, cx+h/4, cy, h/14, 0)
		if err := c.Stroke(); err != nil {
			c.Pop()
			return err
		}
		c.Pop()
	}

	// Dashed orbit.
	c.SetRGBA(1, 1, 1, 0.6)
	c.SetLineWidth(2)
	c.SetDash(10, 6)
	c.DrawCircle(cx, cy, h/3)
	if err := c.Stroke(); err != nil {
		return err
	}
	c.ClearDash()

	c.SetRGB(1, 1, 1)
	if err := c.DrawStringAnchored("atelier", cx, cy, 0.5, 0.5); err != nil {
		return err
	}
	return nil
}

func init() {
	demoCmd.Flags().StringVarP(&flagDemoOut, "output", "o", "demo.png", "output file")
	demoCmd.Flags().Int64Var(&flagDemoSeed, "seed", 0, "scatter seed")
	rootCmd.AddCommand(demoCmd)
}
