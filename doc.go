// Package atelier provides a simple 2D drawing context for generative art.
//
// # Overview
//
// atelier is a pure Go raster canvas with an immediate-mode API in the
// spirit of cairo and HTML Canvas. It is the drawing surface behind the
// rest of this module: the dot package lays graphs out onto it, and the
// compose package uses it for score proof sheets. It works equally well
// on its own for one-off sketches.
//
// # Quick Start
//
//	import "github.com/etudelab/atelier"
//
//	dc := atelier.NewContext(512, 512)
//
//	dc.SetRGB(1, 0, 0)
//	dc.DrawCircle(256, 256, 100)
//	dc.Fill()
//
//	dc.SavePNG("output.png")
//
// # Coordinate System
//
// Standard raster coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians, 0 pointing right
//
// # Rendering
//
// All rendering is CPU-side through a scanline rasterizer with 4x
// supersampled anti-aliasing. The Renderer interface is the seam for
// injecting a different backend via WithRenderer; the built-in
// SoftwareRenderer is the only implementation shipped here.
package atelier

// Version is the current version of the module.
const Version = "0.3.0"
