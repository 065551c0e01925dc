package atelier

// ContextOption configures a Context during creation.
//
// Example:
//
//	// Default software rendering
//	dc := atelier.NewContext(800, 600)
//
//	// Custom renderer (dependency injection)
//	dc := atelier.NewContext(800, 600, atelier.WithRenderer(r))
type ContextOption func(*contextOptions)

type contextOptions struct {
	renderer Renderer
	pixmap   *Pixmap
}

// WithRenderer sets a custom renderer for the Context. The built-in
// SoftwareRenderer is used when no renderer is provided.
func WithRenderer(r Renderer) ContextOption {
	return func(o *contextOptions) {
		o.renderer = r
	}
}

// WithPixmap draws onto an existing pixmap instead of allocating one.
// The pixmap dimensions should match the Context dimensions.
func WithPixmap(pm *Pixmap) ContextOption {
	return func(o *contextOptions) {
		o.pixmap = pm
	}
}
