package chart

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithOutputDir sets the directory charts are written to.
func WithOutputDir(dir string) Option {
	return func(r *Renderer) {
		if dir != "" {
			r.outputDir = dir
		}
	}
}

// WithSize sets the canvas size in pixels. Non-positive values are ignored.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}
