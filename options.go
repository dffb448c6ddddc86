package forumark

// RenderOptions holds options for a single render.
type RenderOptions struct {
	// BoldColor is a CSS colour applied to every <strong>.
	BoldColor string
	// FontSize wraps the output in a sized container; bare numbers are
	// pixels.
	FontSize string
	Config   *RenderConfig
}

// Option is a function that configures RenderOptions.
type Option func(*RenderOptions)

// WithBoldColor sets the colour token for bold text.
func WithBoldColor(color string) Option {
	return func(opts *RenderOptions) {
		opts.BoldColor = color
	}
}

// WithFontSize sets the font-size token for the preview.
func WithFontSize(size string) Option {
	return func(opts *RenderOptions) {
		opts.FontSize = size
	}
}

// WithConfig sets a custom RenderConfig.
func WithConfig(config *RenderConfig) Option {
	return func(opts *RenderOptions) {
		if config != nil {
			opts.Config = config
		}
	}
}

// WithHighlighter overrides the code highlighter. nil disables
// highlighting.
func WithHighlighter(h Highlighter) Option {
	return func(opts *RenderOptions) {
		config := *opts.Config
		config.Highlighter = h
		opts.Config = &config
	}
}

// WithEmojis overrides the emoji source. nil disables emoji lookup.
func WithEmojis(source EmojiSource) Option {
	return func(opts *RenderOptions) {
		config := *opts.Config
		config.Emojis = source
		opts.Config = &config
	}
}

// defaultRenderOptions returns the default render options.
func defaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Config: DefaultConfig(),
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *RenderOptions {
	options := defaultRenderOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}
