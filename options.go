package recwire

// Options carries the caller-tunable formatting knobs shared by both
// directions. Zero values select the ISO-8601 defaults.
type Options struct {
	// TimeFormat is a Go time layout overriding the default timestamp wire
	// format on both read and write paths.
	TimeFormat string
	// DateFormat is a Go time layout overriding the default calendar-date
	// wire format on both read and write paths.
	DateFormat string
}

// Option adjusts Options.
type Option func(*Options)

// WithTimeFormat overrides the timestamp wire format with a Go time layout.
func WithTimeFormat(layout string) Option {
	return func(o *Options) { o.TimeFormat = layout }
}

// WithDateFormat overrides the calendar-date wire format with a Go time layout.
func WithDateFormat(layout string) Option {
	return func(o *Options) { o.DateFormat = layout }
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
