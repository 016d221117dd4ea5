package skybench

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for verbose reports. If nil, logging is
// disabled.
func WithLogger(logger *Logger) Option {
	return func(r *Runner) {
		if logger == nil {
			logger = NoopLogger()
		}
		r.logger = logger
	}
}
