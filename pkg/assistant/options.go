package assistant

import (
	"io"

	"github.com/openai/openai-go"

	loggerpkg "github.com/minhyannv/property-assistant-go/pkg/logger"
)

// SessionOption configures optional runtime dependencies for Session.
type SessionOption func(*sessionDeps)

type sessionDeps struct {
	logger loggerpkg.Logger
	out    io.Writer
	client *openai.Client
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) SessionOption {
	return func(d *sessionDeps) {
		d.logger = l
	}
}

// WithOutput sets where run statuses and answers are printed.
func WithOutput(w io.Writer) SessionOption {
	return func(d *sessionDeps) {
		d.out = w
	}
}

// WithClient reuses an existing client instead of building one from config.
func WithClient(c openai.Client) SessionOption {
	return func(d *sessionDeps) {
		d.client = &c
	}
}
