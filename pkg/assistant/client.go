// Package assistant uploads the property document and runs the question and
// answer session against the hosted assistant service.
package assistant

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	configpkg "github.com/minhyannv/property-assistant-go/pkg/config"
)

// NewClient builds an API client from cfg. Requests are not retried.
func NewClient(cfg configpkg.Config) openai.Client {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	return openai.NewClient(opts...)
}
