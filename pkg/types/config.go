// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "styleforge/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CorpusConfig holds settings for the reference corpus used by live
// previews.
type CorpusConfig struct {
	// Path is the YAML file mapping reference IDs to CSL records.
	Path string `json:"path" yaml:"path"`

	// SampleSize is how many references a live preview cites (default 3).
	SampleSize int `json:"sample_size" yaml:"sample_size"`
}

// RenderConfig holds settings for the external render service client.
// An empty BaseURL selects the built-in renderer.
type RenderConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the render service root (e.g. "http://localhost:4000").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is an optional bearer token for the render service.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// StoreConfig holds settings for the saved-style database.
type StoreConfig struct {
	// Path is the SQLite database file (default "styleforge.db").
	Path string `json:"path" yaml:"path"`
}

// ServerConfig groups all settings for the HTTP service.
type ServerConfig struct {
	// Addr is the listen address (default "127.0.0.1:3000").
	Addr string `json:"addr" yaml:"addr"`

	Corpus CorpusConfig `json:"corpus" yaml:"corpus"`
	Render RenderConfig `json:"render" yaml:"render"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}
