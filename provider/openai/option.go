package openai

import "net/http"

// Option configures a chat completions request.
type Option func(*chatRequest)

// WithTemperature sets the sampling temperature (0.0–2.0).
func WithTemperature(t float64) Option {
	return func(r *chatRequest) { r.Temperature = &t }
}

// WithTopP sets nucleus sampling top-p (0.0–1.0).
func WithTopP(p float64) Option {
	return func(r *chatRequest) { r.TopP = &p }
}

// WithMaxTokens sets the maximum number of output tokens.
func WithMaxTokens(n int) Option {
	return func(r *chatRequest) { r.MaxTokens = n }
}

// WithStop sets one or more stop sequences.
func WithStop(s ...string) Option {
	return func(r *chatRequest) { r.Stop = s }
}

// WithSeed sets a deterministic seed for reproducible outputs.
func WithSeed(s int) Option {
	return func(r *chatRequest) { r.Seed = &s }
}

// ProviderOption configures a Provider instance.
type ProviderOption func(*Provider)

// WithName sets the provider name returned by Name() (default "openai").
// Use this to distinguish providers in logs and observability.
func WithName(name string) ProviderOption {
	return func(p *Provider) { p.name = name }
}

// WithHTTPClient sets a custom HTTP client (e.g. for timeouts or proxies).
func WithHTTPClient(c *http.Client) ProviderOption {
	return func(p *Provider) { p.client = c }
}

// WithOptions appends request-level options (temperature, top_p, etc.)
// applied to every request made by this provider.
func WithOptions(opts ...Option) ProviderOption {
	return func(p *Provider) { p.opts = append(p.opts, opts...) }
}
