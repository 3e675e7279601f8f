package resources

import "net/http"

// Option configures the Client.
type Option interface {
	apply(*Client)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*Client)

func (f optionFunc) apply(c *Client) { f(c) }

// WithHTTPClient replaces the default HTTP client (30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	})
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(ua string) Option {
	return optionFunc(func(c *Client) {
		c.userAgent = ua
	})
}
