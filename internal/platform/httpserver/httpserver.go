// Package httpserver builds the API's http.Server from configuration.
package httpserver

import (
	"net/http"
	"time"

	"govassist/internal/platform/config"
)

// New builds an HTTP server with the configured timeouts. The header read
// timeout is fixed; slow-header clients get cut off before the handler runs.
func New(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}
