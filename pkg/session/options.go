package session

import (
	"log/slog"
	"strings"
)

// Option configures a Session at load time.
type Option func(*Session)

// WithLogger sets the logger. Defaults to a nop logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			s.id = trimmed
		}
	}
}

// WithCreateMissing starts from an empty page when the store has no
// document yet. Without it Load returns store.ErrNotFound.
func WithCreateMissing() Option {
	return func(s *Session) {
		s.createMissing = true
	}
}
