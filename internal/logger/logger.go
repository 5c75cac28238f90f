package logger

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus for structured logging with context support
type Logger struct {
	*logrus.Entry
}

// New creates a new logger
func New() *Logger {
	return &Logger{
		Entry: logrus.NewEntry(logrus.StandardLogger()),
	}
}

// WithContext creates a logger carrying request identity fields from the context
func WithContext(ctx context.Context) *Logger {
	logger := New()

	if branch, ok := ctx.Value("branch_id").(string); ok && branch != "" {
		logger.Entry = logger.Entry.WithField("branch", branch)
	}
	if email, ok := ctx.Value("user_email").(string); ok && email != "" {
		logger.Entry = logger.Entry.WithField("user", email)
	}
	if requestID, ok := ctx.Value("request_id").(string); ok && requestID != "" {
		logger.Entry = logger.Entry.WithField("request_id", requestID)
	}

	return logger
}

// WithField adds a field to the logger
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithField(key, value),
	}
}

// WithFields adds multiple fields to the logger
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{
		Entry: l.Entry.WithFields(fields),
	}
}

// WithBranch adds the branch slug to the logger
func (l *Logger) WithBranch(slug string) *Logger {
	return l.WithField("branch", slug)
}

// WithError adds an error field to the logger
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Entry: l.Entry.WithError(err),
	}
}
