package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger wraps slog.Logger with additional functionality
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance
func New() *Logger {
	// Get log level from environment
	level := getLogLevel(os.Getenv("LOG_LEVEL"))

	// Create handler options
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	// Create handler based on environment
	var handler slog.Handler
	if gin.Mode() == gin.DebugMode {
		// Use text handler for development (more readable)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// Use JSON handler for production (structured)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithSessionID adds booking session ID to logger context
func (l *Logger) WithSessionID(sessionID string) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("session_id", sessionID)),
	}
}

// WithError adds error to logger context
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		Logger: l.Logger.With(slog.String("error", err.Error())),
	}
}

// HTTP logging methods

// LogHTTPRequest logs an HTTP request
func (l *Logger) LogHTTPRequest(c *gin.Context, duration time.Duration) {
	l.Logger.InfoContext(c.Request.Context(),
		"HTTP Request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("query", c.Request.URL.RawQuery),
		slog.Int("status", c.Writer.Status()),
		slog.Duration("duration", duration),
		slog.String("ip", c.ClientIP()),
		slog.String("user_agent", c.Request.UserAgent()),
		slog.Int("size", c.Writer.Size()),
	)
}

// LogHTTPError logs an HTTP error
func (l *Logger) LogHTTPError(c *gin.Context, err error, statusCode int) {
	l.Logger.ErrorContext(c.Request.Context(),
		"HTTP Error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()),
		slog.String("ip", c.ClientIP()),
	)
}

// Backend call logging methods

// LogBackendCall logs a call to the airline inventory backend
func (l *Logger) LogBackendCall(ctx context.Context, method, path string, status int, duration time.Duration, err error) {
	if err != nil {
		l.Logger.ErrorContext(ctx,
			"Backend Call Error",
			slog.String("method", method),
			slog.String("path", path),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()),
		)
	} else {
		l.Logger.DebugContext(ctx,
			"Backend Call",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("duration", duration),
		)
	}
}

// Business logic logging methods

// LogBookingSubmitted logs when a booking draft is submitted to the backend
func (l *Logger) LogBookingSubmitted(ctx context.Context, sessionID string, flightID int, seats []string) {
	l.Logger.InfoContext(ctx,
		"Booking Submitted",
		slog.String("session_id", sessionID),
		slog.Int("flight_id", flightID),
		slog.Any("seats", seats),
	)
}

// LogBookingConfirmed logs a successful booking
func (l *Logger) LogBookingConfirmed(ctx context.Context, sessionID, reference string, flightID int) {
	l.Logger.InfoContext(ctx,
		"Booking Confirmed",
		slog.String("session_id", sessionID),
		slog.String("booking_reference", reference),
		slog.Int("flight_id", flightID),
	)
}

// LogSeatConflict logs a seat conflict rejection from the backend
func (l *Logger) LogSeatConflict(ctx context.Context, sessionID string, flightID int, detail string) {
	l.Logger.WarnContext(ctx,
		"Seat Conflict",
		slog.String("session_id", sessionID),
		slog.Int("flight_id", flightID),
		slog.String("detail", detail),
	)
}

// LogSeatMapReloaded logs a refresh of the booked-seat mirror
func (l *Logger) LogSeatMapReloaded(ctx context.Context, flightID int, bookedCount int) {
	l.Logger.DebugContext(ctx,
		"Seat Map Reloaded",
		slog.Int("flight_id", flightID),
		slog.Int("booked_seats", bookedCount),
	)
}

// Global logger instance (can be replaced with dependency injection)
var defaultLogger = New()

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
