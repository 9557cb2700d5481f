package ports

// Logger defines the interface for logging.
//
// Args are alternating key/value pairs, as accepted by log/slog.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(err error)
	// Fatal logs err at fatal level. It does not exit the process.
	Fatal(err error)
}
