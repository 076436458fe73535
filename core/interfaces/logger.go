package interfaces

// Logger defines the interface for logging throughout the application.
// This abstraction allows for different logging implementations while maintaining a consistent
// interface. The production implementation is backed by logrus.
//
// Example usage:
//
//	logger.Info("Fetched homepage posts", map[string]interface{}{
//		"sections": 12,
//		"cached":   false,
//	})
//
//	logger.Error("GraphQL query failed", map[string]interface{}{
//		"operation": "PostBySlug",
//		"error":     err.Error(),
//	})
type Logger interface {
	// Debug logs a debug level message with optional structured fields.
	// Debug messages are typically used for detailed troubleshooting information.
	Debug(msg string, fields map[string]interface{})

	// Info logs an info level message with optional structured fields.
	// Info messages are used for general informational messages.
	Info(msg string, fields map[string]interface{})

	// Warn logs a warning level message with optional structured fields.
	// Warning messages indicate potential issues that don't prevent operation.
	Warn(msg string, fields map[string]interface{})

	// Error logs an error level message with optional structured fields.
	// Error messages indicate failures that need attention.
	Error(msg string, fields map[string]interface{})
}