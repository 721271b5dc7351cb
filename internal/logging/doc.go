// Package logging builds the zap loggers used by the service binaries.
package logging
