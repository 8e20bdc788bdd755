// Package runtime provides a context type that holds the runner, engine,
// and logger for use throughout the application. This avoids passing
// multiple parameters.
package runtime
