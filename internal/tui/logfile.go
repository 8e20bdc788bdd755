package tui

import "os"

// GetLogFilePath returns the path rotating file logs should go to, or an
// empty string when file logging is disabled. Set CHISEL_LOG_FILE to
// enable it.
func GetLogFilePath() string {
	return os.Getenv("CHISEL_LOG_FILE")
}
