package service

import "os"

// File permission constants for files written on behalf of the runner
const (
	// FilePermissions for created outputs and summary files
	FilePermissions os.FileMode = 0644
	// appendFlags opens a file for appending, creating it when missing
	appendFlags = os.O_APPEND | os.O_CREATE | os.O_WRONLY
)
