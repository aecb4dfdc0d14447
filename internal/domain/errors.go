package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoTables       = errors.New("no tables specified for backup")
	ErrBucketNotFound = errors.New("bucket does not exist")
)

// ConfigurationError reports an invalid table list entry or identifier.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %s", e.Field, e.Reason)
}

// SetupError aborts a run before any table is processed.
type SetupError struct {
	Stage string
	Err   error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setup failed at %s: %v", e.Stage, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// LocatorError means the prior backups of a table could not be listed.
type LocatorError struct {
	Table  TableRef
	Prefix string
	Err    error
}

func (e *LocatorError) Error() string {
	return fmt.Sprintf("locate prior backup of %s under %s/: %v", e.Table, e.Prefix, e.Err)
}

func (e *LocatorError) Unwrap() error {
	return e.Err
}

// BackupEngineError wraps a failed BACKUP statement.
type BackupEngineError struct {
	Table  TableRef
	Target string
	Err    error
}

func (e *BackupEngineError) Error() string {
	return fmt.Sprintf("backup of %s to %s: %v", e.Table, e.Target, e.Err)
}

func (e *BackupEngineError) Unwrap() error {
	return e.Err
}
