package debug

import (
	"errors"
	"fmt"
)

var errBadArgs = errors.New("malformed command arguments")

// QMPErrorClass is the wire-level error class QMP replies carry in
// {"error":{"class":...}}.
type QMPErrorClass string

const (
	GenericError    QMPErrorClass = "GenericError"
	CommandNotFound QMPErrorClass = "CommandNotFound"
)

// QMPError is a QMP command error, carrying the wire class alongside the
// human-readable description.
type QMPError struct {
	Class QMPErrorClass
	Desc  string
}

func (e *QMPError) Error() string {
	return fmt.Sprintf("%s: %s", e.Class, e.Desc)
}

func genericErrorf(format string, args ...any) *QMPError {
	return &QMPError{Class: GenericError, Desc: fmt.Sprintf(format, args...)}
}

func commandNotFound(name string) *QMPError {
	return &QMPError{Class: CommandNotFound, Desc: fmt.Sprintf("The command %s has not been found", name)}
}
