package ipc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSocket is returned when no IPC endpoint path was supplied
	ErrNoSocket = errors.New("no IPC socket path given")
	// ErrNotConnected is returned by exchanges on a closed or never opened connection
	ErrNotConnected = errors.New("not connected")
	// ErrBroken is returned after a protocol error left the stream out of sync
	ErrBroken = errors.New("connection out of sync after protocol error")
)

// ConnectionError means the transport could not be opened
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to connect: %v", e.Err)
	}
	return fmt.Sprintf("failed to connect to socket %s: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// IOError means a read or write on an open connection failed,
// including a peer closing the stream mid-message.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ProtocolError means the peer sent a frame that violates the wire format
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "protocol error: " + e.Reason
}

// CommandFailure describes one failed subcommand of a RUN_COMMAND request
type CommandFailure struct {
	Index      int
	ParseError bool
	Error      string
}

// CommandError means the compositor reported at least one failed subcommand.
// Subcommands before the failure have already been applied.
type CommandError struct {
	Command  string
	Failures []CommandFailure
}

func (e *CommandError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msg := f.Error
		if msg == "" {
			msg = "unknown error"
		}
		parts = append(parts, fmt.Sprintf("#%d: %s", f.Index, msg))
	}
	return fmt.Sprintf("command %q failed: %s", e.Command, strings.Join(parts, "; "))
}
