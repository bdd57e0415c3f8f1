package irc

import (
	"fmt"

	"github.com/pkg/errors"
)

// MalformedLineError is returned by Parse when a line has no discernible
// command token.
type MalformedLineError struct {
	Line string
}

func (e MalformedLineError) Error() string {
	return fmt.Sprintf("irc: malformed line: %q", e.Line)
}

// InvalidModeError is returned when a mode-change string does not begin with
// a '+' or '-' sign.
type InvalidModeError struct {
	Input string
}

func (e InvalidModeError) Error() string {
	return fmt.Sprintf("irc: invalid mode string: %q", e.Input)
}

// LineTooLongError is returned when an outbound line exceeds MaxLineLength.
type LineTooLongError struct {
	Length int
}

func (e LineTooLongError) Error() string {
	return fmt.Sprintf("irc: line too long: %d bytes (max %d)", e.Length, MaxLineLength)
}

// TopicTooLongError is returned when a topic exceeds the server-advertised
// TOPICLEN.
type TopicTooLongError struct {
	Length, Max int
}

func (e TopicTooLongError) Error() string {
	return fmt.Sprintf("irc: topic too long: %d bytes (max %d)", e.Length, e.Max)
}

// TransportError wraps an error surfaced by the connection facade.
type TransportError struct {
	Cause error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("irc: transport error: %v", e.Cause)
}

// Unwrap allows errors.Is/errors.As to see through to the cause.
func (e TransportError) Unwrap() error {
	return e.Cause
}

// WrapTransportError annotates a lower-level transport error, preserving its
// cause chain via pkg/errors.
func WrapTransportError(cause error, context string) TransportError {
	return TransportError{Cause: errors.Wrap(cause, context)}
}

// ProtocolError represents a server-sent ERROR line.
type ProtocolError struct {
	Text string
}

func (e ProtocolError) Error() string {
	return fmt.Sprintf("irc: server error: %s", e.Text)
}
