package api

import (
	"context"
	"errors"
	"net"
)

// Kind classifies a failed exchange with the charging service.
type Kind int

const (
	// KindApplication is a service-level failure (envelope code -1);
	// the message is the server's own text and is shown verbatim.
	KindApplication Kind = iota
	KindConnectTimeout
	KindConnectionRefused
	KindReadTimeout
	KindProtocol
	KindTransport
)

// Error is the single error type crossing the transport boundary. The
// message is always ready for display.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// Fixed localized texts for failures where no server message exists.
var transportMessages = map[Kind]string{
	KindConnectTimeout:    "连接超时",
	KindConnectionRefused: "连接错误",
	KindReadTimeout:       "数据读取超时",
	KindProtocol:          "Http错误",
	KindTransport:         "网络错误",
}

// NewApplicationError wraps a server-supplied failure message.
func NewApplicationError(message string) *Error {
	return &Error{Kind: KindApplication, Message: message}
}

func newTransportError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Message: transportMessages[kind], cause: cause}
}

// classifyTransport maps raw net/http failures onto the error taxonomy.
func classifyTransport(err error) *Error {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Op == "dial" {
			if opErr.Timeout() {
				return newTransportError(KindConnectTimeout, err)
			}
			return newTransportError(KindConnectionRefused, err)
		}
		if opErr.Timeout() {
			return newTransportError(KindReadTimeout, err)
		}
		return newTransportError(KindTransport, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newTransportError(KindReadTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newTransportError(KindReadTimeout, err)
	}
	return newTransportError(KindTransport, err)
}

// AsError extracts *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
