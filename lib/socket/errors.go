package socket

import (
	"errors"
	"fmt"
)

// Kind classifies socket errors independently of the operating system.
type Kind int

const (
	Unknown Kind = iota
	PermissionDenied
	MessageTooLarge
	NoBufferSpace
	WouldBlock
	InvalidSocketDesc
	InvalidArgument
	NetworkDown
	AddressNotAvailable
	OperationNotSupported
	SocketClosed
	Interrupted
	MemoryFault
	DestAddressRequired
	PlatformInit
)

var kindNames = map[Kind]string{
	Unknown:               "unknown error",
	PermissionDenied:      "permission denied",
	MessageTooLarge:       "message too large",
	NoBufferSpace:         "no buffer space",
	WouldBlock:            "operation would block",
	InvalidSocketDesc:     "invalid socket descriptor",
	InvalidArgument:       "invalid argument",
	NetworkDown:           "network down",
	AddressNotAvailable:   "address not available",
	OperationNotSupported: "operation not supported",
	SocketClosed:          "socket closed",
	Interrupted:           "interrupted",
	MemoryFault:           "memory fault",
	DestAddressRequired:   "destination address required",
	PlatformInit:          "socket subsystem unavailable",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("socket error kind %d", int(k))
}

// Error makes a Kind usable as a target for errors.Is.
func (k Kind) Error() string {
	return k.String()
}

// ErrNotBound is wrapped by errors of operations on a socket that was never bound.
var ErrNotBound = errors.New("socket: not bound")

// ErrClosed is wrapped by errors of operations on a socket after Close.
var ErrClosed = errors.New("socket: use of closed socket")

// Error is returned by all Socket operations.
// Err is the native error the Kind was translated from.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("socket: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("socket: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the Kind of this error.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf returns the Kind of a socket error, or Unknown for any other error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

func wrap(op string, err error) error {
	return &Error{Op: op, Kind: translate(err), Err: err}
}
