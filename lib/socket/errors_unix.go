//go:build unix

package socket

import (
	"errors"
	"golang.org/x/sys/unix"
)

// translate is the only place where native error codes are inspected.
func translate(err error) Kind {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return Unknown
	}
	switch errno {
	case unix.EACCES, unix.EPERM:
		return PermissionDenied
	case unix.EMSGSIZE:
		return MessageTooLarge
	case unix.ENOBUFS, unix.ENOMEM:
		return NoBufferSpace
	case unix.EAGAIN:
		return WouldBlock
	case unix.EBADF, unix.ENOTSOCK:
		return InvalidSocketDesc
	case unix.EINVAL:
		return InvalidArgument
	case unix.ENETDOWN, unix.ENETUNREACH:
		return NetworkDown
	case unix.EADDRNOTAVAIL:
		return AddressNotAvailable
	case unix.EOPNOTSUPP:
		return OperationNotSupported
	case unix.EPIPE, unix.ESHUTDOWN:
		return SocketClosed
	case unix.EINTR:
		return Interrupted
	case unix.EFAULT:
		return MemoryFault
	case unix.EDESTADDRREQ:
		return DestAddressRequired
	case unix.EAFNOSUPPORT, unix.EPROTONOSUPPORT:
		return PlatformInit
	default:
		return Unknown
	}
}
