//go:build unix

package socket

import (
	"golang.org/x/sys/unix"
	"projekt/udpframe/lib/ipaddr"
	"projekt/udpframe/lib/network"
)

type Socket struct {
	fd     int
	port   uint16
	iface  ipaddr.Addr
	bound  bool
	closed bool
	filter *network.Cache
}

type Option func(*Socket)

// WithLocalFilter drops datagrams whose sender is one of the addresses in the cache.
// This hides our own broadcasts that are looped back to us.
// The cache is refreshed by every receive attempt.
func WithLocalFilter(cache *network.Cache) Option {
	return func(s *Socket) {
		s.filter = cache
	}
}

// New acquires an unbound socket.
// It is bound to all interfaces once Bind is called.
func New(opts ...Option) (*Socket, error) {
	s := &Socket{
		fd:    -1,
		iface: ipaddr.Any,
	}
	for _, opt := range opts {
		opt(s)
	}
	fd, err := open()
	if err != nil {
		return nil, err
	}
	s.fd = fd
	return s, nil
}

func open() (fd int, err error) {
	fd, err = unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, unix.IPPROTO_UDP)
	if err != nil {
		return -1, wrap("socket", err)
	}
	unix.CloseOnExec(fd)
	err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
	if err != nil {
		_ = unix.Close(fd)
		return -1, wrap("setsockopt", err)
	}
	err = unix.SetNonblock(fd, true)
	if err != nil {
		_ = unix.Close(fd)
		return -1, wrap("setnonblock", err)
	}
	return fd, nil
}

// Bind sets the port (host byte order) and rebinds the socket.
// The same port is used as the destination port of SendTo.
func (s *Socket) Bind(port uint16) error {
	s.port = port
	return s.rebind()
}

// BindInterface sets the local interface address and rebinds the socket.
// ipaddr.Any binds to all interfaces.
func (s *Socket) BindInterface(addr ipaddr.Addr) error {
	s.iface = addr
	return s.rebind()
}

// rebind replaces the descriptor with a fresh one bound to the current port and interface.
// The old descriptor is closed first so that the new one can take over its port.
func (s *Socket) rebind() error {
	if s.closed {
		return &Error{Op: "bind", Kind: SocketClosed, Err: ErrClosed}
	}
	if s.fd >= 0 {
		_ = unix.Close(s.fd)
		s.fd = -1
	}
	s.bound = false
	fd, err := open()
	if err != nil {
		return err
	}
	s.fd = fd
	err = unix.Bind(fd, &unix.SockaddrInet4{Port: int(s.port), Addr: s.iface})
	if err != nil {
		return wrap("bind", err)
	}
	s.bound = true
	return nil
}

// Port returns the bound port in host byte order.
func (s *Socket) Port() uint16 {
	return s.port
}

// Interface returns the bound interface address.
func (s *Socket) Interface() ipaddr.Addr {
	return s.iface
}

// SendTo transmits data as one datagram to dst on the bound port.
// It returns the number of bytes sent. It never retries.
func (s *Socket) SendTo(data []byte, dst ipaddr.Addr) (int, error) {
	if s.closed {
		return 0, &Error{Op: "sendto", Kind: SocketClosed, Err: ErrClosed}
	}
	if !s.bound {
		return 0, &Error{Op: "sendto", Kind: InvalidSocketDesc, Err: ErrNotBound}
	}
	err := unix.Sendto(s.fd, data, 0, &unix.SockaddrInet4{Port: int(s.port), Addr: dst})
	if err != nil {
		return 0, wrap("sendto", err)
	}
	return len(data), nil
}

// Receive makes one attempt to read a datagram into buf.
// If no datagram is queued it returns None and a nil error.
// A datagram larger than buf is truncated to len(buf).
func (s *Socket) Receive(buf []byte) (Result, error) {
	if s.closed {
		return None, &Error{Op: "recvfrom", Kind: SocketClosed, Err: ErrClosed}
	}
	if !s.bound {
		return None, &Error{Op: "recvfrom", Kind: InvalidSocketDesc, Err: ErrNotBound}
	}
	n, from, err := unix.Recvfrom(s.fd, buf, 0)
	if err != nil {
		e := wrap("recvfrom", err)
		if KindOf(e) == WouldBlock {
			return None, nil
		}
		return None, e
	}
	sender := ipaddr.Any
	if sa, ok := from.(*unix.SockaddrInet4); ok {
		sender = sa.Addr
	}
	if s.filter != nil {
		// an error keeps the previous addresses, which is good enough for filtering
		_, _ = s.filter.Update()
		if s.filter.Contains(sender) {
			return None, nil
		}
	}
	return Result{Size: n, Sender: sender, HasSender: true}, nil
}

// Close releases the descriptor. The socket cannot be used afterwards.
func (s *Socket) Close() error {
	s.bound = false
	s.closed = true
	if s.fd < 0 {
		return nil
	}
	fd := s.fd
	s.fd = -1
	if err := unix.Close(fd); err != nil {
		return wrap("close", err)
	}
	return nil
}
