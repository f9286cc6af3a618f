//go:build !unix

package socket

import (
	"errors"
	"projekt/udpframe/lib/ipaddr"
	"projekt/udpframe/lib/network"
)

var errUnsupported = errors.New("socket: platform not supported")

type Socket struct{}

type Option func(*Socket)

func WithLocalFilter(*network.Cache) Option {
	return func(*Socket) {}
}

func New(...Option) (*Socket, error) {
	return nil, &Error{Op: "socket", Kind: PlatformInit, Err: errUnsupported}
}

func (s *Socket) Bind(uint16) error {
	return &Error{Op: "bind", Kind: InvalidSocketDesc, Err: errUnsupported}
}

func (s *Socket) BindInterface(ipaddr.Addr) error {
	return &Error{Op: "bind", Kind: InvalidSocketDesc, Err: errUnsupported}
}

func (s *Socket) Port() uint16 {
	return 0
}

func (s *Socket) Interface() ipaddr.Addr {
	return ipaddr.Any
}

func (s *Socket) SendTo([]byte, ipaddr.Addr) (int, error) {
	return 0, &Error{Op: "sendto", Kind: InvalidSocketDesc, Err: errUnsupported}
}

func (s *Socket) Receive([]byte) (Result, error) {
	return None, &Error{Op: "recvfrom", Kind: InvalidSocketDesc, Err: errUnsupported}
}

func (s *Socket) Close() error {
	return nil
}

func translate(error) Kind {
	return Unknown
}
