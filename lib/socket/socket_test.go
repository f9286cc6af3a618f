//go:build unix

package socket

import (
	"github.com/stretchr/testify/assert"
	"golang.org/x/net/nettest"
	"golang.org/x/sys/unix"
	"net"
	"projekt/udpframe/lib/ipaddr"
	"projekt/udpframe/lib/network"
	"testing"
	"time"
)

const receiveAttempts = 100

// freePort finds a UDP port on the loopback interface that is currently unused.
func freePort(t *testing.T) uint16 {
	c, err := nettest.NewLocalPacketListener("udp4")
	if err != nil {
		t.Skip("no local IPv4 packet listener:", err)
	}
	port := c.LocalAddr().(*net.UDPAddr).Port
	assert.Nil(t, c.Close())
	return uint16(port)
}

func createSocket(t *testing.T, opts ...Option) (*Socket, func()) {
	s, err := New(opts...)
	assert.Nil(t, err)
	assert.Nil(t, s.Bind(freePort(t)))
	assert.Nil(t, s.BindInterface(ipaddr.Localhost))
	return s, func() {
		assert.Nil(t, s.Close())
	}
}

// poll retries Receive for a short while since loopback delivery is not synchronous.
func poll(t *testing.T, s *Socket, buf []byte) Result {
	for i := 0; i < receiveAttempts; i++ {
		r, err := s.Receive(buf)
		assert.Nil(t, err)
		if r.Received() {
			return r
		}
		time.Sleep(time.Millisecond)
	}
	return None
}

func TestSocket_NotBound(t *testing.T) {
	s, err := New()
	assert.Nil(t, err)
	defer s.Close()
	_, err = s.SendTo([]byte("x"), ipaddr.Localhost)
	assert.ErrorIs(t, err, InvalidSocketDesc)
	assert.ErrorIs(t, err, ErrNotBound)
	_, err = s.Receive(make([]byte, 8))
	assert.Equal(t, InvalidSocketDesc, KindOf(err))
}

func TestSocket_Bind(t *testing.T) {
	s, done := createSocket(t)
	defer done()
	assert.Equal(t, ipaddr.Localhost, s.Interface())
	assert.NotZero(t, s.Port())
}

func TestSocket_ReceiveNothing(t *testing.T) {
	s, done := createSocket(t)
	defer done()
	r, err := s.Receive(make([]byte, 16))
	assert.Nil(t, err)
	assert.False(t, r.Received())
	assert.Equal(t, None, r)
}

func TestSocket_SendReceive(t *testing.T) {
	s, done := createSocket(t)
	defer done()
	n, err := s.SendTo([]byte("golden gate"), ipaddr.Localhost)
	assert.Nil(t, err)
	assert.Equal(t, 11, n)

	buf := make([]byte, 64)
	r := poll(t, s, buf)
	assert.True(t, r.Received())
	assert.Equal(t, 11, r.Size)
	assert.Equal(t, ipaddr.Localhost, r.Sender)
	assert.Equal(t, "golden gate", string(buf[:r.Size]))

	r, err = s.Receive(buf)
	assert.Nil(t, err)
	assert.False(t, r.Received())
}

func TestSocket_EmptyDatagram(t *testing.T) {
	s, done := createSocket(t)
	defer done()
	n, err := s.SendTo(nil, ipaddr.Localhost)
	assert.Nil(t, err)
	assert.Equal(t, 0, n)
	r := poll(t, s, make([]byte, 8))
	assert.True(t, r.Received())
	assert.Equal(t, 0, r.Size)
	assert.Equal(t, ipaddr.Localhost, r.Sender)
}

func TestSocket_MessageTooLarge(t *testing.T) {
	s, done := createSocket(t)
	defer done()
	_, err := s.SendTo(make([]byte, 70000), ipaddr.Localhost)
	assert.ErrorIs(t, err, MessageTooLarge)
}

func TestSocket_LocalFilter(t *testing.T) {
	cache := network.NewCache(network.WithLister(func() ([]ipaddr.Addr, error) {
		return []ipaddr.Addr{ipaddr.Localhost}, nil
	}))
	s, done := createSocket(t, WithLocalFilter(cache))
	defer done()
	_, err := s.SendTo([]byte("echo"), ipaddr.Localhost)
	assert.Nil(t, err)
	r := poll(t, s, make([]byte, 8))
	assert.False(t, r.Received())
	assert.True(t, cache.Contains(ipaddr.Localhost))
}

func TestSocket_FailedRebindLeavesUnbound(t *testing.T) {
	s, done := createSocket(t)
	defer done()
	// TEST-NET-1 is never assigned to a local interface
	err := s.BindInterface(ipaddr.MustParse("192.0.2.1"))
	assert.Equal(t, AddressNotAvailable, KindOf(err))
	_, err = s.SendTo([]byte("x"), ipaddr.Localhost)
	assert.ErrorIs(t, err, ErrNotBound)

	assert.Nil(t, s.BindInterface(ipaddr.Localhost))
	_, err = s.SendTo([]byte("x"), ipaddr.Localhost)
	assert.Nil(t, err)
}

func TestSocket_Closed(t *testing.T) {
	s, done := createSocket(t)
	done()
	_, err := s.SendTo([]byte("x"), ipaddr.Localhost)
	assert.ErrorIs(t, err, SocketClosed)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Receive(make([]byte, 8))
	assert.Equal(t, SocketClosed, KindOf(err))
	assert.ErrorIs(t, s.Bind(s.Port()), SocketClosed)
	assert.Nil(t, s.Close())
}

func TestTranslate(t *testing.T) {
	cases := map[unix.Errno]Kind{
		unix.EACCES:        PermissionDenied,
		unix.EMSGSIZE:      MessageTooLarge,
		unix.ENOBUFS:       NoBufferSpace,
		unix.EAGAIN:        WouldBlock,
		unix.EBADF:         InvalidSocketDesc,
		unix.EINVAL:        InvalidArgument,
		unix.ENETDOWN:      NetworkDown,
		unix.EADDRNOTAVAIL: AddressNotAvailable,
		unix.EOPNOTSUPP:    OperationNotSupported,
		unix.EPIPE:         SocketClosed,
		unix.EINTR:         Interrupted,
		unix.EFAULT:        MemoryFault,
		unix.EDESTADDRREQ:  DestAddressRequired,
		unix.EAFNOSUPPORT:  PlatformInit,
		unix.EEXIST:        Unknown,
	}
	for errno, kind := range cases {
		err := wrap("test", errno)
		assert.Equal(t, kind, KindOf(err), errno.Error())
		assert.ErrorIs(t, err, kind)
		assert.ErrorIs(t, err, errno)
	}
}
