// Package transmitter sends and receives datagrams that start with a magic prefix
// and keeps track of the peer they are exchanged with.
//
// Every datagram on the wire is the magic prefix followed by the payload,
// without any length field or version.
// Datagrams with a different prefix are ignored, so unrelated traffic
// on the same port or broadcast domain does not disturb the exchange.
//
// A Transmitter starts out sending to the broadcast address.
// The sender of the first valid datagram becomes the target.
// If the target is locked, datagrams of every other sender are ignored
// until the target is reset.
package transmitter

import (
	"bytes"
	"github.com/sirupsen/logrus"
	"projekt/udpframe/lib/ipaddr"
	"projekt/udpframe/lib/message"
	"projekt/udpframe/lib/socket"
)

// Conn is the datagram socket a Transmitter sends and receives with.
// It is implemented by *socket.Socket.
type Conn interface {
	Bind(port uint16) error
	BindInterface(addr ipaddr.Addr) error
	SendTo(data []byte, dst ipaddr.Addr) (int, error)
	Receive(buf []byte) (socket.Result, error)
	Port() uint16
	Interface() ipaddr.Addr
	Close() error
}

type ownership int

const (
	owned ownership = iota
	borrowed
)

// Transmitter is not safe for concurrent use.
// A single goroutine must do all sending and receiving.
type Transmitter struct {
	conn       Conn
	ownership  ownership
	magic      []byte
	target     ipaddr.Addr
	locked     bool
	frame      []byte
	log        logrus.FieldLogger
	socketOpts []socket.Option
}

type Option func(*Transmitter)

// WithLogger sets the logger for discarded datagrams and target changes.
// The standard logrus logger is used by default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(t *Transmitter) {
		t.log = l
	}
}

// WithSocketOptions passes options to the socket that New creates.
// They have no effect on a socket passed to NewWithSocket.
func WithSocketOptions(opts ...socket.Option) Option {
	return func(t *Transmitter) {
		t.socketOpts = append(t.socketOpts, opts...)
	}
}

func newTransmitter(magic string, opts []Option) *Transmitter {
	t := &Transmitter{
		magic:  []byte(magic),
		target: ipaddr.Broadcast,
		locked: false,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// New creates a Transmitter that owns its socket.
// The socket is bound to port on all interfaces and closed by Close.
func New(port uint16, magic string, opts ...Option) (*Transmitter, error) {
	t := newTransmitter(magic, opts)
	s, err := socket.New(t.socketOpts...)
	if err != nil {
		return nil, err
	}
	if err = s.Bind(port); err != nil {
		_ = s.Close()
		return nil, err
	}
	t.conn = s
	t.ownership = owned
	return t, nil
}

// NewWithSocket creates a Transmitter that uses a socket owned by the caller.
// The caller binds the socket and closes it after the Transmitter is no longer used.
func NewWithSocket(conn Conn, magic string, opts ...Option) *Transmitter {
	t := newTransmitter(magic, opts)
	t.conn = conn
	t.ownership = borrowed
	return t
}

// Close closes the socket if the Transmitter owns it.
func (t *Transmitter) Close() error {
	if t.ownership != owned {
		return nil
	}
	return t.conn.Close()
}

// Magic returns a copy of the magic prefix.
func (t *Transmitter) Magic() []byte {
	return append([]byte(nil), t.magic...)
}

func (t *Transmitter) Bind(port uint16) error {
	return t.conn.Bind(port)
}

func (t *Transmitter) BindInterface(addr ipaddr.Addr) error {
	return t.conn.BindInterface(addr)
}

func (t *Transmitter) Port() uint16 {
	return t.conn.Port()
}

func (t *Transmitter) Interface() ipaddr.Addr {
	return t.conn.Interface()
}

// Send transmits the magic prefix followed by payload as one datagram to the target.
// It returns the size of the datagram.
func (t *Transmitter) Send(payload []byte) (int, error) {
	t.frame = append(append(t.frame[:0], t.magic...), payload...)
	return t.conn.SendTo(t.frame, t.target)
}

// SendString sends s including a terminating zero byte.
func (t *Transmitter) SendString(s string) (int, error) {
	t.frame = append(append(t.frame[:0], t.magic...), s...)
	t.frame = append(t.frame, message.Terminator)
	return t.conn.SendTo(t.frame, t.target)
}

// SendBuffer sends the buffered bytes of b. The buffer is left unchanged.
func (t *Transmitter) SendBuffer(b *message.Buffer) (int, error) {
	return t.Send(b.Bytes())
}

// Receive makes one attempt to receive a datagram into buf.
// On success the magic prefix is stripped, the payload starts at buf[0]
// and the Result holds the payload size and the sender.
// Datagrams with a wrong prefix or from a sender other than a locked target
// are discarded and reported like an empty socket: socket.None and a nil error.
func (t *Transmitter) Receive(buf []byte) (socket.Result, error) {
	r, err := t.conn.Receive(buf)
	if err != nil || !r.Received() {
		return socket.None, err
	}
	if r.Size < len(t.magic) || !bytes.Equal(buf[:len(t.magic)], t.magic) {
		t.log.WithFields(logrus.Fields{
			"sender": r.Sender,
			"size":   r.Size,
		}).Debug("discarded datagram without magic prefix")
		return socket.None, nil
	}
	if !t.accept(r.Sender) {
		t.log.WithFields(logrus.Fields{
			"sender": r.Sender,
			"target": t.target,
		}).Debug("discarded datagram from sender other than locked target")
		return socket.None, nil
	}
	n := copy(buf, buf[len(t.magic):r.Size])
	return socket.Result{Size: n, Sender: r.Sender, HasSender: true}, nil
}

// ReceiveBuffer receives into the free tail of b
// and grows b by the size of the payload.
func (t *Transmitter) ReceiveBuffer(b *message.Buffer) (socket.Result, error) {
	r, err := t.Receive(b.Tail())
	if err != nil || !r.Received() {
		return r, err
	}
	if err = b.AddSize(r.Size); err != nil {
		return socket.None, err
	}
	return r, nil
}
