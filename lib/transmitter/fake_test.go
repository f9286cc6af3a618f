package transmitter

import (
	"projekt/udpframe/lib/ipaddr"
	"projekt/udpframe/lib/socket"
)

type datagram struct {
	data   []byte
	sender ipaddr.Addr
}

type sent struct {
	data []byte
	dst  ipaddr.Addr
}

// fakeConn is an in-memory Conn that delivers queued datagrams one per Receive.
type fakeConn struct {
	port    uint16
	iface   ipaddr.Addr
	inbox   []datagram
	outbox  []sent
	sendErr error
	recvErr error
	closed  bool
}

func (c *fakeConn) Bind(port uint16) error {
	c.port = port
	return nil
}

func (c *fakeConn) BindInterface(addr ipaddr.Addr) error {
	c.iface = addr
	return nil
}

func (c *fakeConn) SendTo(data []byte, dst ipaddr.Addr) (int, error) {
	if c.sendErr != nil {
		return 0, c.sendErr
	}
	c.outbox = append(c.outbox, sent{append([]byte(nil), data...), dst})
	return len(data), nil
}

func (c *fakeConn) Receive(buf []byte) (socket.Result, error) {
	if c.recvErr != nil {
		return socket.None, c.recvErr
	}
	if len(c.inbox) == 0 {
		return socket.None, nil
	}
	d := c.inbox[0]
	c.inbox = c.inbox[1:]
	n := copy(buf, d.data)
	return socket.Result{Size: n, Sender: d.sender, HasSender: true}, nil
}

func (c *fakeConn) Port() uint16 {
	return c.port
}

func (c *fakeConn) Interface() ipaddr.Addr {
	return c.iface
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func (c *fakeConn) deliver(sender ipaddr.Addr, data string) {
	c.inbox = append(c.inbox, datagram{[]byte(data), sender})
}
