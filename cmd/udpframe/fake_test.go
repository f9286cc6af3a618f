package main

import (
	"bytes"
	"projekt/udpframe/lib/ipaddr"
	"projekt/udpframe/lib/socket"
	"sync"
)

var peer = ipaddr.MustParse("10.0.0.7")

type fakeTransmitter struct {
	mu     sync.Mutex
	target ipaddr.Addr
	sent   [][]byte
	inbox  [][]byte
}

func (f *fakeTransmitter) Send(payload []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, append([]byte(nil), payload...))
	return len(payload), nil
}

func (f *fakeTransmitter) Receive(buf []byte) (socket.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.inbox) == 0 {
		return socket.None, nil
	}
	n := copy(buf, f.inbox[0])
	f.inbox = f.inbox[1:]
	f.target = peer
	return socket.Result{Size: n, Sender: peer, HasSender: true}, nil
}

func (f *fakeTransmitter) Target() ipaddr.Addr {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target
}

func (f *fakeTransmitter) deliver(payload []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inbox = append(f.inbox, payload)
}

// hasSent reports whether payload was sent at least once.
func (f *fakeTransmitter) hasSent(payload []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sent {
		if bytes.Equal(s, payload) {
			return true
		}
	}
	return false
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
