package beacon

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"projekt/udpframe/lib/ipaddr"
	"projekt/udpframe/lib/socket"
	"sync"
	"testing"
	"time"
)

var peer = ipaddr.MustParse("10.0.0.7")

type fakeTransmitter struct {
	mu      sync.Mutex
	target  ipaddr.Addr
	sent    [][]byte
	inbox   []string
	sendErr error
}

func newFake() *fakeTransmitter {
	return &fakeTransmitter{target: ipaddr.Broadcast}
}

func (f *fakeTransmitter) Send(payload []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return 0, f.sendErr
	}
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

func (f *fakeTransmitter) deliver(data string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inbox = append(f.inbox, data)
}

func (f *fakeTransmitter) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func startBeacon(t *testing.T, b *Beacon, handle Handler) func() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- b.Run(ctx, handle)
	}()
	return func() {
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	}
}

func TestBeacon_AnnouncesUntilDiscovered(t *testing.T) {
	tx := newFake()
	b := New(tx, Config{
		Announce:         []byte("hello"),
		AnnounceInterval: 2 * time.Millisecond,
		PollInterval:     time.Millisecond,
	})
	var mu sync.Mutex
	var received []string
	stop := startBeacon(t, b, func(payload []byte, from ipaddr.Addr) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, peer, from)
		received = append(received, string(payload))
	})
	assert.Eventually(t, func() bool { return tx.sentCount() >= 2 }, time.Second, time.Millisecond)

	tx.deliver("reply")
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, time.Second, time.Millisecond)
	stop()

	// announcements stop once a peer is targeted
	count := tx.sentCount()
	assert.Equal(t, []string{"reply"}, received)
	tx.mu.Lock()
	for _, s := range tx.sent {
		assert.Equal(t, "hello", string(s))
	}
	tx.mu.Unlock()
	assert.Equal(t, count, tx.sentCount())
}

func TestBeacon_Write(t *testing.T) {
	tx := newFake()
	tx.target = peer
	b := New(tx, Config{PollInterval: time.Millisecond})
	stop := startBeacon(t, b, func([]byte, ipaddr.Addr) {})
	data := []byte("payload")
	assert.Nil(t, b.Write(context.Background(), data))
	data[0] = 'X'
	assert.Eventually(t, func() bool { return tx.sentCount() == 1 }, time.Second, time.Millisecond)
	stop()
	assert.Equal(t, "payload", string(tx.sent[0]))
}

func TestBeacon_SendsQueuedOnCancel(t *testing.T) {
	tx := newFake()
	tx.target = peer
	b := New(tx, Config{PollInterval: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	for _, s := range []string{"one", "two", "three"} {
		assert.Nil(t, b.Write(ctx, []byte(s)))
	}
	cancel()
	assert.ErrorIs(t, b.Run(ctx, func([]byte, ipaddr.Addr) {}), context.Canceled)
	assert.Equal(t, 3, tx.sentCount())
	assert.Equal(t, "one", string(tx.sent[0]))
	assert.Equal(t, "three", string(tx.sent[2]))
}

func TestBeacon_WriteCancelled(t *testing.T) {
	b := New(newFake(), Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < cap(b.out); i++ {
		b.out <- nil
	}
	assert.ErrorIs(t, b.Write(ctx, []byte("x")), context.Canceled)
}

func TestBeacon_SendErrorKeepsRunning(t *testing.T) {
	tx := newFake()
	tx.sendErr = errors.New("network down")
	b := New(tx, Config{
		Announce:         []byte("hello"),
		AnnounceInterval: time.Millisecond,
		PollInterval:     time.Millisecond,
	})
	received := make(chan string, 1)
	stop := startBeacon(t, b, func(payload []byte, _ ipaddr.Addr) {
		received <- string(payload)
	})
	tx.deliver("still polling")
	select {
	case s := <-received:
		assert.Equal(t, "still polling", s)
	case <-time.After(time.Second):
		t.Fatal("no payload received")
	}
	stop()
}

func TestConfig_Defaults(t *testing.T) {
	b := New(newFake(), Config{})
	assert.Equal(t, DefaultPollInterval, b.cfg.PollInterval)
	assert.Equal(t, DefaultAnnounceInterval, b.cfg.AnnounceInterval)
	assert.Equal(t, DefaultBufferSize, b.cfg.BufferSize)
}
