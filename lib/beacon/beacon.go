// Package beacon runs the polling loop around a transmitter.
//
// The transmitter itself never blocks and never starts goroutines.
// A Beacon owns it for the duration of Run: it announces itself on broadcast
// until a peer is discovered, polls for datagrams at a fixed interval
// and sends the payloads queued with Write.
// All access to the transmitter happens on the goroutine that calls Run.
package beacon

import (
	"context"
	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"
	"projekt/udpframe/lib/ipaddr"
	"projekt/udpframe/lib/socket"
	"time"
)

const (
	DefaultPollInterval     = 50 * time.Millisecond
	DefaultAnnounceInterval = 2 * time.Second
	DefaultBufferSize       = 1 << 16
	// maxDrain bounds the datagrams handled per poll so that writes are not starved.
	maxDrain = 64
)

// Transmitter is the part of *transmitter.Transmitter a Beacon needs.
type Transmitter interface {
	Send(payload []byte) (int, error)
	Receive(buf []byte) (socket.Result, error)
	Target() ipaddr.Addr
}

// Handler is called for every received payload.
// The payload is only valid during the call.
type Handler func(payload []byte, from ipaddr.Addr)

type Config struct {
	// Announce is sent every AnnounceInterval while the target is the broadcast address.
	// No announcements are sent if it is nil.
	Announce         []byte
	AnnounceInterval time.Duration
	PollInterval     time.Duration
	BufferSize       int
}

func (c *Config) setDefaults() {
	if c.AnnounceInterval <= 0 {
		c.AnnounceInterval = DefaultAnnounceInterval
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.BufferSize <= 0 {
		c.BufferSize = DefaultBufferSize
	}
}

type Beacon struct {
	tx    Transmitter
	cfg   Config
	out   chan []byte
	clock clock.Clock
	log   logrus.FieldLogger
}

type Option func(*Beacon)

func WithClock(c clock.Clock) Option {
	return func(b *Beacon) {
		b.clock = c
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Beacon) {
		b.log = l
	}
}

func New(tx Transmitter, cfg Config, opts ...Option) *Beacon {
	cfg.setDefaults()
	b := &Beacon{
		tx:    tx,
		cfg:   cfg,
		out:   make(chan []byte, 16),
		clock: clock.New(),
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Write queues a copy of data to be sent by Run.
// It blocks until the payload is queued or ctx is done.
func (b *Beacon) Write(ctx context.Context, data []byte) error {
	payload := make([]byte, len(data))
	copy(payload, data)
	select {
	case b.out <- payload:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives the transmitter until ctx is done and returns the context's error.
// Payloads that were queued by Write before ctx was done are still sent.
// Send and receive errors are logged and do not stop the loop.
func (b *Beacon) Run(ctx context.Context, handle Handler) error {
	poll := b.clock.Ticker(b.cfg.PollInterval)
	defer poll.Stop()
	var announce <-chan time.Time
	if b.cfg.Announce != nil {
		ticker := b.clock.Ticker(b.cfg.AnnounceInterval)
		defer ticker.Stop()
		announce = ticker.C
		b.announce()
	}
	buf := make([]byte, b.cfg.BufferSize)
	for {
		select {
		case <-poll.C:
			b.drain(buf, handle)
		case <-announce:
			b.announce()
		case payload := <-b.out:
			b.send(payload)
		case <-ctx.Done():
			b.flush()
			return ctx.Err()
		}
	}
}

func (b *Beacon) flush() {
	for {
		select {
		case payload := <-b.out:
			b.send(payload)
		default:
			return
		}
	}
}

func (b *Beacon) announce() {
	if b.tx.Target() != ipaddr.Broadcast {
		return
	}
	b.send(b.cfg.Announce)
}

func (b *Beacon) send(payload []byte) {
	if _, err := b.tx.Send(payload); err != nil {
		b.log.WithError(err).WithField("target", b.tx.Target()).Warn("failed to send datagram")
	}
}

func (b *Beacon) drain(buf []byte, handle Handler) {
	for i := 0; i < maxDrain; i++ {
		r, err := b.tx.Receive(buf)
		if err != nil {
			b.log.WithError(err).Warn("failed to receive datagram")
			return
		}
		if !r.Received() {
			return
		}
		handle(buf[:r.Size], r.Sender)
	}
}
