package socket

import "projekt/udpframe/lib/ipaddr"

// Result describes the outcome of a receive attempt.
// A Result without sender means that no datagram was pending.
// A received datagram always has a sender, even if it is empty.
type Result struct {
	Size      int
	Sender    ipaddr.Addr
	HasSender bool
}

// None is the Result of a receive attempt that found nothing.
var None = Result{}

// Received reports whether a datagram was received.
func (r Result) Received() bool {
	return r.HasSender
}
