package transmitter

import (
	"github.com/sirupsen/logrus"
	"projekt/udpframe/lib/ipaddr"
)

// SetTarget sends all further datagrams to addr.
// With lock set, datagrams from any other sender are ignored.
// Locking the broadcast address locks onto the next peer that is discovered.
func (t *Transmitter) SetTarget(addr ipaddr.Addr, lock bool) {
	t.target = addr
	t.locked = lock
}

// SetTargetLocked sets and locks the target.
func (t *Transmitter) SetTargetLocked(addr ipaddr.Addr) {
	t.SetTarget(addr, true)
}

// SetBroadcastTarget sends to the broadcast address and unlocks the target.
func (t *Transmitter) SetBroadcastTarget() {
	t.SetTarget(ipaddr.Broadcast, false)
}

// ResetTarget returns to the initial state: broadcast and unlocked.
func (t *Transmitter) ResetTarget() {
	t.SetTarget(ipaddr.Broadcast, false)
}

func (t *Transmitter) Target() ipaddr.Addr {
	return t.target
}

// TargetHost returns the target in host byte order.
func (t *Transmitter) TargetHost() uint32 {
	return t.target.Host()
}

func (t *Transmitter) Locked() bool {
	return t.locked
}

// State derives the State from the target and the lock.
// A locked broadcast target is reported as UnlockedBroadcast
// until a peer is discovered, see Locked for the pending lock.
func (t *Transmitter) State() State {
	switch {
	case t.target == ipaddr.Broadcast:
		return UnlockedBroadcast
	case t.locked:
		return Locked
	default:
		return UnlockedSpecific
	}
}

// accept applies a validly prefixed datagram from sender to the target state.
// It reports false if the datagram must be ignored.
func (t *Transmitter) accept(sender ipaddr.Addr) bool {
	if t.target == sender {
		return true
	}
	if t.locked && t.target != ipaddr.Broadcast {
		return false
	}
	t.log.WithFields(logrus.Fields{
		"previous": t.target,
		"target":   sender,
		"locked":   t.locked,
	}).Debug("discovered target")
	t.target = sender
	return true
}
