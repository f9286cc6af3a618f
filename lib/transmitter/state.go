package transmitter

// State describes whom a Transmitter sends to and whom it accepts datagrams from.
type State int

const (
	// UnlockedBroadcast sends to the broadcast address
	// and targets the sender of the next valid datagram.
	UnlockedBroadcast State = iota
	// UnlockedSpecific sends to one peer
	// but switches to the sender of any other valid datagram.
	UnlockedSpecific
	// Locked sends to one peer and ignores datagrams of everyone else.
	Locked
)

func (s State) String() string {
	switch s {
	case UnlockedBroadcast:
		return "unlocked-broadcast"
	case UnlockedSpecific:
		return "unlocked-specific"
	case Locked:
		return "locked"
	default:
		return "invalid"
	}
}
