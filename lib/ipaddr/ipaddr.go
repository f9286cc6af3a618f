// Package ipaddr implements a canonical IPv4 address value.
package ipaddr

import (
	"errors"
	"fmt"
	"net"
	"projekt/udpframe/lib/byteorder"
	"strconv"
	"strings"
)

// Size is the number of octets in an address.
const Size = 4

var ErrIndex = errors.New("ipaddr: an IPv4 address has only 4 octets")

// Addr is an IPv4 address stored in network byte order.
// The zero value is 0.0.0.0.
type Addr [Size]byte

var (
	Any       = Addr{0, 0, 0, 0}
	Localhost = Addr{127, 0, 0, 1}
	Broadcast = Addr{255, 255, 255, 255}
)

// From4 creates an address from its four octets, most significant first.
func From4(a, b, c, d byte) Addr {
	return Addr{a, b, c, d}
}

// FromNet creates an address from an integer in network byte order,
// i.e. an integer whose in-memory bytes are the octets of the address.
func FromNet(v uint32) (a Addr) {
	byteorder.Native.PutUint32(a[:], v)
	return
}

// FromHost creates an address from an integer in host byte order,
// e.g. 0x7f000001 for 127.0.0.1.
func FromHost(v uint32) Addr {
	return FromNet(byteorder.HostToNet(v))
}

// FromIP converts a net.IP to an Addr.
// It reports false if ip is not an IPv4 or IPv4-mapped address.
func FromIP(ip net.IP) (a Addr, ok bool) {
	ip4 := ip.To4()
	if ip4 == nil {
		return
	}
	copy(a[:], ip4)
	return a, true
}

// Parse parses dotted-decimal text such as "192.168.0.1".
// Exactly four components of one to three ASCII digits, each at most 255, are accepted.
// Parse never panics and reports false for any other input.
func Parse(s string) (Addr, bool) {
	parts := strings.Split(s, ".")
	if len(parts) != Size {
		return Addr{}, false
	}
	var a Addr
	for i, part := range parts {
		if len(part) == 0 || len(part) > 3 {
			return Addr{}, false
		}
		v := 0
		for j := 0; j < len(part); j++ {
			c := part[j]
			if c < '0' || c > '9' {
				return Addr{}, false
			}
			v = v*10 + int(c-'0')
		}
		if v > 0xff {
			return Addr{}, false
		}
		a[i] = byte(v)
	}
	return a, true
}

// MustParse is like Parse but panics if s is not a valid address.
// It is meant for constants in tests and programs.
func MustParse(s string) Addr {
	a, ok := Parse(s)
	if !ok {
		panic(fmt.Sprintf("ipaddr: invalid address %q", s))
	}
	return a
}

// Net returns the address as an integer in network byte order.
func (a Addr) Net() uint32 {
	return byteorder.Native.Uint32(a[:])
}

// Host returns the address as an integer in host byte order.
func (a Addr) Host() uint32 {
	return byteorder.NetToHost(a.Net())
}

// At returns the octet at index i or ErrIndex if i is out of range.
func (a Addr) At(i int) (byte, error) {
	if i < 0 || i >= Size {
		return 0, ErrIndex
	}
	return a[i], nil
}

func (a Addr) And(b Addr) Addr {
	return FromNet(a.Net() & b.Net())
}

func (a Addr) Or(b Addr) Addr {
	return FromNet(a.Net() | b.Net())
}

func (a Addr) Xor(b Addr) Addr {
	return FromNet(a.Net() ^ b.Net())
}

func (a Addr) Not() Addr {
	return FromNet(^a.Net())
}

// Hash returns a hash value for the address.
// Addr is comparable and can be used as a map key directly,
// Hash is meant for custom hash based containers.
func (a Addr) Hash() uint32 {
	return a.Net()
}

func (a Addr) IsBroadcast() bool {
	return a == Broadcast
}

func (a Addr) IsAny() bool {
	return a == Any
}

// IP returns the address as a 4 byte net.IP.
func (a Addr) IP() net.IP {
	return net.IPv4(a[0], a[1], a[2], a[3]).To4()
}

// UDPAddr returns the UDP endpoint for this address and the given port.
func (a Addr) UDPAddr(port uint16) *net.UDPAddr {
	return &net.UDPAddr{IP: a.IP(), Port: int(port)}
}

// String renders the address in canonical dotted-decimal form without padding.
func (a Addr) String() string {
	var b strings.Builder
	b.Grow(15)
	for i, o := range a {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(int(o)))
	}
	return b.String()
}

func (a Addr) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Addr) UnmarshalText(text []byte) error {
	parsed, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("ipaddr: invalid address %q", text)
	}
	*a = parsed
	return nil
}
