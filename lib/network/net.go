package network

import (
	"errors"
	"net"
	"projekt/udpframe/lib/ipaddr"
)

var ErrNotIPv4 = errors.New("network: not an IPv4 network")

// Net is an IPv4 network that one of the local interfaces is connected to.
type Net struct {
	net.IPNet
	Interface net.Interface
}

func (n *Net) IsUp() bool {
	return n.Interface.Flags&net.FlagUp != 0
}

func (n *Net) IsLoopback() bool {
	return n.Interface.Flags&net.FlagLoopback != 0
}

func (n *Net) IsBroadcast() bool {
	return n.Interface.Flags&net.FlagBroadcast != 0
}

// Addr returns the address of the local interface within this network.
func (n *Net) Addr() (ipaddr.Addr, error) {
	a, ok := ipaddr.FromIP(n.IP)
	if !ok {
		return ipaddr.Addr{}, ErrNotIPv4
	}
	return a, nil
}

// Netmask returns the network mask as an address.
func (n *Net) Netmask() (ipaddr.Addr, error) {
	mask := n.IPNet.Mask
	if len(mask) == net.IPv6len {
		mask = mask[12:]
	}
	if len(mask) != ipaddr.Size {
		return ipaddr.Addr{}, ErrNotIPv4
	}
	return ipaddr.From4(mask[0], mask[1], mask[2], mask[3]), nil
}

// Broadcast returns the directed broadcast address of the network.
func (n *Net) Broadcast() (ipaddr.Addr, error) {
	addr, err := n.Addr()
	if err != nil {
		return ipaddr.Addr{}, err
	}
	mask, err := n.Netmask()
	if err != nil {
		return ipaddr.Addr{}, err
	}
	return addr.Or(mask.Not()), nil
}

// Interfaces returns the IPv4 networks of all local interfaces that are up.
func Interfaces() (present []Net, err error) {
	ins, err := net.Interfaces()
	if err != nil {
		return
	}
	present = make([]Net, 0, 8)
	for _, in := range ins {
		if in.Flags&net.FlagUp == 0 {
			// ignore interfaces that are down
			continue
		}
		var inAddrs []net.Addr
		inAddrs, err = in.Addrs()
		if err != nil {
			return
		}
		for _, inAddr := range inAddrs {
			addr, ok := inAddr.(*net.IPNet)
			if !ok || addr.IP.To4() == nil {
				continue
			}
			present = append(present, Net{
				IPNet:     *addr,
				Interface: in,
			})
		}
	}
	return
}

// LocalAddrs returns every IPv4 address configured on a local interface.
func LocalAddrs() ([]ipaddr.Addr, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil, err
	}
	result := make([]ipaddr.Addr, 0, len(addrs))
	for _, addr := range addrs {
		var ip net.IP
		switch a := addr.(type) {
		case *net.IPNet:
			ip = a.IP
		case *net.IPAddr:
			ip = a.IP
		default:
			continue
		}
		if a, ok := ipaddr.FromIP(ip); ok {
			result = append(result, a)
		}
	}
	return result, nil
}
