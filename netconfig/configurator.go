// Package netconfig applies an IP address to a network interface and brings
// its link up.
package netconfig

import (
	"errors"
	"fmt"
	"net"
)

var (
	ErrLinkNotFound = errors.New("failed to find link")
	ErrAddAddress   = errors.New("failed to add address to link")
	ErrLinkUp       = errors.New("failed to bring link up")
)

// Configurator assigns addr to the interface name and brings it up, as a
// single action.
type Configurator interface {
	Configure(name string, addr *net.IPNet) error
}

// Func adapts a function to a Configurator.
type Func func(name string, addr *net.IPNet) error

// Configure implements Configurator.
func (f Func) Configure(name string, addr *net.IPNet) error {
	return f(name, addr)
}

// ParseCIDR parses an interface address such as "10.0.0.2/24".
//
// Unlike net.ParseCIDR, the returned IP is the host address, not the network
// address.
func ParseCIDR(s string) (*net.IPNet, error) {
	ip, ipnet, err := net.ParseCIDR(s)

	if err != nil {
		return nil, fmt.Errorf("parsing interface address: %s", err)
	}

	if ipv4 := ip.To4(); ipv4 != nil {
		ip = ipv4
	}

	return &net.IPNet{
		IP:   ip,
		Mask: ipnet.Mask,
	}, nil
}
