//go:build !linux

package netconfig

import (
	"errors"
	"net"
)

// Netlink configures interfaces through rtnetlink, which only exists on
// Linux.
type Netlink struct{}

func NewNetlink() *Netlink {
	return &Netlink{}
}

// Configure implements Configurator.
func (n *Netlink) Configure(name string, addr *net.IPNet) error {
	return errors.New("netlink is not available on this platform")
}
