//go:build linux

package netconfig

import (
	"errors"
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

// linkOps is the subset of netlink used to configure a link.
type linkOps interface {
	LinkByName(name string) (netlink.Link, error)
	AddrAdd(link netlink.Link, addr *netlink.Addr) error
	LinkSetUp(link netlink.Link) error
}

type defaultOps struct{}

func (defaultOps) LinkByName(name string) (netlink.Link, error) {
	return netlink.LinkByName(name)
}

func (defaultOps) AddrAdd(link netlink.Link, addr *netlink.Addr) error {
	return netlink.AddrAdd(link, addr)
}

func (defaultOps) LinkSetUp(link netlink.Link) error {
	return netlink.LinkSetUp(link)
}

// Netlink configures interfaces through rtnetlink.
type Netlink struct {
	ops linkOps
}

// NewNetlink instantiates a Configurator acting on the current network
// namespace.
func NewNetlink() *Netlink {
	return &Netlink{ops: defaultOps{}}
}

// Configure implements Configurator.
//
// An address already present on the link is not an error.
func (n *Netlink) Configure(name string, addr *net.IPNet) error {
	link, err := n.ops.LinkByName(name)

	if err != nil {
		return fmt.Errorf("%w `%s`: %w", ErrLinkNotFound, name, err)
	}

	if err = n.ops.AddrAdd(link, &netlink.Addr{IPNet: addr}); err != nil && !errors.Is(err, unix.EEXIST) {
		return fmt.Errorf("%w `%s` (%s): %w", ErrAddAddress, name, addr, err)
	}

	if err = n.ops.LinkSetUp(link); err != nil {
		return fmt.Errorf("%w `%s`: %w", ErrLinkUp, name, err)
	}

	return nil
}
