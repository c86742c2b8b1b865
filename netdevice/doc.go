// Package netdevice brings Linux data-plane endpoints up and exposes them as
// a NetDevice: an open descriptor exchanging raw Ethernet frames, plus the
// hardware address of the interface behind it.
//
// Two kinds of endpoints are supported:
//
//   - an existing interface, attached through a raw link-layer socket in
//     promiscuous mode (SetupRawSocket);
//   - a new TAP interface created through the TUN/TAP clone device and given
//     an IP address (SetupTapDevice).
//
// Every step of a setup fails with its own error kind, which can be tested
// with errors.Is:
//
//	dev, err := netdevice.SetupRawSocket("eth0")
//	if errors.Is(err, netdevice.ErrInterfaceIndexLookupFailed) {
//	    // no such interface
//	}
//
// A NetDevice is never returned alongside an error.
package netdevice
