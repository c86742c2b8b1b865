package netdevice

import (
	"fmt"
	"strings"
)

// InterfaceFlags is the flag set of a network interface.
type InterfaceFlags uint16

// Interface flags, as defined by the Linux kernel.
const (
	FlagUp          InterfaceFlags = 0x1
	FlagRunning     InterfaceFlags = 0x40
	FlagPromiscuous InterfaceFlags = 0x100
)

func (f InterfaceFlags) String() string {
	var names []string

	if f&FlagUp != 0 {
		names = append(names, "up")
	}

	if f&FlagRunning != 0 {
		names = append(names, "running")
	}

	if f&FlagPromiscuous != 0 {
		names = append(names, "promisc")
	}

	if rest := f &^ (FlagUp | FlagRunning | FlagPromiscuous); rest != 0 {
		names = append(names, fmt.Sprintf("%#x", uint16(rest)))
	}

	return strings.Join(names, "|")
}

const (
	// ProtocolAll makes a packet socket receive every protocol (ETH_P_ALL).
	ProtocolAll uint16 = 0x0003

	// TapFlags requests an Ethernet TAP interface without the packet
	// information header (IFF_TAP | IFF_NO_PI).
	TapFlags uint16 = 0x0002 | 0x1000

	// DefaultDevicePath is the TUN/TAP clone device.
	DefaultDevicePath = "/dev/net/tun"

	// MaxInterfaceNameLen is the longest interface name the kernel accepts
	// (IFNAMSIZ minus the terminating NUL).
	MaxInterfaceNameLen = 15
)

// DeviceAccess exposes the kernel operations needed to bring a device up.
//
// Every method maps to a single system call or control request. Descriptors
// returned by the Open methods are owned by the caller and released through
// Close.
type DeviceAccess interface {
	// OpenPacketSocket opens a raw link-layer socket receiving protocol.
	OpenPacketSocket(protocol uint16) (int, error)

	// OpenDevice opens a character device for reading and writing.
	OpenDevice(path string) (int, error)

	// OpenDatagramSocket opens a socket suitable for interface queries.
	OpenDatagramSocket() (int, error)

	// InterfaceIndex resolves the kernel index of the named interface.
	InterfaceIndex(fd int, name string) (int, error)

	// BindLinkLayer binds a packet socket to an interface.
	BindLinkLayer(fd int, protocol uint16, index int) error

	InterfaceFlags(fd int, name string) (InterfaceFlags, error)
	SetInterfaceFlags(fd int, name string, flags InterfaceFlags) error

	// HardwareAddr returns the hardware address of the named interface.
	HardwareAddr(fd int, name string) ([HardwareAddrLen]byte, error)

	// AttachTap creates or attaches the named TAP interface to the
	// descriptor of an opened clone device.
	AttachTap(fd int, name string, flags uint16) error

	Close(fd int) error
}
