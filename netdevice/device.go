package netdevice

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
)

// HardwareAddrLen is the length of an Ethernet hardware address.
const HardwareAddrLen = 6

// LayoutSize is the size of the binary representation of a NetDevice.
//
// It matches the C struct { int32_t fd; uint8_t mac_addr[6]; }, including its
// two trailing padding bytes.
const LayoutSize = 12

// NetDevice is an initialized data-plane endpoint: an open descriptor that
// sends and receives raw Ethernet frames, and the hardware address of the
// interface behind it.
//
// The field order and sizes are shared with consumers outside of Go and must
// not change.
//
// A NetDevice has exactly one owner, which must call Close once it is done
// with the device.
type NetDevice struct {
	fd           int32
	hardwareAddr [HardwareAddrLen]byte
}

var _ io.ReadWriteCloser = (*NetDevice)(nil)

func newNetDevice(fd int, hwaddr [HardwareAddrLen]byte) *NetDevice {
	return &NetDevice{
		fd:           int32(fd),
		hardwareAddr: hwaddr,
	}
}

// FD returns the underlying descriptor, or -1 if the device was closed.
func (d *NetDevice) FD() int {
	return int(d.fd)
}

// HardwareAddr returns a copy of the device hardware address.
func (d *NetDevice) HardwareAddr() net.HardwareAddr {
	addr := make(net.HardwareAddr, HardwareAddrLen)
	copy(addr, d.hardwareAddr[:])

	return addr
}

func (d *NetDevice) String() string {
	return fmt.Sprintf("fd=%d hwaddr=%s", d.fd, d.HardwareAddr())
}

// MarshalBinary encodes the device using the shared C layout.
func (d *NetDevice) MarshalBinary() ([]byte, error) {
	b := make([]byte, LayoutSize)
	binary.NativeEndian.PutUint32(b[0:4], uint32(d.fd))
	copy(b[4:4+HardwareAddrLen], d.hardwareAddr[:])

	return b, nil
}

// UnmarshalBinary decodes a device from the shared C layout.
//
// The resulting NetDevice takes ownership of the descriptor.
func (d *NetDevice) UnmarshalBinary(b []byte) error {
	if len(b) != LayoutSize {
		return fmt.Errorf("invalid device layout: expected %d bytes but got %d", LayoutSize, len(b))
	}

	d.fd = int32(binary.NativeEndian.Uint32(b[0:4]))
	copy(d.hardwareAddr[:], b[4:4+HardwareAddrLen])

	return nil
}
