package netdevice

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetDeviceLayout(t *testing.T) {
	var dev NetDevice

	assert.Equal(t, uintptr(LayoutSize), unsafe.Sizeof(dev))
	assert.Equal(t, uintptr(0), unsafe.Offsetof(dev.fd))
	assert.Equal(t, uintptr(4), unsafe.Offsetof(dev.hardwareAddr))
	assert.Equal(t, uintptr(HardwareAddrLen), unsafe.Sizeof(dev.hardwareAddr))
}

func TestNetDeviceMarshalBinary(t *testing.T) {
	dev := newNetDevice(42, [HardwareAddrLen]byte{0x0c, 0x22, 0x38, 0x4e, 0x5a, 0x0c})

	b, err := dev.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, LayoutSize)

	assert.Equal(t, uint32(42), binary.NativeEndian.Uint32(b[0:4]))
	assert.Equal(t, []byte{0x0c, 0x22, 0x38, 0x4e, 0x5a, 0x0c}, b[4:10])
	assert.Equal(t, []byte{0, 0}, b[10:12])

	// The encoding is the in-memory representation.
	raw := unsafe.Slice((*byte)(unsafe.Pointer(dev)), LayoutSize)
	assert.Equal(t, raw[:10], b[:10])

	var decoded NetDevice
	require.NoError(t, decoded.UnmarshalBinary(b))
	assert.Equal(t, *dev, decoded)
}

func TestNetDeviceUnmarshalBinaryInvalidLength(t *testing.T) {
	var dev NetDevice

	assert.Error(t, dev.UnmarshalBinary(make([]byte, 10)))
}

func TestNetDeviceHardwareAddrIsCopy(t *testing.T) {
	dev := newNetDevice(3, [HardwareAddrLen]byte{1, 2, 3, 4, 5, 6})

	addr := dev.HardwareAddr()
	addr[0] = 0xff

	assert.Equal(t, "01:02:03:04:05:06", dev.HardwareAddr().String())
}

func TestNetDeviceString(t *testing.T) {
	dev := newNetDevice(12, [HardwareAddrLen]byte{12, 34, 56, 78, 90, 12})

	assert.Equal(t, "fd=12 hwaddr=0c:22:38:4e:5a:0c", dev.String())
}

func TestInterfaceFlagsString(t *testing.T) {
	tests := []struct {
		flags    InterfaceFlags
		expected string
	}{
		{flags: 0, expected: ""},
		{flags: FlagUp, expected: "up"},
		{flags: FlagUp | FlagRunning | FlagPromiscuous, expected: "up|running|promisc"},
		{flags: 0x1002 | FlagPromiscuous, expected: "promisc|0x1002"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.flags.String())
	}
}

func TestKind(t *testing.T) {
	assert.Nil(t, Kind(nil))
	assert.Nil(t, Kind(errFake))
	assert.Equal(t, ErrBindFailed, Kind(ErrBindFailed))

	err := &AssignmentError{Interface: "tap0", FD: 3, Err: errFake}
	assert.Equal(t, ErrAddressAssignmentFailed, Kind(err))
	assert.Contains(t, err.Error(), "tap0")
}
