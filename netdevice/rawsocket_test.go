package netdevice

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupRawSocket(t *testing.T) {
	access := newFakeAccess()
	initializer := New(WithDeviceAccess(access))

	dev, err := initializer.SetupRawSocket("eth0")
	require.NoError(t, err)
	require.NotNil(t, dev)

	assert.Equal(t, access.opened[0], dev.FD())
	assert.Equal(t, net.HardwareAddr{0x0c, 0x22, 0x38, 0x4e, 0x5a, 0x0c}, dev.HardwareAddr())
	assert.Equal(t, 2, access.boundIndex)

	assert.Equal(t, []string{
		"open packet 0x3",
		"index 10 eth0",
		"bind 10 0x3 2",
		"flags 10 eth0",
		"setflags 10 eth0 0x1143",
		"open datagram",
		"hwaddr 11 eth0",
		"close 11",
	}, access.calls)

	// Only the query socket is released: the packet socket now belongs to
	// the device.
	assert.Equal(t, []int{11}, access.closed)
}

func TestSetupRawSocketFlags(t *testing.T) {
	tests := []struct {
		name     string
		initial  InterfaceFlags
		opts     []Option
		expected InterfaceFlags
	}{
		{
			name:     "physical interface from down",
			initial:  0,
			expected: FlagPromiscuous | FlagUp | FlagRunning,
		},
		{
			name:     "physical interface keeps existing bits",
			initial:  0x1003,
			expected: 0x1003 | FlagPromiscuous | FlagUp | FlagRunning,
		},
		{
			name:     "promiscuous only",
			initial:  0x1002,
			opts:     []Option{WithPromiscuousOnly()},
			expected: 0x1002 | FlagPromiscuous,
		},
		{
			name:     "already promiscuous",
			initial:  FlagPromiscuous | FlagUp,
			opts:     []Option{WithPromiscuousOnly()},
			expected: FlagPromiscuous | FlagUp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access := newFakeAccess()
			access.flags["eth0"] = tt.initial

			_, err := New(append(tt.opts, WithDeviceAccess(access))...).SetupRawSocket("eth0")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, access.writtenFlags)
			assert.Equal(t, tt.initial, access.writtenFlags&tt.initial, "no bit may be cleared")
		})
	}
}

func TestSetupRawSocketUnknownInterface(t *testing.T) {
	access := newFakeAccess()

	dev, err := New(WithDeviceAccess(access)).SetupRawSocket("eth9")
	require.ErrorIs(t, err, ErrInterfaceIndexLookupFailed)
	assert.Nil(t, dev)

	assert.False(t, access.called("bind"))
	assert.False(t, access.called("flags"))
	assert.False(t, access.called("setflags"))
	assert.False(t, access.called("open datagram"))
	assert.False(t, access.called("hwaddr"))

	assert.Equal(t, 1, access.closeCount(access.opened[0]))
}

func TestSetupRawSocketFailures(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(*fakeAccess)
		expectedErr error
		opened      int
	}{
		{
			name:        "socket open",
			setup:       func(a *fakeAccess) { a.failPacketSocket = true },
			expectedErr: ErrSocketOpenFailed,
			opened:      0,
		},
		{
			name:        "bind",
			setup:       func(a *fakeAccess) { a.failBind = true },
			expectedErr: ErrBindFailed,
			opened:      1,
		},
		{
			name:        "flag query",
			setup:       func(a *fakeAccess) { a.failFlagQuery = true },
			expectedErr: ErrFlagQueryFailed,
			opened:      1,
		},
		{
			name:        "flag set",
			setup:       func(a *fakeAccess) { a.failFlagSet = true },
			expectedErr: ErrFlagSetFailed,
			opened:      1,
		},
		{
			name:        "query socket open",
			setup:       func(a *fakeAccess) { a.failDatagramSocket = true },
			expectedErr: ErrHardwareAddressQueryFailed,
			opened:      1,
		},
		{
			name:        "hardware address query",
			setup:       func(a *fakeAccess) { a.failHardwareAddr = true },
			expectedErr: ErrHardwareAddressQueryFailed,
			opened:      2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access := newFakeAccess()
			tt.setup(access)

			dev, err := New(WithDeviceAccess(access)).SetupRawSocket("eth0")
			require.ErrorIs(t, err, tt.expectedErr)
			assert.Equal(t, tt.expectedErr, Kind(err))
			assert.Nil(t, dev)

			// Every descriptor acquired during the failed call is released
			// exactly once.
			require.Len(t, access.opened, tt.opened)
			for _, fd := range access.opened {
				assert.Equal(t, 1, access.closeCount(fd), "fd %d", fd)
			}
		})
	}
}

func TestSetupRawSocketQueryFailureReleasesHelper(t *testing.T) {
	access := newFakeAccess()
	access.failHardwareAddr = true

	_, err := New(WithDeviceAccess(access)).SetupRawSocket("eth0")
	require.ErrorIs(t, err, ErrHardwareAddressQueryFailed)

	helper := access.opened[1]
	assert.Equal(t, 1, access.closeCount(helper))
}

func TestSetupRawSocketFlagsNotRolledBack(t *testing.T) {
	access := newFakeAccess()
	access.failHardwareAddr = true

	_, err := New(WithDeviceAccess(access)).SetupRawSocket("eth0")
	require.Error(t, err)

	assert.Equal(t, 0x1003|FlagPromiscuous|FlagUp|FlagRunning, access.flags["eth0"])
}

func TestSetupRawSocketInvalidName(t *testing.T) {
	tests := []struct {
		name      string
		ifaceName string
	}{
		{name: "empty", ifaceName: ""},
		{name: "too long", ifaceName: "averyverylongname0"},
		{name: "nul byte", ifaceName: "eth\x000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access := newFakeAccess()

			_, err := New(WithDeviceAccess(access)).SetupRawSocket(tt.ifaceName)
			require.ErrorIs(t, err, ErrInvalidInterfaceName)
			assert.Empty(t, access.calls)
		})
	}
}
