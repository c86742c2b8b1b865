package netdevice

import (
	"errors"
	"fmt"
)

var errFake = errors.New("fake failure")

// fakeAccess records every call made through DeviceAccess. Each failX field
// makes the matching call fail.
type fakeAccess struct {
	nextFD int

	indexes map[string]int
	flags   map[string]InterfaceFlags
	hwaddrs map[string][HardwareAddrLen]byte

	failPacketSocket   bool
	failDevice         bool
	failDatagramSocket bool
	failBind           bool
	failFlagQuery      bool
	failFlagSet        bool
	failHardwareAddr   bool
	failAttach         bool

	calls        []string
	opened       []int
	closed       []int
	boundIndex   int
	writtenFlags InterfaceFlags
	attachFlags  uint16
	attached     string
}

func newFakeAccess() *fakeAccess {
	return &fakeAccess{
		nextFD: 10,
		indexes: map[string]int{
			"eth0": 2,
			"tap0": 7,
		},
		flags: map[string]InterfaceFlags{
			"eth0": 0x1003,
			"tap0": 0x1002,
		},
		hwaddrs: map[string][HardwareAddrLen]byte{
			"eth0": {0x0c, 0x22, 0x38, 0x4e, 0x5a, 0x0c},
			"tap0": {0x52, 0x54, 0x00, 0x12, 0x34, 0x56},
		},
	}
}

func (f *fakeAccess) record(format string, args ...interface{}) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeAccess) open(kind string, fail bool) (int, error) {
	f.record("open %s", kind)

	if fail {
		return -1, errFake
	}

	fd := f.nextFD
	f.nextFD++
	f.opened = append(f.opened, fd)

	return fd, nil
}

func (f *fakeAccess) OpenPacketSocket(protocol uint16) (int, error) {
	return f.open(fmt.Sprintf("packet %#x", protocol), f.failPacketSocket)
}

func (f *fakeAccess) OpenDevice(path string) (int, error) {
	return f.open("device "+path, f.failDevice)
}

func (f *fakeAccess) OpenDatagramSocket() (int, error) {
	return f.open("datagram", f.failDatagramSocket)
}

func (f *fakeAccess) InterfaceIndex(fd int, name string) (int, error) {
	f.record("index %d %s", fd, name)

	index, ok := f.indexes[name]

	if !ok {
		return 0, errFake
	}

	return index, nil
}

func (f *fakeAccess) BindLinkLayer(fd int, protocol uint16, index int) error {
	f.record("bind %d %#x %d", fd, protocol, index)

	if f.failBind {
		return errFake
	}

	f.boundIndex = index

	return nil
}

func (f *fakeAccess) InterfaceFlags(fd int, name string) (InterfaceFlags, error) {
	f.record("flags %d %s", fd, name)

	if f.failFlagQuery {
		return 0, errFake
	}

	return f.flags[name], nil
}

func (f *fakeAccess) SetInterfaceFlags(fd int, name string, flags InterfaceFlags) error {
	f.record("setflags %d %s %#x", fd, name, uint16(flags))

	if f.failFlagSet {
		return errFake
	}

	f.writtenFlags = flags
	f.flags[name] = flags

	return nil
}

func (f *fakeAccess) HardwareAddr(fd int, name string) ([HardwareAddrLen]byte, error) {
	f.record("hwaddr %d %s", fd, name)

	addr, ok := f.hwaddrs[name]

	if f.failHardwareAddr || !ok {
		return [HardwareAddrLen]byte{}, errFake
	}

	return addr, nil
}

func (f *fakeAccess) AttachTap(fd int, name string, flags uint16) error {
	f.record("attach %d %s %#x", fd, name, flags)

	if f.failAttach {
		return errFake
	}

	f.attached = name
	f.attachFlags = flags

	return nil
}

func (f *fakeAccess) Close(fd int) error {
	f.record("close %d", fd)
	f.closed = append(f.closed, fd)

	return nil
}

func (f *fakeAccess) closeCount(fd int) int {
	n := 0

	for _, c := range f.closed {
		if c == fd {
			n++
		}
	}

	return n
}

func (f *fakeAccess) called(prefix string) bool {
	for _, call := range f.calls {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			return true
		}
	}

	return false
}
