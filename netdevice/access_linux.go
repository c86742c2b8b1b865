//go:build linux

package netdevice

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

type unixAccess struct{}

// SystemAccess returns the DeviceAccess backed by the running kernel.
func SystemAccess() DeviceAccess {
	return unixAccess{}
}

func htons(v uint16) uint16 {
	return (v << 8) | (v >> 8)
}

func (unixAccess) OpenPacketSocket(protocol uint16) (int, error) {
	return unix.Socket(unix.AF_PACKET, unix.SOCK_RAW|unix.SOCK_CLOEXEC, int(htons(protocol)))
}

func (unixAccess) OpenDevice(path string) (int, error) {
	return unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
}

func (unixAccess) OpenDatagramSocket() (int, error) {
	return unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
}

func (unixAccess) InterfaceIndex(fd int, name string) (int, error) {
	ifr, err := unix.NewIfreq(name)

	if err != nil {
		return 0, err
	}

	if err = unix.IoctlIfreq(fd, unix.SIOCGIFINDEX, ifr); err != nil {
		return 0, err
	}

	return int(ifr.Uint32()), nil
}

func (unixAccess) BindLinkLayer(fd int, protocol uint16, index int) error {
	return unix.Bind(fd, &unix.SockaddrLinklayer{
		Protocol: htons(protocol),
		Ifindex:  index,
	})
}

func (unixAccess) InterfaceFlags(fd int, name string) (InterfaceFlags, error) {
	ifr, err := unix.NewIfreq(name)

	if err != nil {
		return 0, err
	}

	if err = unix.IoctlIfreq(fd, unix.SIOCGIFFLAGS, ifr); err != nil {
		return 0, err
	}

	return InterfaceFlags(ifr.Uint16()), nil
}

func (unixAccess) SetInterfaceFlags(fd int, name string, flags InterfaceFlags) error {
	ifr, err := unix.NewIfreq(name)

	if err != nil {
		return err
	}

	ifr.SetUint16(uint16(flags))

	return unix.IoctlIfreq(fd, unix.SIOCSIFFLAGS, ifr)
}

// ifreqHardwareAddr is the struct ifreq layout used by SIOCGIFHWADDR.
type ifreqHardwareAddr struct {
	Name [unix.IFNAMSIZ]byte
	Addr unix.RawSockaddr
	_    [8]byte
}

func (unixAccess) HardwareAddr(fd int, name string) ([HardwareAddrLen]byte, error) {
	var addr [HardwareAddrLen]byte
	var req ifreqHardwareAddr

	copy(req.Name[:unix.IFNAMSIZ-1], name)
	req.Addr.Family = unix.AF_INET

	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), unix.SIOCGIFHWADDR, uintptr(unsafe.Pointer(&req))); errno != 0 {
		return addr, errno
	}

	for i := range addr {
		addr[i] = byte(req.Addr.Data[i])
	}

	return addr, nil
}

func (unixAccess) AttachTap(fd int, name string, flags uint16) error {
	ifr, err := unix.NewIfreq(name)

	if err != nil {
		return err
	}

	ifr.SetUint16(flags)

	return unix.IoctlIfreq(fd, unix.TUNSETIFF, ifr)
}

func (unixAccess) Close(fd int) error {
	return unix.Close(fd)
}
