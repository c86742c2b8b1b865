//go:build !linux

package netdevice

type unsupportedAccess struct{}

// SystemAccess returns the DeviceAccess backed by the running kernel.
//
// Only Linux is supported: every call fails on other platforms.
func SystemAccess() DeviceAccess {
	return unsupportedAccess{}
}

func (unsupportedAccess) OpenPacketSocket(uint16) (int, error) {
	return -1, ErrUnsupportedPlatform
}

func (unsupportedAccess) OpenDevice(string) (int, error) {
	return -1, ErrUnsupportedPlatform
}

func (unsupportedAccess) OpenDatagramSocket() (int, error) {
	return -1, ErrUnsupportedPlatform
}

func (unsupportedAccess) InterfaceIndex(int, string) (int, error) {
	return 0, ErrUnsupportedPlatform
}

func (unsupportedAccess) BindLinkLayer(int, uint16, int) error {
	return ErrUnsupportedPlatform
}

func (unsupportedAccess) InterfaceFlags(int, string) (InterfaceFlags, error) {
	return 0, ErrUnsupportedPlatform
}

func (unsupportedAccess) SetInterfaceFlags(int, string, InterfaceFlags) error {
	return ErrUnsupportedPlatform
}

func (unsupportedAccess) HardwareAddr(int, string) ([HardwareAddrLen]byte, error) {
	return [HardwareAddrLen]byte{}, ErrUnsupportedPlatform
}

func (unsupportedAccess) AttachTap(int, string, uint16) error {
	return ErrUnsupportedPlatform
}

func (unsupportedAccess) Close(int) error {
	return ErrUnsupportedPlatform
}
