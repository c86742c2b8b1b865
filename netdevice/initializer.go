package netdevice

import (
	"fmt"
	"net"
	"strings"

	"github.com/go-logr/logr"

	"github.com/peachps/go-netdevice/netconfig"
)

// Initializer brings network devices up.
//
// An Initializer holds no per-call state. It must not be used to set up the
// same interface from several goroutines at once: the kernel operations
// involved are not atomic as a whole.
type Initializer struct {
	access          DeviceAccess
	configurator    netconfig.Configurator
	log             logr.Logger
	promiscuousOnly bool
}

// Option configures an Initializer.
type Option func(*Initializer)

// WithDeviceAccess replaces the kernel access layer.
func WithDeviceAccess(access DeviceAccess) Option {
	return func(i *Initializer) {
		i.access = access
	}
}

// WithConfigurator sets how TAP interfaces get their address and link state.
func WithConfigurator(configurator netconfig.Configurator) Option {
	return func(i *Initializer) {
		i.configurator = configurator
	}
}

func WithLogger(log logr.Logger) Option {
	return func(i *Initializer) {
		i.log = log
	}
}

// WithPromiscuousOnly makes SetupRawSocket only enable promiscuous mode,
// leaving the administrative and running state of the interface untouched.
func WithPromiscuousOnly() Option {
	return func(i *Initializer) {
		i.promiscuousOnly = true
	}
}

// New instantiates an Initializer.
//
// By default the running kernel is used and TAP addresses are applied
// through netlink.
func New(opts ...Option) *Initializer {
	i := &Initializer{
		access:       SystemAccess(),
		configurator: netconfig.NewNetlink(),
		log:          logr.Discard(),
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// SetupRawSocket attaches to an existing interface using the default
// Initializer.
func SetupRawSocket(interfaceName string) (*NetDevice, error) {
	return New().SetupRawSocket(interfaceName)
}

// SetupTapDevice creates a TAP interface using the default Initializer.
func SetupTapDevice(devicePath, interfaceName string, addr *net.IPNet) (*NetDevice, error) {
	return New().SetupTapDevice(devicePath, interfaceName, addr)
}

func validateInterfaceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidInterfaceName)
	}

	if len(name) > MaxInterfaceNameLen {
		return fmt.Errorf("%w: `%s` is longer than %d bytes", ErrInvalidInterfaceName, name, MaxInterfaceNameLen)
	}

	if strings.IndexByte(name, 0) != -1 {
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidInterfaceName, name)
	}

	return nil
}

func validateDevicePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidDevicePath)
	}

	if strings.IndexByte(path, 0) != -1 {
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidDevicePath, path)
	}

	return nil
}

func validateAddress(addr *net.IPNet) error {
	if addr == nil || addr.IP == nil || addr.Mask == nil {
		return fmt.Errorf("%w: no address given", ErrInvalidAddress)
	}

	return nil
}

// queryHardwareAddr reads the hardware address of name through a short-lived
// datagram socket, released on every path.
func (i *Initializer) queryHardwareAddr(name string) (addr [HardwareAddrLen]byte, err error) {
	helper, err := i.access.OpenDatagramSocket()

	if err != nil {
		return addr, fmt.Errorf("%w: opening query socket: %v", ErrHardwareAddressQueryFailed, err)
	}

	defer func() {
		if cerr := i.access.Close(helper); cerr != nil {
			i.log.V(1).Info("failed to close query socket", "fd", helper, "error", cerr.Error())
		}
	}()

	if addr, err = i.access.HardwareAddr(helper, name); err != nil {
		return addr, fmt.Errorf("%w for `%s`: %v", ErrHardwareAddressQueryFailed, name, err)
	}

	return addr, nil
}

// release closes a primary descriptor on a failed setup path.
func (i *Initializer) release(fd int) {
	if err := i.access.Close(fd); err != nil {
		i.log.Error(err, "failed to release descriptor", "fd", fd)
	}
}
