package netdevice

import (
	"fmt"
)

// SetupRawSocket attaches to the existing interface interfaceName through a
// raw link-layer socket receiving every protocol.
//
// The interface is put in promiscuous mode and, unless WithPromiscuousOnly
// was given, forced up and running. These flags are host-wide and are not
// reverted if a later step fails. The socket itself is closed on any
// failure.
func (i *Initializer) SetupRawSocket(interfaceName string) (*NetDevice, error) {
	if err := validateInterfaceName(interfaceName); err != nil {
		return nil, err
	}

	log := i.log.WithValues("interface", interfaceName, "mode", "socket")
	progress := newSetupProgress(log)

	fd, err := i.access.OpenPacketSocket(ProtocolAll)

	if err != nil {
		return nil, progress.fail(fmt.Errorf("%w: %v", ErrSocketOpenFailed, err))
	}

	progress.advance(eventAcquire)
	log.V(1).Info("opened raw socket", "fd", fd)

	if err = i.configureRawSocket(fd, interfaceName); err != nil {
		i.release(fd)
		return nil, progress.fail(err)
	}

	progress.advance(eventConfigure)

	hwaddr, err := i.queryHardwareAddr(interfaceName)

	if err != nil {
		i.release(fd)
		return nil, progress.fail(err)
	}

	progress.advance(eventResolve)
	progress.advance(eventFinish)

	dev := newNetDevice(fd, hwaddr)
	log.Info("raw socket ready", "fd", fd, "hwaddr", dev.HardwareAddr().String())

	return dev, nil
}

// configureRawSocket binds fd to the interface and updates its flags.
func (i *Initializer) configureRawSocket(fd int, name string) error {
	index, err := i.access.InterfaceIndex(fd, name)

	if err != nil {
		return fmt.Errorf("%w for `%s`: %v", ErrInterfaceIndexLookupFailed, name, err)
	}

	if err = i.access.BindLinkLayer(fd, ProtocolAll, index); err != nil {
		return fmt.Errorf("%w to `%s` (index %d): %v", ErrBindFailed, name, index, err)
	}

	flags, err := i.access.InterfaceFlags(fd, name)

	if err != nil {
		return fmt.Errorf("%w for `%s`: %v", ErrFlagQueryFailed, name, err)
	}

	updated := flags | FlagPromiscuous

	if !i.promiscuousOnly {
		updated |= FlagUp | FlagRunning
	}

	if err = i.access.SetInterfaceFlags(fd, name, updated); err != nil {
		return fmt.Errorf("%w for `%s` (%s): %v", ErrFlagSetFailed, name, updated, err)
	}

	i.log.V(1).Info("updated interface flags", "interface", name, "from", flags.String(), "to", updated.String())

	return nil
}
