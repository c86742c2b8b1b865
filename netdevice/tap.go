package netdevice

import (
	"fmt"
	"net"
)

// SetupTapDevice creates the TAP interface interfaceName through the clone
// device at devicePath, then assigns it addr and brings it up.
//
// The returned device reads and writes raw Ethernet frames, without packet
// information header.
//
// If the address cannot be applied, the returned error is an
// *AssignmentError and the descriptor is left open for the caller to
// dispose of.
func (i *Initializer) SetupTapDevice(devicePath, interfaceName string, addr *net.IPNet) (*NetDevice, error) {
	if err := validateDevicePath(devicePath); err != nil {
		return nil, err
	}

	if err := validateInterfaceName(interfaceName); err != nil {
		return nil, err
	}

	if err := validateAddress(addr); err != nil {
		return nil, err
	}

	log := i.log.WithValues("interface", interfaceName, "mode", "tap")
	progress := newSetupProgress(log)

	fd, err := i.access.OpenDevice(devicePath)

	if err != nil {
		return nil, progress.fail(fmt.Errorf("%w `%s`: %v", ErrDeviceOpenFailed, devicePath, err))
	}

	progress.advance(eventAcquire)
	log.V(1).Info("opened clone device", "path", devicePath, "fd", fd)

	if err = i.access.AttachTap(fd, interfaceName, TapFlags); err != nil {
		i.release(fd)
		return nil, progress.fail(fmt.Errorf("%w `%s`: %v", ErrInterfaceAttachFailed, interfaceName, err))
	}

	progress.advance(eventConfigure)

	hwaddr, err := i.queryHardwareAddr(interfaceName)

	if err != nil {
		i.release(fd)
		return nil, progress.fail(err)
	}

	progress.advance(eventResolve)

	if err = i.configurator.Configure(interfaceName, addr); err != nil {
		return nil, progress.fail(&AssignmentError{
			Interface: interfaceName,
			FD:        fd,
			Err:       err,
		})
	}

	progress.advance(eventFinish)

	dev := newNetDevice(fd, hwaddr)
	log.Info("tap device ready", "fd", fd, "hwaddr", dev.HardwareAddr().String(), "address", addr.String())

	return dev, nil
}
