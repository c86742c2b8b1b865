package netdevice

import (
	"errors"
	"fmt"
)

var (
	ErrSocketOpenFailed           = errors.New("failed to open socket")
	ErrDeviceOpenFailed           = errors.New("failed to open device")
	ErrInterfaceIndexLookupFailed = errors.New("failed to find interface index")
	ErrBindFailed                 = errors.New("failed to bind socket")
	ErrFlagQueryFailed            = errors.New("failed to query interface flags")
	ErrFlagSetFailed              = errors.New("failed to set interface flags")
	ErrHardwareAddressQueryFailed = errors.New("failed to query hardware address")
	ErrInterfaceAttachFailed      = errors.New("failed to attach tap interface")
	ErrAddressAssignmentFailed    = errors.New("failed to assign address")
	ErrInvalidInterfaceName       = errors.New("invalid interface name")
	ErrInvalidDevicePath          = errors.New("invalid device path")
	ErrInvalidAddress             = errors.New("invalid interface address")
	ErrClosed                     = errors.New("device is closed")
	ErrTimeout                    = errors.New("timed out waiting for frame")
	ErrUnsupportedPlatform        = errors.New("not implemented on this platform")
)

var kinds = []error{
	ErrSocketOpenFailed,
	ErrDeviceOpenFailed,
	ErrInterfaceIndexLookupFailed,
	ErrBindFailed,
	ErrFlagQueryFailed,
	ErrFlagSetFailed,
	ErrHardwareAddressQueryFailed,
	ErrInterfaceAttachFailed,
	ErrAddressAssignmentFailed,
	ErrInvalidInterfaceName,
	ErrInvalidDevicePath,
	ErrInvalidAddress,
}

// Kind returns the setup error kind err belongs to, or nil if it is not a
// setup error.
func Kind(err error) error {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}

// AssignmentError is returned by SetupTapDevice when the interface exists but
// its address could not be applied.
//
// The descriptor is still open: the caller owns it and decides whether to
// close it or retry the configuration.
type AssignmentError struct {
	Interface string
	FD        int
	Err       error
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("%s on `%s` (fd %d): %v", ErrAddressAssignmentFailed, e.Interface, e.FD, e.Err)
}

func (e *AssignmentError) Unwrap() []error {
	return []error{ErrAddressAssignmentFailed, e.Err}
}
