//go:build !linux

package netdevice

import "time"

func (d *NetDevice) Read(p []byte) (int, error) {
	return 0, ErrUnsupportedPlatform
}

func (d *NetDevice) ReadTimeout(p []byte, timeout time.Duration) (int, error) {
	return 0, ErrUnsupportedPlatform
}

func (d *NetDevice) Write(p []byte) (int, error) {
	return 0, ErrUnsupportedPlatform
}

func (d *NetDevice) Close() error {
	if d.fd < 0 {
		return ErrClosed
	}

	d.fd = -1

	return ErrUnsupportedPlatform
}
