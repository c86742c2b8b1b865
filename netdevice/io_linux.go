//go:build linux

package netdevice

import (
	"errors"
	"io"
	"time"

	"golang.org/x/sys/unix"
)

// Read reads a single frame into p, blocking until one is available.
func (d *NetDevice) Read(p []byte) (int, error) {
	if d.fd < 0 {
		return 0, ErrClosed
	}

	for {
		n, err := unix.Read(int(d.fd), p)

		if errors.Is(err, unix.EINTR) {
			continue
		}

		if err != nil {
			return 0, err
		}

		return n, nil
	}
}

// ReadTimeout reads a single frame into p, waiting at most timeout for one
// to arrive. It returns ErrTimeout if none did.
func (d *NetDevice) ReadTimeout(p []byte, timeout time.Duration) (int, error) {
	if d.fd < 0 {
		return 0, ErrClosed
	}

	fds := []unix.PollFd{{Fd: d.fd, Events: unix.POLLIN}}
	deadline := time.Now().Add(timeout)

	for {
		remaining := time.Until(deadline)

		if remaining < 0 {
			remaining = 0
		}

		n, err := unix.Poll(fds, int(remaining.Milliseconds()))

		if errors.Is(err, unix.EINTR) {
			continue
		}

		if err != nil {
			return 0, err
		}

		if n == 0 {
			return 0, ErrTimeout
		}

		return d.Read(p)
	}
}

// Write writes a single frame.
func (d *NetDevice) Write(p []byte) (int, error) {
	if d.fd < 0 {
		return 0, ErrClosed
	}

	n, err := unix.Write(int(d.fd), p)

	if err != nil {
		return n, err
	}

	if n != len(p) {
		return n, io.ErrShortWrite
	}

	return n, nil
}

// Close releases the descriptor. The device is unusable afterwards.
func (d *NetDevice) Close() error {
	if d.fd < 0 {
		return ErrClosed
	}

	fd := int(d.fd)
	d.fd = -1

	return unix.Close(fd)
}
