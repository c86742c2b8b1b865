package main

import (
	"github.com/go-logr/logr"
	"golang.org/x/sys/unix"
)

// releaseDescriptor closes a descriptor left open by a failed address
// assignment.
func releaseDescriptor(log logr.Logger, fd int) {
	if err := unix.Close(fd); err != nil {
		log.Error(err, "failed to release descriptor", "fd", fd)
	}
}
