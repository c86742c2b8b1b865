//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var (
	Packages = []string{
		"netdevice",
		"netconfig",
		"internal/logging",
		"cmd/etherdump",
	}

	Default = All
)

func All() {
	mg.Deps(Build)
}

func Build() error {
	for _, pkg := range Packages {
		if err := sh.Run("go", "build", "./"+pkg); err != nil {
			return fmt.Errorf("building package `%s`: %v", pkg, err)
		}
	}

	mg.Deps(Test)

	return nil
}

func Test() error {
	for _, pkg := range Packages {
		if err := sh.RunV("go", "test", "./"+pkg); err != nil {
			return fmt.Errorf("testing package `%s`: %v", pkg, err)
		}
	}

	return nil
}

// Integration runs the tests that create real interfaces. They need root.
func Integration() error {
	if os.Geteuid() != 0 {
		return fmt.Errorf("integration tests must run as root")
	}

	return sh.RunV("go", "test", "-tags", "integration", "./netdevice")
}
