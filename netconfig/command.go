package netconfig

import (
	"fmt"
	"net"
	"os/exec"
	"strings"
)

// Command configures interfaces by running ip(8).
type Command struct {
	// Prepend is prepended to every command line, e.g. []string{"sudo"}.
	Prepend []string

	run func(args []string) ([]byte, error)
}

// NewCommand instantiates a Configurator running ip(8), each invocation
// prefixed by prepend.
func NewCommand(prepend ...string) *Command {
	return &Command{
		Prepend: prepend,
		run:     runCombined,
	}
}

func runCombined(args []string) ([]byte, error) {
	return exec.Command(args[0], args[1:]...).CombinedOutput()
}

func (c *Command) invoke(args ...string) ([]byte, error) {
	line := make([]string, 0, len(c.Prepend)+len(args))
	line = append(line, c.Prepend...)
	line = append(line, args...)

	run := c.run

	if run == nil {
		run = runCombined
	}

	return run(line)
}

// Configure implements Configurator.
//
// An address already present on the link is not an error.
func (c *Command) Configure(name string, addr *net.IPNet) error {
	// ip addr add <cidr> dev <name>
	if output, err := c.invoke("ip", "addr", "add", addr.String(), "dev", name); err != nil {
		if !strings.Contains(string(output), "File exists") {
			return fmt.Errorf("%w: %v, output: %s", ErrAddAddress, err, strings.TrimSpace(string(output)))
		}
	}

	// ip link set <name> up
	if output, err := c.invoke("ip", "link", "set", name, "up"); err != nil {
		return fmt.Errorf("%w: %v, output: %s", ErrLinkUp, err, strings.TrimSpace(string(output)))
	}

	return nil
}
