// Command etherdump brings up a raw socket or a TAP device and logs a summary
// of every Ethernet frame it receives.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/peachps/go-netdevice/internal/logging"
	"github.com/peachps/go-netdevice/netconfig"
	"github.com/peachps/go-netdevice/netdevice"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	config     *Config
	log        logr.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "etherdump",
		Short:        "Capture Ethernet frames from a raw socket or a TAP device",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(opts.configPath, os.Getenv)

			if err != nil {
				return err
			}

			if err = applyFlags(cmd, config); err != nil {
				return err
			}

			if err = config.validate(); err != nil {
				return err
			}

			loggingOptions := logging.DefaultOptions()

			if config.Debug {
				loggingOptions.Development = true
				loggingOptions.Level = slog.LevelDebug
			}

			opts.config = config
			opts.log = logging.Setup(loggingOptions)

			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML configuration file")
	flags.Int("count", 0, "number of frames to capture, 0 for no limit")
	flags.Duration("timeout", 0, "read timeout used between cancellation checks")
	flags.Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newSocketCmd(opts), newTapCmd(opts))

	return rootCmd
}

// applyFlags overrides config with the flags explicitly set on the command
// line.
func applyFlags(cmd *cobra.Command, config *Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("count") {
		if config.Count, err = flags.GetInt("count"); err != nil {
			return err
		}
	}

	if flags.Changed("timeout") {
		if config.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}

	if flags.Changed("debug") {
		if config.Debug, err = flags.GetBool("debug"); err != nil {
			return err
		}
	}

	if flags.Lookup("promiscuous-only") != nil && flags.Changed("promiscuous-only") {
		if config.PromiscuousOnly, err = flags.GetBool("promiscuous-only"); err != nil {
			return err
		}
	}

	for name, target := range map[string]*string{
		"device":       &config.DevicePath,
		"addr":         &config.Address,
		"configurator": &config.Configurator,
		"ping":         &config.Ping,
	} {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}

		if *target, err = flags.GetString(name); err != nil {
			return err
		}
	}

	if flags.Lookup("sudo") != nil && flags.Changed("sudo") {
		if config.Sudo, err = flags.GetBool("sudo"); err != nil {
			return err
		}
	}

	return nil
}

func newSocketCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "socket [interface]",
		Short: "Capture frames on an existing interface through a raw socket",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := opts.config

			if len(args) > 0 {
				config.Interface = args[0]
			}

			name := config.interfaceFor(modeSocket)
			initOpts := []netdevice.Option{netdevice.WithLogger(opts.log)}

			if config.PromiscuousOnly {
				initOpts = append(initOpts, netdevice.WithPromiscuousOnly())
			}

			dev, err := netdevice.New(initOpts...).SetupRawSocket(name)

			if err != nil {
				opts.log.Error(err, "failed to set up raw socket", "interface", name)
				return err
			}

			return run(cmd.Context(), opts, dev, name)
		},
	}

	cmd.Flags().Bool("promiscuous-only", false, "only enable promiscuous mode, leaving the up and running flags untouched")

	return cmd
}

func newTapCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tap [interface]",
		Short: "Create a TAP interface, assign it an address and capture its frames",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := opts.config

			if len(args) > 0 {
				config.Interface = args[0]
			}

			name := config.interfaceFor(modeTap)
			addr, err := netconfig.ParseCIDR(config.Address)

			if err != nil {
				return err
			}

			initializer := netdevice.New(
				netdevice.WithLogger(opts.log),
				netdevice.WithConfigurator(config.configurator()),
			)

			dev, err := initializer.SetupTapDevice(config.DevicePath, name, addr)

			if err != nil {
				var assignmentErr *netdevice.AssignmentError

				if errors.As(err, &assignmentErr) {
					releaseDescriptor(opts.log, assignmentErr.FD)
				}

				opts.log.Error(err, "failed to set up tap device", "device", config.DevicePath, "interface", name)
				return err
			}

			if config.Ping != "" {
				if err = checkReachable(opts.log, config.Ping, config.PingCount, config.Timeout); err != nil {
					opts.log.Error(err, "peer unreachable", "target", config.Ping)
				}
			}

			return run(cmd.Context(), opts, dev, name)
		},
	}

	flags := cmd.Flags()
	flags.String("device", "", "path of the TUN/TAP clone device")
	flags.String("addr", "", "IPv4 address and prefix assigned to the interface")
	flags.String("configurator", "", fmt.Sprintf("address configurator, %s or %s", configuratorNetlink, configuratorIP))
	flags.Bool("sudo", false, "run ip(8) through sudo")
	flags.String("ping", "", "address to ping once the interface is configured")

	return cmd
}

func run(ctx context.Context, opts *rootOptions, dev *netdevice.NetDevice, name string) error {
	defer func() {
		if err := dev.Close(); err != nil {
			opts.log.Error(err, "failed to close device", "interface", name)
		}
	}()

	opts.log.Info("capturing", "interface", name, "device", dev.String(), "count", opts.config.Count)

	seen, err := dump(ctx, opts.log, dev, opts.config.Count, opts.config.Timeout)
	opts.log.Info("capture finished", "interface", name, "frames", seen)

	return err
}
