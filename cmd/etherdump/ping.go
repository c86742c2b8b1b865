package main

import (
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/sparrc/go-ping"
)

// checkReachable sends count ICMP echo requests to target and fails if none
// is answered within timeout.
func checkReachable(log logr.Logger, target string, count int, timeout time.Duration) error {
	pinger, err := ping.NewPinger(target)

	if err != nil {
		return fmt.Errorf("failed to create pinger for `%s`: %w", target, err)
	}

	pinger.SetPrivileged(true)
	pinger.Count = count
	pinger.Timeout = timeout

	log.V(1).Info("pinging", "target", target, "count", count)
	pinger.Run()

	stats := pinger.Statistics()
	log.Info("ping finished", "target", target, "sent", stats.PacketsSent, "received", stats.PacketsRecv, "loss", stats.PacketLoss, "rtt", stats.AvgRtt.String())

	if stats.PacketsRecv == 0 {
		return fmt.Errorf("no reply from `%s`", target)
	}

	return nil
}
