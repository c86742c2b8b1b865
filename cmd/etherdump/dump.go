package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/peachps/go-netdevice/netdevice"
)

// maxFrameSize is large enough for an untagged Ethernet frame with a 1500
// bytes MTU plus a VLAN tag.
const maxFrameSize = 1518

type frameReader interface {
	ReadTimeout(p []byte, timeout time.Duration) (int, error)
}

type frameSummary struct {
	Length    int
	Src       string
	Dst       string
	EtherType string
	Layers    []string
}

func summarize(frame []byte) frameSummary {
	packet := gopacket.NewPacket(frame, layers.LayerTypeEthernet, gopacket.DecodeOptions{Lazy: true, NoCopy: true})
	summary := frameSummary{Length: len(frame)}

	if eth, ok := packet.Layer(layers.LayerTypeEthernet).(*layers.Ethernet); ok {
		summary.Src = eth.SrcMAC.String()
		summary.Dst = eth.DstMAC.String()
		summary.EtherType = eth.EthernetType.String()
	}

	for _, layer := range packet.Layers() {
		summary.Layers = append(summary.Layers, layer.LayerType().String())
	}

	return summary
}

func (s frameSummary) keysAndValues() []interface{} {
	return []interface{}{
		"length", s.Length,
		"src", s.Src,
		"dst", s.Dst,
		"ethertype", s.EtherType,
		"layers", s.Layers,
	}
}

// dump reads frames from r and logs a summary of each of them until count
// frames were read (0 means no limit) or ctx is done.
//
// Read timeouts only give dump a chance to notice cancellation.
func dump(ctx context.Context, log logr.Logger, r frameReader, count int, timeout time.Duration) (int, error) {
	buf := make([]byte, maxFrameSize)
	seen := 0

	for count == 0 || seen < count {
		if ctx.Err() != nil {
			return seen, nil
		}

		n, err := r.ReadTimeout(buf, timeout)

		if errors.Is(err, netdevice.ErrTimeout) {
			log.V(1).Info("no frame received", "timeout", timeout)
			continue
		}

		if err != nil {
			return seen, fmt.Errorf("failed to read frame: %w", err)
		}

		if n == 0 {
			continue
		}

		seen++
		log.Info("frame", summarize(buf[:n]).keysAndValues()...)
	}

	return seen, nil
}
