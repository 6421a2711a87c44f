package pcap

import (
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// GenerateOptions controls synthetic capture generation.
type GenerateOptions struct {
	Count  int
	Seed   uint64
	Pcapng bool
}

type packetWriter interface {
	WritePacket(ci gopacket.CaptureInfo, data []byte) error
}

// Generate writes Count Ethernet frames mixing UDP, TCP SYN and ICMP echo
// traffic between a handful of hosts. The same seed yields the same file
// contents apart from timestamps.
func Generate(w io.Writer, opts GenerateOptions) error {
	var pw packetWriter
	var flush func() error
	if opts.Pcapng {
		ng, err := pcapgo.NewNgWriter(w, layers.LinkTypeEthernet)
		if err != nil {
			return fmt.Errorf("failed to write pcapng header: %w", err)
		}
		pw, flush = ng, ng.Flush
	} else {
		pcapWriter := pcapgo.NewWriter(w)
		if err := pcapWriter.WriteFileHeader(65536, layers.LinkTypeEthernet); err != nil {
			return fmt.Errorf("failed to write pcap header: %w", err)
		}
		pw = pcapWriter
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	start := time.Now()
	for i := 0; i < opts.Count; i++ {
		data, err := syntheticFrame(rng)
		if err != nil {
			return err
		}
		ci := gopacket.CaptureInfo{
			Timestamp:     start.Add(time.Duration(i) * time.Millisecond),
			CaptureLength: len(data),
			Length:        len(data),
		}
		if err := pw.WritePacket(ci, data); err != nil {
			return fmt.Errorf("failed to write packet %d: %w", i, err)
		}
	}
	if flush != nil {
		return flush()
	}
	return nil
}

func syntheticFrame(rng *rand.Rand) ([]byte, error) {
	hosts := []net.IP{{10, 0, 0, 1}, {10, 0, 0, 2}, {10, 0, 0, 3}, {192, 168, 1, 10}}
	ethLayer := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
		DstMAC:       net.HardwareAddr{0x00, 0x66, 0x77, 0x88, 0x99, 0xAA},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ipLayer := &layers.IPv4{
		Version: 4,
		TTL:     []uint8{64, 64, 128, 255}[rng.IntN(4)],
		Id:      uint16(rng.IntN(65536)),
		SrcIP:   hosts[rng.IntN(len(hosts))],
		DstIP:   hosts[rng.IntN(len(hosts))],
	}
	payload := make([]byte, 32+rng.IntN(4)*16)
	for i := range payload {
		payload[i] = byte(rng.IntN(256))
	}

	var transport gopacket.SerializableLayer
	switch kind := rng.IntN(10); {
	case kind < 6:
		ipLayer.Protocol = layers.IPProtocolUDP
		udpLayer := &layers.UDP{SrcPort: layers.UDPPort(49152 + rng.IntN(16)), DstPort: 5683}
		if err := udpLayer.SetNetworkLayerForChecksum(ipLayer); err != nil {
			return nil, err
		}
		transport = udpLayer
	case kind < 9:
		ipLayer.Protocol = layers.IPProtocolTCP
		tcpLayer := &layers.TCP{
			SrcPort: layers.TCPPort(49152 + rng.IntN(16384)),
			DstPort: 8080,
			Seq:     rng.Uint32(),
			SYN:     true,
			Window:  14600,
		}
		if err := tcpLayer.SetNetworkLayerForChecksum(ipLayer); err != nil {
			return nil, err
		}
		transport = tcpLayer
	default:
		ipLayer.Protocol = layers.IPProtocolICMPv4
		transport = &layers.ICMPv4{
			TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoRequest, 0),
			Id:       uint16(rng.IntN(65536)),
			Seq:      uint16(rng.IntN(16)),
		}
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{
		ComputeChecksums: true,
		FixLengths:       true,
	}
	if err := gopacket.SerializeLayers(buf, opts, ethLayer, ipLayer, transport, gopacket.Payload(payload)); err != nil {
		return nil, fmt.Errorf("failed to serialize layers: %w", err)
	}
	return buf.Bytes(), nil
}
