package protocol

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

type fieldSpec struct {
	name string
	bits int
}

// layout is the fixed part of a header. Header bits past the fixed part,
// such as IPv4 options, become a single field named rest.
type layout struct {
	name   string
	fields []fieldSpec
	rest   string
}

var layouts = map[gopacket.LayerType]layout{
	layers.LayerTypeEthernet: {
		name: "Ethernet",
		fields: []fieldSpec{
			{"DstMAC", 48}, {"SrcMAC", 48}, {"EtherType", 16},
		},
	},
	layers.LayerTypeIPv4: {
		name: "IPv4",
		fields: []fieldSpec{
			{"Version", 4}, {"IHL", 4}, {"DSCP", 6}, {"ECN", 2}, {"Length", 16},
			{"Identification", 16}, {"Flags", 3}, {"FragmentOffset", 13},
			{"TTL", 8}, {"Protocol", 8}, {"Checksum", 16},
			{"SrcIP", 32}, {"DstIP", 32},
		},
		rest: "Options",
	},
	layers.LayerTypeIPv6: {
		name: "IPv6",
		fields: []fieldSpec{
			{"Version", 4}, {"TrafficClass", 8}, {"FlowLabel", 20},
			{"PayloadLength", 16}, {"NextHeader", 8}, {"HopLimit", 8},
			{"SrcIP", 128}, {"DstIP", 128},
		},
	},
	layers.LayerTypeUDP: {
		name: "UDP",
		fields: []fieldSpec{
			{"SrcPort", 16}, {"DstPort", 16}, {"Length", 16}, {"Checksum", 16},
		},
	},
	layers.LayerTypeTCP: {
		name: "TCP",
		fields: []fieldSpec{
			{"SrcPort", 16}, {"DstPort", 16}, {"Seq", 32}, {"Ack", 32},
			{"DataOffset", 4}, {"Reserved", 3}, {"Flags", 9},
			{"Window", 16}, {"Checksum", 16}, {"Urgent", 16},
		},
		rest: "Options",
	},
	layers.LayerTypeICMPv4: {
		name: "ICMPv4",
		fields: []fieldSpec{
			{"Type", 8}, {"Code", 8}, {"Checksum", 16}, {"Id", 16}, {"Seq", 16},
		},
	},
	layers.LayerTypeICMPv6: {
		name: "ICMPv6",
		fields: []fieldSpec{
			{"Type", 8}, {"Code", 8}, {"Checksum", 16},
		},
	},
	layers.LayerTypeICMPv6Echo: {
		name: "ICMPv6Echo",
		fields: []fieldSpec{
			{"Identifier", 16}, {"SeqNumber", 16},
		},
	},
	layers.LayerTypeDNS: {
		name: "DNS",
		fields: []fieldSpec{
			{"ID", 16}, {"QR", 1}, {"Opcode", 4}, {"AA", 1}, {"TC", 1}, {"RD", 1},
			{"RA", 1}, {"Z", 3}, {"RCode", 4},
			{"QDCount", 16}, {"ANCount", 16}, {"NSCount", 16}, {"ARCount", 16},
		},
		rest: "Records",
	},
}
