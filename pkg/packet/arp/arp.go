package arp

import (
	"encoding/binary"
	"fmt"

	"github.com/terassyi/gospoof/pkg/packet/ethernet"
)

type HardwareType uint16
type ProtocolType uint16
type OperationCode uint16

// Header is an ARP header for Ethernet hardware and IPv4 protocol addresses.
type Header struct {
	HardwareType          HardwareType
	ProtocolType          ProtocolType
	HardwareSize          uint8
	ProtocolSize          uint8
	OpCode                OperationCode
	SourceHardwareAddress ethernet.HardwareAddress
	SourceProtocolAddress [4]byte
	TargetHardwareAddress ethernet.HardwareAddress
	TargetProtocolAddress [4]byte
}

func (op OperationCode) String() string {
	switch op {
	case ARP_REQUEST:
		return "(REQUEST)"
	case ARP_REPLY:
		return "(REPLY)"
	default:
		return "(UNKNOWN)"
	}
}

// Request returns a request-style header. The target hardware address is left zero.
func Request(srcHardwareAddress ethernet.HardwareAddress, srcProtocolAddress, targetProtocolAddress [4]byte) Header {
	return Header{
		HardwareType:          HARDWARE_ETHERNET,
		ProtocolType:          PROTOCOL_IPv4,
		HardwareSize:          uint8(len(srcHardwareAddress)),
		ProtocolSize:          uint8(len(srcProtocolAddress)),
		OpCode:                ARP_REQUEST,
		SourceHardwareAddress: srcHardwareAddress,
		SourceProtocolAddress: srcProtocolAddress,
		TargetProtocolAddress: targetProtocolAddress,
	}
}

// MarshalTo encodes the header into the first HeaderSize bytes of buf.
func (h *Header) MarshalTo(buf []byte) error {
	if len(buf) < HeaderSize {
		return fmt.Errorf("buffer too short: %d", len(buf))
	}
	binary.BigEndian.PutUint16(buf[htypeOffset:ptypeOffset], uint16(h.HardwareType))
	binary.BigEndian.PutUint16(buf[ptypeOffset:hlenOffset], uint16(h.ProtocolType))
	buf[hlenOffset] = h.HardwareSize
	buf[plenOffset] = h.ProtocolSize
	binary.BigEndian.PutUint16(buf[opOffset:shaOffset], uint16(h.OpCode))
	copy(buf[shaOffset:spaOffset], h.SourceHardwareAddress[:])
	copy(buf[spaOffset:thaOffset], h.SourceProtocolAddress[:])
	copy(buf[thaOffset:tpaOffset], h.TargetHardwareAddress[:])
	copy(buf[tpaOffset:HeaderSize], h.TargetProtocolAddress[:])
	return nil
}

// Decode reads an Ethernet/IPv4 ARP header from data.
func Decode(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("arp header too short: %d", len(data))
	}
	h := &Header{
		HardwareType: HardwareType(binary.BigEndian.Uint16(data[htypeOffset:ptypeOffset])),
		ProtocolType: ProtocolType(binary.BigEndian.Uint16(data[ptypeOffset:hlenOffset])),
		HardwareSize: data[hlenOffset],
		ProtocolSize: data[plenOffset],
		OpCode:       OperationCode(binary.BigEndian.Uint16(data[opOffset:shaOffset])),
	}
	if h.HardwareSize != 6 || h.ProtocolSize != 4 {
		return nil, fmt.Errorf("unsupported address sizes hlen=%d plen=%d", h.HardwareSize, h.ProtocolSize)
	}
	copy(h.SourceHardwareAddress[:], data[shaOffset:spaOffset])
	copy(h.SourceProtocolAddress[:], data[spaOffset:thaOffset])
	copy(h.TargetHardwareAddress[:], data[thaOffset:tpaOffset])
	copy(h.TargetProtocolAddress[:], data[tpaOffset:HeaderSize])
	return h, nil
}

func (h *Header) Show() {
	fmt.Println("---------------arp---------------")
	fmt.Printf("hardware type = %02x\n", h.HardwareType)
	fmt.Printf("protocol type = %02x\n", h.ProtocolType)
	fmt.Printf("hardware address size = %02x\n", h.HardwareSize)
	fmt.Printf("protocol address size = %02x\n", h.ProtocolSize)
	fmt.Printf("operation code = %s\n", h.OpCode.String())
	fmt.Printf("src hwaddr = %s\n", h.SourceHardwareAddress.String())
	fmt.Printf("src protoaddr = %s\n", printProtocolAddress(h.SourceProtocolAddress))
	fmt.Printf("target hwaddr = %s\n", h.TargetHardwareAddress.String())
	fmt.Printf("target protoaddr = %s\n", printProtocolAddress(h.TargetProtocolAddress))
}

func printProtocolAddress(addr [4]byte) string {
	return fmt.Sprintf("%d.%d.%d.%d", addr[0], addr[1], addr[2], addr[3])
}
