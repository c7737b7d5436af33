package ethernet

import (
	"encoding/binary"
	"fmt"
)

const (
	HeaderSize = 14

	dstOffset  = 0
	srcOffset  = 6
	typeOffset = 12
)

type HardwareAddress [6]byte

type EtherType uint16

const (
	ETHER_TYPE_IP   EtherType = 0x0800
	ETHER_TYPE_ARP  EtherType = 0x0806
	ETHER_TYPE_IPV6 EtherType = 0x86dd
)

var BroadcastAddress = HardwareAddress{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

type Header struct {
	Dst  HardwareAddress
	Src  HardwareAddress
	Type EtherType
}

func (hwaddr HardwareAddress) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", hwaddr[0], hwaddr[1], hwaddr[2], hwaddr[3], hwaddr[4], hwaddr[5])
}

func (hwaddr HardwareAddress) Bytes() []byte {
	return hwaddr[:]
}

// Address copies a 6 byte hardware address out of data.
func Address(data []byte) (HardwareAddress, error) {
	var addr HardwareAddress
	if len(data) != len(addr) {
		return addr, fmt.Errorf("invalid hardware address length %d", len(data))
	}
	copy(addr[:], data)
	return addr, nil
}

func (t EtherType) String() string {
	switch t {
	case ETHER_TYPE_ARP:
		return "ARP"
	case ETHER_TYPE_IP:
		return "IP"
	case ETHER_TYPE_IPV6:
		return "IPV6"
	default:
		return "UNKNOWN"
	}
}

// MarshalTo writes the header into the first HeaderSize bytes of buf.
func (h Header) MarshalTo(buf []byte) error {
	if len(buf) < HeaderSize {
		return fmt.Errorf("buffer too short: %d", len(buf))
	}
	copy(buf[dstOffset:srcOffset], h.Dst[:])
	copy(buf[srcOffset:typeOffset], h.Src[:])
	binary.BigEndian.PutUint16(buf[typeOffset:HeaderSize], uint16(h.Type))
	return nil
}

// DecodeHeader reads a header from buf and returns the remaining payload.
func DecodeHeader(buf []byte) (Header, []byte, error) {
	var h Header
	if len(buf) < HeaderSize {
		return h, nil, fmt.Errorf("frame too short: %d", len(buf))
	}
	copy(h.Dst[:], buf[dstOffset:srcOffset])
	copy(h.Src[:], buf[srcOffset:typeOffset])
	h.Type = EtherType(binary.BigEndian.Uint16(buf[typeOffset:HeaderSize]))
	return h, buf[HeaderSize:], nil
}

func (h Header) Show() {
	fmt.Println("----------ethernet header----------")
	fmt.Printf("dst = %s\n", h.Dst.String())
	fmt.Printf("src = %s\n", h.Src.String())
	fmt.Printf("type = %04x(%s)\n", uint16(h.Type), h.Type.String())
	fmt.Println("----------------------------------")
}
