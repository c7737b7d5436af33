package spoof

import (
	"github.com/terassyi/gospoof/pkg/packet/arp"
	"github.com/terassyi/gospoof/pkg/packet/ethernet"
)

const FrameSize = ethernet.HeaderSize + arp.HeaderSize

// Frame is a complete Ethernet frame carrying one ARP header.
type Frame [FrameSize]byte

// BuildFrame lays out a broadcast ARP frame claiming senderIP is at src.
// The result only depends on its arguments.
func BuildFrame(src ethernet.HardwareAddress, senderIP, targetIP [4]byte) Frame {
	var frame Frame
	header := ethernet.Header{
		Dst:  ethernet.BroadcastAddress,
		Src:  src,
		Type: ethernet.ETHER_TYPE_ARP,
	}
	// both encoders only fail on short buffers
	_ = header.MarshalTo(frame[:ethernet.HeaderSize])
	packet := arp.Request(src, senderIP, targetIP)
	_ = packet.MarshalTo(frame[ethernet.HeaderSize:])
	return frame
}

// DecodeFrame splits a frame back into its Ethernet and ARP headers.
func DecodeFrame(data []byte) (ethernet.Header, *arp.Header, error) {
	header, payload, err := ethernet.DecodeHeader(data)
	if err != nil {
		return header, nil, err
	}
	packet, err := arp.Decode(payload)
	if err != nil {
		return header, nil, err
	}
	return header, packet, nil
}
