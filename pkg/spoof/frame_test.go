package spoof

import (
	"bytes"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/terassyi/gospoof/pkg/packet/arp"
	"github.com/terassyi/gospoof/pkg/packet/ethernet"
)

var (
	testMac = ethernet.HardwareAddress{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
	testSrc = [4]byte{192, 168, 1, 50}
	testDst = [4]byte{192, 168, 1, 1}
)

func TestBuildFrameLayout(t *testing.T) {
	frame := BuildFrame(testMac, testSrc, testDst)
	if len(frame) != 42 {
		t.Fatalf("actual length %d", len(frame))
	}
	if !bytes.Equal(frame[0:6], []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}) {
		t.Fatalf("actual dst % x", frame[0:6])
	}
	if !bytes.Equal(frame[6:12], testMac[:]) {
		t.Fatalf("actual src % x", frame[6:12])
	}
	if !bytes.Equal(frame[12:14], []byte{0x08, 0x06}) {
		t.Fatalf("actual ether type % x", frame[12:14])
	}
}

func TestBuildFrameArpHeader(t *testing.T) {
	frame := BuildFrame(testMac, testSrc, testDst)
	packet, err := arp.Decode(frame[14:42])
	if err != nil {
		t.Fatal(err)
	}
	if packet.OpCode != arp.ARP_REQUEST {
		t.Fatalf("actual opcode %s", packet.OpCode)
	}
	if packet.HardwareType != arp.HARDWARE_ETHERNET || packet.ProtocolType != arp.PROTOCOL_IPv4 {
		t.Fatalf("actual htype %d ptype %#x", packet.HardwareType, packet.ProtocolType)
	}
	if packet.HardwareSize != 6 || packet.ProtocolSize != 4 {
		t.Fatalf("actual hlen %d plen %d", packet.HardwareSize, packet.ProtocolSize)
	}
	if packet.SourceProtocolAddress != [4]byte{192, 168, 1, 50} {
		t.Fatalf("actual sender ip %v", packet.SourceProtocolAddress)
	}
	if packet.TargetProtocolAddress != [4]byte{192, 168, 1, 1} {
		t.Fatalf("actual target ip %v", packet.TargetProtocolAddress)
	}
	if packet.SourceHardwareAddress != (ethernet.HardwareAddress{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}) {
		t.Fatalf("actual sender mac %s", packet.SourceHardwareAddress)
	}
	if packet.TargetHardwareAddress != (ethernet.HardwareAddress{}) {
		t.Fatalf("actual target mac %s", packet.TargetHardwareAddress)
	}
}

func TestBuildFrameDeterministic(t *testing.T) {
	a := BuildFrame(testMac, testSrc, testDst)
	b := BuildFrame(testMac, testSrc, testDst)
	if a != b {
		t.Fatalf("frames differ\n% x\n% x", a, b)
	}
}

func TestDecodeFrame(t *testing.T) {
	frame := BuildFrame(testMac, testSrc, testDst)
	header, packet, err := DecodeFrame(frame[:])
	if err != nil {
		t.Fatal(err)
	}
	if header.Dst != ethernet.BroadcastAddress || header.Src != testMac || header.Type != ethernet.ETHER_TYPE_ARP {
		t.Fatalf("actual %+v", header)
	}
	if *packet != arp.Request(testMac, testSrc, testDst) {
		t.Fatalf("actual %+v", packet)
	}
	if _, _, err := DecodeFrame(frame[:20]); err == nil {
		t.Fatal("truncated frame accepted")
	}
}

func TestBuildFrameGopacket(t *testing.T) {
	frame := BuildFrame(testMac, testSrc, testDst)
	packet := gopacket.NewPacket(frame[:], layers.LayerTypeEthernet, gopacket.Default)
	if errLayer := packet.ErrorLayer(); errLayer != nil {
		t.Fatal(errLayer.Error())
	}
	eth, ok := packet.Layer(layers.LayerTypeEthernet).(*layers.Ethernet)
	if !ok {
		t.Fatal("no ethernet layer")
	}
	if eth.DstMAC.String() != "ff:ff:ff:ff:ff:ff" || eth.SrcMAC.String() != "aa:bb:cc:dd:ee:ff" {
		t.Fatalf("actual %s -> %s", eth.SrcMAC, eth.DstMAC)
	}
	if eth.EthernetType != layers.EthernetTypeARP {
		t.Fatalf("actual ether type %v", eth.EthernetType)
	}
	a, ok := packet.Layer(layers.LayerTypeARP).(*layers.ARP)
	if !ok {
		t.Fatal("no arp layer")
	}
	if a.Operation != layers.ARPRequest {
		t.Fatalf("actual operation %d", a.Operation)
	}
	if !bytes.Equal(a.DstHwAddress, make([]byte, 6)) {
		t.Fatalf("actual target mac % x", a.DstHwAddress)
	}
}
