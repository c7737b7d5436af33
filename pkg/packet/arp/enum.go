package arp

// HeaderSize is the length of an Ethernet/IPv4 ARP header on the wire.
const HeaderSize int = 28

// field offsets within the header
const (
	htypeOffset = 0
	ptypeOffset = 2
	hlenOffset  = 4
	plenOffset  = 5
	opOffset    = 6
	shaOffset   = 8
	spaOffset   = 14
	thaOffset   = 18
	tpaOffset   = 24
)

const HARDWARE_ETHERNET HardwareType = 1

const PROTOCOL_IPv4 ProtocolType = 0x0800

const (
	ARP_REQUEST OperationCode = 0x0001
	ARP_REPLY   OperationCode = 0x0002
)
