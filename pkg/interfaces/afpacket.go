package interfaces

import (
	"encoding/binary"
	"fmt"
	"sync"
	"unsafe"

	"github.com/terassyi/gospoof/pkg/packet/ethernet"
	"golang.org/x/sys/unix"
)

// AfPacket is a link-layer raw socket bound to one interface.
type AfPacket struct {
	fd   int
	addr *unix.SockaddrLinklayer
	once sync.Once
	err  error
}

// OpenAfPacket opens a PF_PACKET socket receiving every ether type and binds
// it to the interface index. Frames written with Send leave through that
// interface, stamped with src in sockaddr_ll.
func OpenAfPacket(index int, src ethernet.HardwareAddress) (*AfPacket, error) {
	if index <= 0 {
		return nil, fmt.Errorf("invalid interface index %d", index)
	}
	protocol := hton16(unix.ETH_P_ALL)
	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(protocol))
	if err != nil {
		return nil, fmt.Errorf("socket open error %v", err)
	}
	if err := unix.Bind(fd, &unix.SockaddrLinklayer{
		Protocol: protocol,
		Ifindex:  index,
	}); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("bind error %v", err)
	}
	addr := &unix.SockaddrLinklayer{
		Ifindex: index,
		Halen:   uint8(len(src)),
	}
	copy(addr.Addr[:], src[:])
	return &AfPacket{
		fd:   fd,
		addr: addr,
	}, nil
}

// Send writes one frame. sendto on a packet socket has no timeout.
func (af *AfPacket) Send(frame []byte) error {
	return unix.Sendto(af.fd, frame, 0, af.addr)
}

func (af *AfPacket) Close() error {
	af.once.Do(func() {
		af.err = unix.Close(af.fd)
	})
	return af.err
}

func hton16(i uint16) uint16 {
	var ret uint16
	binary.BigEndian.PutUint16((*[2]byte)(unsafe.Pointer(&ret))[:], i)
	return ret
}
