package ioctl

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

type sockaddr struct {
	family uint16
	addr   [14]byte
}

func socket() (int, error) {
	return unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, unix.IPPROTO_IP)
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("name is empty")
	}
	if len(name) >= unix.IFNAMSIZ {
		return fmt.Errorf("name is too long")
	}
	return nil
}

// Siocgifindex returns the kernel index of the named interface.
func Siocgifindex(name string) (int, error) {
	ifr, err := unix.NewIfreq(name)
	if err != nil {
		return 0, err
	}
	soc, err := socket()
	if err != nil {
		return 0, err
	}
	defer unix.Close(soc)
	if err := unix.IoctlIfreq(soc, unix.SIOCGIFINDEX, ifr); err != nil {
		return 0, err
	}
	return int(ifr.Uint32()), nil
}

func Siocgifflags(name string) (uint16, error) {
	ifr, err := unix.NewIfreq(name)
	if err != nil {
		return 0, err
	}
	soc, err := socket()
	if err != nil {
		return 0, err
	}
	defer unix.Close(soc)
	if err := unix.IoctlIfreq(soc, unix.SIOCGIFFLAGS, ifr); err != nil {
		return 0, err
	}
	return ifr.Uint16(), nil
}

// Siocgifhwaddr returns the first 6 bytes of ifr_hwaddr.sa_data.
// Interfaces without a link-layer address report all zero.
// unix.Ifreq has no accessor for the sockaddr union, so the ifreq is laid out here.
func Siocgifhwaddr(name string) ([]byte, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	soc, err := socket()
	if err != nil {
		return nil, err
	}
	defer unix.Close(soc)
	ifreq := struct {
		name [unix.IFNAMSIZ]byte
		addr sockaddr
		_pad [8]byte
	}{}
	copy(ifreq.name[:unix.IFNAMSIZ-1], name)
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(soc), unix.SIOCGIFHWADDR, uintptr(unsafe.Pointer(&ifreq))); errno != 0 {
		return nil, errno
	}
	hwaddr := make([]byte, 6)
	copy(hwaddr, ifreq.addr.addr[:6])
	return hwaddr, nil
}
