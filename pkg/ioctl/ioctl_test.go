package ioctl

import (
	"net"
	"strings"
	"testing"

	"golang.org/x/sys/unix"
)

func TestSiocgifhwaddr(t *testing.T) {
	ifaces, err := net.Interfaces()
	if err != nil {
		t.Fatal(err)
	}
	tested := 0
	for _, iface := range ifaces {
		if len(iface.HardwareAddr) != 6 {
			continue
		}
		addr, err := Siocgifhwaddr(iface.Name)
		if err != nil {
			t.Fatalf("%s: %v", iface.Name, err)
		}
		if net.HardwareAddr(addr).String() != iface.HardwareAddr.String() {
			t.Fatalf("%s: actual %v wanted %v", iface.Name, net.HardwareAddr(addr), iface.HardwareAddr)
		}
		tested++
	}
	if tested == 0 {
		t.Skip("no interface with an ethernet address")
	}
}

func TestSiocgifindex(t *testing.T) {
	ifaces, err := net.Interfaces()
	if err != nil {
		t.Fatal(err)
	}
	for _, iface := range ifaces {
		index, err := Siocgifindex(iface.Name)
		if err != nil {
			t.Fatalf("%s: %v", iface.Name, err)
		}
		if index != iface.Index {
			t.Fatalf("%s: actual %d wanted %d", iface.Name, index, iface.Index)
		}
	}
}

func TestSiocgifflagsLoopback(t *testing.T) {
	ifaces, err := net.Interfaces()
	if err != nil {
		t.Fatal(err)
	}
	for _, iface := range ifaces {
		flags, err := Siocgifflags(iface.Name)
		if err != nil {
			t.Fatalf("%s: %v", iface.Name, err)
		}
		isLoopback := flags&unix.IFF_LOOPBACK != 0
		if isLoopback != (iface.Flags&net.FlagLoopback != 0) {
			t.Fatalf("%s: actual flags %#x", iface.Name, flags)
		}
	}
}

func TestInvalidName(t *testing.T) {
	if _, err := Siocgifhwaddr(""); err == nil {
		t.Fatal("empty name accepted")
	}
	if _, err := Siocgifhwaddr(strings.Repeat("x", 16)); err == nil {
		t.Fatal("long name accepted")
	}
	if _, err := Siocgifindex("gospoof-none0"); err == nil {
		t.Fatal("unknown interface resolved")
	}
}
