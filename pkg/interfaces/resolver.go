package interfaces

import (
	"errors"
	"fmt"
	"net"

	"github.com/terassyi/gospoof/pkg/ioctl"
	"github.com/terassyi/gospoof/pkg/logger"
	"github.com/terassyi/gospoof/pkg/packet/ethernet"
	"golang.org/x/sys/unix"
)

var ErrNotFound = errors.New("unable to find mac address")

// Querier is the OS interface query facility used by the Resolver.
type Querier interface {
	Interfaces() ([]string, error)
	Flags(name string) (uint16, error)
	HardwareAddress(name string) (ethernet.HardwareAddress, error)
}

// SystemQuerier asks the kernel through ioctl.
type SystemQuerier struct{}

// Interfaces lists interface names in the order the kernel reports them.
func (SystemQuerier) Interfaces() ([]string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ifaces))
	for _, iface := range ifaces {
		names = append(names, iface.Name)
	}
	return names, nil
}

func (SystemQuerier) Flags(name string) (uint16, error) {
	return ioctl.Siocgifflags(name)
}

func (SystemQuerier) HardwareAddress(name string) (ethernet.HardwareAddress, error) {
	addr, err := ioctl.Siocgifhwaddr(name)
	if err != nil {
		return ethernet.HardwareAddress{}, err
	}
	return ethernet.Address(addr)
}

// Resolved is the interface selected by Resolve. Name may differ from
// the requested one when the fallback search picked another interface.
type Resolved struct {
	Name            string
	HardwareAddress ethernet.HardwareAddress
}

type Resolver struct {
	querier Querier
	logger  *logger.Logger
}

func NewResolver(querier Querier, debug bool) *Resolver {
	return &Resolver{
		querier: querier,
		logger:  logger.New(debug, "interface"),
	}
}

// Resolve returns the hardware address of requested. If requested has none,
// the first non-loopback interface with a hardware address is used instead.
// Interfaces that are down are not skipped.
func (r *Resolver) Resolve(requested string) (*Resolved, error) {
	r.logger.Infof("look up for interface %q", requested)
	addr, err := r.querier.HardwareAddress(requested)
	if err == nil {
		return &Resolved{Name: requested, HardwareAddress: addr}, nil
	}
	r.logger.Warnf("could not find interface %q: %v, searching all interfaces", requested, err)

	names, err := r.querier.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to load interfaces: %v: %w", err, ErrNotFound)
	}
	for _, name := range names {
		flags, err := r.querier.Flags(name)
		if err != nil {
			r.logger.Debugf("%s: siocgifflags error: %v", name, err)
			continue
		}
		if flags&unix.IFF_LOOPBACK != 0 {
			r.logger.Debugf("%s: skip loopback", name)
			continue
		}
		addr, err := r.querier.HardwareAddress(name)
		if err != nil {
			r.logger.Debugf("%s: siocgifhwaddr error: %v", name, err)
			continue
		}
		return &Resolved{Name: name, HardwareAddress: addr}, nil
	}
	return nil, ErrNotFound
}

// Resolve looks up requested on the running system.
func Resolve(requested string, debug bool) (*Resolved, error) {
	return NewResolver(SystemQuerier{}, debug).Resolve(requested)
}
