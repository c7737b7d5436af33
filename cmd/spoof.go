package cmd

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"github.com/terassyi/gospoof/pkg/interfaces"
	"github.com/terassyi/gospoof/pkg/spoof"
)

const (
	ExitInterfaceNotFound subcommands.ExitStatus = iota + 3
	ExitInvalidSource
	ExitInvalidDestination
	ExitSocket
	ExitSendFailed
	ExitCanceled
)

type SpoofCommand struct {
	Count    int
	Interval time.Duration
	Debug    bool

	// Resolve and Spoofer default to the system implementations when nil.
	Resolve func(name string, debug bool) (*interfaces.Resolved, error)
	Spoofer *spoof.Spoofer
}

func (*SpoofCommand) Name() string {
	return "spoof"
}

func (*SpoofCommand) Synopsis() string {
	return "send forged arp frames"
}

func (*SpoofCommand) Usage() string {
	return `gospoof spoof [-count <n>] [-interval <duration>] [-debug] <destination ip> <source ip> <interface>
	broadcast arp frames binding <source ip> to the hardware address of <interface>
`
}

func (s *SpoofCommand) SetFlags(f *flag.FlagSet) {
	f.IntVar(&s.Count, "count", spoof.DefaultCount, "number of frames to send")
	f.DurationVar(&s.Interval, "interval", spoof.DefaultInterval, "wait between frames")
	f.BoolVar(&s.Debug, "debug", false, "output debug message")
}

func (s *SpoofCommand) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := logrus.WithFields(logrus.Fields{
		"command": "spoof",
	})
	if f.NArg() != 3 {
		log.Errorf("wrong call! do $ sudo gospoof spoof [destination ip] [source ip] [interface]")
		return subcommands.ExitUsageError
	}
	if s.Count <= 0 {
		log.Errorf("count must be positive: %d", s.Count)
		return subcommands.ExitUsageError
	}
	dst, src, name := f.Arg(0), f.Arg(1), f.Arg(2)
	if s.Debug {
		logrus.SetLevel(logrus.DebugLevel)
		log.Debug("debug flag is set")
	}

	resolve := s.Resolve
	if resolve == nil {
		resolve = interfaces.Resolve
	}
	iface, err := resolve(name, s.Debug)
	if err != nil {
		log.Error(err)
		return ExitInterfaceNotFound
	}
	log.Infof("the mac of interface %q is: %s", iface.Name, iface.HardwareAddress)

	opts := spoof.Options{
		HardwareAddress: iface.HardwareAddress,
		SourceIP:        src,
		DestinationIP:   dst,
		Interface:       iface.Name,
		Count:           s.Count,
		Interval:        s.Interval,
	}
	spoofer := s.Spoofer
	if spoofer == nil {
		spoofer = spoof.New(s.Debug)
	}
	if s.Debug {
		spoofer.OnFrame = func(frame spoof.Frame) {
			showFrame(log, frame)
		}
	}
	report, err := spoofer.Send(ctx, opts)
	if err != nil {
		log.WithFields(logrus.Fields{
			"sent":    report.Sent,
			"planned": report.Planned,
		}).Error(err)
		return exitStatus(err)
	}
	log.Infof("done sending %d/%d arp frames", report.Sent, report.Planned)
	return subcommands.ExitSuccess
}

func showFrame(log *logrus.Entry, frame spoof.Frame) {
	header, packet, err := spoof.DecodeFrame(frame[:])
	if err != nil {
		log.Error(err)
		return
	}
	header.Show()
	packet.Show()
	dump := gopacket.NewPacket(frame[:], layers.LayerTypeEthernet, gopacket.Default)
	log.Debugf("frame:\n%s", dump.Dump())
}

func exitStatus(err error) subcommands.ExitStatus {
	var sendErr *spoof.SendError
	switch {
	case err == nil:
		return subcommands.ExitSuccess
	case errors.As(err, &sendErr):
		return ExitSendFailed
	case errors.Is(err, spoof.ErrCanceled):
		return ExitCanceled
	case errors.Is(err, spoof.ErrInterfaceNotFound), errors.Is(err, interfaces.ErrNotFound):
		return ExitInterfaceNotFound
	case errors.Is(err, spoof.ErrInvalidSourceAddress):
		return ExitInvalidSource
	case errors.Is(err, spoof.ErrInvalidDestinationAddress):
		return ExitInvalidDestination
	case errors.Is(err, spoof.ErrSocketCreation):
		return ExitSocket
	default:
		return subcommands.ExitFailure
	}
}
