package spoof

import (
	"errors"
	"fmt"
)

var (
	ErrSocketCreation            = errors.New("failed to create socket")
	ErrInterfaceNotFound         = errors.New("interface not found")
	ErrInvalidSourceAddress      = errors.New("invalid source ip address")
	ErrInvalidDestinationAddress = errors.New("invalid destination ip address")
	ErrCanceled                  = errors.New("canceled")
)

// SendError reports the attempt that failed out of the planned total.
// Frames sent before it are not undone.
type SendError struct {
	Attempt int
	Total   int
	Err     error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("ARP %d/%d - sendto() failed: %v", e.Attempt, e.Total, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}
