// Package syncerr defines the failures that terminate a synchronization run.
package syncerr

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Kind int

const (
	DeviceNotFound Kind = iota + 1
	TransportOpenFailed
	TransportWriteFailed
	DeadlineMissed
	ClockConversionFailed
)

func (k Kind) String() string {
	switch k {
	case DeviceNotFound:
		return "device_not_found"
	case TransportOpenFailed:
		return "transport_open_failed"
	case TransportWriteFailed:
		return "transport_write_failed"
	case DeadlineMissed:
		return "deadline_missed"
	case ClockConversionFailed:
		return "clock_conversion_failed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error carries the context of a failed run. Only the fields relevant to Kind
// are set.
type Error struct {
	Kind      Kind
	Device    string
	Pattern   string
	Time      time.Time
	Target    time.Time
	Lead      time.Duration
	Remaining time.Duration
	Err       error
}

func (e *Error) Error() string {
	var b strings.Builder
	switch e.Kind {
	case DeviceNotFound:
		b.WriteString("no serial device found")
		if e.Pattern != "" {
			fmt.Fprintf(&b, " matching %q", e.Pattern)
		}
	case TransportOpenFailed:
		fmt.Fprintf(&b, "failed to open serial device %s", e.Device)
	case TransportWriteFailed:
		fmt.Fprintf(&b, "failed to write to serial device %s", e.Device)
	case DeadlineMissed:
		fmt.Fprintf(&b, "failed to finish operation within %v: target %s missed by %v",
			e.Lead, e.Target.Format(time.RFC3339Nano), -e.Remaining)
	case ClockConversionFailed:
		fmt.Fprintf(&b, "failed to truncate %s to a second boundary",
			e.Time.Format(time.RFC3339Nano))
	default:
		b.WriteString(e.Kind.String())
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

var (
	ErrDeviceNotFound        = &Error{Kind: DeviceNotFound}
	ErrTransportOpenFailed   = &Error{Kind: TransportOpenFailed}
	ErrTransportWriteFailed  = &Error{Kind: TransportWriteFailed}
	ErrDeadlineMissed        = &Error{Kind: DeadlineMissed}
	ErrClockConversionFailed = &Error{Kind: ClockConversionFailed}
)
