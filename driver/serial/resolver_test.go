package serial

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"example.com/serial-time/base/syncerr"
)

type staticLister struct {
	descs []string
	err   error
}

func (l staticLister) Descriptions() ([]string, error) {
	return l.descs, l.err
}

func TestResolveSingle(t *testing.T) {
	l := staticLister{descs: []string{
		"Communications Port (COM1)",
		"USB-SERIAL CH340 (COM7)",
	}}
	r, err := NewResolver(slog.New(slog.DiscardHandler), l, "")
	if err != nil {
		t.Fatal(err)
	}
	dev, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if dev != "COM7" {
		t.Errorf("Resolve() = %q, want COM7", dev)
	}
}

func TestResolveMultipleUsesFirst(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	l := staticLister{descs: []string{
		"USB-SERIAL CH340 (/dev/ttyUSB1)",
		"USB Serial Port (/dev/ttyUSB0)",
		"USB-SERIAL CH340 (/dev/ttyUSB3)",
	}}
	r, err := NewResolver(log, l, DefaultPattern)
	if err != nil {
		t.Fatal(err)
	}
	dev, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if dev != "/dev/ttyUSB1" {
		t.Errorf("Resolve() = %q, want /dev/ttyUSB1", dev)
	}
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "/dev/ttyUSB3") {
		t.Errorf("expected warning naming the ignored device, got %q", out)
	}
}

func TestResolveNotFound(t *testing.T) {
	l := staticLister{descs: []string{"Communications Port (COM1)"}}
	r, err := NewResolver(slog.New(slog.DiscardHandler), l, "")
	if err != nil {
		t.Fatal(err)
	}
	_, err = r.Resolve(context.Background())
	if !errors.Is(err, syncerr.ErrDeviceNotFound) {
		t.Fatalf("expected device not found, got %v", err)
	}
}

func TestResolveListerFailure(t *testing.T) {
	cause := errors.New("enumeration failed")
	r, err := NewResolver(slog.New(slog.DiscardHandler), staticLister{err: cause}, "")
	if err != nil {
		t.Fatal(err)
	}
	_, err = r.Resolve(context.Background())
	if !errors.Is(err, syncerr.ErrDeviceNotFound) || !errors.Is(err, cause) {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestCustomPattern(t *testing.T) {
	l := staticLister{descs: []string{
		"USB-SERIAL CH340 (/dev/ttyUSB0)",
		"Silicon Labs CP210x USB to UART Bridge (/dev/ttyUSB1)",
	}}
	r, err := NewResolver(slog.New(slog.DiscardHandler), l, `CP210x .* \((\S+)\)`)
	if err != nil {
		t.Fatal(err)
	}
	ids, err := r.Candidates()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != "/dev/ttyUSB1" {
		t.Errorf("Candidates() = %v", ids)
	}
}

func TestInvalidPattern(t *testing.T) {
	l := staticLister{}
	if _, err := NewResolver(slog.New(slog.DiscardHandler), l, `CH340 \(`); !errors.Is(err, syncerr.ErrDeviceNotFound) {
		t.Errorf("expected device not found for compile error, got %v", err)
	}
	_, err := NewResolver(slog.New(slog.DiscardHandler), l, `CH340`)
	if !errors.Is(err, syncerr.ErrDeviceNotFound) || !errors.Is(err, errNoCaptureGroup) {
		t.Errorf("expected device not found without capture group, got %v", err)
	}
}

func TestOpenMissingDevice(t *testing.T) {
	_, err := Open("/nonexistent/ttyUSB99", DefaultBaudRate)
	if !errors.Is(err, syncerr.ErrTransportOpenFailed) {
		t.Fatalf("expected transport open failure, got %v", err)
	}
}
