package serial

import (
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
)

type usbID struct {
	vid, pid string
}

// Descriptions of common USB serial bridges, keyed by lower-case VID/PID. The
// product string reported by the OS varies between platforms and is only
// used for bridges not listed here.
var bridgeDescriptions = map[usbID]string{
	{"1a86", "7523"}: "USB-SERIAL CH340",
	{"1a86", "5523"}: "USB-SERIAL CH341A",
	{"10c4", "ea60"}: "Silicon Labs CP210x USB to UART Bridge",
	{"0403", "6001"}: "USB Serial Port",
	{"067b", "2303"}: "Prolific USB-to-Serial Comm Port",
}

// EnumeratorLister describes the serial ports reported by Enumerate as
// "<description> (<port name>)".
type EnumeratorLister struct {
	Enumerate func() ([]*enumerator.PortDetails, error)
}

func NewPlatformLister() Lister {
	return EnumeratorLister{Enumerate: enumerator.GetDetailedPortsList}
}

func describe(p *enumerator.PortDetails) string {
	if p.IsUSB {
		id := usbID{strings.ToLower(p.VID), strings.ToLower(p.PID)}
		if d, ok := bridgeDescriptions[id]; ok {
			return d
		}
	}
	if p.Product != "" {
		return p.Product
	}
	return p.Name
}

func (l EnumeratorLister) Descriptions() ([]string, error) {
	ports, err := l.Enumerate()
	if err != nil {
		return nil, err
	}
	descs := make([]string, 0, len(ports))
	for _, p := range ports {
		if p == nil || p.Name == "" {
			continue
		}
		d := describe(p)
		suffix := "(" + p.Name + ")"
		if !strings.HasSuffix(d, suffix) {
			d = fmt.Sprintf("%s %s", d, suffix)
		}
		descs = append(descs, d)
	}
	return descs, nil
}
