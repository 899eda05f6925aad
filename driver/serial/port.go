package serial

import (
	"io"

	tarm "github.com/tarm/serial"

	"example.com/serial-time/base/syncerr"
)

const DefaultBaudRate = 115200

type Port interface {
	io.WriteCloser
}

func Open(device string, baud int) (Port, error) {
	p, err := tarm.OpenPort(&tarm.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, &syncerr.Error{
			Kind:   syncerr.TransportOpenFailed,
			Device: device,
			Err:    err,
		}
	}
	return p, nil
}
