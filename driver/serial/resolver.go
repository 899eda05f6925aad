// Package serial locates the USB serial bridge of the peripheral and opens it
// for writing.
package serial

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	"example.com/serial-time/base/syncerr"
)

// DefaultPattern matches the description of a CH340 bridge and captures the
// device identifier.
const DefaultPattern = `USB-SERIAL CH340 \((.+)\)`

var errNoCaptureGroup = errors.New("device pattern must contain a capture group")

// Lister returns the descriptions of the serial devices currently attached.
type Lister interface {
	Descriptions() ([]string, error)
}

type Resolver struct {
	log     *slog.Logger
	lister  Lister
	pattern *regexp.Regexp
}

func NewResolver(log *slog.Logger, lister Lister, pattern string) (*Resolver, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	re, err := regexp.Compile(pattern)
	if err == nil && re.NumSubexp() < 1 {
		err = errNoCaptureGroup
	}
	if err != nil {
		return nil, &syncerr.Error{Kind: syncerr.DeviceNotFound, Pattern: pattern, Err: err}
	}
	return &Resolver{log: log, lister: lister, pattern: re}, nil
}

// Candidates returns the identifiers of all matching devices in the order the
// lister reported them.
func (r *Resolver) Candidates() ([]string, error) {
	descs, err := r.lister.Descriptions()
	if err != nil {
		return nil, &syncerr.Error{
			Kind:    syncerr.DeviceNotFound,
			Pattern: r.pattern.String(),
			Err:     err,
		}
	}
	var ids []string
	for _, d := range descs {
		m := r.pattern.FindStringSubmatch(d)
		if m == nil || m[1] == "" {
			continue
		}
		ids = append(ids, m[1])
	}
	return ids, nil
}

func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	ids, err := r.Candidates()
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", &syncerr.Error{Kind: syncerr.DeviceNotFound, Pattern: r.pattern.String()}
	}
	if len(ids) > 1 {
		r.log.LogAttrs(ctx, slog.LevelWarn, "multiple serial devices found, using first one",
			slog.String("device", ids[0]),
			slog.Any("ignored", ids[1:]),
		)
	}
	return ids[0], nil
}
