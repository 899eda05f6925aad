package service

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"time"

	"github.com/pelletier/go-toml/v2"

	"example.com/serial-time/base/timemath"
	"example.com/serial-time/core/sync"
	"example.com/serial-time/driver/serial"
)

type fileConfig struct {
	Device        string  `toml:"device,omitempty"`
	DevicePattern string  `toml:"device_pattern,omitempty"`
	BaudRate      int     `toml:"baud_rate,omitempty"`
	MinLeadTime   float64 `toml:"min_lead_time,omitempty"`
	MetricsFile   string  `toml:"metrics_file,omitempty"`
}

type Config struct {
	// Device skips discovery when set.
	Device        string
	DevicePattern string
	BaudRate      int
	MinLeadTime   time.Duration
	MetricsFile   string
}

var (
	errInvalidBaudRate = errors.New("invalid baud rate")
	errInvalidLeadTime = errors.New("invalid minimum lead time")
	errInvalidPattern  = errors.New("invalid device pattern")
)

func DefaultConfig() Config {
	return Config{
		DevicePattern: serial.DefaultPattern,
		BaudRate:      serial.DefaultBaudRate,
		MinLeadTime:   sync.DefaultMinLeadTime,
	}
}

func LoadConfig(raw []byte) (Config, error) {
	var fc fileConfig
	err := toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(&fc)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	cfg := DefaultConfig()
	cfg.Device = fc.Device
	if fc.DevicePattern != "" {
		re, err := regexp.Compile(fc.DevicePattern)
		if err != nil || re.NumSubexp() < 1 {
			return Config{}, errInvalidPattern
		}
		cfg.DevicePattern = fc.DevicePattern
	}
	if fc.BaudRate < 0 {
		return Config{}, errInvalidBaudRate
	}
	if fc.BaudRate != 0 {
		cfg.BaudRate = fc.BaudRate
	}
	if fc.MinLeadTime < 0 || fc.MinLeadTime >= 60 {
		return Config{}, errInvalidLeadTime
	}
	if fc.MinLeadTime != 0 {
		cfg.MinLeadTime = timemath.Duration(fc.MinLeadTime)
	}
	cfg.MetricsFile = fc.MetricsFile
	return cfg, nil
}
