package frame

import (
	"errors"
	"time"
)

const (
	FrameLen = 6

	CommitByte byte = 'c'

	markerHi byte = 'S'
	markerLo byte = 'b'

	payloadBit  byte = 0x80
	payloadMask      = 0x7f
	groupBits        = 7

	SecondsPerDay = 24 * 60 * 60
)

var (
	errUnexpectedFrameLen = errors.New("unexpected frame length")
	errInvalidMarker      = errors.New("invalid frame marker")
	errInvalidPayload     = errors.New("invalid frame payload")
	errInvalidTimeOfDay   = errors.New("invalid time of day")
)

func SecondsOfDay(hour, minute, second int) uint32 {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		panic("time of day out of range")
	}
	return uint32(((hour*60)+minute)*60 + second)
}

func EncodeTimeOfDay(b *[]byte, hour, minute, second int) {
	s := SecondsOfDay(hour, minute, second)

	if cap(*b) < FrameLen {
		*b = make([]byte, FrameLen)
	} else {
		*b = (*b)[:FrameLen]
	}

	(*b)[0] = markerHi
	(*b)[1] = markerLo
	(*b)[2] = byte((s>>(3*groupBits))&payloadMask) | payloadBit
	(*b)[3] = byte((s>>(2*groupBits))&payloadMask) | payloadBit
	(*b)[4] = byte((s>>groupBits)&payloadMask) | payloadBit
	(*b)[5] = byte(s&payloadMask) | payloadBit
}

// Encode returns the frame announcing the time of day of t in t's location.
func Encode(t time.Time) []byte {
	var b []byte
	hour, minute, second := t.Clock()
	EncodeTimeOfDay(&b, hour, minute, second)
	return b
}

func DecodeFrame(b []byte) (uint32, error) {
	if len(b) != FrameLen {
		return 0, errUnexpectedFrameLen
	}
	if b[0] != markerHi || b[1] != markerLo {
		return 0, errInvalidMarker
	}
	var s uint32
	for _, x := range b[2:] {
		if x&payloadBit == 0 {
			return 0, errInvalidPayload
		}
		s = s<<groupBits | uint32(x&payloadMask)
	}
	if s >= SecondsPerDay {
		return 0, errInvalidTimeOfDay
	}
	return s, nil
}

func TimeOfDay(secondsOfDay uint32) (hour, minute, second int) {
	s := int(secondsOfDay)
	return s / 3600, s / 60 % 60, s % 60
}
