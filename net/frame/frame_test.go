package frame_test

import (
	"bytes"
	"testing"
	"time"

	"example.com/serial-time/net/frame"
)

func TestEncodeExamples(t *testing.T) {
	tests := []struct {
		hour, minute, second int
		want                 []byte
	}{
		{0, 0, 0, []byte{0x53, 0x62, 0x80, 0x80, 0x80, 0x80}},
		{12, 30, 0, []byte{0x53, 0x62, 0x80, 0x82, 0xdf, 0xc8}},
		{0, 2, 7, []byte{0x53, 0x62, 0x80, 0x80, 0x80, 0xff}},
		{0, 2, 8, []byte{0x53, 0x62, 0x80, 0x80, 0x81, 0x80}},
		{23, 59, 59, []byte{0x53, 0x62, 0x80, 0x85, 0xa2, 0xff}},
	}
	for _, tc := range tests {
		var b []byte
		frame.EncodeTimeOfDay(&b, tc.hour, tc.minute, tc.second)
		if !bytes.Equal(b, tc.want) {
			t.Errorf("EncodeTimeOfDay(%d, %d, %d) = % x, want % x",
				tc.hour, tc.minute, tc.second, b, tc.want)
		}
	}
}

func TestEncodeAllSecondsOfDay(t *testing.T) {
	b := make([]byte, 0, 16)
	for s := range frame.SecondsPerDay {
		frame.EncodeTimeOfDay(&b, s/3600, s/60%60, s%60)
		if len(b) != frame.FrameLen {
			t.Fatalf("unexpected frame length %d", len(b))
		}
		if b[0] != 'S' || b[1] != 'b' {
			t.Fatalf("unexpected marker % x", b[:2])
		}
		for i, x := range b[2:] {
			if x&0x80 == 0 {
				t.Fatalf("payload byte %d of %d lacks high bit: % x", i+2, s, b)
			}
		}
		got, err := frame.DecodeFrame(b)
		if err != nil {
			t.Fatalf("DecodeFrame(% x): %v", b, err)
		}
		if got != uint32(s) {
			t.Fatalf("DecodeFrame(% x) = %d, want %d", b, got, s)
		}
	}
}

func TestEncodeReusesBuffer(t *testing.T) {
	b := make([]byte, 32)
	p := &b[0]
	frame.EncodeTimeOfDay(&b, 1, 2, 3)
	if len(b) != frame.FrameLen || &b[0] != p {
		t.Fail()
	}
}

func TestEncodeTime(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	ts := time.Date(2024, time.March, 1, 12, 30, 0, 999_999_999, loc)
	want := []byte{0x53, 0x62, 0x80, 0x82, 0xdf, 0xc8}
	if got := frame.Encode(ts); !bytes.Equal(got, want) {
		t.Errorf("Encode(%v) = % x, want % x", ts, got, want)
	}
}

func TestSecondsOfDayOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for hour 24")
		}
	}()
	frame.SecondsOfDay(24, 0, 0)
}

func TestDecodeFrameErrors(t *testing.T) {
	bs := [][]byte{
		nil,
		{0x53, 0x62, 0x80, 0x80, 0x80},
		{0x53, 0x62, 0x80, 0x80, 0x80, 0x80, 0x80},
		{0x54, 0x62, 0x80, 0x80, 0x80, 0x80},
		{0x53, 0x62, 0x80, 0x80, 0x00, 0x80},
		{0x53, 0x62, 0x80, 0x85, 0xa4, 0x80},
	}
	for _, b := range bs {
		if _, err := frame.DecodeFrame(b); err == nil {
			t.Errorf("DecodeFrame(% x): expected error", b)
		}
	}
}

func TestTimeOfDay(t *testing.T) {
	h, m, s := frame.TimeOfDay(45000)
	if h != 12 || m != 30 || s != 0 {
		t.Errorf("TimeOfDay(45000) = %d:%d:%d, want 12:30:0", h, m, s)
	}
	h, m, s = frame.TimeOfDay(86399)
	if h != 23 || m != 59 || s != 59 {
		t.Errorf("TimeOfDay(86399) = %d:%d:%d, want 23:59:59", h, m, s)
	}
}
