package core

import "testing"

func TestCRC16KnownValues(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want uint16
	}{
		{"empty", nil, 0xFFFF},
		{"zero byte", []byte{0x00}, 0x0F87},
		{"ff byte", []byte{0xFF}, 0x00FF},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CRC16(tc.data); got != tc.want {
				t.Errorf("CRC16(%v) = 0x%04X, want 0x%04X", tc.data, got, tc.want)
			}
		})
	}
}

func TestCRC16DetectsSingleBitFlips(t *testing.T) {
	blob := []byte(`{"name":"ILLO","routine":1,"mode":1}`)
	want := CRC16(blob)
	for i := range blob {
		flipped := append([]byte(nil), blob...)
		flipped[i] ^= 0x01
		if CRC16(flipped) == want {
			t.Errorf("bit flip at byte %d went undetected", i)
		}
	}
}
