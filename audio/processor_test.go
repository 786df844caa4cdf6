package audio

import (
	"errors"
	"testing"
)

type scriptSource struct {
	samples []int16
	err     error
}

func (s *scriptSource) ReadSamples(buf []int16) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n := copy(buf, s.samples)
	return n, nil
}

func TestProcessDeltas(t *testing.T) {
	src := &scriptSource{samples: []int16{0, 100, -100, 50}}
	p := NewProcessor(src, 16000)

	f, err := p.Process()
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	want := []int32{100, -200, 150}
	if len(f.Deltas) != len(want) {
		t.Fatalf("got %d deltas, want %d", len(f.Deltas), len(want))
	}
	for i, d := range want {
		if f.Deltas[i] != d {
			t.Errorf("delta[%d] = %d, want %d", i, f.Deltas[i], d)
		}
	}
}

func TestProcessFrequency(t *testing.T) {
	// Three mean crossings over four samples at 16 kHz.
	src := &scriptSource{samples: []int16{0, 100, -100, 50}}
	p := NewProcessor(src, 16000)

	f, err := p.Process()
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if f.Frequency != 6000 {
		t.Errorf("Frequency = %v, want 6000", f.Frequency)
	}
}

func TestProcessSquareWave(t *testing.T) {
	// 2 kHz square wave at 16 kHz: period of eight samples, four up
	// and four down, riding on a DC offset.
	samples := make([]int16, batchSamples)
	for i := range samples {
		if i%8 < 4 {
			samples[i] = 1500
		} else {
			samples[i] = 500
		}
	}
	p := NewProcessor(&scriptSource{samples: samples}, 16000)

	f, err := p.Process()
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if f.Frequency < 1900 || f.Frequency > 2100 {
		t.Errorf("Frequency = %v, want about 2000", f.Frequency)
	}
}

func TestProcessShortRead(t *testing.T) {
	p := NewProcessor(&scriptSource{samples: []int16{42}}, 16000)

	f, err := p.Process()
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(f.Deltas) != 0 || f.Frequency != 0 {
		t.Errorf("got %d deltas, frequency %v, want empty features", len(f.Deltas), f.Frequency)
	}
}

func TestProcessSourceError(t *testing.T) {
	fail := errors.New("mic gone")
	p := NewProcessor(&scriptSource{err: fail}, 16000)

	if _, err := p.Process(); !errors.Is(err, fail) {
		t.Errorf("Process error = %v, want %v", err, fail)
	}
}
