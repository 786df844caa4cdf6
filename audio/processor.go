// Package audio turns raw microphone samples into the features the
// dance visualizer maps onto the ring.
package audio

import "illo/core"

const (
	defaultSampleRate = 16000
	batchSamples      = 256
)

// Features is one batch worth of derived audio data. Deltas holds the
// sample-to-sample differences and Frequency a zero-crossing pitch
// estimate in Hz.
type Features struct {
	Deltas    []int32
	Frequency float32
}

// Processor records fixed batches from an audio source and derives
// Features from them. It allocates its buffers once; the Deltas slice
// it hands out is reused on the next Process call.
type Processor struct {
	src        core.AudioSource
	sampleRate int
	buf        []int16
	deltas     []int32
}

func NewProcessor(src core.AudioSource, sampleRate int) *Processor {
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	return &Processor{
		src:        src,
		sampleRate: sampleRate,
		buf:        make([]int16, batchSamples),
		deltas:     make([]int32, 0, batchSamples),
	}
}

// Process records one batch and computes its features. A short read is
// used as is; fewer than two samples yields empty features.
func (p *Processor) Process() (Features, error) {
	n, err := p.src.ReadSamples(p.buf)
	if err != nil {
		return Features{}, err
	}
	if n < 2 {
		return Features{}, nil
	}
	samples := p.buf[:n]

	p.deltas = p.deltas[:0]
	for i := 1; i < len(samples); i++ {
		p.deltas = append(p.deltas, int32(samples[i])-int32(samples[i-1]))
	}

	// Crossings are counted against the batch mean so the mic's DC
	// bias does not swallow them.
	var sum int32
	for _, s := range samples {
		sum += int32(s)
	}
	mean := sum / int32(len(samples))

	crossings := 0
	above := int32(samples[0]) >= mean
	for _, s := range samples[1:] {
		if (int32(s) >= mean) != above {
			crossings++
			above = !above
		}
	}
	freq := float32(crossings) * float32(p.sampleRate) / (2 * float32(n))

	return Features{Deltas: p.deltas, Frequency: freq}, nil
}
