package core

// AudioSource supplies raw signed PCM samples from the microphone.
type AudioSource interface {
	// ReadSamples fills buf with samples and returns the count
	// actually read. A source with nothing to deliver returns 0;
	// a broken source returns an error and the caller falls back
	// to non-reactive animation.
	ReadSamples(buf []int16) (int, error)
}
