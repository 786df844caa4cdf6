package dance

import (
	"errors"
	"testing"
	"time"

	"illo/core"
	"illo/protocol"
)

var testTriples = [protocol.FrameTriples]protocol.Triple{
	{Position: 2, Intensity: 255, Color: protocol.ColorRed},
	{Position: 3, Intensity: 128, Color: protocol.ColorGreen},
}

func TestBroadcasterSeed(t *testing.T) {
	radio := &fakeRadio{}
	b := NewBroadcaster(radio, DefaultConfig())

	b.Seed()
	if len(radio.names) != 1 || radio.names[0] != protocol.SeedToken {
		t.Fatalf("advertised %v, want just the seed token", radio.names)
	}

	// The seed does not consume a sequence number or start the period.
	b.Publish(time.Unix(100, 0), testTriples)
	frame, err := protocol.Decode(radio.names[1])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if frame.Seq != 1 {
		t.Errorf("first frame seq = %d, want 1", frame.Seq)
	}
}

func TestBroadcasterRateLimits(t *testing.T) {
	radio := &fakeRadio{}
	b := NewBroadcaster(radio, DefaultConfig())
	now := time.Unix(100, 0)

	if !b.Publish(now, testTriples) {
		t.Fatal("first publish was gated")
	}
	if b.Publish(now.Add(79*time.Millisecond), testTriples) {
		t.Error("published again inside the advertise period")
	}
	if !b.Publish(now.Add(80*time.Millisecond), testTriples) {
		t.Error("publish gated at the advertise period boundary")
	}
	if len(radio.names) != 2 {
		t.Errorf("advertised %d names, want 2", len(radio.names))
	}
}

func TestBroadcasterStopsBeforeAdvertising(t *testing.T) {
	radio := &fakeRadio{}
	b := NewBroadcaster(radio, DefaultConfig())

	b.Publish(time.Unix(100, 0), testTriples)
	want := []string{"stop", "advertise"}
	if len(radio.calls) != 2 || radio.calls[0] != want[0] || radio.calls[1] != want[1] {
		t.Errorf("calls = %v, want %v", radio.calls, want)
	}
}

func TestBroadcasterIgnoresStopFailure(t *testing.T) {
	radio := &fakeRadio{stopErr: errors.New("was not advertising")}
	b := NewBroadcaster(radio, DefaultConfig())

	b.Publish(time.Unix(100, 0), testTriples)
	if len(radio.names) != 1 {
		t.Errorf("advertised %d names, want 1", len(radio.names))
	}
	if _, failed := b.Stats(); failed != 0 {
		t.Errorf("failed = %d, want 0", failed)
	}
}

func TestBroadcasterSequenceAdvancesAcrossFailures(t *testing.T) {
	radio := &fakeRadio{advErr: errors.New("radio busy")}
	b := NewBroadcaster(radio, DefaultConfig())
	now := time.Unix(100, 0)

	b.Publish(now, testTriples)
	published, failed := b.Stats()
	if published != 0 || failed != 1 {
		t.Errorf("stats = %d published %d failed, want 0 and 1", published, failed)
	}

	// The next period retries, and the burned sequence number is gone.
	radio.advErr = nil
	b.Publish(now.Add(100*time.Millisecond), testTriples)
	if len(radio.names) != 1 {
		t.Fatalf("advertised %d names, want 1", len(radio.names))
	}
	frame, err := protocol.Decode(radio.names[0])
	if err != nil {
		t.Fatalf("Decode(%q): %v", radio.names[0], err)
	}
	if frame.Seq != 2 {
		t.Errorf("seq = %d, want 2", frame.Seq)
	}
}

func TestBroadcasterAbsorbsExhaustion(t *testing.T) {
	radio := &fakeRadio{advErr: core.ErrRadioExhausted}
	b := NewBroadcaster(radio, DefaultConfig())

	if !b.Publish(time.Unix(100, 0), testTriples) {
		t.Error("exhausted publish not counted as an attempt")
	}
	if _, failed := b.Stats(); failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
}

func TestBroadcasterSequenceWraps(t *testing.T) {
	radio := &fakeRadio{}
	cfg := DefaultConfig()
	cfg.AdvertisePeriod = 50 * time.Millisecond
	b := NewBroadcaster(radio, cfg)
	now := time.Unix(100, 0)

	for i := 0; i < 256; i++ {
		b.Publish(now.Add(time.Duration(i)*50*time.Millisecond), testTriples)
	}
	frame, err := protocol.Decode(radio.names[255])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if frame.Seq != 0 {
		t.Errorf("256th publish seq = %d, want wrapped 0", frame.Seq)
	}
}

func TestBroadcasterEncodesFrame(t *testing.T) {
	radio := &fakeRadio{}
	b := NewBroadcaster(radio, DefaultConfig())

	b.Publish(time.Unix(100, 0), testTriples)
	want := "ILLO_1_2_255_0_3_128_1_0_0_0"
	if radio.names[0] != want {
		t.Errorf("advertised %q, want %q", radio.names[0], want)
	}
}
