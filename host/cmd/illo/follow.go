package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"illo/core"
	"illo/dance"
	"illo/host/sim"
	"illo/host/web"
	"illo/protocol"
	"illo/radio/ble"
)

func newFollowCommand() *cobra.Command {
	var (
		preset  string
		minRSSI int
		udp     bool
		port    int
		webAddr string
	)
	cmd := &cobra.Command{
		Use:   "follow",
		Short: "Follow a leader's broadcasts in the terminal",
		Long: `follow turns the terminal into one more follower: it scans for a
leader over BLE, or over the LAN bridge with --udp, and renders the
reconstructed ring as a line of colored dots.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFollow(preset, minRSSI, udp, port, webAddr)
		},
	}
	cmd.Flags().StringVar(&preset, "preset", dance.PresetBalanced, "sync preset: fast, balanced or smooth")
	cmd.Flags().IntVar(&minRSSI, "min-rssi", dance.DefaultMinRSSI, "ignore leaders weaker than this, dBm")
	cmd.Flags().BoolVar(&udp, "udp", false, "listen on the LAN bridge instead of BLE")
	cmd.Flags().IntVar(&port, "port", sim.DefaultUDPPort, "UDP port for the bridge")
	cmd.Flags().StringVar(&webAddr, "web", "", "also serve the browser viewer on this address, e.g. :8080")
	return cmd
}

func runFollow(preset string, minRSSI int, udp bool, port int, webAddr string) error {
	// Device logs go to stderr so the dot line owns stdout.
	core.SetLogWriter(func(s string) { fmt.Fprintln(os.Stderr, s) })
	core.SetLogEnabled(true)

	cfg := dance.PresetConfig(preset)
	cfg.MinRSSI = int16(minRSSI)
	cfg = cfg.Normalize()

	var radio core.RadioDriver
	if udp {
		radio = sim.NewUDPRadio(port)
	} else {
		radio = ble.New(0)
	}
	if err := radio.Init(); err != nil {
		return fmt.Errorf("radio init failed: %w", err)
	}
	defer radio.Deinit()

	// Full brightness, a terminal does not need the LED dimming.
	ring := sim.NewRing(protocol.NumPixels)
	ring.SetBrightness(1)
	rx := dance.NewReceiver(radio, dance.NewReconstructor(ring, cfg), cfg)

	var hub *web.Hub
	if webAddr != "" {
		hub = web.NewHub()
		go func() {
			if err := hub.Serve(webAddr); err != nil {
				core.Logln("[WEB] server stopped: " + err.Error())
			}
		}()
		fmt.Println("viewer on http://" + webAddr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("listening for a leader, ctrl-c to stop")
	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		default:
		}
		rx.Poll(time.Now())
		ok, lost := rx.Stats()
		status := fmt.Sprintf("ok %d  lost %d  seen %s", ok, lost, seenAgo(rx.LastSeen()))
		printRing(ring.Frame(), status)
		if hub != nil {
			hub.Broadcast([]web.Frame{mirrorFrame(ring)})
		}
	}
}

// mirrorFrame packages the follower ring for the browser viewer. The
// ring runs at full brightness here, so no display boost is applied.
func mirrorFrame(ring *sim.Ring) web.Frame {
	f := web.Frame{Device: "follow", Routine: "follower", Mode: 2}
	for _, c := range ring.Frame() {
		f.Pixels = append(f.Pixels, fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
	}
	return f
}

func seenAgo(last time.Time) string {
	if last.IsZero() {
		return "never"
	}
	return time.Since(last).Round(100 * time.Millisecond).String() + " ago"
}

// printRing redraws the dot line in place with 24-bit color.
func printRing(frame []color.RGBA, status string) {
	var b strings.Builder
	b.WriteString("\r")
	for _, c := range frame {
		fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm●", c.R, c.G, c.B)
	}
	b.WriteString("\x1b[0m  ")
	b.WriteString(status)
	b.WriteString("\x1b[K")
	fmt.Print(b.String())
}
