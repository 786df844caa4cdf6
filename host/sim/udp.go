package sim

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"illo/core"
	"illo/protocol"
)

// DefaultUDPPort carries bridged advertisements on the LAN.
const DefaultUDPPort = 4242

const udpRSSI = -50

// Bridge relays the loopback medium onto the LAN. Every simulated
// advertisement goes out as one broadcast datagram, and tokens heard
// on the port join the medium as one extra advertising port, so a
// terminal follower on another machine dances with a simulated floor.
type Bridge struct {
	conn  *net.UDPConn
	bcast *net.UDPAddr
	ghost *Radio
}

func NewBridge(m *Medium, port int) (*Bridge, error) {
	if port <= 0 {
		port = DefaultUDPPort
	}
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: port})
	if err != nil {
		return nil, fmt.Errorf("failed to bind bridge port %d: %w", port, err)
	}
	b := &Bridge{
		conn:  conn,
		bcast: &net.UDPAddr{IP: net.IPv4bcast, Port: port},
		ghost: m.Join("udp"),
	}
	if err := b.ghost.Init(); err != nil {
		conn.Close()
		return nil, err
	}
	m.SetOnAdvertise(func(id, name string) {
		if id == "udp" {
			return
		}
		_, _ = conn.WriteToUDP([]byte(name), b.bcast)
	})
	go b.run()
	return b, nil
}

func (b *Bridge) run() {
	var buf [64]byte
	for {
		n, _, err := b.conn.ReadFromUDP(buf[:])
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}
		if n == 0 || n > protocol.MaxTokenLen {
			continue
		}
		// Our own broadcasts loop back here too. The ghost re-advertising
		// them is harmless, followers skip the repeated sequence number.
		_ = b.ghost.Advertise(string(buf[:n]))
	}
}

func (b *Bridge) Close() error {
	return b.conn.Close()
}

// UDPRadio is a RadioDriver over LAN broadcast datagrams, one
// advertisement per packet. It lets a process with no Bluetooth stack
// lead or follow a bridged floor.
type UDPRadio struct {
	port      int
	conn      *net.UDPConn
	bcast     *net.UDPAddr
	listening bool
	buf       [64]byte
}

var _ core.RadioDriver = (*UDPRadio)(nil)

func NewUDPRadio(port int) *UDPRadio {
	if port <= 0 {
		port = DefaultUDPPort
	}
	return &UDPRadio{port: port}
}

func (u *UDPRadio) Init() error {
	if u.conn != nil {
		return nil
	}
	u.bcast = &net.UDPAddr{IP: net.IPv4bcast, Port: u.port}
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: u.port})
	if err == nil {
		u.conn = conn
		u.listening = true
		return nil
	}
	// Port taken, usually by another radio on this host. Transmitting
	// from an ephemeral port still works, scans will hear nothing.
	conn, err = net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero})
	if err != nil {
		core.Logln("[UDP] bind failed: " + err.Error())
		return core.ErrRadioUnavailable
	}
	core.Logln("[UDP] port " + strconv.Itoa(u.port) + " busy, transmit only")
	u.conn = conn
	return nil
}

func (u *UDPRadio) Advertise(name string) error {
	if u.conn == nil {
		return core.ErrRadioUnavailable
	}
	_, err := u.conn.WriteToUDP([]byte(name), u.bcast)
	return err
}

// StopAdvertise is a no-op, datagrams do not linger on the air.
func (u *UDPRadio) StopAdvertise() error { return nil }

func (u *UDPRadio) ScanBurst(d time.Duration, minRSSI int16, fn func(core.ScanHit) bool) error {
	if u.conn == nil {
		return core.ErrRadioUnavailable
	}
	if !u.listening || udpRSSI < minRSSI {
		time.Sleep(d)
		return nil
	}
	if err := u.conn.SetReadDeadline(time.Now().Add(d)); err != nil {
		return err
	}
	for {
		n, _, err := u.conn.ReadFromUDP(u.buf[:])
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return nil
			}
			return err
		}
		if n == 0 || n > protocol.MaxTokenLen {
			continue
		}
		if !fn(core.ScanHit{Name: string(u.buf[:n]), RSSI: udpRSSI}) {
			return nil
		}
	}
}

func (u *UDPRadio) Deinit() {
	if u.conn != nil {
		u.conn.Close()
		u.conn = nil
	}
	u.listening = false
}
