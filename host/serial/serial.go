// Package serial is the host side's view of a toy's USB console. The
// firmware logs plain lines over USB CDC; this wraps port access and
// the guesswork of finding the right device node.
package serial

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// Port is a serial connection to one device.
type Port interface {
	io.ReadWriteCloser

	// Flush drops whatever is sitting in the OS buffers.
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path, e.g. "/dev/ttyACM0".
	Device string

	// Baud rate. USB CDC ignores it, but the field still has to hold
	// something the OS accepts.
	Baud int

	// ReadTimeout bounds a single Read. Zero blocks.
	ReadTimeout time.Duration
}

// DefaultConfig returns the configuration the toys enumerate with.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100 * time.Millisecond,
	}
}

// NativePort wraps the tarm/serial implementation.
type NativePort struct {
	port *serial.Port
}

// Open opens the configured device.
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}
	return &NativePort{port: port}, nil
}

func (p *NativePort) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

func (p *NativePort) Close() error {
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}

func (p *NativePort) Flush() error {
	return p.port.Flush()
}
