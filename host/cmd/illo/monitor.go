package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/spf13/cobra"

	"illo/host/serial"
)

// errMonitorDone marks a clean user exit, as opposed to a lost port.
var errMonitorDone = errors.New("monitor done")

func newMonitorCommand() *cobra.Command {
	var reconnect bool
	cmd := &cobra.Command{
		Use:   "monitor [device]",
		Short: "Stream a toy's USB console",
		Long: `monitor attaches to a toy's USB serial console and streams its log
lines with timestamps. Lines typed here are forwarded to the toy.
Without a device argument the first CircuitPython-looking port is
used. Type exit, quit or stop to leave.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			device := ""
			if len(args) == 1 {
				device = args[0]
			}
			return runMonitor(device, reconnect)
		},
	}
	cmd.Flags().BoolVar(&reconnect, "reconnect", true, "reopen the port when the toy resets or unplugs")
	return cmd
}

func runMonitor(device string, reconnect bool) error {
	if device == "" {
		candidates := serial.Detect()
		if len(candidates) == 0 {
			return errors.New("no toy found, pass a device path")
		}
		device = candidates[0].Device
		fmt.Printf("using %s (%s)\n", device, candidates[0].Description)
		if len(candidates) > 1 {
			fmt.Printf("%d other candidate(s) ignored\n", len(candidates)-1)
		}
	}

	stdin := readStdin()

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0
	for {
		start := time.Now()
		err := streamConsole(device, stdin)
		if err == nil || errors.Is(err, errMonitorDone) {
			return nil
		}
		if !reconnect {
			return err
		}
		// A session that held for a while earns a fresh backoff.
		if time.Since(start) > 10*time.Second {
			bo.Reset()
		}
		wait := bo.NextBackOff()
		fmt.Printf("[%s] lost %s (%v), retrying in %s\n",
			timestamp(), device, err, wait.Round(time.Millisecond))
		time.Sleep(wait)
	}
}

// readStdin feeds typed lines to the stream loop. The channel closes
// on end of input, which ends the monitor like an explicit exit.
func readStdin() <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			ch <- strings.TrimSpace(sc.Text())
		}
	}()
	return ch
}

func streamConsole(device string, stdin <-chan string) error {
	port, err := serial.Open(serial.DefaultConfig(device))
	if err != nil {
		return err
	}
	defer port.Close()
	_ = port.Flush()
	fmt.Printf("[%s] connected to %s\n", timestamp(), device)

	var carry []byte
	buf := make([]byte, 256)
	for {
		select {
		case line, ok := <-stdin:
			if !ok {
				return errMonitorDone
			}
			switch line {
			case "exit", "quit", "stop":
				return errMonitorDone
			}
			if _, err := port.Write([]byte(line + "\r\n")); err != nil {
				return fmt.Errorf("write failed: %w", err)
			}
		default:
		}

		// The port read times out quickly so typed input stays snappy.
		n, err := port.Read(buf)
		if n > 0 {
			carry = append(carry, buf[:n]...)
			carry = printLines(carry)
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read failed: %w", err)
		}
	}
}

// printLines prints every complete line in carry with a timestamp and
// returns the unterminated remainder. A toy stuck mid-line does not
// get to hold the buffer forever.
func printLines(carry []byte) []byte {
	for {
		i := bytes.IndexByte(carry, '\n')
		if i < 0 {
			if len(carry) > 4096 {
				fmt.Printf("[%s] %s\n", timestamp(), string(carry))
				return carry[:0]
			}
			return carry
		}
		line := strings.TrimRight(string(carry[:i]), "\r")
		fmt.Printf("[%s] %s\n", timestamp(), line)
		carry = carry[i+1:]
	}
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}
